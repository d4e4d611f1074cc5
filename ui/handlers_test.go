package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablescope/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Limits: config.LimitsConfig{
			MaxFileSize:  1 << 20,
			PreviewRows:  20,
			ParseTimeout: 5 * time.Second,
		},
	}
}

func uploadRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleAnalyze(t *testing.T) {
	app := NewApp(testConfig())

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyze", "data.csv", "a,b\n1,x\n2,y\n3,z\n"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		Filename       string                          `json:"filename"`
		Rows           int                             `json:"rows"`
		Cols           int                             `json:"cols"`
		NumericColumns []string                        `json:"numericColumns"`
		Stats          map[string]map[string]*float64 `json:"stats"`
		Preview        []map[string]interface{}       `json:"preview"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, "data.csv", payload.Filename)
	assert.Equal(t, 3, payload.Rows)
	assert.Equal(t, 2, payload.Cols)
	assert.Equal(t, []string{"a"}, payload.NumericColumns)
	require.Contains(t, payload.Stats, "a")
	assert.Equal(t, 6.0, *payload.Stats["a"]["sum"])
	assert.Len(t, payload.Preview, 3)
	assert.Equal(t, "x", payload.Preview[0]["b"])
}

func TestHandleAnalyzeWrongExtension(t *testing.T) {
	app := NewApp(testConfig())

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyze", "data.txt", "a,b\n1,2\n"))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", payload["code"])
}

func TestHandleAnalyzeEmptyFile(t *testing.T) {
	app := NewApp(testConfig())

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyze", "data.csv", ""))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "EMPTY_FILE", payload["code"])
}

func TestHandleAnalyzeOversizedUpload(t *testing.T) {
	app := NewApp(testConfig())

	// Well past MaxFileSize plus the multipart framing allowance, so the
	// body cap trips before the file part is even extracted.
	content := "a,b\n" + strings.Repeat("1,2\n", 1<<20)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyze", "data.csv", content))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "FILE_TOO_LARGE", payload["code"])
}

func TestHandleAnalyzeNoFilePart(t *testing.T) {
	app := NewApp(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyzeReportMarkdown(t *testing.T) {
	app := NewApp(testConfig())

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyze/report", "data.csv", "a,b\n1,x\n2,y\n"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "# Analysis report: data.csv")
}

func TestHandleAnalyzeReportHTML(t *testing.T) {
	app := NewApp(testConfig())

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyze/report?format=html", "data.csv", "a,b\n1,x\n2,y\n"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<table>")
}

func TestHandleHealth(t *testing.T) {
	app := NewApp(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	app := NewApp(testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	app := NewApp(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
