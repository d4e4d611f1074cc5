package ui

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log"
	"net/http"

	"tablescope/domain/table"
	"tablescope/internal/errors"
	"tablescope/internal/report"
)

// multipartOverhead leaves room for the multipart framing around the file
// part when capping the request body.
const multipartOverhead = 1 << 20

// handleAnalyze accepts a multipart upload and returns the analysis as JSON
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	result, err := a.runAnalysis(w, r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

// handleAnalyzeReport accepts the same upload but returns the exportable
// report, as markdown by default or HTML with ?format=html
func (a *App) handleAnalyzeReport(w http.ResponseWriter, r *http.Request) {
	result, err := a.runAnalysis(w, r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(report.HTML(result))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(report.Markdown(result)))
}

// handleHealth is the liveness probe
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// runAnalysis extracts the uploaded file and runs the pipeline under the
// configured parsing time budget
func (a *App) runAnalysis(w http.ResponseWriter, r *http.Request) (*table.AnalysisResult, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.Limits.MaxFileSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			size := r.ContentLength
			if size < 0 {
				size = maxErr.Limit
			}
			return nil, errors.FileTooLarge(size, a.config.Limits.MaxFileSize)
		}
		return nil, errors.InvalidInput("no file uploaded")
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), a.config.Limits.ParseTimeout)
	defer cancel()

	return a.analyzer.Analyze(ctx, header.Filename, file)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[UI] failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	a.writeJSON(w, statusForCode(code), map[string]string{
		"error": err.Error(),
		"code":  code,
	})
}

// statusForCode maps the pipeline error taxonomy to HTTP rejections
func statusForCode(code string) int {
	switch code {
	case errors.CodeUnsupportedFileType,
		errors.CodeEncodingError,
		errors.CodeEmptyFile,
		errors.CodeMalformedHeader,
		errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
