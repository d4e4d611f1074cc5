// Package analyzer runs the full upload pipeline: sniff the dialect, parse
// the table, infer column types, compute statistics and assemble the result.
// One Analyze call is one synchronous pass over one upload; the analyzer
// itself holds only immutable configuration, so a single instance serves
// concurrent requests without cross-request state.
package analyzer

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"tablescope/domain/core"
	"tablescope/domain/table"
	"tablescope/internal/dialect"
	"tablescope/internal/errors"
	"tablescope/internal/profiling"
	"tablescope/internal/tabular"
)

// Config holds the pipeline guard rails
type Config struct {
	MaxFileSize int64 // Maximum accepted upload size in bytes
	PreviewRows int   // Upper bound on preview rows in the result
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MaxFileSize: 10 * 1024 * 1024, // 10MB
		PreviewRows: 20,
	}
}

// Analyzer turns one uploaded delimited file into an AnalysisResult
type Analyzer struct {
	config *Config
}

// New creates an analyzer with the given configuration
func New(config *Config) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Analyzer{config: config}
}

// Analyze reads the upload stream and produces the complete analysis.
// The filename must carry a .csv extension; the caller normally enforces
// this already, the check here is defensive. Oversized input is rejected,
// never silently truncated. Any stage failure aborts the pipeline.
func (a *Analyzer) Analyze(ctx context.Context, filename string, r io.Reader) (*table.AnalysisResult, error) {
	id := core.NewAnalysisID()
	started := time.Now()
	log.Printf("[Analyzer] %s: analyzing %q", id, filename)

	if err := validateFilename(filename); err != nil {
		log.Printf("[Analyzer] %s: rejected: %v", id, err)
		return nil, err
	}

	raw, err := a.readAll(r)
	if err != nil {
		log.Printf("[Analyzer] %s: rejected: %v", id, err)
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.EmptyFile("uploaded file is empty")
	}

	if err := checkDeadline(ctx); err != nil {
		return nil, err
	}

	text, d, err := dialect.Sniff(raw)
	if err != nil {
		log.Printf("[Analyzer] %s: dialect sniffing failed: %v", id, err)
		return nil, err
	}
	log.Printf("[Analyzer] %s: delimiter %q, charset %s", id, d.Delimiter, d.Charset)

	if err := checkDeadline(ctx); err != nil {
		return nil, err
	}

	t, err := tabular.Parse(text, d.Delimiter)
	if err != nil {
		log.Printf("[Analyzer] %s: parsing failed: %v", id, err)
		return nil, err
	}

	if err := checkDeadline(ctx); err != nil {
		return nil, err
	}

	columns, numericColumns := profiling.InferColumns(t)
	columnStats := profiling.ComputeStats(t, numericColumns)

	result := &table.AnalysisResult{
		Filename:       filename,
		Rows:           t.RowCount(),
		Cols:           t.ColCount(),
		Columns:        columns,
		NumericColumns: numericColumns,
		Stats:          columnStats,
		Preview:        preview(t, a.config.PreviewRows),
	}

	log.Printf("[Analyzer] %s: done in %s (%d rows, %d cols, %d numeric)",
		id, time.Since(started), result.Rows, result.Cols, len(result.NumericColumns))
	return result, nil
}

// readAll drains the upload stream, rejecting input past the size limit
func (a *Analyzer) readAll(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, a.config.MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload stream")
	}
	if int64(len(raw)) > a.config.MaxFileSize {
		return nil, errors.FileTooLarge(int64(len(raw)), a.config.MaxFileSize)
	}
	return raw, nil
}

// preview takes the first min(limit, rows) rows verbatim, in file order
func preview(t *table.Table, limit int) []table.Row {
	n := t.RowCount()
	if n > limit {
		n = limit
	}
	return t.Rows[:n]
}

func validateFilename(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return errors.InvalidInput("no filename provided")
	}
	if strings.ToLower(filepath.Ext(filename)) != ".csv" {
		return errors.UnsupportedFileType(filename)
	}
	return nil
}

func checkDeadline(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "analysis aborted: parsing time budget exceeded")
	}
	return nil
}
