// Package tabular turns decoded text plus a delimiter into a typed Table.
// The parser owns the documented lossy policies: short rows are padded with
// missing cells, long rows are truncated to the header width.
package tabular

import (
	"encoding/csv"
	"fmt"
	"strings"

	"tablescope/domain/table"
	"tablescope/internal/errors"
)

// Parse splits decoded text into a header and data rows. The first non-empty
// line names the columns; every returned row carries exactly the header's
// column set, in file order.
func Parse(text string, delimiter rune) (*table.Table, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(fmt.Sprintf("failed to parse delimited text: %v", err)), "table parsing failed")
	}

	if len(records) == 0 {
		return nil, errors.EmptyFile("file contains no rows")
	}

	columns, err := normalizeHeader(records[0])
	if err != nil {
		return nil, err
	}

	dataRecords := records[1:]
	if len(dataRecords) == 0 {
		return nil, errors.EmptyFile("file contains no data rows after the header")
	}

	rows := make([]table.Row, len(dataRecords))
	for i, record := range dataRecords {
		row := make(table.Row, len(columns))
		for j, name := range columns {
			if j < len(record) {
				row[name] = ParseCell(record[j])
			} else {
				// Ragged short row: pad missing trailing fields.
				row[name] = table.NewMissingCell()
			}
		}
		// Fields beyond the header width are dropped here, which is the
		// documented truncation policy for ragged long rows.
		rows[i] = row
	}

	return &table.Table{Columns: columns, Rows: rows}, nil
}

// normalizeHeader trims header names, names blank columns deterministically
// and disambiguates duplicates by suffixing. An entirely blank header is
// unusable and fails with a MALFORMED_HEADER error.
func normalizeHeader(header []string) ([]string, error) {
	allBlank := true
	for _, name := range header {
		if strings.TrimSpace(name) != "" {
			allBlank = false
			break
		}
	}
	if len(header) == 0 || allBlank {
		return nil, errors.MalformedHeader("header line is empty")
	}

	used := make(map[string]bool, len(header))
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if used[name] {
			base := name
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", base, n)
				if !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true
		columns[i] = name
	}
	return columns, nil
}
