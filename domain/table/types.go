package table

import (
	"encoding/json"
	"fmt"
	"math"
)

// CellType defines the storage type for a parsed cell
type CellType string

const (
	CellMissing CellType = "missing"
	CellNumber  CellType = "number"
	CellText    CellType = "text"
)

// Cell represents a typed cell value decided once at parse time.
// A cell is exactly one of: missing, a float64 number, or a text string.
type Cell struct {
	Type      CellType
	NumberVal *float64
	TextVal   *string
}

// NewNumberCell creates a numeric cell
func NewNumberCell(n float64) Cell {
	return Cell{Type: CellNumber, NumberVal: &n}
}

// NewTextCell creates a text cell. Empty strings are stored as missing.
func NewTextCell(s string) Cell {
	if s == "" {
		return NewMissingCell()
	}
	return Cell{Type: CellText, TextVal: &s}
}

// NewMissingCell creates a missing cell
func NewMissingCell() Cell {
	return Cell{Type: CellMissing}
}

// IsMissing returns true if the cell holds no value
func (c Cell) IsMissing() bool {
	return c.Type == CellMissing
}

// IsNumber returns true if the cell holds a valid number
func (c Cell) IsNumber() bool {
	return c.Type == CellNumber && c.NumberVal != nil
}

// AsFloat64 returns the numeric value, or 0 if the cell is not numeric
func (c Cell) AsFloat64() float64 {
	if c.NumberVal != nil {
		return *c.NumberVal
	}
	return 0.0
}

// AsString returns the text value, or empty string if the cell is not text
func (c Cell) AsString() string {
	if c.TextVal != nil {
		return *c.TextVal
	}
	return ""
}

// String returns a display representation of the cell
func (c Cell) String() string {
	switch c.Type {
	case CellNumber:
		if c.NumberVal != nil {
			return fmt.Sprintf("%g", *c.NumberVal)
		}
	case CellText:
		if c.TextVal != nil {
			return *c.TextVal
		}
	case CellMissing:
		return "<missing>"
	}
	return "<invalid>"
}

// MarshalJSON renders the cell as its bare value: number, string, or null.
// Non-finite numbers serialize as null since JSON cannot carry them.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch {
	case c.IsNumber():
		v := *c.NumberVal
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v)
	case c.Type == CellText && c.TextVal != nil:
		return json.Marshal(*c.TextVal)
	default:
		return []byte("null"), nil
	}
}

// Row maps column names to cells. Every row in a Table carries exactly the
// header's column set.
type Row map[string]Cell

// Table is an ordered set of named columns plus the parsed rows, in file order.
type Table struct {
	Columns []string
	Rows    []Row
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int { return len(t.Rows) }

// ColCount returns the number of header columns
func (t *Table) ColCount() int { return len(t.Columns) }

// ColumnCells returns the cells of one column in row order
func (t *Table) ColumnCells(name string) []Cell {
	cells := make([]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells = append(cells, row[name])
	}
	return cells
}

// Dtype is the inferred column type
type Dtype string

const (
	DtypeNumeric Dtype = "numeric"
	DtypeText    Dtype = "text"
)

// ColumnInfo describes one column of a parsed table
type ColumnInfo struct {
	Name  string `json:"name"`
	Dtype Dtype  `json:"dtype"`
}

// ColumnStats holds the aggregate statistics of one numeric column.
// All four aggregates are nil when Count is zero.
type ColumnStats struct {
	Count int      `json:"count"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Mean  *float64 `json:"mean"`
	Sum   *float64 `json:"sum"`
}

// AnalysisResult is the single output shape handed to the presentation layer.
// It is assembled once per request and never mutated afterward.
type AnalysisResult struct {
	Filename       string                 `json:"filename"`
	Rows           int                    `json:"rows"`
	Cols           int                    `json:"cols"`
	Columns        []ColumnInfo           `json:"columns"`
	NumericColumns []string               `json:"numericColumns"`
	Stats          map[string]ColumnStats `json:"stats"`
	Preview        []Row                  `json:"preview"`
}
