package tabular

import (
	"testing"

	"tablescope/domain/table"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"1", 1, true},
		{"-2.5", -2.5, true},
		{"1e3", 1000, true},
		{"  3  ", 0, false}, // callers trim before parsing
		{"1,5", 1.5, true},
		{"-0,25", -0.25, true},
		{"1,234", 1.234, true},
		{"1,234.5", 0, false}, // both separators present, ambiguous
		{"1.234,5", 0, false},
		{"1,2,3", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Inf", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseNumber(%q): expected ok=%v, got %v", tt.input, tt.ok, ok)
			continue
		}
		if ok && got != tt.expected {
			t.Errorf("ParseNumber(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		input    string
		expected table.CellType
	}{
		{"", table.CellMissing},
		{"   ", table.CellMissing},
		{"3.5", table.CellNumber},
		{"3,5", table.CellNumber},
		{" 42 ", table.CellNumber},
		{"hello", table.CellText},
		{"2020-01-01", table.CellText},
	}

	for _, tt := range tests {
		cell := ParseCell(tt.input)
		if cell.Type != tt.expected {
			t.Errorf("ParseCell(%q): expected type %s, got %s", tt.input, tt.expected, cell.Type)
		}
	}
}
