package tabular

import (
	"math"
	"strconv"
	"strings"

	"tablescope/domain/table"
)

// ParseCell converts one raw field into a typed cell. The decision is made
// exactly once here; nothing downstream re-infers a cell's type.
func ParseCell(raw string) table.Cell {
	value := strings.TrimSpace(raw)
	if value == "" {
		return table.NewMissingCell()
	}
	if n, ok := ParseNumber(value); ok {
		return table.NewNumberCell(n)
	}
	return table.NewTextCell(value)
}

// ParseNumber parses a trimmed string as a float64, accepting both '.' and
// ',' as the decimal separator. The comma form is normalized only when the
// value holds exactly one comma and no dot, so thousands-style values like
// "1,234.5" stay ambiguous and fail. NaN and infinity tokens are rejected
// since they carry no usable statistic.
func ParseNumber(value string) (float64, bool) {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		if strings.Count(value, ",") == 1 && !strings.Contains(value, ".") {
			n, err = strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
		}
		if err != nil {
			return 0, false
		}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
