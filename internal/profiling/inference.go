// Package profiling classifies parsed columns and computes their aggregate
// statistics. Both passes are pure functions over a Table: same input, same
// output, no shared state between invocations.
package profiling

import (
	"tablescope/domain/table"
)

// InferColumns classifies every column as numeric or text. A column is
// numeric only when all of its non-missing cells parsed as numbers and at
// least one such cell exists; columns with no values at all stay text so no
// vacuous statistics are reported. Output order matches the header order.
func InferColumns(t *table.Table) ([]table.ColumnInfo, []string) {
	infos := make([]table.ColumnInfo, 0, len(t.Columns))
	numeric := make([]string, 0, len(t.Columns))

	for _, name := range t.Columns {
		dtype := inferDtype(t.ColumnCells(name))
		infos = append(infos, table.ColumnInfo{Name: name, Dtype: dtype})
		if dtype == table.DtypeNumeric {
			numeric = append(numeric, name)
		}
	}

	return infos, numeric
}

func inferDtype(cells []table.Cell) table.Dtype {
	nonMissing := 0
	for _, cell := range cells {
		if cell.IsMissing() {
			continue
		}
		nonMissing++
		if !cell.IsNumber() {
			return table.DtypeText
		}
	}
	if nonMissing == 0 {
		return table.DtypeText
	}
	return table.DtypeNumeric
}
