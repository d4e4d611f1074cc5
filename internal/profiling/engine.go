package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"tablescope/domain/table"
)

// ComputeStats calculates count/min/max/mean/sum for each numeric column.
// Missing cells are skipped entirely: they count toward none of the five
// figures. A column with zero usable values gets count 0 and nil aggregates.
func ComputeStats(t *table.Table, numericColumns []string) map[string]table.ColumnStats {
	result := make(map[string]table.ColumnStats, len(numericColumns))
	for _, name := range numericColumns {
		result[name] = computeColumn(t.ColumnCells(name))
	}
	return result
}

func computeColumn(cells []table.Cell) table.ColumnStats {
	values := make([]float64, 0, len(cells))
	for _, cell := range cells {
		if cell.IsNumber() {
			values = append(values, cell.AsFloat64())
		}
	}

	if len(values) == 0 {
		return table.ColumnStats{Count: 0}
	}

	sum := floats.Sum(values)
	mean := sum / float64(len(values))
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	return table.ColumnStats{
		Count: len(values),
		Min:   finitePtr(min),
		Max:   finitePtr(max),
		Mean:  finitePtr(mean),
		Sum:   finitePtr(sum),
	}
}

// finitePtr reports an aggregate as nil when double precision overflowed.
// Capping to null is the documented failure mode; the count stays intact.
func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
