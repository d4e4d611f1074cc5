// Package report renders an AnalysisResult as an exportable report.
// The canonical form is markdown; HTML is a straight rendering of it.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"tablescope/domain/table"
)

// Markdown builds the report for one analysis result
func Markdown(result *table.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis report: %s\n\n", result.Filename)
	fmt.Fprintf(&b, "%d rows × %d columns, %d numeric.\n\n", result.Rows, result.Cols, len(result.NumericColumns))

	b.WriteString("## Columns\n\n")
	b.WriteString("| Column | Type | Count | Min | Max | Mean | Sum |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, col := range result.Columns {
		if s, ok := result.Stats[col.Name]; ok {
			fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s | %s |\n",
				escapeCell(col.Name), col.Dtype, s.Count,
				formatStat(s.Min), formatStat(s.Max), formatStat(s.Mean), formatStat(s.Sum))
		} else {
			fmt.Fprintf(&b, "| %s | %s | | | | | |\n", escapeCell(col.Name), col.Dtype)
		}
	}
	b.WriteString("\n")

	if len(result.Preview) > 0 {
		fmt.Fprintf(&b, "## Preview (first %d rows)\n\n", len(result.Preview))
		b.WriteString("| " + joinHeader(result.Columns) + " |\n")
		b.WriteString("|" + strings.Repeat("---|", len(result.Columns)) + "\n")
		for _, row := range result.Preview {
			cells := make([]string, len(result.Columns))
			for i, col := range result.Columns {
				cells[i] = formatPreviewCell(row[col.Name])
			}
			b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the markdown report as a standalone HTML fragment
func HTML(result *table.AnalysisResult) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(result)), p, renderer)
}

func joinHeader(columns []table.ColumnInfo) string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = escapeCell(col.Name)
	}
	return strings.Join(names, " | ")
}

func formatStat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func formatPreviewCell(c table.Cell) string {
	if c.IsMissing() {
		return ""
	}
	return escapeCell(c.String())
}

// escapeCell keeps pipe characters in data from breaking the table layout
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
