package ui

import (
	"fmt"
	"math"
	"strings"

	"goregress/domain/regression"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// BuildMarkdown renders a stored regression result as a markdown summary:
// one coefficient table per candidate model plus its fit statistics.
func BuildMarkdown(result *regression.FinalResult) string {
	var b strings.Builder
	b.WriteString("# Regression Report\n\n")
	fmt.Fprintf(&b, "%d candidate model(s).\n\n", result.NumColumns)

	for i, col := range result.RegressionsByColumn {
		fmt.Fprintf(&b, "## Model %d: %s\n\n", i+1, strings.Join(col.RegressedFields, " + "))

		if col.Regression.Constants == nil && len(col.Regression.PropertiesByField) == 0 {
			b.WriteString("_No estimate produced for this candidate._\n\n")
			continue
		}

		b.WriteString("| Term | Coefficient | Std. Error | t | p |\n")
		b.WriteString("|---|---|---|---|---|\n")
		if c := col.Regression.Constants; c != nil {
			fmt.Fprintf(&b, "| Intercept | %s | %s | %s | %s |\n",
				formatStat(c.Coefficient), formatStat(c.StandardError),
				formatStat(c.TValue), formatStat(c.PValue))
		}
		for _, prop := range col.Regression.PropertiesByField {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				prop.Field, formatStat(prop.Coefficient), formatStat(prop.StandardError),
				formatStat(prop.TValue), formatStat(prop.PValue))
		}
		b.WriteString("\n")

		if len(col.ColumnProperties) > 0 {
			b.WriteString("Fit: ")
			parts := make([]string, 0, len(col.ColumnProperties))
			for _, key := range []string{"r_squared", "r_squared_adj", "f_test", "aic", "bic", "dof"} {
				if v, ok := col.ColumnProperties[key]; ok {
					parts = append(parts, fmt.Sprintf("%s = %s", key, formatStat(v)))
				}
			}
			b.WriteString(strings.Join(parts, ", "))
			b.WriteString("\n\n")
		}

		if st := col.Regression.Stats; st != nil {
			verdict := "non-normal"
			if st.Normal {
				verdict = "normal"
			}
			fmt.Fprintf(&b, "Residuals: mean %s, sd %s, %s (p = %s).\n\n",
				formatStat(st.ResidualMean), formatStat(st.ResidualStdDev),
				verdict, formatStat(st.NormalityP))
		}
	}

	return b.String()
}

// RenderHTML converts report markdown into an HTML fragment.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func formatStat(s regression.Stat) string {
	v := float64(s)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", v)
}
