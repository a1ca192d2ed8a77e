// Package render draws outlier counts handed over by outlier.Engine.Plot.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/KaramelBytes/outlier-cli/internal/outlier"
)

// Markdown renders a text bar chart suitable for terminals and reports.
type Markdown struct {
	W io.Writer
	// BarWidth is the number of cells a bar of height YMax occupies; 0 means 40.
	BarWidth int
}

func (m Markdown) Render(req outlier.RenderRequest) error {
	width := m.BarWidth
	if width <= 0 {
		width = 40
	}
	var b strings.Builder
	b.WriteString("[" + strings.ToUpper(req.Title) + "]\n")
	if req.Threshold != nil {
		b.WriteString(fmt.Sprintf("threshold: %.2f rows\n", *req.Threshold))
	}
	nameW := 0
	for _, bar := range req.Bars {
		if len(bar.Column) > nameW {
			nameW = len(bar.Column)
		}
	}
	for _, bar := range req.Bars {
		n := 0
		if req.YMax > 0 {
			n = int(math.Round(float64(bar.Count) / req.YMax * float64(width)))
		}
		b.WriteString(fmt.Sprintf("- %-*s | %s %s", nameW, bar.Column, strings.Repeat("█", n), bar.Label))
		if bar.Highlight {
			b.WriteString(" *")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(m.W, b.String())
	return err
}
