package render

import (
	"fmt"
	"io"
	"math"

	"github.com/KaramelBytes/outlier-cli/internal/outlier"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	barColor       = drawing.ColorFromHex("4c72b0")
	highlightColor = drawing.ColorRed
)

// PNG renders a bar chart image with go-chart.
type PNG struct {
	W io.Writer
}

func (p PNG) Render(req outlier.RenderRequest) error {
	if len(req.Bars) == 0 {
		return fmt.Errorf("png: no bars to draw")
	}
	ymax := req.YMax
	if req.Threshold != nil && *req.Threshold > ymax {
		ymax = *req.Threshold * 1.1
	}
	if ymax <= 0 {
		ymax = 1
	}
	bars := make([]chart.Value, len(req.Bars))
	for i, b := range req.Bars {
		col := barColor
		if b.Highlight {
			col = highlightColor
		}
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%s (%s)", b.Column, b.Label),
			Style: chart.Style{FillColor: col, StrokeColor: col},
		}
	}
	bc := chart.BarChart{
		Title:      req.Title,
		Width:      req.Width,
		Height:     req.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		BarWidth:   barWidth(req.Width, len(bars)),
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: ymax},
		},
		Bars: bars,
	}
	if req.Threshold != nil {
		bc.Elements = []chart.Renderable{thresholdLine(*req.Threshold, ymax)}
	}
	if err := bc.Render(chart.PNG, p.W); err != nil {
		return fmt.Errorf("png: %w", err)
	}
	return nil
}

// barWidth splits the drawable width between bars and the gaps around them.
func barWidth(width, n int) int {
	w := (width - 120) / (2 * n)
	if w < 8 {
		return 8
	}
	if w > 120 {
		return 120
	}
	return w
}

// thresholdLine draws a dashed horizontal reference line at value on a y
// axis spanning [0, ymax].
func thresholdLine(value, ymax float64) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		y := box.Bottom - int(math.Ceil(value/ymax*float64(box.Height())))
		style := chart.Style{
			StrokeColor:     highlightColor,
			StrokeWidth:     2,
			StrokeDashArray: []float64{6, 4},
			FontColor:       highlightColor,
			FontSize:        10,
			Font:            defaults.Font,
		}
		style.WriteToRenderer(r)
		r.MoveTo(box.Left, y)
		r.LineTo(box.Right, y)
		r.Stroke()
		r.Text(fmt.Sprintf("threshold %.2f", value), box.Left+4, y-4)
	}
}
