package outlier

import (
	"fmt"
	"strconv"
)

// Default chart size in pixels (10x8 inches at 100 dpi).
const (
	DefaultWidth  = 1000
	DefaultHeight = 800
)

// Renderer draws outlier counts. Implementations decide how bars, labels and
// the threshold line are presented; the engine only supplies the values.
type Renderer interface {
	Render(req RenderRequest) error
}

// Bar is one column in a RenderRequest.
type Bar struct {
	Column string
	Count  int
	// Label is the text drawn above the bar: the literal count.
	Label string
	// Highlight is set when highlighting is on and Count exceeds the threshold.
	Highlight bool
}

// RenderRequest is everything a Renderer receives from Plot.
type RenderRequest struct {
	Title string
	Bars  []Bar
	// YMax is 1.1 times the largest count, leaving room for labels.
	YMax float64
	// Threshold is rows*ThresholdPercent/100, or nil when no line is requested.
	Threshold     *float64
	Width, Height int
}

// PlotOptions tunes a single Plot call. A non-nil ThresholdPercent overrides
// the engine's configured one. Zero sizes fall back to the defaults.
type PlotOptions struct {
	Width            int
	Height           int
	ThresholdPercent *float64
}

// Plot counts outliers like Count and hands the result to r. Unknown and
// non-numeric columns are skipped like in Count. The renderer is not called
// when there is no column to plot (ErrNoOutliers).
func (e *Engine) Plot(r Renderer, opt PlotOptions, columns ...string) error {
	if !e.fitted {
		return &NotFittedError{Op: "plot"}
	}
	if r == nil {
		return &InvalidArgumentError{Arg: "renderer", Reason: "must not be nil"}
	}
	if opt.Width < 0 || opt.Height < 0 {
		return &InvalidArgumentError{Arg: "figure size", Reason: "must not be negative"}
	}
	pct := e.opt.ThresholdPercent
	if opt.ThresholdPercent != nil {
		pct = opt.ThresholdPercent
	}
	if pct != nil {
		if err := checkPercent(*pct); err != nil {
			return err
		}
	}
	cols, err := e.aggregateColumns("plot", columns)
	if err != nil {
		return err
	}

	req := RenderRequest{Title: "Outlier Counts", Width: opt.Width, Height: opt.Height}
	if req.Width == 0 {
		req.Width = DefaultWidth
	}
	if req.Height == 0 {
		req.Height = DefaultHeight
	}
	if pct != nil {
		thr := float64(e.rows) * *pct / 100
		req.Threshold = &thr
	}
	maxCount := 0
	for _, c := range cols {
		n := e.count(c)
		if n > maxCount {
			maxCount = n
		}
		b := Bar{Column: c, Count: n, Label: strconv.Itoa(n)}
		if e.opt.HighlightOutliers && req.Threshold != nil && float64(n) > *req.Threshold {
			b.Highlight = true
		}
		req.Bars = append(req.Bars, b)
	}
	req.YMax = float64(maxCount) * 1.1
	if err := r.Render(req); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
