// Package analysis combines descriptive statistics with IQR outlier results
// into a Markdown report.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/outlier-cli/internal/dataset"
	"github.com/KaramelBytes/outlier-cli/internal/outlier"
	"github.com/montanaflynn/stats"
)

// Report is a markdown-friendly outlier analysis of a tabular dataset.
type Report struct {
	Name        string
	Rows        int
	Truncated   bool
	FitID       string
	LimitFactor float64
	Decimals    int // proportion rounding
	Cols        []ColumnStats
	Skipped     []string // text or empty columns
	Warnings    []string
}

// ColumnStats holds descriptive and outlier statistics for one numeric column.
type ColumnStats struct {
	Name    string
	Unit    string
	NonNull int
	Missing int
	Min     float64
	Max     float64
	Mean    float64
	Median  float64
	Std     float64 // sample standard deviation
	MAD     float64 // median absolute deviation
	outlier.BoundsRecord
	Outliers   int
	Proportion float64
}

// Degenerate reports whether the column has no spread between its quartiles.
// Every value other than Q1 is then an outlier.
func (c ColumnStats) Degenerate() bool { return c.IQR == 0 }

// Build fits e on t and collects per-column statistics for every numeric
// column. A table without numeric columns yields a report with no columns.
func Build(t *dataset.Table, e *outlier.Engine) (*Report, error) {
	if t == nil || e == nil {
		return nil, errors.New("analysis: table and engine are required")
	}
	if err := e.Fit(t); err != nil {
		return nil, err
	}
	r := &Report{
		Name:        t.Name(),
		Rows:        t.Len(),
		Truncated:   t.Truncated(),
		FitID:       e.FitID(),
		LimitFactor: e.LimitFactor(),
		Decimals:    e.Decimals(),
	}
	for _, c := range t.Columns() {
		if t.Kind(c) != dataset.KindNumeric {
			r.Skipped = append(r.Skipped, c)
		}
	}
	sum, err := e.Summarize()
	if errors.Is(err, outlier.ErrNoOutliers) {
		r.Warnings = append(r.Warnings, "no numeric columns; nothing to evaluate")
		return r, nil
	}
	if err != nil {
		return nil, err
	}
	for _, cs := range sum.Columns {
		vals, err := t.Floats(cs.Column)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", cs.Column, err)
		}
		st := describe(vals)
		st.Name = cs.Column
		st.Unit = t.Unit(cs.Column)
		st.BoundsRecord = cs.Bounds
		st.Outliers = cs.Count
		st.Proportion = cs.Proportion
		r.Cols = append(r.Cols, st)
		if st.Degenerate() {
			r.Warnings = append(r.Warnings, fmt.Sprintf("column %q has IQR 0; every value other than %g is flagged", cs.Column, cs.Bounds.Q1))
		}
	}
	return r, nil
}

func describe(vals []float64) ColumnStats {
	data := make(stats.Float64Data, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	st := ColumnStats{NonNull: len(data), Missing: len(vals) - len(data)}
	// Errors only signal empty input, which Build never passes for a numeric column.
	st.Min, _ = data.Min()
	st.Max, _ = data.Max()
	st.Mean, _ = data.Mean()
	st.Median, _ = data.Median()
	st.MAD, _ = data.MedianAbsoluteDeviation()
	if len(data) > 1 {
		st.Std, _ = data.StandardDeviationSample()
	} else {
		st.Std = math.NaN()
	}
	return st
}

// Markdown renders the report in bracketed sections.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Truncated {
		b.WriteString(fmt.Sprintf("Rows: %d (truncated)\n", r.Rows))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	b.WriteString(fmt.Sprintf("Numeric columns: %d\n", len(r.Cols)))
	b.WriteString(fmt.Sprintf("Limit factor: %g\n", r.LimitFactor))
	if r.FitID != "" {
		b.WriteString(fmt.Sprintf("Fit: %s\n", r.FitID))
	}
	for _, c := range r.Cols {
		b.WriteString(fmt.Sprintf("- %s: non-null %d, missing %d; min %.4g, max %.4g, mean %.4g, median %.4g, std %.4g, mad %.4g\n",
			displayName(c), c.NonNull, c.Missing, c.Min, c.Max, c.Mean, c.Median, c.Std, c.MAD))
	}
	b.WriteString("\n")

	if len(r.Cols) > 0 {
		b.WriteString("[OUTLIER BOUNDS]\n")
		b.WriteString("| column | q1 | q3 | iqr | lower | upper |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, c := range r.Cols {
			b.WriteString(fmt.Sprintf("| %s | %.4g | %.4g | %.4g | %.4g | %.4g |\n",
				safeCell(displayName(c)), c.Q1, c.Q3, c.IQR, c.Lower, c.Upper))
		}
		b.WriteString("\n[OUTLIER COUNTS]\n")
		b.WriteString("| column | outliers | percent |\n")
		b.WriteString("|---|---|---|\n")
		for _, c := range r.Cols {
			b.WriteString(fmt.Sprintf("| %s | %d | %.*f%% |\n", safeCell(displayName(c)), c.Outliers, r.Decimals, c.Proportion))
		}
		b.WriteString("\n")
	}

	notes := append([]string(nil), r.Warnings...)
	if r.Truncated {
		notes = append(notes, "input truncated by max_rows; statistics cover the processed rows only")
	}
	if len(r.Skipped) > 0 {
		skipped := append([]string(nil), r.Skipped...)
		sort.Strings(skipped)
		notes = append(notes, "non-numeric columns skipped: "+strings.Join(skipped, ", "))
	}
	if len(notes) > 0 {
		b.WriteString("[NOTES]\n")
		for _, n := range notes {
			b.WriteString("- " + n + "\n")
		}
	}
	return b.String()
}

func displayName(c ColumnStats) string {
	if c.Unit != "" {
		return fmt.Sprintf("%s [%s]", c.Name, c.Unit)
	}
	return c.Name
}

func safeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
