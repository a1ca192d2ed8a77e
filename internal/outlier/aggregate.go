package outlier

import "github.com/sirupsen/logrus"

// ColumnSummary is the combined outlier result for one column.
type ColumnSummary struct {
	Column     string       `json:"column"`
	Count      int          `json:"count"`
	Proportion float64      `json:"proportion"`
	Bounds     BoundsRecord `json:"bounds"`
}

// Summary is the result of Summarize. FitID names the fit that produced it.
type Summary struct {
	FitID       string          `json:"fit_id"`
	Rows        int             `json:"rows"`
	LimitFactor float64         `json:"limit_factor"`
	Columns     []ColumnSummary `json:"columns"`
}

// Count returns the number of outlier rows per requested column, or per
// numeric column when none are given. Columns with no outliers are included
// with a count of 0. Unknown and non-numeric names are skipped; when no
// numeric column is left it returns ErrNoOutliers.
func (e *Engine) Count(columns ...string) (map[string]int, error) {
	cols, err := e.aggregateColumns("count", columns)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(cols))
	for _, c := range cols {
		out[c] = e.count(c)
	}
	return out, nil
}

// Proportion returns, per requested column, the percentage of rows flagged as
// outliers rounded to decimals. Counts are recomputed on every call.
func (e *Engine) Proportion(decimals int, columns ...string) (map[string]float64, error) {
	if err := checkDecimals(decimals); err != nil {
		return nil, err
	}
	cols, err := e.aggregateColumns("proportion", columns)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(cols))
	for _, c := range cols {
		out[c] = e.proportion(e.count(c), decimals)
	}
	return out, nil
}

// Summarize returns count, proportion and bounds for each requested column
// in one pass, in request order (dataset order when none are given).
func (e *Engine) Summarize(columns ...string) (*Summary, error) {
	cols, err := e.aggregateColumns("summarize", columns)
	if err != nil {
		return nil, err
	}
	s := &Summary{FitID: e.fitID, Rows: e.rows, LimitFactor: e.opt.LimitFactor}
	for _, c := range cols {
		n := e.count(c)
		s.Columns = append(s.Columns, ColumnSummary{
			Column:     c,
			Count:      n,
			Proportion: e.proportion(n, e.opt.Decimals),
			Bounds:     e.bounds[c],
		})
	}
	return s, nil
}

// aggregateColumns keeps the requested columns that were fitted as numeric,
// dropping unknown and non-numeric names, and fails with ErrNoOutliers when
// none remain.
func (e *Engine) aggregateColumns(op string, columns []string) ([]string, error) {
	if !e.fitted {
		return nil, &NotFittedError{Op: op}
	}
	cols := e.keepNumeric(op, columns)
	if len(cols) == 0 {
		return nil, ErrNoOutliers
	}
	if err := e.checkFresh(); err != nil {
		return nil, err
	}
	return cols, nil
}

func (e *Engine) keepNumeric(op string, columns []string) []string {
	if len(columns) == 0 {
		return e.Columns()
	}
	seen := make(map[string]struct{}, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, ok := e.bounds[c]; !ok {
			e.log.WithFields(logrus.Fields{"fit_id": e.fitID, "op": op, "column": c}).Debug("skipping unknown or non-numeric column")
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// count is len(Filter(column)) without materializing rows.
func (e *Engine) count(column string) int {
	n := 0
	for i := range e.values[column] {
		if e.flagged(column, i) {
			n++
		}
	}
	e.log.WithFields(logrus.Fields{"fit_id": e.fitID, "column": column, "count": n}).Trace("outliers counted")
	return n
}

func (e *Engine) proportion(count, decimals int) float64 {
	if e.rows == 0 {
		return 0
	}
	return round(float64(count)*100/float64(e.rows), decimals)
}
