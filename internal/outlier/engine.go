// Package outlier detects per-column outliers in numeric tables with the
// additive IQR rule: a value is an outlier when it lies outside
// [Q1 - k*IQR, Q3 + k*IQR].
//
// An Engine is fitted once against a Dataset and then queried. Fit snapshots
// the numeric column values, so bounds and flags always agree with each
// other. The Dataset is kept by reference only to return rows; if its row
// count changes after Fit, row-returning queries fail with *StaleError until
// Fit is called again. An Engine is not safe for concurrent use.
package outlier

import (
	"math"

	"github.com/KaramelBytes/outlier-cli/internal/dataset"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Dataset is the table abstraction the engine is fitted against.
// *dataset.Table implements it.
type Dataset interface {
	Len() int
	NumericColumns() []string
	Floats(column string) ([]float64, error)
	Select(pred func(dataset.Row) bool) []dataset.Row
}

// BoundsRecord holds the fitted thresholds of one column.
type BoundsRecord struct {
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
	IQR   float64 `json:"iqr"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Engine computes and queries IQR bounds.
type Engine struct {
	opt Options
	log logrus.FieldLogger

	fitted  bool
	fitID   string
	data    Dataset
	rows    int
	columns []string
	bounds  map[string]BoundsRecord
	values  map[string][]float64
}

// New returns an unfitted Engine.
func New(opt Options) (*Engine, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	log := opt.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{opt: opt, log: log}, nil
}

// LimitFactor returns k.
func (e *Engine) LimitFactor() float64 { return e.opt.LimitFactor }

// Decimals returns the rounding Summarize applies to proportions.
func (e *Engine) Decimals() int { return e.opt.Decimals }

// Fit computes bounds for every numeric column of ds, replacing any previous
// fit entirely. On error the previous fit is left untouched.
func (e *Engine) Fit(ds Dataset) error {
	if ds == nil {
		return &InvalidArgumentError{Arg: "dataset", Reason: "must not be nil"}
	}
	rows := ds.Len()
	var cols []string
	if rows > 0 {
		cols = ds.NumericColumns()
	}
	bounds := make(map[string]BoundsRecord, len(cols))
	values := make(map[string][]float64, len(cols))
	k := e.opt.LimitFactor
	for _, c := range cols {
		vals, err := ds.Floats(c)
		if err != nil {
			return err
		}
		q1, q3 := quartiles(vals)
		iqr := q3 - q1
		bounds[c] = BoundsRecord{
			Q1:    q1,
			Q3:    q3,
			IQR:   iqr,
			Lower: q1 - k*iqr,
			Upper: q3 + k*iqr,
		}
		values[c] = vals
	}

	e.fitted = true
	e.fitID = uuid.NewString()
	e.data = ds
	e.rows = rows
	e.columns = append([]string(nil), cols...)
	e.bounds = bounds
	e.values = values
	e.log.WithFields(logrus.Fields{
		"fit_id":       e.fitID,
		"rows":         rows,
		"columns":      len(cols),
		"limit_factor": k,
	}).Debug("outlier bounds fitted")
	return nil
}

// FitID identifies the current fit. It is empty before the first Fit.
func (e *Engine) FitID() string { return e.fitID }

// Rows returns the row count seen by the last Fit.
func (e *Engine) Rows() int { return e.rows }

// Columns returns the numeric columns of the last Fit, in dataset order.
func (e *Engine) Columns() []string { return append([]string(nil), e.columns...) }

// Record returns the unrounded bounds of a column.
func (e *Engine) Record(column string) (BoundsRecord, error) {
	if !e.fitted {
		return BoundsRecord{}, &NotFittedError{Op: "record"}
	}
	b, ok := e.bounds[column]
	if !ok {
		return BoundsRecord{}, &UnknownColumnError{Column: column}
	}
	return b, nil
}

// Bounds returns the lower and upper limits of a column rounded to decimals.
func (e *Engine) Bounds(column string, decimals int) (lower, upper float64, err error) {
	if !e.fitted {
		return 0, 0, &NotFittedError{Op: "bounds"}
	}
	if err := checkDecimals(decimals); err != nil {
		return 0, 0, err
	}
	b, ok := e.bounds[column]
	if !ok {
		return 0, 0, &UnknownColumnError{Column: column}
	}
	return round(b.Lower, decimals), round(b.Upper, decimals), nil
}

// IQR returns the interquartile range of each requested column, or of every
// numeric column when none are given.
func (e *Engine) IQR(columns ...string) (map[string]float64, error) {
	if !e.fitted {
		return nil, &NotFittedError{Op: "iqr"}
	}
	cols, err := e.resolve(columns)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(cols))
	for _, c := range cols {
		out[c] = e.bounds[c].IQR
	}
	return out, nil
}

// Filter returns the rows whose value in column lies outside the bounds, in
// original order.
func (e *Engine) Filter(column string) ([]dataset.Row, error) {
	if !e.fitted {
		return nil, &NotFittedError{Op: "filter"}
	}
	if _, ok := e.bounds[column]; !ok {
		return nil, &UnknownColumnError{Column: column}
	}
	if err := e.checkFresh(); err != nil {
		return nil, err
	}
	return e.data.Select(func(r dataset.Row) bool {
		return e.flagged(column, r.Index)
	}), nil
}

// flagged reports whether row i is an outlier in column. It is the only
// place the bounds comparison is made. Missing values are never flagged.
func (e *Engine) flagged(column string, i int) bool {
	vals := e.values[column]
	if i < 0 || i >= len(vals) {
		return false
	}
	v := vals[i]
	if math.IsNaN(v) {
		return false
	}
	b := e.bounds[column]
	return v < b.Lower || v > b.Upper
}

func (e *Engine) checkFresh() error {
	if n := e.data.Len(); n != e.rows {
		return &StaleError{Fitted: e.rows, Current: n}
	}
	return nil
}

// resolve validates requested columns, collapsing duplicates. No columns
// means every fitted numeric column.
func (e *Engine) resolve(columns []string) ([]string, error) {
	if len(columns) == 0 {
		return e.Columns(), nil
	}
	seen := make(map[string]struct{}, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, ok := e.bounds[c]; !ok {
			return nil, &UnknownColumnError{Column: c}
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}
