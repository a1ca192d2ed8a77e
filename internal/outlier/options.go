package outlier

import (
	"math"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultLimitFactor is the Tukey fence multiplier.
	DefaultLimitFactor = 1.5
	// DefaultBoundsDecimals is the rounding applied by callers that show bounds.
	DefaultBoundsDecimals = 4
	// DefaultProportionDecimals is the rounding applied to proportions.
	DefaultProportionDecimals = 2

	maxDecimals = 15
)

// Options configures an Engine. The zero value is not valid; start from
// DefaultOptions.
type Options struct {
	// LimitFactor (k) widens the inlier band: [Q1 - k*IQR, Q3 + k*IQR].
	LimitFactor float64
	// Decimals rounds proportions in Summarize.
	Decimals int
	// HighlightOutliers marks bars above the threshold line in Plot.
	HighlightOutliers bool
	// ThresholdPercent draws a reference line at rows*ThresholdPercent/100.
	ThresholdPercent *float64
	Logger           logrus.FieldLogger
}

// DefaultOptions returns the standard 1.5*IQR configuration.
func DefaultOptions() Options {
	return Options{
		LimitFactor: DefaultLimitFactor,
		Decimals:    DefaultProportionDecimals,
	}
}

func (o Options) validate() error {
	if math.IsNaN(o.LimitFactor) || math.IsInf(o.LimitFactor, 0) || o.LimitFactor < 0 {
		return &InvalidArgumentError{Arg: "limit factor", Reason: "must be a finite number >= 0"}
	}
	if err := checkDecimals(o.Decimals); err != nil {
		return err
	}
	if o.ThresholdPercent != nil {
		return checkPercent(*o.ThresholdPercent)
	}
	return nil
}

func checkDecimals(d int) error {
	if d < 0 || d > maxDecimals {
		return &InvalidArgumentError{Arg: "decimals", Reason: "must be between 0 and 15"}
	}
	return nil
}

func checkPercent(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return &InvalidArgumentError{Arg: "threshold percent", Reason: "must be between 0 and 100"}
	}
	return nil
}

// Float returns a pointer to f, for optional settings such as ThresholdPercent.
func Float(f float64) *float64 { return &f }
