package outlier

import (
	"errors"
	"fmt"
)

// ErrNoOutliers reports that there was no numeric column to evaluate. Like
// io.EOF it marks an empty result, not a failure.
var ErrNoOutliers = errors.New("no outlier found for given columns")

// NotFittedError is returned by any query made before a successful Fit.
type NotFittedError struct {
	Op string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: engine not fitted; call Fit first", e.Op)
}

// UnknownColumnError indicates a column that is absent from the fitted
// dataset or is not numeric.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column name %s does not exist or is not numeric", e.Column)
}

// InvalidArgumentError indicates a malformed argument.
type InvalidArgumentError struct {
	Arg    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Arg, e.Reason)
}

// StaleError indicates the dataset changed size after Fit. Re-fit to refresh
// the bounds.
type StaleError struct {
	Fitted  int
	Current int
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("dataset has %d rows but bounds were fitted on %d; re-fit required", e.Current, e.Fitted)
}
