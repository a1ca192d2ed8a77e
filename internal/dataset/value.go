package dataset

import (
	"math"
	"strconv"
)

// Kind is the inferred type of a cell or column.
type Kind int

const (
	KindMissing Kind = iota
	KindNumeric
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "missing"
	}
}

// Value is a single typed cell.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Number returns a numeric cell. NaN is stored as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumeric, num: f}
}

// Text returns a non-numeric cell.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Missing returns an empty cell.
func Missing() Value { return Value{} }

func (v Value) Kind() Kind { return v.kind }

// Float returns the numeric value, or NaN with ok=false for non-numeric cells.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumeric {
		return math.NaN(), false
	}
	return v.num, true
}

// String formats the cell the way it is written back to CSV.
func (v Value) String() string {
	switch v.kind {
	case KindNumeric:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}
