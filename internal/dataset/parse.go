package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Options controls how files are turned into a Table.
type Options struct {
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, strip common separators (',' '.' space)
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
}

// DefaultOptions returns loader defaults.
func DefaultOptions() Options {
	return Options{}
}

// ParseCell turns a raw cell into a Value: blank is missing, numbers (with
// locale separators and an optional percent sign) are numeric, the rest is text.
func ParseCell(raw string, opt Options) Value {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Missing()
	}
	if f, ok := parseNumeric(v, opt); ok {
		return Number(f)
	}
	return Text(v)
}

func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.ReplaceAll(s, "%", "")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0:
			if cpos > dpos {
				dec, thou = ',', '.'
			} else {
				dec, thou = '.', ','
			}
		case cpos >= 0 && thou == ',':
			dec = '.'
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.*)\s*\(([^)]+)\)\s*$`),  // Alpha (%)
	regexp.MustCompile(`^(.*)\s*\[([^\]]+)\]\s*$`), // Mass [mg/L]
	regexp.MustCompile(`^(.*?)[_\s-]+(mg/L|g/L|ug/L|°[CF]|Brix|%|ppm|ppb)$`),
}

// splitUnits separates a trailing unit from a header name.
func splitUnits(name string) (clean string, unit string) {
	s := strings.TrimSpace(name)
	for _, re := range unitPatterns {
		if m := re.FindStringSubmatch(s); len(m) >= 3 {
			base := strings.TrimSpace(m[1])
			u := strings.TrimSpace(m[2])
			if base != "" && u != "" {
				return base, u
			}
		}
	}
	return s, ""
}

// headerColumns cleans header cells into unique, non-empty column names and
// their units.
func headerColumns(header []string) (names []string, units []string) {
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name, unit := splitUnits(h)
		if name == "" {
			name = fmt.Sprintf("col_%d", i+1)
		}
		base := name
		for n := 2; seen[name] > 0; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[name]++
		names = append(names, name)
		units = append(units, unit)
	}
	return names, units
}

// build assembles a Table from a header and a row source. next returns false
// when the source is exhausted.
func build(name string, header []string, opt Options, next func() ([]string, bool, error)) (*Table, error) {
	cols, units := headerColumns(header)
	t, err := NewTable(name, cols...)
	if err != nil {
		return nil, err
	}
	for i, u := range units {
		t.SetUnit(cols[i], u)
	}
	for {
		rec, ok, err := next()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", t.Len()+1, err)
		}
		if !ok {
			break
		}
		if opt.MaxRows > 0 && t.Len() >= opt.MaxRows {
			t.truncated = true
			break
		}
		vals := make(map[string]Value, len(cols))
		for j, c := range cols {
			if j < len(rec) {
				vals[c] = ParseCell(rec[j], opt)
			}
		}
		if err := t.Append(vals); err != nil {
			return nil, err
		}
	}
	return t, nil
}
