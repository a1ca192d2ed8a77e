package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/outlier-cli/internal/config"
	"github.com/KaramelBytes/outlier-cli/internal/dataset"
	"github.com/KaramelBytes/outlier-cli/internal/outlier"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// dataFlags are the input and fitting flags shared by every data command.
type dataFlags struct {
	delimiter   string
	decimal     string
	thousands   string
	maxRows     int
	sheetName   string
	sheetIndex  int
	limitFactor float64
}

func (f *dataFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	c.Flags().StringVar(&f.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted; a lone comma as in 1,234 reads as decimal unless --thousands ,)")
	c.Flags().StringVar(&f.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	c.Flags().IntVar(&f.maxRows, "max-rows", 0, "maximum rows to read (0 = unlimited; overrides config)")
	c.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	c.Flags().IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	c.Flags().Float64Var(&f.limitFactor, "limit-factor", outlier.DefaultLimitFactor, "IQR multiplier k (overrides config)")
}

func (f *dataFlags) options(c *cobra.Command, conf *cfgpkg.Global) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	opt.MaxRows = conf.MaxRows
	if c.Flags().Changed("max-rows") {
		if f.maxRows < 0 {
			return opt, fmt.Errorf("invalid --max-rows: %d", f.maxRows)
		}
		opt.MaxRows = f.maxRows
	}
	switch f.delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", f.delimiter)
	}
	switch strings.ToLower(strings.TrimSpace(f.decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", f.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(f.thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", f.thousands)
	}
	return opt, nil
}

// load reads path into a table, choosing the reader by extension.
func (f *dataFlags) load(c *cobra.Command, conf *cfgpkg.Global, path string) (*dataset.Table, error) {
	opt, err := f.options(c, conf)
	if err != nil {
		return nil, err
	}
	var t *dataset.Table
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		t, err = dataset.LoadXLSX(path, opt, f.sheetName, f.sheetIndex)
	} else {
		t, err = dataset.LoadCSV(path, opt)
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"file":      path,
		"rows":      t.Len(),
		"columns":   len(t.Columns()),
		"numeric":   len(t.NumericColumns()),
		"truncated": t.Truncated(),
	}).Debug("dataset loaded")
	if t.Truncated() {
		fmt.Fprintf(c.ErrOrStderr(), "⚠ Warning: read only the first %d rows of %s\n", t.Len(), path)
	}
	return t, nil
}

// engineOptions builds engine options from config with flag overrides.
func (f *dataFlags) engineOptions(c *cobra.Command, conf *cfgpkg.Global) outlier.Options {
	opt := outlier.DefaultOptions()
	opt.LimitFactor = conf.LimitFactor
	if c.Flags().Changed("limit-factor") {
		opt.LimitFactor = f.limitFactor
	}
	opt.Decimals = conf.Decimals
	opt.HighlightOutliers = conf.HighlightOutliers
	if conf.ThresholdPercent > 0 {
		opt.ThresholdPercent = outlier.Float(conf.ThresholdPercent)
	}
	opt.Logger = logrus.StandardLogger()
	return opt
}

// fit builds an engine from opt and fits it against t.
func fit(t *dataset.Table, opt outlier.Options) (*outlier.Engine, error) {
	e, err := outlier.New(opt)
	if err != nil {
		return nil, err
	}
	if err := e.Fit(t); err != nil {
		return nil, err
	}
	return e, nil
}

// cleanColumns trims --columns entries and drops empty ones.
func cleanColumns(in []string) []string {
	var out []string
	for _, c := range in {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// warnSkipped notes requested columns the engine will skip because they are
// unknown or not numeric.
func warnSkipped(c *cobra.Command, e *outlier.Engine, requested []string) {
	numeric := map[string]bool{}
	for _, col := range e.Columns() {
		numeric[col] = true
	}
	for _, col := range requested {
		if !numeric[col] {
			fmt.Fprintf(c.ErrOrStderr(), "⚠ Skipping column '%s': not found or not numeric\n", col)
		}
	}
}

func printNoOutliers(c *cobra.Command) {
	fmt.Fprintln(c.OutOrStdout(), "No outlier found for given columns")
}
