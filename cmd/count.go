package cmd

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/outlier-cli/internal/outlier"
	"github.com/KaramelBytes/outlier-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	countData     dataFlags
	countColumns  []string
	countDecimals int
	countJSON     bool
)

var countCmd = &cobra.Command{
	Use:   "count <file>",
	Short: "Count outliers per column with their share of all rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := currentConfig()
		if err != nil {
			return err
		}
		t, err := countData.load(cmd, conf, args[0])
		if err != nil {
			return err
		}
		opt := countData.engineOptions(cmd, conf)
		if cmd.Flags().Changed("decimals") {
			opt.Decimals = countDecimals
		}
		e, err := fit(t, opt)
		if err != nil {
			return err
		}
		cols := cleanColumns(countColumns)
		warnSkipped(cmd, e, cols)
		sum, err := e.Summarize(cols...)
		if errors.Is(err, outlier.ErrNoOutliers) {
			printNoOutliers(cmd)
			return nil
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if countJSON {
			b, err := utils.PrettyJSON(sum)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		fmt.Fprintf(out, "Outliers in %s (k=%g, %d rows)\n", t.Name(), sum.LimitFactor, sum.Rows)
		fmt.Fprintln(out, "| column | outliers | percent |")
		fmt.Fprintln(out, "|---|---|---|")
		for _, c := range sum.Columns {
			fmt.Fprintf(out, "| %s | %d | %.*f%% |\n", c.Column, c.Count, opt.Decimals, c.Proportion)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
	countData.register(countCmd)
	countCmd.Flags().StringSliceVar(&countColumns, "columns", nil, "comma-separated columns (default: all numeric)")
	countCmd.Flags().IntVar(&countDecimals, "decimals", outlier.DefaultProportionDecimals, "decimals for proportions (overrides config)")
	countCmd.Flags().BoolVar(&countJSON, "json", false, "print JSON instead of a table")
}
