package cmd

import (
	"fmt"

	"github.com/KaramelBytes/outlier-cli/internal/outlier"
	"github.com/KaramelBytes/outlier-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	boundsData     dataFlags
	boundsColumns  []string
	boundsDecimals int
	boundsJSON     bool
)

type boundsRow struct {
	Column string  `json:"column"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	IQR    float64 `json:"iqr"`
}

var boundsCmd = &cobra.Command{
	Use:   "bounds <file>",
	Short: "Print lower/upper IQR bounds per numeric column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := currentConfig()
		if err != nil {
			return err
		}
		t, err := boundsData.load(cmd, conf, args[0])
		if err != nil {
			return err
		}
		e, err := fit(t, boundsData.engineOptions(cmd, conf))
		if err != nil {
			return err
		}
		decimals := conf.BoundsDecimals
		if cmd.Flags().Changed("decimals") {
			decimals = boundsDecimals
		}
		cols := cleanColumns(boundsColumns)
		iqr, err := e.IQR(cols...)
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			cols = e.Columns()
		}
		if len(cols) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠ No numeric columns in %s\n", t.Name())
			return nil
		}
		rows := make([]boundsRow, 0, len(cols))
		seen := map[string]bool{}
		for _, c := range cols {
			if seen[c] {
				continue
			}
			seen[c] = true
			lo, hi, err := e.Bounds(c, decimals)
			if err != nil {
				return err
			}
			rows = append(rows, boundsRow{Column: c, Lower: lo, Upper: hi, IQR: iqr[c]})
		}

		out := cmd.OutOrStdout()
		if boundsJSON {
			b, err := utils.PrettyJSON(rows)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		fmt.Fprintf(out, "IQR bounds for %s (k=%g, %d rows)\n", t.Name(), e.LimitFactor(), e.Rows())
		fmt.Fprintln(out, "| column | lower | upper | iqr |")
		fmt.Fprintln(out, "|---|---|---|---|")
		for _, r := range rows {
			fmt.Fprintf(out, "| %s | %.*f | %.*f | %.*f |\n", r.Column, decimals, r.Lower, decimals, r.Upper, decimals, r.IQR)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boundsCmd)
	boundsData.register(boundsCmd)
	boundsCmd.Flags().StringSliceVar(&boundsColumns, "columns", nil, "comma-separated columns (default: all numeric)")
	boundsCmd.Flags().IntVar(&boundsDecimals, "decimals", outlier.DefaultBoundsDecimals, "decimals for bounds (overrides config)")
	boundsCmd.Flags().BoolVar(&boundsJSON, "json", false, "print JSON instead of a table")
}
