package cmd

import (
	"bytes"
	"fmt"

	"github.com/KaramelBytes/outlier-cli/internal/dataset"
	"github.com/KaramelBytes/outlier-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	filterData   dataFlags
	filterColumn string
	filterOutput string
)

var filterCmd = &cobra.Command{
	Use:   "filter <file>",
	Short: "Print the rows whose value in a column falls outside its IQR bounds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := currentConfig()
		if err != nil {
			return err
		}
		t, err := filterData.load(cmd, conf, args[0])
		if err != nil {
			return err
		}
		e, err := fit(t, filterData.engineOptions(cmd, conf))
		if err != nil {
			return err
		}
		rows, err := e.Filter(filterColumn)
		if err != nil {
			return err
		}
		if filterOutput == "" {
			return dataset.WriteCSV(cmd.OutOrStdout(), t.Columns(), rows)
		}
		var buf bytes.Buffer
		if err := dataset.WriteCSV(&buf, t.Columns(), rows); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(filterOutput, buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d outlier rows of '%s' to %s\n", len(rows), filterColumn, filterOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterData.register(filterCmd)
	filterCmd.Flags().StringVarP(&filterColumn, "column", "c", "", "numeric column to filter on")
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "", "optional path to write CSV")
	_ = filterCmd.MarkFlagRequired("column")
}
