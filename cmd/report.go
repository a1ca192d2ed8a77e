package cmd

import (
	"fmt"

	"github.com/KaramelBytes/outlier-cli/internal/analysis"
	"github.com/KaramelBytes/outlier-cli/internal/outlier"
	"github.com/KaramelBytes/outlier-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	reportData   dataFlags
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Produce a Markdown report of descriptive stats, bounds and outlier counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := currentConfig()
		if err != nil {
			return err
		}
		t, err := reportData.load(cmd, conf, args[0])
		if err != nil {
			return err
		}
		e, err := outlier.New(reportData.engineOptions(cmd, conf))
		if err != nil {
			return err
		}
		rep, err := analysis.Build(t, e)
		if err != nil {
			return err
		}
		md := rep.Markdown()
		if reportOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		}
		if err := utils.SafeWriteFile(reportOutput, []byte(md)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", reportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportData.register(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "optional path to write the report (Markdown)")
}
