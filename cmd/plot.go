package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/outlier-cli/internal/outlier"
	"github.com/KaramelBytes/outlier-cli/internal/render"
	"github.com/KaramelBytes/outlier-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	plotData      dataFlags
	plotColumns   []string
	plotThreshold float64
	plotHighlight bool
	plotOutput    string
	plotWidth     int
	plotHeight    int
)

var plotCmd = &cobra.Command{
	Use:   "plot <file>",
	Short: "Draw outlier counts per column as a bar chart (PNG or text)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := currentConfig()
		if err != nil {
			return err
		}
		t, err := plotData.load(cmd, conf, args[0])
		if err != nil {
			return err
		}
		opt := plotData.engineOptions(cmd, conf)
		if cmd.Flags().Changed("highlight") {
			opt.HighlightOutliers = plotHighlight
		}
		e, err := fit(t, opt)
		if err != nil {
			return err
		}
		popt := outlier.PlotOptions{Width: conf.ChartWidth, Height: conf.ChartHeight}
		if cmd.Flags().Changed("width") {
			popt.Width = plotWidth
		}
		if cmd.Flags().Changed("height") {
			popt.Height = plotHeight
		}
		if cmd.Flags().Changed("threshold-percent") {
			popt.ThresholdPercent = outlier.Float(plotThreshold)
		}

		var buf bytes.Buffer
		var r outlier.Renderer
		switch {
		case plotOutput == "":
			r = render.Markdown{W: cmd.OutOrStdout()}
		case strings.HasSuffix(strings.ToLower(plotOutput), ".png"):
			r = render.PNG{W: &buf}
		default:
			r = render.Markdown{W: &buf}
		}
		cols := cleanColumns(plotColumns)
		warnSkipped(cmd, e, cols)
		err = e.Plot(r, popt, cols...)
		if errors.Is(err, outlier.ErrNoOutliers) {
			printNoOutliers(cmd)
			return nil
		}
		if err != nil {
			return err
		}
		if plotOutput == "" {
			return nil
		}
		if err := utils.SafeWriteFile(plotOutput, buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote chart to %s\n", plotOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotData.register(plotCmd)
	plotCmd.Flags().StringSliceVar(&plotColumns, "columns", nil, "comma-separated columns (default: all numeric)")
	plotCmd.Flags().Float64Var(&plotThreshold, "threshold-percent", 0, "draw a reference line at this percent of rows (overrides config)")
	plotCmd.Flags().BoolVar(&plotHighlight, "highlight", false, "highlight bars above the threshold (overrides config)")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "write chart to a file (.png renders an image, anything else Markdown)")
	plotCmd.Flags().IntVar(&plotWidth, "width", outlier.DefaultWidth, "PNG width in pixels (overrides config)")
	plotCmd.Flags().IntVar(&plotHeight, "height", outlier.DefaultHeight, "PNG height in pixels (overrides config)")
}
