package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/outlier-cli/internal/analysis"
	"github.com/KaramelBytes/outlier-cli/internal/outlier"
	"github.com/KaramelBytes/outlier-cli/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rbData   dataFlags
	rbOutDir string
	rbQuiet  bool
)

var reportBatchCmd = &cobra.Command{
	Use:   "report-batch <files...>",
	Short: "Produce outlier reports for multiple CSV/TSV/XLSX files (globs allowed)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		conf, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			if !rbQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			t, err := rbData.load(cmd, conf, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			// A fresh engine per file keeps fit ids distinct.
			e, err := outlier.New(rbData.engineOptions(cmd, conf))
			if err != nil {
				return err
			}
			rep, err := analysis.Build(t, e)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			md := rep.Markdown()
			if rbOutDir == "" {
				fmt.Fprintln(out, md)
				continue
			}
			dst, err := reportPath(rbOutDir, path, rbData.sheetName)
			if err != nil {
				return err
			}
			if err := utils.SafeWriteFile(dst, []byte(md)); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			logrus.WithFields(logrus.Fields{"file": path, "report": dst, "fit_id": rep.FitID}).Debug("report written")
			if !rbQuiet {
				fmt.Fprintf(out, "✓ Wrote report to %s\n", dst)
			}
		}
		return nil
	},
}

// expandInputs resolves globs and literal paths, dropping duplicates, in
// sorted order.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// reportPath picks <dir>/<base>[__sheet-<name>].outliers.md, adding a
// __N suffix instead of overwriting an existing report.
func reportPath(dir, input, sheet string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if sheet != "" {
		stem += "__sheet-" + slug(sheet)
	}
	out := filepath.Join(dir, stem+".outliers.md")
	for idx := 2; ; idx++ {
		if _, err := os.Stat(out); os.IsNotExist(err) {
			return out, nil
		}
		out = filepath.Join(dir, fmt.Sprintf("%s__%d.outliers.md", stem, idx))
	}
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			b.WriteRune('-')
		}
	}
	if out := strings.Trim(b.String(), "-"); out != "" {
		return out
	}
	return "sheet"
}

func init() {
	rootCmd.AddCommand(reportBatchCmd)
	rbData.register(reportBatchCmd)
	reportBatchCmd.Flags().StringVar(&rbOutDir, "out-dir", "", "directory for <name>.outliers.md reports (default: print to stdout)")
	reportBatchCmd.Flags().BoolVar(&rbQuiet, "quiet", false, "suppress progress and non-essential output")
}
