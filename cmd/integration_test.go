package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/outlier-cli/internal/outlier"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so state does not leak
// between Execute calls.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns its stdout.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	cfgFile = ""
	debug = false
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is execCmd for commands that must succeed.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// setupHome isolates config under a temp HOME and writes the sample dataset.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	data := "id,x,y,label\n1,1,5,a\n2,2,5,b\n3,3,5,c\n4,4,5,d\n5,100,5,e\n"
	p := filepath.Join(home, "data.csv")
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	return p
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestCLI_Bounds(t *testing.T) {
	data := setupHome(t)
	out := runCmd(t, "bounds", data, "--columns", "x")
	assertContains(t, out, "k=1.5, 5 rows", "| x | -1.0000 | 7.0000 | 2.0000 |")
	if strings.Contains(out, "| y |") {
		t.Fatalf("unrequested column printed:\n%s", out)
	}

	out = runCmd(t, "bounds", data, "--decimals", "1", "--limit-factor", "3", "--json")
	assertContains(t, out, `"column": "x"`, `"lower": -4`, `"upper": 10`)
}

func TestCLI_Filter(t *testing.T) {
	data := setupHome(t)
	out := runCmd(t, "filter", data, "--column", "x")
	if want := "row,id,x,y,label\n4,5,100,5,e\n"; out != want {
		t.Fatalf("filter output = %q, want %q", out, want)
	}

	dst := filepath.Join(filepath.Dir(data), "out", "x.csv")
	out = runCmd(t, "filter", data, "-c", "y", "-o", dst)
	assertContains(t, out, "✓ Wrote 0 outlier rows")
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(b) != "row,id,x,y,label\n" {
		t.Fatalf("file = %q", b)
	}

	_, err = execCmd(t, "filter", data, "--column", "label")
	var uc *outlier.UnknownColumnError
	if !errors.As(err, &uc) {
		t.Fatalf("text column err = %v", err)
	}
}

func TestCLI_Count(t *testing.T) {
	data := setupHome(t)
	out := runCmd(t, "count", data)
	assertContains(t, out, "| id | 0 | 0.00% |", "| x | 1 | 20.00% |", "| y | 0 | 0.00% |")

	out = runCmd(t, "count", data, "--columns", "x", "--json")
	assertContains(t, out, `"count": 1`, `"proportion": 20`, `"limit_factor": 1.5`)

	out = runCmd(t, "count", data, "--columns", "x,nope,label")
	assertContains(t, out, "| x | 1 | 20.00% |")
	if strings.Contains(out, "nope") || strings.Contains(out, "label") {
		t.Fatalf("skipped columns printed:\n%s", out)
	}

	out = runCmd(t, "count", data, "--columns", "nope,label")
	if strings.TrimSpace(out) != "No outlier found for given columns" {
		t.Fatalf("count output = %q", out)
	}
}

func TestCLI_NoNumericColumns(t *testing.T) {
	setupHome(t)
	p := filepath.Join(t.TempDir(), "names.csv")
	if err := os.WriteFile(p, []byte("name\nalpha\nbeta\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, c := range []string{"count", "plot"} {
		out := runCmd(t, c, p)
		if strings.TrimSpace(out) != "No outlier found for given columns" {
			t.Fatalf("%s output = %q", c, out)
		}
	}
}

func TestCLI_Plot(t *testing.T) {
	data := setupHome(t)
	out := runCmd(t, "plot", data, "--threshold-percent", "10", "--highlight")
	assertContains(t, out, "[OUTLIER COUNTS]", "threshold: 0.50 rows", "- x  | ", " 1 *")

	png := filepath.Join(filepath.Dir(data), "chart.png")
	out = runCmd(t, "plot", data, "-o", png, "--width", "400", "--height", "300")
	assertContains(t, out, "✓ Wrote chart to")
	b, err := os.ReadFile(png)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("chart is not a PNG")
	}
}

func TestCLI_Report(t *testing.T) {
	data := setupHome(t)
	dst := filepath.Join(filepath.Dir(data), "report.md")
	runCmd(t, "report", data, "-o", dst)
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	assertContains(t, string(b), "[DATASET SUMMARY]", "File: data.csv", "[OUTLIER BOUNDS]", "| x | 1 | 20.00% |", "non-numeric columns skipped: label")
}

func TestCLI_ConfigSetShowAndApply(t *testing.T) {
	data := setupHome(t)
	runCmd(t, "config", "set", "limit_factor", "3")
	runCmd(t, "config", "set", "bounds_decimals", "0")
	out := runCmd(t, "config", "show")
	assertContains(t, out, "limit_factor: 3\n", "bounds_decimals: 0\n", "log_level: info\n")

	out = runCmd(t, "bounds", data, "--columns", "x")
	assertContains(t, out, "k=3", "| x | -4 | 10 | 2 |")

	if _, err := execCmd(t, "config", "set", "limit_factor", "-1"); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := execCmd(t, "config", "set", "colour", "red"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}
