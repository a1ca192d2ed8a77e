package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReportBatch_GlobAndCollisionSuffix(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// Two inputs with the same basename in different directories
	d1 := filepath.Join(home, "d1")
	d2 := filepath.Join(home, "d2")
	for _, d := range []string{d1, d2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	csv := "col1,col2\nA,1\nB,2\nC,3\nD,4\nE,100\n"
	for _, d := range []string{d1, d2} {
		if err := os.WriteFile(filepath.Join(d, "metrics.csv"), []byte(csv), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	outDir := filepath.Join(home, "reports")
	out := runCmd(t, "report-batch", filepath.Join(home, "d*", "metrics.csv"), "--out-dir", outDir)
	assertContains(t, out, "[1/2] Processing metrics.csv", "[2/2] Processing metrics.csv")

	b1 := filepath.Join(outDir, "metrics.outliers.md")
	b2 := filepath.Join(outDir, "metrics__2.outliers.md")
	for _, p := range []string{b1, b2} {
		body, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("missing report %s: %v", p, err)
		}
		if !strings.Contains(string(body), "| col2 | 1 | 20.00% |") {
			t.Fatalf("report %s lacks counts:\n%s", p, body)
		}
	}
}

func TestReportBatch_QuietStdout(t *testing.T) {
	data := setupHome(t)
	out := runCmd(t, "report-batch", data, "--quiet")
	if strings.Contains(out, "Processing") {
		t.Fatalf("quiet run printed progress:\n%s", out)
	}
	assertContains(t, out, "[OUTLIER COUNTS]")
}

func TestReportBatch_NoMatches(t *testing.T) {
	setupHome(t)
	if _, err := execCmd(t, "report-batch", filepath.Join(t.TempDir(), "*.csv")); err == nil {
		t.Fatalf("expected error when nothing matches")
	}
}

func TestReportPathSheetSlug(t *testing.T) {
	dir := t.TempDir()
	p, err := reportPath(dir, "/data/book.xlsx", " Q1 Sales_2024 ")
	if err != nil {
		t.Fatalf("reportPath: %v", err)
	}
	if want := filepath.Join(dir, "book__sheet-q1-sales-2024.outliers.md"); p != want {
		t.Fatalf("path = %q, want %q", p, want)
	}
	if got := slug("!!!"); got != "sheet" {
		t.Fatalf("slug = %q", got)
	}
}
