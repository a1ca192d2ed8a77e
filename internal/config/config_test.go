package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Global{
		LimitFactor:    1.5,
		BoundsDecimals: 4,
		Decimals:       2,
		ChartWidth:     1000,
		ChartHeight:    800,
		LogLevel:       "info",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("defaults (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTripWithEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := c.Set("limit_factor", "3"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set("threshold_percent", "25%"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Save(c, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".outlier", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	t.Setenv("OUTLIER_DECIMALS", "5")
	got, err := Load("")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.LimitFactor != 3 || got.ThresholdPercent != 25 || got.Decimals != 5 {
		t.Fatalf("reloaded = %+v", got)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(p, []byte("limit_factor: 3\nhighlight_outliers: true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.LimitFactor != 3 || !c.HighlightOutliers || c.BoundsDecimals != 4 {
		t.Fatalf("config = %+v", c)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("limit_factor: -2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestSetValidates(t *testing.T) {
	c := &Global{LimitFactor: 1.5, BoundsDecimals: 4, Decimals: 2, LogLevel: "info"}
	tests := []struct {
		key, val string
		ok       bool
	}{
		{"limit_factor", "2.5", true},
		{"limit_factor", "-1", false},
		{"limit_factor", "abc", false},
		{"decimals", "16", false},
		{"bounds_decimals", "0", true},
		{"threshold_percent", "101", false},
		{"highlight_outliers", "yes", false},
		{"highlight_outliers", "true", true},
		{"log_level", "DEBUG", true},
		{"log_level", "loud", false},
		{"max_rows", "-1", false},
		{"nope", "1", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			before := *c
			err := c.Set(tt.key, tt.val)
			if (err == nil) != tt.ok {
				t.Fatalf("Set(%q, %q) err = %v", tt.key, tt.val, err)
			}
			if !tt.ok && *c != before {
				t.Fatalf("failed Set modified config: %+v", c)
			}
		})
	}
	if got, _ := c.Get("log_level"); got != "debug" {
		t.Fatalf("log_level = %q", got)
	}
	if got, _ := c.Get("limit_factor"); got != "2.5" {
		t.Fatalf("limit_factor = %q", got)
	}
}

func TestGetCoversAllKeys(t *testing.T) {
	c := &Global{}
	for _, k := range Keys {
		if _, err := c.Get(k); err != nil {
			t.Errorf("Get(%q): %v", k, err)
		}
	}
}
