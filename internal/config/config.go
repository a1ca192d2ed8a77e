package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// IQR rule
	LimitFactor    float64 `mapstructure:"limit_factor" yaml:"limit_factor"`
	BoundsDecimals int     `mapstructure:"bounds_decimals" yaml:"bounds_decimals"`
	Decimals       int     `mapstructure:"decimals" yaml:"decimals"`

	// Chart output. ThresholdPercent 0 draws no threshold line.
	ThresholdPercent  float64 `mapstructure:"threshold_percent" yaml:"threshold_percent"`
	HighlightOutliers bool    `mapstructure:"highlight_outliers" yaml:"highlight_outliers"`
	ChartWidth        int     `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight       int     `mapstructure:"chart_height" yaml:"chart_height"`

	// Input. MaxRows 0 reads everything.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"limit_factor", "bounds_decimals", "decimals",
	"threshold_percent", "highlight_outliers", "chart_width", "chart_height",
	"max_rows", "log_level",
}

// Path resolves the config file location. If cfgFile is empty it is
// ~/.outlier/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".outlier", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path, creating the
// directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("OUTLIER")
	v.AutomaticEnv()

	v.SetDefault("limit_factor", 1.5)
	v.SetDefault("bounds_decimals", 4)
	v.SetDefault("decimals", 2)
	v.SetDefault("threshold_percent", 0.0)
	v.SetDefault("highlight_outliers", false)
	v.SetDefault("chart_width", 1000)
	v.SetDefault("chart_height", 800)
	v.SetDefault("max_rows", 0)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		path, err := Path("")
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges.
func (c *Global) Validate() error {
	switch {
	case math.IsNaN(c.LimitFactor) || math.IsInf(c.LimitFactor, 0) || c.LimitFactor < 0:
		return fmt.Errorf("invalid limit_factor: %v (must be a finite number >= 0)", c.LimitFactor)
	case c.BoundsDecimals < 0 || c.BoundsDecimals > 15:
		return fmt.Errorf("invalid bounds_decimals: %d (use 0..15)", c.BoundsDecimals)
	case c.Decimals < 0 || c.Decimals > 15:
		return fmt.Errorf("invalid decimals: %d (use 0..15)", c.Decimals)
	case c.ThresholdPercent < 0 || c.ThresholdPercent > 100:
		return fmt.Errorf("invalid threshold_percent: %v (use 0..100)", c.ThresholdPercent)
	case c.ChartWidth < 0 || c.ChartHeight < 0:
		return fmt.Errorf("invalid chart size: %dx%d", c.ChartWidth, c.ChartHeight)
	case c.MaxRows < 0:
		return fmt.Errorf("invalid max_rows: %d", c.MaxRows)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// Set parses val for key and stores it. The previous value is kept when the
// new one does not validate.
func (c *Global) Set(key, val string) error {
	next := *c
	switch key {
	case "limit_factor":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid float for limit_factor: %w", err)
		}
		next.LimitFactor = f
	case "bounds_decimals", "decimals", "chart_width", "chart_height", "max_rows":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for %s: %w", key, err)
		}
		switch key {
		case "bounds_decimals":
			next.BoundsDecimals = i
		case "decimals":
			next.Decimals = i
		case "chart_width":
			next.ChartWidth = i
		case "chart_height":
			next.ChartHeight = i
		case "max_rows":
			next.MaxRows = i
		}
	case "threshold_percent":
		f, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
		if err != nil {
			return fmt.Errorf("invalid float for threshold_percent: %w", err)
		}
		next.ThresholdPercent = f
	case "highlight_outliers":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for highlight_outliers: %w", err)
		}
		next.HighlightOutliers = b
	case "log_level":
		next.LogLevel = strings.ToLower(val)
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Get returns the display form of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "limit_factor":
		return strconv.FormatFloat(c.LimitFactor, 'g', -1, 64), nil
	case "bounds_decimals":
		return strconv.Itoa(c.BoundsDecimals), nil
	case "decimals":
		return strconv.Itoa(c.Decimals), nil
	case "threshold_percent":
		return strconv.FormatFloat(c.ThresholdPercent, 'g', -1, 64), nil
	case "highlight_outliers":
		return strconv.FormatBool(c.HighlightOutliers), nil
	case "chart_width":
		return strconv.Itoa(c.ChartWidth), nil
	case "chart_height":
		return strconv.Itoa(c.ChartHeight), nil
	case "max_rows":
		return strconv.Itoa(c.MaxRows), nil
	case "log_level":
		return c.LogLevel, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}
