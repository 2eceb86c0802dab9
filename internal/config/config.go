package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds report-generation settings. The chart battery itself is fixed;
// these knobs only tune classification and rendering.
type Config struct {
	// MaxUnique is the distinct-value threshold at or below which a numeric
	// column is treated as categorical.
	MaxUnique int `mapstructure:"max_unique" yaml:"max_unique"`
	// HistBins is the histogram bin count.
	HistBins int `mapstructure:"hist_bins" yaml:"hist_bins"`
	// DensityPoints is the grid size for density and violin estimates.
	DensityPoints int `mapstructure:"density_points" yaml:"density_points"`
	// TableMaxRows caps how many numeric columns the statistics-table page shows.
	TableMaxRows int `mapstructure:"table_max_rows" yaml:"table_max_rows"`
	// ChartDPI is the raster resolution for chart pages.
	ChartDPI int `mapstructure:"chart_dpi" yaml:"chart_dpi"`
}

// Default returns the built-in configuration without touching disk.
func Default() *Config {
	return &Config{
		MaxUnique:     20,
		HistBins:      30,
		DensityPoints: 128,
		TableMaxRows:  12,
		ChartDPI:      96,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.datascribe/config.yaml, creating the directory if necessary.
func Save(c *Config, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".datascribe")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
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
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DATASCRIBE")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("max_unique", d.MaxUnique)
	v.SetDefault("hist_bins", d.HistBins)
	v.SetDefault("density_points", d.DensityPoints)
	v.SetDefault("table_max_rows", d.TableMaxRows)
	v.SetDefault("chart_dpi", d.ChartDPI)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".datascribe")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
