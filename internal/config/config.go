// Package config loads settings for the dpc command.
//
// Settings come from three layers, later ones winning:
//
//  1. Defaults (see Default)
//  2. An optional YAML file
//  3. DPC_* environment variables
//
// The merged result is checked with go-playground/validator struct tags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/TrevorS/dpc"
)

// Config is the dpc command configuration.
type Config struct {
	Environment string `yaml:"environment" validate:"oneof=development production"`

	Fraction float64 `yaml:"fraction" validate:"gt=0,lt=1"`
	Metric   string  `yaml:"metric" validate:"oneof=euclidean cosine"`
	Workers  int     `yaml:"workers" validate:"gte=0"`

	Assign Assign `yaml:"assign"`
}

// Assign holds default thresholds. Command-line flags override them.
type Assign struct {
	MinDensity     *float64 `yaml:"min_density"`
	MinDelta       *float64 `yaml:"min_delta"`
	BorderOnly     bool     `yaml:"border_only"`
	RejectOutliers bool     `yaml:"reject_outliers"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	def := dpc.DefaultConfig()
	return Config{
		Environment: "production",
		Fraction:    def.Fraction,
		Metric:      string(def.Metric),
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer f.Close()
		if err := decodeYAML(f, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeYAML(r io.Reader, target *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overrides fields from DPC_ENVIRONMENT, DPC_FRACTION, DPC_METRIC
// and DPC_WORKERS.
func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("DPC_ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
	if v := getenv("DPC_METRIC"); v != "" {
		cfg.Metric = v
	}
	if v := getenv("DPC_FRACTION"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: DPC_FRACTION: %w", err)
		}
		cfg.Fraction = f
	}
	if v := getenv("DPC_WORKERS"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: DPC_WORKERS: %w", err)
		}
		cfg.Workers = w
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Library converts c into a dpc.Config.
func (c *Config) Library() (dpc.Config, error) {
	metric, err := dpc.ParseMetric(c.Metric)
	if err != nil {
		return dpc.Config{}, err
	}
	return dpc.Config{
		Fraction: c.Fraction,
		Metric:   metric,
		Workers:  c.Workers,
	}, nil
}
