package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
)

// #region types

// Config is the on-disk configuration of the chd tool.
type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Training TrainingConfig `toml:"training"`
	Gate     GateConfig     `toml:"gate"`
	Store    StoreConfig    `toml:"store"`
	Server   ServerConfig   `toml:"server"`
}

// EngineConfig selects the rule bank and the output class centers.
type EngineConfig struct {
	Bank    string  `toml:"bank"` // "advanced" | "classic"
	Healthy float64 `toml:"healthy"`
	Middle  float64 `toml:"middle"`
	Sick    float64 `toml:"sick"`
}

// Centers returns the configured class centers.
func (e EngineConfig) Centers() inference.Centers {
	return inference.Centers{Healthy: e.Healthy, Middle: e.Middle, Sick: e.Sick}
}

type TrainingConfig struct {
	Epochs       int     `toml:"epochs"`
	LearningRate float64 `toml:"learning_rate"`
	Samples      int     `toml:"samples"`
	TestFraction float64 `toml:"test_fraction"`
	Seed         int64   `toml:"seed"`
}

// GateConfig holds the thresholds a trained weight vector must meet before
// it is committed to the store.
type GateConfig struct {
	MaxMSE       float64 `toml:"max_mse"`
	MinR2        float64 `toml:"min_r2"`
	MaxDeltaNorm float64 `toml:"max_delta_norm"`
}

type StoreConfig struct {
	DBPath string `toml:"db_path"`
}

type ServerConfig struct {
	Addr        string `toml:"addr"`
	MetricsAddr string `toml:"metrics_addr"`
}

// #endregion types

// #region defaults

// Default returns the configuration used when no file is given.
func Default() Config {
	c := inference.DefaultCenters()
	return Config{
		Engine: EngineConfig{
			Bank:    "advanced",
			Healthy: c.Healthy,
			Middle:  c.Middle,
			Sick:    c.Sick,
		},
		Training: TrainingConfig{
			Epochs:       50,
			LearningRate: 0.01,
			Samples:      200,
			TestFraction: 0.2,
			Seed:         42,
		},
		Gate: GateConfig{
			MaxMSE:       2.0,
			MinR2:        -1.0,
			MaxDeltaNorm: 1.0,
		},
		Store: StoreConfig{
			DBPath: "chd.db",
		},
		Server: ServerConfig{
			Addr:        "localhost:50051",
			MetricsAddr: "localhost:9090",
		},
	}
}

// #endregion defaults

// #region load

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := Decode(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode decodes raw TOML into cfg, rejecting unknown keys.
func Decode(raw []byte, cfg *Config) error {
	return toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(cfg)
}

// ApplyEnv overrides the store and server addresses from CHD_DB,
// CHD_ADDR and CHD_METRICS_ADDR.
func ApplyEnv(cfg *Config) {
	if p := os.Getenv("CHD_DB"); p != "" {
		cfg.Store.DBPath = p
	}
	if a := os.Getenv("CHD_ADDR"); a != "" {
		cfg.Server.Addr = a
	}
	if a := os.Getenv("CHD_METRICS_ADDR"); a != "" {
		cfg.Server.MetricsAddr = a
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Engine.Bank {
	case "advanced", "classic":
	default:
		return fmt.Errorf("config: unknown bank %q", c.Engine.Bank)
	}
	if c.Training.Epochs < 1 {
		return fmt.Errorf("config: epochs must be at least 1, got %d", c.Training.Epochs)
	}
	if c.Training.Samples < 1 {
		return fmt.Errorf("config: samples must be at least 1, got %d", c.Training.Samples)
	}
	if !(c.Training.TestFraction >= 0 && c.Training.TestFraction < 1) {
		return fmt.Errorf("config: test_fraction must be in [0,1), got %g", c.Training.TestFraction)
	}
	return nil
}

// #endregion load
