package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/rulebank"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description"`
	Config      FixtureConfig `json:"config"`
	Cases       []FixtureCase `json:"cases"`
}

// FixtureConfig selects the engine and model under test.
type FixtureConfig struct {
	Bank      string             `json:"bank"` // "advanced" (default) | "classic"
	Centers   *inference.Centers `json:"centers,omitempty"`
	Weights   []float64          `json:"weights,omitempty"` // neuro-fuzzy weights; nil means uniform
	Tolerance float64            `json:"tolerance"`
}

// FixtureCase is one patient measurement with its expected scores.
type FixtureCase struct {
	ID          string              `json:"id"`
	Measurement fuzzify.Measurement `json:"measurement"`
	Expected    FixtureExpected     `json:"expected"`
}

// FixtureExpected holds the expected scores; nil fields are not checked.
type FixtureExpected struct {
	Mamdani  *float64 `json:"mamdani,omitempty"`
	Sugeno   *float64 `json:"sugeno,omitempty"`
	Adaptive *float64 `json:"adaptive,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToEngine builds the inference engine the fixture describes.
func (fc *FixtureConfig) ToEngine() (*inference.Engine, error) {
	var opts []inference.Option
	switch fc.Bank {
	case "", "advanced":
		opts = append(opts, inference.WithBank(rulebank.Advanced()))
	case "classic":
		opts = append(opts, inference.WithBank(rulebank.Classic()))
	default:
		return nil, fmt.Errorf("unknown bank %q", fc.Bank)
	}
	if fc.Centers != nil {
		opts = append(opts, inference.WithCenters(*fc.Centers))
	}
	return inference.New(opts...), nil
}

// ToReplayConfig converts a FixtureConfig to a domain ReplayConfig.
func (fc *FixtureConfig) ToReplayConfig() ReplayConfig {
	cfg := DefaultReplayConfig()
	if fc.Tolerance > 0 {
		cfg.Tolerance = fc.Tolerance
	}
	cfg.Weights = fc.Weights
	return cfg
}

// ToCase converts a FixtureCase to a domain Case.
func (c *FixtureCase) ToCase() Case {
	return Case{
		ID:          c.ID,
		Measurement: c.Measurement,
		Mamdani:     c.Expected.Mamdani,
		Sugeno:      c.Expected.Sugeno,
		Adaptive:    c.Expected.Adaptive,
	}
}

// #endregion fixture-loader

// #region fixture-export

// ExportFixture records the current engine output for every case as the
// expected values, producing a new regression baseline.
func ExportFixture(description string, cfg FixtureConfig, engine *inference.Engine, cases []fuzzify.Measurement, ids []string) Fixture {
	f := Fixture{Description: description, Config: cfg}
	for i, m := range cases {
		d := engine.Diagnose(m)
		mam, sug := d.Mamdani, d.Sugeno
		id := fmt.Sprintf("case-%d", i+1)
		if i < len(ids) {
			id = ids[i]
		}
		f.Cases = append(f.Cases, FixtureCase{
			ID:          id,
			Measurement: m,
			Expected:    FixtureExpected{Mamdani: &mam, Sugeno: &sug},
		})
	}
	return f
}

// #endregion fixture-export
