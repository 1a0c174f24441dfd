package replay

import (
	"fmt"
	"math"
	"strings"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/neurofuzzy"
)

// #region types
// Case is a single recorded patient measurement with expected scores.
type Case struct {
	ID          string
	Measurement fuzzify.Measurement
	Mamdani     *float64
	Sugeno      *float64
	Adaptive    *float64
}

// ReplayConfig controls comparison tolerance and the adaptive model weights.
type ReplayConfig struct {
	Tolerance float64
	Weights   []float64
}

// DefaultReplayConfig returns a tolerance of 1e-9 and uniform weights.
func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{Tolerance: 1e-9}
}

// ReplayResult captures the outcome of replaying one case.
type ReplayResult struct {
	CaseID string
	Action string // "pass" | "fail" | "error"
	Reason string

	Diagnosis inference.Diagnosis
	Adaptive  float64

	// Largest absolute deviation over the checked scores.
	MaxDelta float64
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalCases int
	Passed     int
	Failed     int
	Errors     int
	MaxDelta   float64
}

// #endregion types

// #region replay
// Replay diagnoses every case with engine and, when any case expects an
// adaptive score, predicts it with a fresh neuro-fuzzy model carrying
// config.Weights. Operates entirely in-memory.
func Replay(engine *inference.Engine, cases []Case, config ReplayConfig) []ReplayResult {
	model, modelErr := adaptiveModel(engine, cases, config)

	results := make([]ReplayResult, 0, len(cases))
	for _, c := range cases {
		res := ReplayResult{CaseID: c.ID, Diagnosis: engine.Diagnose(c.Measurement)}

		var failures []string
		check := func(name string, want *float64, got float64) {
			if want == nil {
				return
			}
			delta := math.Abs(got - *want)
			if math.IsNaN(delta) {
				delta = math.Inf(1)
			}
			if delta > res.MaxDelta {
				res.MaxDelta = delta
			}
			if delta > config.Tolerance {
				failures = append(failures, fmt.Sprintf("%s=%.9g want %.9g", name, got, *want))
			}
		}

		check("mamdani", c.Mamdani, res.Diagnosis.Mamdani)
		check("sugeno", c.Sugeno, res.Diagnosis.Sugeno)

		if c.Adaptive != nil {
			if modelErr != nil {
				res.Action = "error"
				res.Reason = modelErr.Error()
				results = append(results, res)
				continue
			}
			p, err := model.Predict(c.Measurement)
			if err != nil {
				res.Action = "error"
				res.Reason = err.Error()
				results = append(results, res)
				continue
			}
			res.Adaptive = p
			check("adaptive", c.Adaptive, p)
		}

		if len(failures) > 0 {
			res.Action = "fail"
			res.Reason = strings.Join(failures, "; ")
		} else {
			res.Action = "pass"
			res.Reason = "within tolerance"
		}
		results = append(results, res)
	}

	return results
}

func adaptiveModel(engine *inference.Engine, cases []Case, config ReplayConfig) (*neurofuzzy.Model, error) {
	need := false
	for _, c := range cases {
		need = need || c.Adaptive != nil
	}
	if !need {
		return nil, nil
	}
	m := neurofuzzy.NewModel(neurofuzzy.WithCenters(engine.Centers()))
	m.Initialize()
	if config.Weights != nil {
		if err := m.SetWeights(config.Weights); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{TotalCases: len(results)}
	for _, r := range results {
		switch r.Action {
		case "pass":
			s.Passed++
		case "fail":
			s.Failed++
		case "error":
			s.Errors++
		}
		if r.MaxDelta > s.MaxDelta {
			s.MaxDelta = r.MaxDelta
		}
	}
	return s
}

// #endregion replay
