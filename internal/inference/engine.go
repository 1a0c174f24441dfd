package inference

// #region imports
import (
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/rulebank"
)

// #endregion

// #region centers

// Centers are the crisp values associated with each output class.
type Centers struct {
	Healthy float64 `toml:"healthy" json:"healthy"`
	Middle  float64 `toml:"middle" json:"middle"`
	Sick    float64 `toml:"sick" json:"sick"`
}

// DefaultCenters returns Healthy=0.75, Middle=2.0, Sick=3.25.
func DefaultCenters() Centers {
	return Centers{Healthy: 0.75, Middle: 2.0, Sick: 3.25}
}

// Of returns the center of class c.
func (c Centers) Of(class rulebank.Class) float64 {
	switch class {
	case rulebank.Healthy:
		return c.Healthy
	case rulebank.Middle:
		return c.Middle
	case rulebank.Sick:
		return c.Sick
	}
	return 0
}

// #endregion

// #region engine

// Engine owns one fuzzifier, one rule bank and one set of centers. It holds
// no mutable state, so a single Engine may serve concurrent callers.
type Engine struct {
	centers   Centers
	fuzzifier *fuzzify.Fuzzifier
	bank      *rulebank.Bank
}

// Option configures an Engine.
type Option func(*Engine)

func WithCenters(c Centers) Option { return func(e *Engine) { e.centers = c } }

func WithBank(b *rulebank.Bank) Option { return func(e *Engine) { e.bank = b } }

func WithFuzzifier(z *fuzzify.Fuzzifier) Option { return func(e *Engine) { e.fuzzifier = z } }

// New returns an Engine with expert parameters, the advanced bank and
// default centers unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		centers:   DefaultCenters(),
		fuzzifier: fuzzify.Default(),
		bank:      rulebank.Advanced(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Centers() Centers { return e.centers }

func (e *Engine) Bank() *rulebank.Bank { return e.bank }

func (e *Engine) Fuzzifier() *fuzzify.Fuzzifier { return e.fuzzifier }

// #endregion

// #region diagnose

// Diagnosis is the full result of one inference call.
type Diagnosis struct {
	Mamdani     float64                      `json:"mamdani"`
	Sugeno      float64                      `json:"sugeno"`
	Aggregated  map[rulebank.Class]float64   `json:"aggregated"`
	Strengths   map[rulebank.Class][]float64 `json:"strengths,omitempty"`
	Memberships fuzzify.Fuzzified            `json:"memberships,omitempty"`
}

// Diagnose fuzzifies m once, evaluates the bank once and defuzzifies the same
// strengths both ways.
func (e *Engine) Diagnose(m fuzzify.Measurement) Diagnosis {
	f := e.fuzzifier.Fuzzify(m)
	// nil weights cannot fail.
	s, _ := e.bank.Evaluate(f, nil)
	agg := Aggregate(s)
	return Diagnosis{
		Mamdani:     Mamdani(agg, e.centers),
		Sugeno:      Sugeno(s, e.centers),
		Aggregated:  agg,
		Strengths:   s.ByClass,
		Memberships: f,
	}
}

// DiagnoseBatch runs Diagnose over ms in order.
func (e *Engine) DiagnoseBatch(ms []fuzzify.Measurement) []Diagnosis {
	out := make([]Diagnosis, len(ms))
	for i, m := range ms {
		out[i] = e.Diagnose(m)
	}
	return out
}

// Evaluate returns the (optionally weighted) rule strengths for m.
func (e *Engine) Evaluate(m fuzzify.Measurement, weights []float64) (rulebank.Strengths, error) {
	return e.bank.Evaluate(e.fuzzifier.Fuzzify(m), weights)
}

// #endregion
