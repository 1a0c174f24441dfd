package gate

import (
	"math"
	"testing"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/eval"
)

func uniform(n int, v float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = v
	}
	return w
}

var passed = eval.EvalResult{Passed: true, Reason: "all checks passed"}

func TestGateCommitOnCleanTraining(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	old := uniform(15, 1.0)
	proposed := uniform(15, 1.0/15.0)

	decision := g.Evaluate(old, proposed, []float64{0.8, 0.6}, passed)

	if decision.Action != "commit" {
		t.Fatalf("expected commit, got %s: %s", decision.Action, decision.Reason)
	}
	if decision.Vetoed {
		t.Fatal("should not be vetoed")
	}
	// Rescaled old equals proposed.
	if decision.DeltaNorm > 1e-12 {
		t.Fatalf("expected zero delta norm, got %f", decision.DeltaNorm)
	}
	if math.Abs(decision.SoftScore-0.25) > 1e-12 {
		t.Fatalf("expected soft score 0.25, got %f", decision.SoftScore)
	}
}

func TestGateRejectOnNonFiniteWeights(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	proposed := uniform(3, 1.0/3.0)
	proposed[1] = math.NaN()

	decision := g.Evaluate(uniform(3, 1), proposed, []float64{1}, passed)

	if decision.Action != "reject" {
		t.Fatalf("expected reject, got %s", decision.Action)
	}
	if !decision.Vetoed {
		t.Fatal("should be vetoed")
	}
	if decision.VetoSignals[0].Type != VetoNonFinite {
		t.Fatalf("expected VetoNonFinite, got %s", decision.VetoSignals[0].Type)
	}
}

func TestGateRejectOnWeightSumDrift(t *testing.T) {
	g := NewGate(DefaultGateConfig())

	decision := g.Evaluate(uniform(2, 1), []float64{0.5, 0.6}, []float64{1}, passed)

	if decision.Action != "reject" {
		t.Fatalf("expected reject, got %s", decision.Action)
	}
	if decision.VetoSignals[0].Type != VetoNormalisation {
		t.Fatalf("expected VetoNormalisation, got %s", decision.VetoSignals[0].Type)
	}
}

func TestGateRejectOnDivergedLoss(t *testing.T) {
	g := NewGate(DefaultGateConfig())

	decision := g.Evaluate(uniform(2, 1), uniform(2, 0.5), []float64{1, math.Inf(1)}, passed)

	if decision.Action != "reject" {
		t.Fatalf("expected reject, got %s", decision.Action)
	}
	if decision.VetoSignals[0].Type != VetoDivergence {
		t.Fatalf("expected VetoDivergence, got %s", decision.VetoSignals[0].Type)
	}

	decision = g.Evaluate(uniform(2, 1), uniform(2, 0.5), nil, passed)
	if decision.Action != "reject" {
		t.Fatal("expected reject with no epochs")
	}
}

func TestGateRejectOnLargeDelta(t *testing.T) {
	config := DefaultGateConfig()
	config.MaxDeltaNorm = 0.1
	g := NewGate(config)

	decision := g.Evaluate(uniform(2, 1), []float64{1, 0}, []float64{1}, passed)

	if decision.Action != "reject" {
		t.Fatalf("expected reject, got %s", decision.Action)
	}
	if decision.VetoSignals[0].Type != VetoConstraint {
		t.Fatalf("expected VetoConstraint, got %s", decision.VetoSignals[0].Type)
	}
	if decision.DeltaNorm == 0 {
		t.Fatal("expected delta norm reported on reject")
	}
}

func TestGateRejectOnLengthMismatch(t *testing.T) {
	g := NewGate(DefaultGateConfig())

	decision := g.Evaluate(uniform(3, 1), uniform(2, 0.5), []float64{1}, passed)

	if decision.Action != "reject" {
		t.Fatalf("expected reject, got %s", decision.Action)
	}
}

func TestGateEvalFailure(t *testing.T) {
	failed := eval.EvalResult{Passed: false, Reason: "eval failed: mse 3.0 exceeds 2.0"}

	decision := NewGate(DefaultGateConfig()).Evaluate(uniform(2, 1), uniform(2, 0.5), []float64{1}, failed)
	if decision.Action != "reject" || decision.VetoSignals[0].Type != VetoEvalFailure {
		t.Fatalf("expected eval veto, got %+v", decision)
	}

	config := DefaultGateConfig()
	config.RequireEval = false
	decision = NewGate(config).Evaluate(uniform(2, 1), uniform(2, 0.5), []float64{1}, failed)
	if decision.Action != "commit" {
		t.Fatalf("expected commit when eval is not required, got %s", decision.Reason)
	}
}

func TestGateMultipleVetoes(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	proposed := []float64{math.Inf(1), 0}

	decision := g.Evaluate(uniform(2, 1), proposed, []float64{math.NaN()}, eval.EvalResult{})

	if len(decision.VetoSignals) < 3 {
		t.Fatalf("expected at least 3 vetoes, got %d", len(decision.VetoSignals))
	}
	if decision.SoftScore != 0 {
		t.Fatalf("expected zero soft score on veto, got %f", decision.SoftScore)
	}
}

func TestSoftScoreClipped(t *testing.T) {
	if s := computeSoftScore([]float64{1, 2}); s != 0 {
		t.Fatalf("rising loss should score 0, got %f", s)
	}
	if s := computeSoftScore([]float64{1, -1}); s != 1 {
		t.Fatalf("score should clip at 1, got %f", s)
	}
	if s := computeSoftScore([]float64{0, 0}); s != 0 {
		t.Fatalf("zero first loss should score 0, got %f", s)
	}
}
