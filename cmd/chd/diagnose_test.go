package main

import (
	"math"
	"testing"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/membership"
)

func TestHedgedEngine(t *testing.T) {
	base := inference.New()

	same, err := hedgedEngine(base, "", 0)
	if err != nil || same != base {
		t.Fatalf("no hedge should return the engine unchanged, got %v, %v", same, err)
	}

	hedged, err := hedgedEngine(base, "indeed", 10)
	if err != nil {
		t.Fatalf("hedgedEngine: %v", err)
	}
	if got := hedged.Bank().Rules()[9].Hedge; got != membership.HedgeIndeed {
		t.Fatalf("rule 10 hedge = %q", got)
	}
	s, err := hedged.Evaluate(referencePatient, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	// Middle age AND light smoking is 0.5 for the reference patient.
	if math.Abs(s.PerRule[9]-0.25) > 1e-12 {
		t.Errorf("hedged strength = %v, want 0.25", s.PerRule[9])
	}
	if base.Bank().Rules()[9].Hedge != membership.HedgeNone {
		t.Error("base engine was modified")
	}
	if hedged.Centers() != base.Centers() {
		t.Errorf("centers not carried over: %+v", hedged.Centers())
	}
}

func TestHedgedEngine_Errors(t *testing.T) {
	base := inference.New()
	if _, err := hedgedEngine(base, "very", 10); err == nil {
		t.Error("expected error for unknown hedge")
	}
	if _, err := hedgedEngine(base, "somewhat", 0); err == nil {
		t.Error("expected error for missing rule id")
	}
	if _, err := hedgedEngine(base, "somewhat", 16); err == nil {
		t.Error("expected error for rule id past the bank")
	}
}
