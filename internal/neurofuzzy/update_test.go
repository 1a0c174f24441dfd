package neurofuzzy

import (
	"math"
	"testing"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
)

func constant(v float64) Predictor {
	return func(fuzzify.Measurement, []float64) float64 { return v }
}

func TestRunEpochDoesNotMutateInput(t *testing.T) {
	w := []float64{1, 1, 1}
	ex := []Example{{Target: 1}, {Target: 2}}

	res := RunEpoch(w, ex, 0.1, constant(0))

	for i, v := range w {
		if v != 1 {
			t.Fatalf("input weight %d mutated to %f", i, v)
		}
	}
	if len(res.Weights) != 3 {
		t.Fatalf("expected 3 weights, got %d", len(res.Weights))
	}
}

func TestRunEpochUniformStep(t *testing.T) {
	w := []float64{1, 2, 3}
	ex := []Example{{Target: 1}}

	// err = 1, step = 0.5 * 1 * 0.01 = 0.005
	res := RunEpoch(w, ex, 0.5, constant(0))

	total := 6.015
	want := []float64{1.005 / total, 2.005 / total, 3.005 / total}
	for i := range want {
		if math.Abs(res.Weights[i]-want[i]) > 1e-12 {
			t.Fatalf("weight %d = %f, want %f", i, res.Weights[i], want[i])
		}
	}
	if math.Abs(res.WeightSum-total) > 1e-12 {
		t.Fatalf("weight sum = %f, want %f", res.WeightSum, total)
	}
	if res.Loss != 1 {
		t.Fatalf("loss = %f, want 1", res.Loss)
	}
	if res.DeltaNorm == 0 {
		t.Fatal("expected non-zero delta norm")
	}
}

func TestRunEpochSequentialUpdates(t *testing.T) {
	// The predictor reports the first weight; the second example must see
	// the weights left by the first.
	var seen []float64
	pred := func(_ fuzzify.Measurement, w []float64) float64 {
		seen = append(seen, w[0])
		return 0
	}
	RunEpoch([]float64{1, 1}, []Example{{Target: 1}, {Target: 1}}, 1, pred)

	if len(seen) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(seen))
	}
	if seen[0] != 1 || math.Abs(seen[1]-1.01) > 1e-12 {
		t.Fatalf("predictor saw %v", seen)
	}
}

func TestRunEpochMeanSquaredError(t *testing.T) {
	ex := []Example{{Target: 1}, {Target: 3}}
	res := RunEpoch([]float64{1}, ex, 0, constant(1))
	// errors 0 and 2
	if res.Loss != 2 {
		t.Fatalf("loss = %f, want 2", res.Loss)
	}
}

func TestRunEpochZeroSumPropagatesNaN(t *testing.T) {
	res := RunEpoch([]float64{1, -1}, []Example{{Target: 0}}, 0.1, constant(0))
	for i, v := range res.Weights {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			t.Fatalf("weight %d = %f, expected non-finite", i, v)
		}
	}
}
