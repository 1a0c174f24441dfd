package eval

import (
	"math"
	"testing"
)

func TestEvalPassesOnPerfectPredictions(t *testing.T) {
	h := NewEvalHarness(DefaultEvalConfig())
	y := []float64{0.5, 1.5, 2.5, 3.5}

	result := h.Run(y, y)

	if !result.Passed {
		t.Fatalf("expected pass on perfect predictions, got fail: %s", result.Reason)
	}
	if result.Metric("mse") != 0 {
		t.Fatalf("expected zero mse, got %f", result.Metric("mse"))
	}
	if result.Metric("r2") != 1 {
		t.Fatalf("expected r2 = 1, got %f", result.Metric("r2"))
	}
}

func TestEvalFailsOnHighMSE(t *testing.T) {
	config := DefaultEvalConfig()
	config.MaxMSE = 0.5
	h := NewEvalHarness(config)

	result := h.Run([]float64{0, 0}, []float64{2, 2})

	if result.Passed {
		t.Fatal("expected fail on high mse")
	}
	foundFail := false
	for _, m := range result.Metrics {
		if m.Name == "mse" && !m.Pass {
			foundFail = true
		}
	}
	if !foundFail {
		t.Fatal("expected mse metric to fail")
	}
}

func TestEvalFailsOnLowR2(t *testing.T) {
	config := DefaultEvalConfig()
	config.MinR2 = 0.5
	config.MaxMSE = 100
	h := NewEvalHarness(config)

	// Predicting the mean gives R² = 0.
	result := h.Run([]float64{2, 2, 2}, []float64{1, 2, 3})

	if result.Passed {
		t.Fatal("expected fail on low r2")
	}
	if math.Abs(result.Metric("r2")) > 1e-12 {
		t.Fatalf("expected r2 = 0, got %f", result.Metric("r2"))
	}
}

func TestEvalMAEInformationalOnly(t *testing.T) {
	config := DefaultEvalConfig()
	config.MaxMAE = 0.01
	h := NewEvalHarness(config)

	result := h.Run([]float64{1.1, 2.1}, []float64{1, 2})

	if !result.Passed {
		t.Fatalf("mae check should be informational, not blocking: %s", result.Reason)
	}
	for _, m := range result.Metrics {
		if m.Name == "mae" && m.Pass {
			t.Fatal("mae metric should show pass=false when above threshold")
		}
	}
}

func TestEvalLengthMismatch(t *testing.T) {
	h := NewEvalHarness(DefaultEvalConfig())
	if h.Run([]float64{1}, []float64{1, 2}).Passed {
		t.Fatal("expected fail on length mismatch")
	}
	if h.Run(nil, nil).Passed {
		t.Fatal("expected fail on empty input")
	}
}

func TestEvalMetricCount(t *testing.T) {
	h := NewEvalHarness(DefaultEvalConfig())
	result := h.Run([]float64{1, 2}, []float64{1, 2.5})

	// mse + r2 + mae
	if len(result.Metrics) != 3 {
		t.Fatalf("expected 3 metrics, got %d", len(result.Metrics))
	}
}

func TestR2ConstantTargets(t *testing.T) {
	if R2([]float64{1, 1}, []float64{1, 1}) != 1 {
		t.Fatal("perfect fit on constant targets should score 1")
	}
	if R2([]float64{0, 1}, []float64{1, 1}) != 0 {
		t.Fatal("imperfect fit on constant targets should score 0")
	}
}
