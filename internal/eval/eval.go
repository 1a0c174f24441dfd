package eval

import (
	"fmt"
	"math"
)

// #region eval-harness
// EvalHarness scores predictions against held-out targets.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run compares predictions with targets. MSE and R² are blocking checks; MAE
// is reported but never fails the run.
func (h *EvalHarness) Run(predictions, targets []float64) EvalResult {
	if len(predictions) != len(targets) || len(targets) == 0 {
		return EvalResult{
			Passed: false,
			Reason: fmt.Sprintf("eval failed: %d predictions for %d targets", len(predictions), len(targets)),
		}
	}

	var metrics []EvalMetric
	passed := true
	var failReasons []string

	// 1. Mean squared error
	mse := MSE(predictions, targets)
	msePass := mse <= h.config.MaxMSE
	metrics = append(metrics, EvalMetric{Name: "mse", Value: mse, Pass: msePass})
	if !msePass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("mse %.4f exceeds %.4f", mse, h.config.MaxMSE))
	}

	// 2. Coefficient of determination
	r2 := R2(predictions, targets)
	r2Pass := r2 >= h.config.MinR2
	metrics = append(metrics, EvalMetric{Name: "r2", Value: r2, Pass: r2Pass})
	if !r2Pass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("r2 %.4f below %.4f", r2, h.config.MinR2))
	}

	// 3. Mean absolute error, informational
	mae := MAE(predictions, targets)
	metrics = append(metrics, EvalMetric{Name: "mae", Value: mae, Pass: mae <= h.config.MaxMAE})

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness

// #region metrics
// MSE is the mean squared error. Callers guarantee equal non-zero lengths.
func MSE(pred, target []float64) float64 {
	var sum float64
	for i := range target {
		d := target[i] - pred[i]
		sum += d * d
	}
	return sum / float64(len(target))
}

// MAE is the mean absolute error.
func MAE(pred, target []float64) float64 {
	var sum float64
	for i := range target {
		sum += math.Abs(target[i] - pred[i])
	}
	return sum / float64(len(target))
}

// R2 is 1 - SSres/SStot. Constant targets give 1 for a perfect fit and 0
// otherwise.
func R2(pred, target []float64) float64 {
	var mean float64
	for _, y := range target {
		mean += y
	}
	mean /= float64(len(target))

	var ssRes, ssTot float64
	for i, y := range target {
		ssRes += (y - pred[i]) * (y - pred[i])
		ssTot += (y - mean) * (y - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// #endregion metrics
