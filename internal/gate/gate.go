package gate

import (
	"fmt"
	"math"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/eval"
)

// #region gate
// Gate decides whether a trained weight vector may replace the active one.
type Gate struct {
	config GateConfig
}

// NewGate creates a gate with the given configuration.
func NewGate(config GateConfig) *Gate {
	return &Gate{config: config}
}

// Evaluate checks hard vetoes first, then scores the loss curve.
// old is the active weight vector, proposed the trained one, losses the
// per-epoch training loss and result the held-out evaluation.
func (g *Gate) Evaluate(old, proposed, losses []float64, result eval.EvalResult) GateDecision {
	var vetoes []VetoSignal

	// --- Hard veto pass ---

	// 1. Every weight must be finite
	for i, w := range proposed {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			vetoes = append(vetoes, VetoSignal{
				Type:   VetoNonFinite,
				Reason: fmt.Sprintf("weight %d is %v", i, w),
			})
			break
		}
	}

	// 2. Shape and normalisation
	if len(proposed) != len(old) {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoConstraint,
			Reason: fmt.Sprintf("proposed has %d weights, active has %d", len(proposed), len(old)),
		})
	}
	sum := vectorSum(proposed)
	if !(math.Abs(sum-1) <= g.config.WeightSumTolerance) {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoNormalisation,
			Reason: fmt.Sprintf("weight sum %.6f outside 1±%g", sum, g.config.WeightSumTolerance),
		})
	}

	// 3. Loss curve must exist and end finite
	if len(losses) == 0 {
		vetoes = append(vetoes, VetoSignal{Type: VetoDivergence, Reason: "no training epochs"})
	} else if last := losses[len(losses)-1]; math.IsNaN(last) || math.IsInf(last, 0) {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoDivergence,
			Reason: fmt.Sprintf("final loss is %v", last),
		})
	}

	// 4. Delta norm against the active weights rescaled to sum 1
	deltaNorm := 0.0
	if len(proposed) == len(old) {
		deltaNorm = vectorNorm(vectorDelta(normalised(old), proposed))
		if deltaNorm > g.config.MaxDeltaNorm {
			vetoes = append(vetoes, VetoSignal{
				Type:   VetoConstraint,
				Reason: fmt.Sprintf("delta norm %.4f exceeds cap %.4f", deltaNorm, g.config.MaxDeltaNorm),
			})
		}
	}

	// 5. Held-out evaluation
	if g.config.RequireEval && !result.Passed {
		vetoes = append(vetoes, VetoSignal{Type: VetoEvalFailure, Reason: result.Reason})
	}

	if len(vetoes) > 0 {
		return GateDecision{
			Action:      "reject",
			Reason:      fmt.Sprintf("hard veto: %s", vetoes[0].Reason),
			Vetoed:      true,
			VetoSignals: vetoes,
			SoftScore:   0,
			DeltaNorm:   deltaNorm,
		}
	}

	// --- Soft scoring ---
	softScore := computeSoftScore(losses)

	return GateDecision{
		Action:    "commit",
		Reason:    fmt.Sprintf("passed gate: soft_score=%.4f", softScore),
		SoftScore: softScore,
		DeltaNorm: deltaNorm,
	}
}

// #endregion gate

// #region helpers
func vectorSum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

// normalised divides v by its sum; a zero sum returns v unchanged.
func normalised(v []float64) []float64 {
	s := vectorSum(v)
	out := append([]float64(nil), v...)
	if s == 0 {
		return out
	}
	for i := range out {
		out[i] /= s
	}
	return out
}

func vectorDelta(old, proposed []float64) []float64 {
	delta := make([]float64, len(old))
	for i := range delta {
		delta[i] = proposed[i] - old[i]
	}
	return delta
}

func vectorNorm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// computeSoftScore is the relative drop from the first to the last epoch
// loss, clipped to [0, 1]. A flat curve scores 0. Logged, never blocking.
func computeSoftScore(losses []float64) float64 {
	first, last := losses[0], losses[len(losses)-1]
	if first <= 0 {
		return 0
	}
	score := (first - last) / first
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	}
	return score
}

// #endregion helpers
