package neurofuzzy

import (
	"math"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
)

// errorScale damps the shared error signal applied to every weight.
const errorScale = 0.01

// Predictor scores one measurement under a weight vector.
type Predictor func(m fuzzify.Measurement, weights []float64) float64

// #region run-epoch
// RunEpoch is a pure function computing one training epoch from the given
// weights. Examples are visited in order and each update sees the weights
// left by the previous one, so the loop is inherently sequential. Every
// weight moves by the same lr*err*errorScale step; after the pass the
// weights are divided by their sum. A zero sum yields Inf/NaN weights.
func RunEpoch(weights []float64, examples []Example, lr float64, predict Predictor) EpochResult {
	w := append([]float64(nil), weights...)

	var loss float64
	for _, ex := range examples {
		pred := predict(ex.Features, w)
		err := ex.Target - pred
		loss += err * err

		step := lr * err * errorScale
		for i := range w {
			w[i] += step
		}
	}

	var total float64
	for _, v := range w {
		total += v
	}
	for i := range w {
		w[i] /= total
	}

	var sumSq float64
	for i := range w {
		d := w[i] - weights[i]
		sumSq += d * d
	}

	mse := loss
	if len(examples) > 0 {
		mse = loss / float64(len(examples))
	}

	return EpochResult{
		Weights:   w,
		Loss:      mse,
		WeightSum: total,
		DeltaNorm: math.Sqrt(sumSq),
	}
}

// #endregion run-epoch
