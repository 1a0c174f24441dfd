package neurofuzzy

import (
	"errors"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
)

// #region errors
var (
	// ErrNotInitialized is returned by Predict and Train before Initialize.
	ErrNotInitialized = errors.New("model not initialized")
	// ErrInvalidTrainingSet is returned when features and targets are empty
	// or differ in length.
	ErrInvalidTrainingSet = errors.New("invalid training set")
	// ErrInvalidConfig is returned for an epoch count below 1.
	ErrInvalidConfig = errors.New("invalid training config")
	// ErrWeightCount is returned by SetWeights for a wrong-length vector.
	ErrWeightCount = errors.New("weight count does not match rule count")
)

// #endregion errors

// #region model-state
// State is the lifecycle state of a Model.
type State int

const (
	Uninitialized State = iota
	Initialized
	Trained
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Trained:
		return "trained"
	}
	return "uninitialized"
}

// #endregion model-state

// #region example
// Example is one labelled training row.
type Example struct {
	Features fuzzify.Measurement
	Target   float64
}

// Examples zips features and targets. Callers validate lengths first.
func Examples(features []fuzzify.Measurement, targets []float64) []Example {
	out := make([]Example, len(features))
	for i := range features {
		out[i] = Example{Features: features[i], Target: targets[i]}
	}
	return out
}

// #endregion example

// #region train-config
// TrainConfig holds the caller-supplied training parameters.
type TrainConfig struct {
	Epochs       int
	LearningRate float64
	// OnEpoch, if set, is called after every epoch with the model lock held;
	// it must not call back into the model.
	OnEpoch func(EpochReport)
}

// DefaultTrainConfig returns 50 epochs at learning rate 0.01.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:       50,
		LearningRate: 0.01,
	}
}

// #endregion train-config

// #region epoch-report
// EpochReport is emitted once per completed epoch.
type EpochReport struct {
	Epoch     int // 1-based
	Loss      float64
	WeightSum float64 // sum before renormalisation
}

// #endregion epoch-report

// #region epoch-result
// EpochResult bundles everything returned by RunEpoch.
type EpochResult struct {
	Weights   []float64
	Loss      float64 // mean squared error over the epoch
	WeightSum float64 // sum the weights were divided by
	DeltaNorm float64 // L2 norm of new - old weights
}

// #endregion epoch-result
