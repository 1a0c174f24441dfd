package neurofuzzy

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/rulebank"
)

// #region model
// Model is the neuro-fuzzy CHD predictor: fixed membership shapes, the
// advanced rule bank and one adaptive weight per rule. Predict may run
// concurrently; Train excludes everything else.
type Model struct {
	mu      sync.RWMutex
	state   State
	params  fuzzify.ParameterSet
	centers inference.Centers
	engine  *inference.Engine
	weights []float64
	logger  *zap.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for per-epoch progress.
func WithLogger(l *zap.Logger) Option { return func(m *Model) { m.logger = l } }

// WithParameters replaces the adaptive parameter set used on Initialize.
func WithParameters(p fuzzify.ParameterSet) Option { return func(m *Model) { m.params = p } }

// WithCenters replaces the class centers.
func WithCenters(c inference.Centers) Option { return func(m *Model) { m.centers = c } }

// NewModel returns an Uninitialized model.
func NewModel(opts ...Option) *Model {
	m := &Model{
		params:  fuzzify.AdaptiveParameters(),
		centers: inference.DefaultCenters(),
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// #endregion model

// #region initialize
// Initialize installs the membership parameters and resets every weight to
// 1.0. Calling it again discards any training.
func (m *Model) Initialize() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.engine = inference.New(
		inference.WithFuzzifier(fuzzify.New(m.params)),
		inference.WithBank(rulebank.Advanced()),
		inference.WithCenters(m.centers),
	)
	m.weights = make([]float64, m.engine.Bank().Len())
	for i := range m.weights {
		m.weights[i] = 1.0
	}
	m.state = Initialized
}

// #endregion initialize

// #region accessors
func (m *Model) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Weights returns a copy of the current weights, nil before Initialize.
func (m *Model) Weights() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]float64(nil), m.weights...)
}

// SetWeights replaces the weights, e.g. when restoring a ledger version.
// The state is left unchanged.
func (m *Model) SetWeights(w []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Uninitialized {
		return fmt.Errorf("set weights: %w", ErrNotInitialized)
	}
	if len(w) != len(m.weights) {
		return fmt.Errorf("set weights: %w: got %d, want %d", ErrWeightCount, len(w), len(m.weights))
	}
	copy(m.weights, w)
	return nil
}

// #endregion accessors

// #region predict
// Predict scores one measurement with the current weights.
func (m *Model) Predict(x fuzzify.Measurement) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == Uninitialized {
		return 0, fmt.Errorf("predict: %w", ErrNotInitialized)
	}
	return m.predict(x, m.weights), nil
}

// PredictBatch scores every measurement in order.
func (m *Model) PredictBatch(xs []fuzzify.Measurement) ([]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == Uninitialized {
		return nil, fmt.Errorf("predict batch: %w", ErrNotInitialized)
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = m.predict(x, m.weights)
	}
	return out, nil
}

func (m *Model) predict(x fuzzify.Measurement, w []float64) float64 {
	// The weight vector always matches the bank, so Evaluate cannot fail.
	s, _ := m.engine.Evaluate(x, w)
	return inference.WeightedAverage(s, m.centers)
}

// #endregion predict

// #region train
// Train runs cfg.Epochs epochs over the examples and returns the per-epoch
// mean squared error. All validation happens before any weight changes.
func (m *Model) Train(features []fuzzify.Measurement, targets []float64, cfg TrainConfig) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Uninitialized {
		return nil, fmt.Errorf("train: %w", ErrNotInitialized)
	}
	if len(features) != len(targets) {
		return nil, fmt.Errorf("train: %w: %d features, %d targets", ErrInvalidTrainingSet, len(features), len(targets))
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("train: %w: no examples", ErrInvalidTrainingSet)
	}
	if cfg.Epochs < 1 {
		return nil, fmt.Errorf("train: %w: epochs %d", ErrInvalidConfig, cfg.Epochs)
	}

	examples := Examples(features, targets)
	losses := make([]float64, 0, cfg.Epochs)
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		res := RunEpoch(m.weights, examples, cfg.LearningRate, m.predict)
		m.weights = res.Weights
		losses = append(losses, res.Loss)

		m.logger.Debug("epoch complete",
			zap.Int("epoch", epoch),
			zap.Int("epochs", cfg.Epochs),
			zap.Float64("loss", res.Loss),
			zap.Float64("weight_sum", res.WeightSum),
			zap.Float64("delta_norm", res.DeltaNorm),
		)
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(EpochReport{Epoch: epoch, Loss: res.Loss, WeightSum: res.WeightSum})
		}
	}
	m.state = Trained

	m.logger.Info("training complete",
		zap.Int("examples", len(examples)),
		zap.Int("epochs", cfg.Epochs),
		zap.Float64("final_loss", losses[len(losses)-1]),
	)
	return losses, nil
}

// #endregion train
