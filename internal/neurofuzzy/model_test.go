package neurofuzzy

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"go.uber.org/zap/zaptest"
)

var youngHealthy = fuzzify.Measurement{
	BloodPressure: 110, Cholesterol: 150, HeartRate: 65,
	Age: 25, Smoking: 0, Glucose: 80,
}

func trainingSet() ([]fuzzify.Measurement, []float64) {
	features := []fuzzify.Measurement{
		youngHealthy,
		{BloodPressure: 130, Cholesterol: 190, HeartRate: 75, Age: 45, Smoking: 0.3, Glucose: 110},
		{BloodPressure: 180, Cholesterol: 240, HeartRate: 130, Age: 70, Smoking: 1.5, Glucose: 220},
		{BloodPressure: 145, Cholesterol: 200, HeartRate: 85, Age: 55, Smoking: 0.5, Glucose: 100},
	}
	targets := []float64{0.5, 1.8, 3.6, 2.4}
	return features, targets
}

func initialized(t *testing.T) *Model {
	t.Helper()
	m := NewModel(WithLogger(zaptest.NewLogger(t)))
	m.Initialize()
	return m
}

func TestUninitializedModelRejectsCalls(t *testing.T) {
	m := NewModel()
	if m.State() != Uninitialized {
		t.Fatalf("expected uninitialized, got %s", m.State())
	}
	if _, err := m.Predict(youngHealthy); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("predict: expected ErrNotInitialized, got %v", err)
	}
	if _, err := m.PredictBatch([]fuzzify.Measurement{youngHealthy}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("predict batch: expected ErrNotInitialized, got %v", err)
	}
	f, y := trainingSet()
	if _, err := m.Train(f, y, DefaultTrainConfig()); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("train: expected ErrNotInitialized, got %v", err)
	}
	if err := m.SetWeights(make([]float64, 15)); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("set weights: expected ErrNotInitialized, got %v", err)
	}
}

func TestInitializeSetsUniformWeights(t *testing.T) {
	m := initialized(t)
	if m.State() != Initialized {
		t.Fatalf("expected initialized, got %s", m.State())
	}
	w := m.Weights()
	if len(w) != 15 {
		t.Fatalf("expected 15 weights, got %d", len(w))
	}
	for i, v := range w {
		if v != 1.0 {
			t.Fatalf("weight %d = %f, want 1.0", i, v)
		}
	}
}

func TestPredictYoungHealthy(t *testing.T) {
	m := initialized(t)
	got, err := m.Predict(youngHealthy)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	// Only r1 fires under the adaptive shapes.
	if math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("expected 0.75, got %f", got)
	}
}

func TestTrainMismatchedLengthsDoesNotMutate(t *testing.T) {
	m := initialized(t)
	f, y := trainingSet()

	_, err := m.Train(f, y[:2], DefaultTrainConfig())
	if !errors.Is(err, ErrInvalidTrainingSet) {
		t.Fatalf("expected ErrInvalidTrainingSet, got %v", err)
	}
	for i, v := range m.Weights() {
		if v != 1.0 {
			t.Fatalf("weight %d mutated to %f", i, v)
		}
	}
	if m.State() != Initialized {
		t.Fatalf("state changed to %s", m.State())
	}

	if _, err := m.Train(nil, nil, DefaultTrainConfig()); !errors.Is(err, ErrInvalidTrainingSet) {
		t.Fatalf("empty set: expected ErrInvalidTrainingSet, got %v", err)
	}
}

func TestTrainRejectsZeroEpochs(t *testing.T) {
	m := initialized(t)
	f, y := trainingSet()
	_, err := m.Train(f, y, TrainConfig{Epochs: 0, LearningRate: 0.01})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestTrainRenormalisesEveryEpoch(t *testing.T) {
	m := initialized(t)
	f, y := trainingSet()

	var reports []EpochReport
	cfg := TrainConfig{Epochs: 7, LearningRate: 0.05, OnEpoch: func(r EpochReport) {
		reports = append(reports, r)
	}}
	losses, err := m.Train(f, y, cfg)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if len(losses) != 7 || len(reports) != 7 {
		t.Fatalf("expected 7 losses and reports, got %d and %d", len(losses), len(reports))
	}
	for i, r := range reports {
		if r.Epoch != i+1 || r.Loss != losses[i] {
			t.Fatalf("report %d = %+v, loss %f", i, r, losses[i])
		}
	}
	if m.State() != Trained {
		t.Fatalf("expected trained, got %s", m.State())
	}

	var sum float64
	for _, v := range m.Weights() {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("weights sum to %f, want 1", sum)
	}
}

func TestUniformUpdateKeepsPredictionsStable(t *testing.T) {
	// Every weight receives the same step, so uniform weights stay uniform
	// and the weighted average is unchanged by training.
	m := initialized(t)
	f, y := trainingSet()

	before, err := m.PredictBatch(f)
	if err != nil {
		t.Fatalf("predict batch: %v", err)
	}
	losses, err := m.Train(f, y, TrainConfig{Epochs: 5, LearningRate: 0.01})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	after, err := m.PredictBatch(f)
	if err != nil {
		t.Fatalf("predict batch: %v", err)
	}
	for i := range before {
		if math.Abs(before[i]-after[i]) > 1e-9 {
			t.Fatalf("prediction %d moved from %f to %f", i, before[i], after[i])
		}
	}
	for i := 1; i < len(losses); i++ {
		if math.Abs(losses[i]-losses[0]) > 1e-9 {
			t.Fatalf("loss %d = %f differs from %f", i, losses[i], losses[0])
		}
	}
	w := m.Weights()
	for i := range w {
		if math.Abs(w[i]-1.0/15.0) > 1e-12 {
			t.Fatalf("weight %d = %f, want 1/15", i, w[i])
		}
	}
}

func TestReinitializeResets(t *testing.T) {
	m := initialized(t)
	f, y := trainingSet()
	if _, err := m.Train(f, y, TrainConfig{Epochs: 2, LearningRate: 0.01}); err != nil {
		t.Fatalf("train: %v", err)
	}
	m.Initialize()
	if m.State() != Initialized {
		t.Fatalf("expected initialized after reset, got %s", m.State())
	}
	if m.Weights()[0] != 1.0 {
		t.Fatalf("weights not reset: %v", m.Weights())
	}
}

func TestSetWeights(t *testing.T) {
	m := initialized(t)
	if err := m.SetWeights([]float64{1, 2}); !errors.Is(err, ErrWeightCount) {
		t.Fatalf("expected ErrWeightCount, got %v", err)
	}
	w := make([]float64, 15)
	w[0] = 1
	if err := m.SetWeights(w); err != nil {
		t.Fatalf("set weights: %v", err)
	}
	got, err := m.Predict(youngHealthy)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("expected 0.75 with only r1 weighted, got %f", got)
	}
}

func TestIndependentModelsDoNotShareWeights(t *testing.T) {
	a := initialized(t)
	b := initialized(t)
	w := make([]float64, 15)
	if err := a.SetWeights(w); err != nil {
		t.Fatalf("set weights: %v", err)
	}
	if b.Weights()[3] != 1.0 {
		t.Fatal("model b saw model a's weights")
	}
}

func TestConcurrentPredict(t *testing.T) {
	m := initialized(t)
	want, _ := m.Predict(youngHealthy)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.Predict(youngHealthy)
			if err != nil || got != want {
				t.Errorf("concurrent predict = %f, %v", got, err)
			}
		}()
	}
	wg.Wait()
}

func TestPredictNaNInputPropagates(t *testing.T) {
	m := initialized(t)
	x := youngHealthy
	x.BloodPressure = math.NaN()
	got, err := m.Predict(x)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !math.IsNaN(got) {
		t.Fatalf("expected NaN for a NaN blood pressure, got %v", got)
	}
}
