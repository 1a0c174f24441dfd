package training

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/dataset"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/eval"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/gate"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/logging"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/metrics"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/neurofuzzy"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/rulebank"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/state"
)

// #region types

// Config bundles the settings of one training run.
type Config struct {
	Train neurofuzzy.TrainConfig
	Eval  eval.EvalConfig
	Gate  gate.GateConfig
	Seed  int64 // recorded only; the caller has already split the data
}

// DefaultConfig returns the default train, eval and gate settings.
func DefaultConfig() Config {
	return Config{
		Train: neurofuzzy.DefaultTrainConfig(),
		Eval:  eval.DefaultEvalConfig(),
		Gate:  gate.DefaultGateConfig(),
	}
}

// Outcome describes what a run did. Version is the newly committed version
// on commit and the unchanged active version on reject.
type Outcome struct {
	Parent    state.WeightVersion
	Version   state.WeightVersion
	Proposed  []float64
	Losses    []float64
	Baseline  eval.EvalResult
	Eval      eval.EvalResult
	Decision  gate.GateDecision
	Record    logging.TrainingRecord
	Committed bool
}

// #endregion types

// #region pipeline

// Pipeline trains rule weights starting from the store's active version,
// evaluates them on held-out data, gates them and records the result.
type Pipeline struct {
	store   *state.Store
	centers inference.Centers
	logger  *zap.Logger
	metrics *metrics.Collectors
}

type Option func(*Pipeline)

func WithLogger(l *zap.Logger) Option { return func(p *Pipeline) { p.logger = l } }

func WithMetrics(c *metrics.Collectors) Option { return func(p *Pipeline) { p.metrics = c } }

func WithCenters(c inference.Centers) Option { return func(p *Pipeline) { p.centers = c } }

func NewPipeline(store *state.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:   store,
		centers: inference.DefaultCenters(),
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Current returns the active version, creating the all-ones root version
// on an empty store.
func (p *Pipeline) Current(ctx context.Context) (state.WeightVersion, error) {
	cur, err := p.store.GetCurrent(ctx)
	if err == nil {
		return cur, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return state.WeightVersion{}, err
	}
	n := rulebank.Advanced().Len()
	cur, err = p.store.CreateInitial(ctx, n)
	if err != nil {
		return state.WeightVersion{}, err
	}
	p.logger.Info("created initial weights", zap.String("version", cur.VersionID), zap.Int("rules", n))
	if err := logging.LogDecision(p.store.DB(), logging.ProvenanceEntry{
		VersionID:   cur.VersionID,
		TriggerType: "initial",
		Decision:    "commit",
		Reason:      "uniform initial weights",
	}); err != nil {
		return state.WeightVersion{}, err
	}
	return cur, nil
}

// Model returns an initialised model carrying the active weights.
func (p *Pipeline) Model(ctx context.Context) (*neurofuzzy.Model, state.WeightVersion, error) {
	cur, err := p.Current(ctx)
	if err != nil {
		return nil, state.WeightVersion{}, err
	}
	m, err := p.newModel(cur.Weights)
	if err != nil {
		return nil, state.WeightVersion{}, fmt.Errorf("load version %s: %w", cur.VersionID, err)
	}
	return m, cur, nil
}

func (p *Pipeline) newModel(weights []float64) (*neurofuzzy.Model, error) {
	m := neurofuzzy.NewModel(neurofuzzy.WithLogger(p.logger), neurofuzzy.WithCenters(p.centers))
	m.Initialize()
	if err := m.SetWeights(weights); err != nil {
		return nil, err
	}
	return m, nil
}

// Run trains on train, evaluates on test (or on train when test is empty)
// and commits the new weights when the gate allows it. A provenance row is
// written either way.
func (p *Pipeline) Run(ctx context.Context, train, test dataset.Set, cfg Config) (Outcome, error) {
	model, parent, err := p.Model(ctx)
	if err != nil {
		return Outcome{}, err
	}
	holdout := test
	if holdout.Len() == 0 {
		holdout = train
	}
	harness := eval.NewEvalHarness(cfg.Eval)

	out := Outcome{Parent: parent, Version: parent}
	basePred, err := model.PredictBatch(holdout.Features)
	if err != nil {
		return Outcome{}, fmt.Errorf("baseline predict: %w", err)
	}
	out.Baseline = harness.Run(basePred, holdout.Targets)

	out.Losses, err = model.Train(train.Features, train.Targets, cfg.Train)
	if err != nil {
		return Outcome{}, err
	}
	out.Proposed = model.Weights()

	pred, err := model.PredictBatch(holdout.Features)
	if err != nil {
		return Outcome{}, fmt.Errorf("holdout predict: %w", err)
	}
	out.Eval = harness.Run(pred, holdout.Targets)
	out.Decision = gate.NewGate(cfg.Gate).Evaluate(parent.Weights, out.Proposed, out.Losses, out.Eval)

	out.Record = logging.TrainingRecord{
		Epochs:       cfg.Train.Epochs,
		LearningRate: cfg.Train.LearningRate,
		TrainSize:    train.Len(),
		TestSize:     test.Len(),
		Seed:         cfg.Seed,
		Losses:       out.Losses,
		BaselineMSE:  out.Baseline.Metric("mse"),
		MSE:          out.Eval.Metric("mse"),
		R2:           out.Eval.Metric("r2"),
		Thresholds: logging.TrainingThresholds{
			MaxMSE:             cfg.Eval.MaxMSE,
			MinR2:              cfg.Eval.MinR2,
			MaxDeltaNorm:       cfg.Gate.MaxDeltaNorm,
			WeightSumTolerance: cfg.Gate.WeightSumTolerance,
		},
		GateAction:    out.Decision.Action,
		GateSoftScore: out.Decision.SoftScore,
		GateVetoed:    out.Decision.Vetoed,
		GateReason:    out.Decision.Reason,
	}

	if out.Decision.Action == "commit" {
		metricsJSON, err := json.Marshal(out.Eval)
		if err != nil {
			return Outcome{}, fmt.Errorf("marshal eval: %w", err)
		}
		next := state.NextVersion(parent, out.Proposed, string(metricsJSON))
		if err := p.store.CommitWeights(ctx, next); err != nil {
			return Outcome{}, err
		}
		out.Version = next
		out.Committed = true
	}

	entry := logging.ProvenanceEntry{
		VersionID:   out.Version.VersionID,
		TriggerType: "train",
		DatasetHash: logging.DatasetHash(train.Rows()),
		Decision:    out.Decision.Action,
		Reason:      out.Decision.Reason,
		CreatedAt:   time.Now().UTC(),
	}
	if err := logging.LogTraining(p.store.DB(), entry, out.Record); err != nil {
		return Outcome{}, err
	}

	final := out.Losses[len(out.Losses)-1]
	p.metrics.TrainingFinished(final, out.Decision.Action)
	p.logger.Info("training run recorded",
		zap.String("decision", out.Decision.Action),
		zap.String("reason", out.Decision.Reason),
		zap.String("version", out.Version.VersionID),
		zap.Float64("final_loss", final),
		zap.Float64("holdout_mse", out.Record.MSE),
	)
	return out, nil
}

// Rollback activates versionID and records why.
func (p *Pipeline) Rollback(ctx context.Context, versionID, reason string) error {
	if err := p.store.Rollback(ctx, versionID); err != nil {
		return err
	}
	if reason == "" {
		reason = "manual rollback"
	}
	if err := logging.LogDecision(p.store.DB(), logging.ProvenanceEntry{
		VersionID:   versionID,
		TriggerType: "rollback",
		Decision:    "commit",
		Reason:      reason,
	}); err != nil {
		return err
	}
	p.logger.Info("rolled back", zap.String("version", versionID), zap.String("reason", reason))
	return nil
}

// #endregion pipeline
