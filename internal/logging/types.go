package logging

import "time"

// #region provenance-entry
// ProvenanceEntry is a single row in the provenance_log table.
type ProvenanceEntry struct {
	VersionID   string
	TriggerType string // "initial" | "train" | "rollback"
	DatasetHash string
	ConfigJSON  string
	Decision    string // "commit" | "reject" | "no_op"
	Reason      string
	CreatedAt   time.Time
}

// #endregion provenance-entry

// #region training-record
// TrainingRecord captures everything that fed a commit decision for one
// training run. Serialized as JSON into provenance_log.config_json.
type TrainingRecord struct {
	Epochs       int     `json:"epochs"`
	LearningRate float64 `json:"learning_rate"`
	TrainSize    int     `json:"train_size"`
	TestSize     int     `json:"test_size"`
	Seed         int64   `json:"seed"`

	// Per-epoch loss curve
	Losses []float64 `json:"losses"`

	// Held-out evaluation
	BaselineMSE float64 `json:"baseline_mse"`
	MSE         float64 `json:"mse"`
	R2          float64 `json:"r2"`

	// Thresholds active at decision time
	Thresholds TrainingThresholds `json:"thresholds"`

	// Gate output
	GateAction    string  `json:"gate_action"`
	GateSoftScore float64 `json:"gate_soft_score"`
	GateVetoed    bool    `json:"gate_vetoed"`
	GateReason    string  `json:"gate_reason"`
}

// TrainingThresholds captures the eval and gate config active at decision time.
type TrainingThresholds struct {
	MaxMSE             float64 `json:"max_mse"`
	MinR2              float64 `json:"min_r2"`
	MaxDeltaNorm       float64 `json:"max_delta_norm"`
	WeightSumTolerance float64 `json:"weight_sum_tolerance"`
}

// #endregion training-record
