package gate

// #region veto-type
// VetoType enumerates hard veto categories.
type VetoType string

const (
	VetoNonFinite     VetoType = "non_finite_weights"
	VetoNormalisation VetoType = "weight_sum_drift"
	VetoDivergence    VetoType = "loss_divergence"
	VetoConstraint    VetoType = "constraint_violation"
	VetoEvalFailure   VetoType = "eval_failure"
)

// #endregion veto-type

// #region veto-signal
// VetoSignal represents a detected hard veto condition.
type VetoSignal struct {
	Type   VetoType
	Reason string
}

// #endregion veto-signal

// #region gate-config
// GateConfig holds thresholds for committing a trained weight vector.
type GateConfig struct {
	MaxDeltaNorm       float64 // max L2 norm of proposed - old after scaling old to sum 1
	WeightSumTolerance float64 // |sum(proposed) - 1| must stay within this
	RequireEval        bool    // veto when the held-out eval failed
}

// DefaultGateConfig returns the thresholds used by the train command.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		MaxDeltaNorm:       1.0,
		WeightSumTolerance: 1e-6,
		RequireEval:        true,
	}
}

// #endregion gate-config

// #region gate-decision
// GateDecision is the output of the gate evaluation.
type GateDecision struct {
	Action      string // "commit" | "reject"
	Reason      string
	Vetoed      bool
	VetoSignals []VetoSignal // non-empty if vetoed
	SoftScore   float64      // 0-1 relative loss improvement (for logging)
	DeltaNorm   float64
}

// #endregion gate-decision
