package eval

// #region eval-config
// EvalConfig holds thresholds for held-out validation of a predictor.
type EvalConfig struct {
	MaxMSE float64 // fail if mean squared error exceeds this
	MinR2  float64 // fail if R² falls below this
	MaxMAE float64 // informational only
}

// DefaultEvalConfig returns thresholds loose enough for the untrained
// expert weights to pass on synthetic data.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		MaxMSE: 2.0,
		MinR2:  -1.0,
		MaxMAE: 1.0,
	}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Pass  bool    `json:"pass"`
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of one harness run.
type EvalResult struct {
	Passed  bool         `json:"passed"`
	Metrics []EvalMetric `json:"metrics"`
	Reason  string       `json:"reason"`
}

// Metric returns the named metric value, 0 when absent.
func (r EvalResult) Metric(name string) float64 {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m.Value
		}
	}
	return 0
}

// #endregion eval-result
