package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	DiagnosesServedN = "chd_diagnoses_served_total"
	DiagnosesServedH = "The total number of diagnoses served"

	DiagnoseErrorsN = "chd_diagnose_errors_total"
	DiagnoseErrorsH = "The total number of rejected diagnose requests"

	TrainingLossN = "chd_training_loss_last"
	TrainingLossH = "The final-epoch MSE of the most recent training run"

	TrainingRunsN = "chd_training_runs_total"
	TrainingRunsH = "The total number of training runs by gate action"
)

// Collectors holds the service metrics. A nil *Collectors is valid and
// records nothing.
type Collectors struct {
	diagnosesServed prometheus.Counter
	diagnoseErrors  prometheus.Counter
	trainingLoss    prometheus.Gauge
	trainingRuns    *prometheus.CounterVec
}

// New registers the collectors on reg. Passing nil uses the default registerer.
func New(reg prometheus.Registerer) *Collectors {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Collectors{
		diagnosesServed: f.NewCounter(prometheus.CounterOpts{
			Name: DiagnosesServedN,
			Help: DiagnosesServedH,
		}),
		diagnoseErrors: f.NewCounter(prometheus.CounterOpts{
			Name: DiagnoseErrorsN,
			Help: DiagnoseErrorsH,
		}),
		trainingLoss: f.NewGauge(prometheus.GaugeOpts{
			Name: TrainingLossN,
			Help: TrainingLossH,
		}),
		trainingRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: TrainingRunsN,
			Help: TrainingRunsH,
		}, []string{"action"}),
	}
}

func (c *Collectors) DiagnoseServed() {
	if c != nil {
		c.diagnosesServed.Inc()
	}
}

func (c *Collectors) DiagnoseFailed() {
	if c != nil {
		c.diagnoseErrors.Inc()
	}
}

// TrainingFinished records the final loss and the gate action of a run.
func (c *Collectors) TrainingFinished(loss float64, action string) {
	if c == nil {
		return
	}
	c.trainingLoss.Set(loss)
	c.trainingRuns.WithLabelValues(action).Inc()
}
