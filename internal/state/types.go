package state

import (
	"time"

	"github.com/google/uuid"
)

// #region weight-version
// WeightVersion is a versioned snapshot of the neuro-fuzzy rule weights.
type WeightVersion struct {
	VersionID   string
	ParentID    string
	Weights     []float64
	CreatedAt   time.Time
	MetricsJSON string
}

// NextVersion derives a child of parent carrying weights. The caller commits it.
func NextVersion(parent WeightVersion, weights []float64, metricsJSON string) WeightVersion {
	return WeightVersion{
		VersionID:   uuid.New().String(),
		ParentID:    parent.VersionID,
		Weights:     append([]float64(nil), weights...),
		CreatedAt:   time.Now().UTC(),
		MetricsJSON: metricsJSON,
	}
}

// #endregion weight-version

// #region version-with-provenance
// VersionWithProvenance pairs a weight version with its latest provenance row.
type VersionWithProvenance struct {
	WeightVersion
	TriggerType string
	Decision    string
	Reason      string
}

// #endregion version-with-provenance
