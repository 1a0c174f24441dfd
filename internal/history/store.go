package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// #region types

// Assessment is one recorded diagnosis of a patient.
type Assessment struct {
	ID          int64               `json:"id"`
	PatientID   string              `json:"patient_id"`
	Measurement fuzzify.Measurement `json:"measurement"`
	Mamdani     float64             `json:"mamdani"`
	Sugeno      float64             `json:"sugeno"`
	Adaptive    *float64            `json:"adaptive,omitempty"`
	VersionID   string              `json:"version_id,omitempty"` // weight version behind Adaptive
	CreatedAt   time.Time           `json:"created_at"`
}

// FromDiagnosis builds an unsaved assessment from an engine result.
func FromDiagnosis(patientID string, m fuzzify.Measurement, d inference.Diagnosis) Assessment {
	return Assessment{PatientID: patientID, Measurement: m, Mamdani: d.Mamdani, Sugeno: d.Sugeno}
}

// #endregion types

// #region store

// Store persists assessments next to the weight ledger.
type Store struct {
	db *sql.DB
}

// NewStore creates the assessments table if needed and returns a store.
func NewStore(db *sql.DB) (*Store, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS assessments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id TEXT NOT NULL,
		measurement_json TEXT NOT NULL,
		mamdani REAL NOT NULL,
		sugeno REAL NOT NULL,
		adaptive REAL,
		version_id TEXT,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create assessments table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_assessments_patient ON assessments(patient_id, id)`); err != nil {
		return nil, fmt.Errorf("create assessments index: %w", err)
	}
	return &Store{db: db}, nil
}

// Save records a and returns its row id. A zero CreatedAt is set to now.
func (s *Store) Save(ctx context.Context, a Assessment) (int64, error) {
	if a.PatientID == "" {
		return 0, fmt.Errorf("save assessment: empty patient id")
	}
	mj, err := json.Marshal(a.Measurement)
	if err != nil {
		return 0, fmt.Errorf("marshal measurement: %w", err)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	var adaptive sql.NullFloat64
	if a.Adaptive != nil {
		adaptive = sql.NullFloat64{Float64: *a.Adaptive, Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (patient_id, measurement_json, mamdani, sugeno, adaptive, version_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.PatientID, string(mj), a.Mamdani, a.Sugeno, adaptive,
		sql.NullString{String: a.VersionID, Valid: a.VersionID != ""},
		a.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert assessment: %w", err)
	}
	return res.LastInsertId()
}

// Latest returns the patient's most recent assessment, or nil if none exists.
func (s *Store) Latest(ctx context.Context, patientID string) (*Assessment, error) {
	as, err := s.List(ctx, patientID, 1)
	if err != nil || len(as) == 0 {
		return nil, err
	}
	return &as[len(as)-1], nil
}

// List returns up to limit of the most recent assessments, oldest first.
// An empty patientID lists every patient; limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, patientID string, limit int) ([]Assessment, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, patient_id, measurement_json, mamdani, sugeno, adaptive, version_id, created_at
		 FROM assessments WHERE (? = '' OR patient_id = ?)
		 ORDER BY id DESC LIMIT ?`, patientID, patientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var (
			a        Assessment
			mj, ts   string
			adaptive sql.NullFloat64
			version  sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.PatientID, &mj, &a.Mamdani, &a.Sugeno, &adaptive, &version, &ts); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if err := json.Unmarshal([]byte(mj), &a.Measurement); err != nil {
			return nil, fmt.Errorf("parse measurement of assessment %d: %w", a.ID, err)
		}
		if adaptive.Valid {
			v := adaptive.Float64
			a.Adaptive = &v
		}
		a.VersionID = version.String
		a.CreatedAt, _ = time.Parse(timeLayout, ts)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// #endregion store

// #region trend

// Trend returns the change in Sugeno score from the first to the last
// assessment, zero when fewer than two exist.
func Trend(as []Assessment) float64 {
	if len(as) < 2 {
		return 0
	}
	return as[len(as)-1].Sugeno - as[0].Sugeno
}

// #endregion trend
