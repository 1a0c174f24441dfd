package logging

import (
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// #region log-decision
// LogDecision writes a provenance entry to the provenance_log table.
func LogDecision(db *sql.DB, entry ProvenanceEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO provenance_log (version_id, trigger_type, dataset_hash, config_json, decision, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.VersionID,
		entry.TriggerType,
		nullIfEmpty(entry.DatasetHash),
		nullIfEmpty(entry.ConfigJSON),
		entry.Decision,
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// #endregion log-decision

// #region log-training
// LogTraining serializes rec into the entry's ConfigJSON and writes it.
func LogTraining(db *sql.DB, entry ProvenanceEntry, rec TrainingRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal training record: %w", err)
	}
	entry.ConfigJSON = string(raw)
	return LogDecision(db, entry)
}

// ParseTrainingRecord decodes a config_json column; nil for empty or invalid input.
func ParseTrainingRecord(s string) *TrainingRecord {
	if s == "" {
		return nil
	}
	var rec TrainingRecord
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return nil
	}
	return &rec
}

// #endregion log-training

// #region dataset-hash
// DatasetHash fingerprints a numeric dataset row by row. Identical rows in
// identical order give identical hashes.
func DatasetHash(rows [][]float64) string {
	h := sha256.New()
	var buf [8]byte
	for _, row := range rows {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// #endregion dataset-hash

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
