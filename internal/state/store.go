package state

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrVersionNotFound is returned by Rollback for an unknown version.
var ErrVersionNotFound = errors.New("version not found")

// Fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS weight_versions (
	version_id    TEXT PRIMARY KEY,
	parent_id     TEXT,
	weights       BLOB NOT NULL,
	rule_count    INTEGER NOT NULL,
	created_at    TEXT NOT NULL,
	metrics_json  TEXT,
	FOREIGN KEY (parent_id) REFERENCES weight_versions(version_id)
);

CREATE TABLE IF NOT EXISTS provenance_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	version_id    TEXT NOT NULL,
	trigger_type  TEXT NOT NULL,
	dataset_hash  TEXT,
	config_json   TEXT,
	decision      TEXT NOT NULL,
	reason        TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES weight_versions(version_id)
);

CREATE TABLE IF NOT EXISTS active_weights (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	version_id    TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES weight_versions(version_id)
);
`

// #endregion schema

// #region store-struct
// Store keeps a versioned ledger of rule-weight vectors in SQLite. The model
// never reads it implicitly; callers load a version and apply it.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an already-migrated handle.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// #endregion constructor

// #region close
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the handle for the provenance logger.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion close

// #region create-initial
// CreateInitial stores n weights of 1.0 as a root version and activates it.
func (s *Store) CreateInitial(ctx context.Context, n int) (WeightVersion, error) {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0
	}
	rec := WeightVersion{
		VersionID: uuid.New().String(),
		Weights:   w,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CommitWeights(ctx, rec); err != nil {
		return WeightVersion{}, fmt.Errorf("create initial: %w", err)
	}
	return rec, nil
}

// #endregion create-initial

// #region get-current
// GetCurrent reads the active weight version.
func (s *Store) GetCurrent(ctx context.Context) (WeightVersion, error) {
	var versionID string
	err := s.db.QueryRowContext(ctx, `SELECT version_id FROM active_weights WHERE id = 1`).Scan(&versionID)
	if err != nil {
		return WeightVersion{}, fmt.Errorf("get active: %w", err)
	}
	return s.GetVersion(ctx, versionID)
}

// #endregion get-current

// #region get-version
// GetVersion retrieves a specific weight version by ID.
func (s *Store) GetVersion(ctx context.Context, id string) (WeightVersion, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT version_id, parent_id, weights, rule_count, created_at, metrics_json
		 FROM weight_versions WHERE version_id = ?`, id,
	)
	rec, err := scanVersion(row)
	if err != nil {
		return WeightVersion{}, fmt.Errorf("get version %s: %w", id, err)
	}
	return rec, nil
}

// #endregion get-version

// #region commit-weights
// CommitWeights inserts a new version and moves the active pointer to it in
// one transaction.
func (s *Store) CommitWeights(ctx context.Context, rec WeightVersion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO weight_versions (version_id, parent_id, weights, rule_count, created_at, metrics_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.VersionID, nullIfEmpty(rec.ParentID), encodeWeights(rec.Weights), len(rec.Weights),
		rec.CreatedAt.Format(timeLayout), nullIfEmpty(rec.MetricsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO active_weights (id, version_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version_id = excluded.version_id`,
		rec.VersionID,
	)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// #endregion commit-weights

// #region rollback
// Rollback points the active pointer at an existing version.
func (s *Store) Rollback(ctx context.Context, targetVersionID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM weight_versions WHERE version_id = ?`, targetVersionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check version: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("rollback %s: %w", targetVersionID, ErrVersionNotFound)
	}

	_, err = s.db.ExecContext(ctx, `UPDATE active_weights SET version_id = ? WHERE id = 1`, targetVersionID)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// #endregion rollback

// #region list-versions
// ListVersions returns up to limit versions, newest first.
func (s *Store) ListVersions(ctx context.Context, limit int) ([]WeightVersion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version_id, parent_id, weights, rule_count, created_at, metrics_json
		 FROM weight_versions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var records []WeightVersion
	for rows.Next() {
		rec, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListVersionsWithProvenance is ListVersions joined with the most recent
// provenance row of each version, if any.
func (s *Store) ListVersionsWithProvenance(ctx context.Context, limit int) ([]VersionWithProvenance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT v.version_id, v.parent_id, v.weights, v.rule_count, v.created_at, v.metrics_json,
		        p.trigger_type, p.decision, p.reason
		 FROM weight_versions v
		 LEFT JOIN provenance_log p ON p.id = (
		     SELECT MAX(id) FROM provenance_log WHERE version_id = v.version_id)
		 ORDER BY v.created_at DESC, v.rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list provenance: %w", err)
	}
	defer rows.Close()

	var out []VersionWithProvenance
	for rows.Next() {
		var (
			vp                        VersionWithProvenance
			parentID, metricsJSON     sql.NullString
			trigger, decision, reason sql.NullString
			blob                      []byte
			count                     int
			created                   string
		)
		if err := rows.Scan(&vp.VersionID, &parentID, &blob, &count, &created, &metricsJSON,
			&trigger, &decision, &reason); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		vp.ParentID = parentID.String
		vp.Weights = decodeWeights(blob, count)
		vp.CreatedAt, _ = time.Parse(timeLayout, created)
		vp.MetricsJSON = metricsJSON.String
		vp.TriggerType = trigger.String
		vp.Decision = decision.String
		vp.Reason = reason.String
		out = append(out, vp)
	}
	return out, rows.Err()
}

// #endregion list-versions

// #region helpers
type scanner interface {
	Scan(dest ...any) error
}

func scanVersion(sc scanner) (WeightVersion, error) {
	var (
		rec         WeightVersion
		parentID    sql.NullString
		metricsJSON sql.NullString
		blob        []byte
		count       int
		created     string
	)
	if err := sc.Scan(&rec.VersionID, &parentID, &blob, &count, &created, &metricsJSON); err != nil {
		return WeightVersion{}, err
	}
	rec.ParentID = parentID.String
	rec.Weights = decodeWeights(blob, count)
	rec.CreatedAt, _ = time.Parse(timeLayout, created)
	rec.MetricsJSON = metricsJSON.String
	return rec, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers

// #region vector-encoding
func encodeWeights(w []float64) []byte {
	buf := make([]byte, len(w)*8)
	for i, f := range w {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

// decodeWeights reads n little-endian float64s; missing trailing bytes decode as 0.
func decodeWeights(b []byte, n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		if i*8+8 <= len(b) {
			w[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
		}
	}
	return w
}

// #endregion vector-encoding
