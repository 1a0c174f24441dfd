package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/eval"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/logging"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/rulebank"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/state"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List weight versions in the ledger, or show one in detail",
	RunE: func(cmd *cobra.Command, args []string) error {
		last, _ := cmd.Flags().GetInt("last")
		version, _ := cmd.Flags().GetString("version")
		jsonOut, _ := cmd.Flags().GetBool("json")

		store, err := state.NewStore(cfg.Store.DBPath)
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}
		defer store.Close()

		if version != "" {
			return runDetailMode(cmd, store, version, jsonOut)
		}
		return runListMode(cmd, store, last, jsonOut)
	},
}

func init() {
	inspectCmd.Flags().Int("last", 20, "Show N most recent versions")
	inspectCmd.Flags().String("version", "", "Show a single version in detail")
	inspectCmd.Flags().Bool("json", false, "Output as JSON instead of a table")
}

// #region list-mode

type listRow struct {
	VersionID string   `json:"version_id"`
	ParentID  string   `json:"parent_id,omitempty"`
	Active    bool     `json:"active"`
	WeightSum float64  `json:"weight_sum"`
	Trigger   string   `json:"trigger"`
	Decision  string   `json:"decision"`
	MSE       *float64 `json:"mse,omitempty"`
	CreatedAt string   `json:"created_at"`
}

func runListMode(cmd *cobra.Command, store *state.Store, last int, jsonOut bool) error {
	versions, err := store.ListVersionsWithProvenance(cmd.Context(), last)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Println("No weight versions found.")
		return nil
	}
	var activeID string
	if cur, err := store.GetCurrent(cmd.Context()); err == nil {
		activeID = cur.VersionID
	}

	rows := make([]listRow, len(versions))
	for i, vp := range versions {
		r := listRow{
			VersionID: vp.VersionID,
			ParentID:  vp.ParentID,
			Active:    vp.VersionID == activeID,
			WeightSum: sum(vp.Weights),
			Trigger:   vp.TriggerType,
			Decision:  vp.Decision,
			CreatedAt: vp.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if res := parseEval(vp.MetricsJSON); res != nil {
			mse := res.Metric("mse")
			r.MSE = &mse
		}
		rows[len(versions)-1-i] = r
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-1s %-12s  %-12s  %10s  %-10s  %-8s  %8s  %s\n",
		"", "Version", "Parent", "Weight Sum", "Trigger", "Decision", "MSE", "Time")
	for _, r := range rows {
		mark := ""
		if r.Active {
			mark = "*"
		}
		mse := "—"
		if r.MSE != nil {
			mse = fmt.Sprintf("%.4f", *r.MSE)
		}
		fmt.Printf("%-1s %-12s  %-12s  %10.4f  %-10s  %-8s  %8s  %s\n",
			mark, shortID(r.VersionID), shortID(r.ParentID), r.WeightSum, r.Trigger, r.Decision, mse, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type ruleWeight struct {
	Rule   string         `json:"rule"`
	Class  rulebank.Class `json:"class,omitempty"`
	Weight float64        `json:"weight"`
}

type detailOutput struct {
	VersionID string                  `json:"version_id"`
	ParentID  string                  `json:"parent_id"`
	CreatedAt string                  `json:"created_at"`
	Weights   []ruleWeight            `json:"weights"`
	Eval      *eval.EvalResult        `json:"eval,omitempty"`
	Training  *logging.TrainingRecord `json:"training,omitempty"`
}

func runDetailMode(cmd *cobra.Command, store *state.Store, versionID string, jsonOut bool) error {
	v, err := store.GetVersion(cmd.Context(), versionID)
	if err != nil {
		return err
	}

	out := detailOutput{
		VersionID: v.VersionID,
		ParentID:  v.ParentID,
		CreatedAt: v.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Eval:      parseEval(v.MetricsJSON),
	}
	if out.Training, err = trainingRecord(cmd, store, v.VersionID); err != nil {
		return err
	}
	bank := rulebank.Advanced()
	rules, classes := bank.Rules(), bank.ClassOf()
	for i, w := range v.Weights {
		rw := ruleWeight{Rule: fmt.Sprintf("rule %d", i+1), Weight: w}
		if i < len(rules) {
			rw.Rule, rw.Class = rules[i].String(), classes[i]
		}
		out.Weights = append(out.Weights, rw)
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Version:  %s\n", out.VersionID)
	fmt.Printf("Parent:   %s\n", out.ParentID)
	fmt.Printf("Created:  %s\n", out.CreatedAt)
	fmt.Printf("\nWeights:\n")
	for _, rw := range out.Weights {
		fmt.Printf("  %-60s %-8s %.6f\n", rw.Rule, rw.Class, rw.Weight)
	}
	if out.Eval != nil {
		fmt.Printf("\nEvaluation: passed=%v\n", out.Eval.Passed)
		for _, m := range out.Eval.Metrics {
			fmt.Printf("  %-6s %.4f  pass=%v\n", m.Name, m.Value, m.Pass)
		}
	}
	if tr := out.Training; tr != nil {
		fmt.Printf("\nTraining run: %d epochs, lr=%g, %d train / %d test, seed=%d\n",
			tr.Epochs, tr.LearningRate, tr.TrainSize, tr.TestSize, tr.Seed)
		if n := len(tr.Losses); n > 0 {
			fmt.Printf("  loss %.4f -> %.4f\n", tr.Losses[0], tr.Losses[n-1])
		}
		fmt.Printf("  baseline mse %.4f, mse %.4f, r2 %.4f\n", tr.BaselineMSE, tr.MSE, tr.R2)
		fmt.Printf("  gate: %s (%s)\n", tr.GateAction, tr.GateReason)
	}
	return nil
}

// trainingRecord returns the committing training run of versionID, nil if
// the version was not produced by training.
func trainingRecord(cmd *cobra.Command, store *state.Store, versionID string) (*logging.TrainingRecord, error) {
	var configJSON sql.NullString
	err := store.DB().QueryRowContext(cmd.Context(),
		`SELECT config_json FROM provenance_log
		 WHERE version_id = ? AND trigger_type = 'train' AND decision = 'commit'
		 ORDER BY id DESC LIMIT 1`, versionID,
	).Scan(&configJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query training record: %w", err)
	}
	return logging.ParseTrainingRecord(configJSON.String), nil
}

// #endregion detail-mode

// #region helpers

func parseEval(s string) *eval.EvalResult {
	if s == "" {
		return nil
	}
	var r eval.EvalResult
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil
	}
	return &r
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion helpers
