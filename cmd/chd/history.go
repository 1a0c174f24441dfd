package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/history"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/state"
)

var historyCmd = &cobra.Command{
	Use:   "history [patient-id]",
	Short: "List recorded assessments, optionally for one patient",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		last, _ := cmd.Flags().GetInt("last")
		jsonOut, _ := cmd.Flags().GetBool("json")
		var patient string
		if len(args) == 1 {
			patient = args[0]
		}

		store, err := state.NewStore(cfg.Store.DBPath)
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}
		defer store.Close()
		hs, err := history.NewStore(store.DB())
		if err != nil {
			return err
		}

		as, err := hs.List(cmd.Context(), patient, last)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(as)
		}
		if len(as) == 0 {
			fmt.Println("No assessments recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-12s  %8s  %8s  %8s  %-8s  %s\n", "ID", "Patient", "Mamdani", "Sugeno", "Adaptive", "Risk", "Time")
		for _, a := range as {
			adaptive := "—"
			if a.Adaptive != nil {
				adaptive = fmt.Sprintf("%.3f", *a.Adaptive)
			}
			fmt.Printf("%-5d  %-12s  %8.3f  %8.3f  %8s  %-8s  %s\n",
				a.ID, a.PatientID, a.Mamdani, a.Sugeno, adaptive, riskLabel(a.Sugeno), a.CreatedAt.Format("2006-01-02T15:04:05Z"))
		}
		if patient != "" && len(as) > 1 {
			fmt.Printf("\nSugeno trend over %d assessments: %+.3f\n", len(as), history.Trend(as))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("last", 20, "Show N most recent assessments")
	historyCmd.Flags().Bool("json", false, "Output as JSON instead of a table")
}

func recordAssessment(ctx context.Context, a history.Assessment) error {
	store, err := state.NewStore(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()
	hs, err := history.NewStore(store.DB())
	if err != nil {
		return err
	}
	id, err := hs.Save(ctx, a)
	if err != nil {
		return err
	}
	log.Info("assessment recorded", zap.String("patient", a.PatientID), zap.Int64("id", id))
	return nil
}
