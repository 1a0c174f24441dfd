package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/dataset"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a regression fixture and compare scores against recorded expectations",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("fixture")
		if path == "" {
			return errors.New("--fixture is required")
		}
		f, err := replay.LoadFixture(path)
		if err != nil {
			return err
		}
		engine, err := f.Config.ToEngine()
		if err != nil {
			return err
		}

		cases := make([]replay.Case, len(f.Cases))
		for i := range f.Cases {
			cases[i] = f.Cases[i].ToCase()
		}
		results := replay.Replay(engine, cases, f.Config.ToReplayConfig())

		fmt.Printf("Fixture: %s (%d cases)\n\n", f.Description, len(cases))
		fmt.Printf("%-20s  %-6s  %8s  %8s  %8s  %10s\n", "Case", "Result", "Mamdani", "Sugeno", "Adaptive", "Max Delta")
		for _, r := range results {
			fmt.Printf("%-20s  %-6s  %8.3f  %8.3f  %8.3f  %10.2e\n",
				r.CaseID, r.Action, r.Diagnosis.Mamdani, r.Diagnosis.Sugeno, r.Adaptive, r.MaxDelta)
			if r.Action != "pass" {
				fmt.Printf("  %s\n", r.Reason)
			}
		}

		s := replay.Summarize(results)
		fmt.Printf("\n%d passed, %d failed, %d errors (max delta %.2e)\n", s.Passed, s.Failed, s.Errors, s.MaxDelta)
		if s.Failed > 0 || s.Errors > 0 {
			return fmt.Errorf("replay: %d of %d cases did not pass", s.Failed+s.Errors, s.TotalCases)
		}
		return nil
	},
}

var replayExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Record current engine output as a new regression fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return errors.New("--out is required")
		}
		desc, _ := cmd.Flags().GetString("description")
		withWeights, _ := cmd.Flags().GetBool("with-weights")

		var data dataset.Set
		if path, _ := cmd.Flags().GetString("csv"); path != "" {
			var err error
			if data, err = dataset.LoadCSV(path); err != nil {
				return err
			}
		} else {
			n, _ := cmd.Flags().GetInt("samples")
			seed, _ := cmd.Flags().GetInt64("seed")
			data = dataset.Synthetic(n, seed)
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		centers := cfg.Engine.Centers()
		fc := replay.FixtureConfig{Bank: cfg.Engine.Bank, Centers: &centers}
		f := replay.ExportFixture(desc, fc, engine, data.Features, nil)

		if withWeights {
			p, store, err := openPipeline()
			if err != nil {
				return err
			}
			defer store.Close()
			model, v, err := p.Model(cmd.Context())
			if err != nil {
				return err
			}
			f.Config.Weights = model.Weights()
			for i := range f.Cases {
				s, err := model.Predict(f.Cases[i].Measurement)
				if err != nil {
					return err
				}
				f.Cases[i].Expected.Adaptive = &s
			}
			log.Info("recorded adaptive expectations", zap.String("version", v.VersionID))
		}

		raw, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal fixture: %w", err)
		}
		if err := os.WriteFile(out, append(raw, '\n'), 0644); err != nil {
			return fmt.Errorf("write fixture: %w", err)
		}
		fmt.Printf("Wrote %d cases to %s\n", len(f.Cases), out)
		return nil
	},
}

func init() {
	replayCmd.Flags().String("fixture", "", "Path to fixture JSON")

	replayExportCmd.Flags().String("out", "", "Output fixture JSON path")
	replayExportCmd.Flags().String("description", "exported baseline", "Fixture description")
	replayExportCmd.Flags().String("csv", "", "Record these patients (CSV) instead of synthetic ones")
	replayExportCmd.Flags().Int("samples", 10, "Synthetic patients to record")
	replayExportCmd.Flags().Int64("seed", 42, "Seed for synthetic patients")
	replayExportCmd.Flags().Bool("with-weights", false, "Also record adaptive scores from the active ledger weights")

	replayCmd.AddCommand(replayExportCmd)
}
