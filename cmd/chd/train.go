package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/dataset"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/report"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train rule weights and commit them to the ledger if they pass the gate",
	RunE: func(cmd *cobra.Command, args []string) error {
		tc := cfg.Training
		if cmd.Flags().Changed("epochs") {
			tc.Epochs, _ = cmd.Flags().GetInt("epochs")
		}
		if cmd.Flags().Changed("lr") {
			tc.LearningRate, _ = cmd.Flags().GetFloat64("lr")
		}
		if cmd.Flags().Changed("samples") {
			tc.Samples, _ = cmd.Flags().GetInt("samples")
		}
		if cmd.Flags().Changed("test-fraction") {
			tc.TestFraction, _ = cmd.Flags().GetFloat64("test-fraction")
		}
		if cmd.Flags().Changed("seed") {
			tc.Seed, _ = cmd.Flags().GetInt64("seed")
		}

		var data dataset.Set
		if path, _ := cmd.Flags().GetString("csv"); path != "" {
			var err error
			if data, err = dataset.LoadCSV(path); err != nil {
				return err
			}
			log.Info("loaded dataset", zap.String("path", path), zap.Int("examples", data.Len()))
		} else {
			data = dataset.Synthetic(tc.Samples, tc.Seed)
			log.Info("generated synthetic dataset", zap.Int("examples", data.Len()), zap.Int64("seed", tc.Seed))
		}
		train, test := dataset.Split(data, tc.TestFraction, tc.Seed)

		p, store, err := openPipeline()
		if err != nil {
			return err
		}
		defer store.Close()

		rc := training.DefaultConfig()
		rc.Train.Epochs = tc.Epochs
		rc.Train.LearningRate = tc.LearningRate
		rc.Eval.MaxMSE = cfg.Gate.MaxMSE
		rc.Eval.MinR2 = cfg.Gate.MinR2
		rc.Gate.MaxDeltaNorm = cfg.Gate.MaxDeltaNorm
		rc.Seed = tc.Seed

		out, err := p.Run(cmd.Context(), train, test, rc)
		if err != nil {
			return err
		}

		fmt.Printf("Examples:      %d train / %d test\n", train.Len(), test.Len())
		fmt.Printf("Final loss:    %.4f (first %.4f)\n", out.Losses[len(out.Losses)-1], out.Losses[0])
		fmt.Printf("Held-out MSE:  %.4f (baseline %.4f)\n", out.Record.MSE, out.Record.BaselineMSE)
		fmt.Printf("Held-out R2:   %.4f\n", out.Record.R2)
		fmt.Printf("Decision:      %s (%s)\n", out.Decision.Action, out.Decision.Reason)
		fmt.Printf("Active:        %s\n", out.Version.VersionID)

		if path, _ := cmd.Flags().GetString("plot"); path != "" {
			img, err := report.LearningCurvePlot(out.Losses)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, img, 0644); err != nil {
				return fmt.Errorf("write plot: %w", err)
			}
			log.Info("learning curve saved", zap.String("path", path))
		}
		if path, _ := cmd.Flags().GetString("scatter"); path != "" {
			model, _, err := p.Model(cmd.Context())
			if err != nil {
				return err
			}
			holdout := test
			if holdout.Len() == 0 {
				holdout = train
			}
			pred, err := model.PredictBatch(holdout.Features)
			if err != nil {
				return err
			}
			img, err := report.ScatterPlot("Neuro-Fuzzy: predicted vs target", holdout.Targets, pred)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, img, 0644); err != nil {
				return fmt.Errorf("write plot: %w", err)
			}
			log.Info("scatter plot saved", zap.String("path", path))
		}
		return nil
	},
}

func init() {
	trainCmd.Flags().String("csv", "", "Train on this CSV (bp,chol,hr,age,smoking,glucose,chd) instead of synthetic data")
	trainCmd.Flags().Int("samples", 200, "Synthetic examples to generate")
	trainCmd.Flags().Int("epochs", 50, "Training epochs")
	trainCmd.Flags().Float64("lr", 0.01, "Learning rate")
	trainCmd.Flags().Float64("test-fraction", 0.2, "Fraction of examples held out for evaluation")
	trainCmd.Flags().Int64("seed", 42, "Seed for data generation and the train/test split")
	trainCmd.Flags().String("plot", "", "Write the learning curve to this PNG file")
	trainCmd.Flags().String("scatter", "", "Write a predicted-vs-target plot of the active weights to this PNG file")
}
