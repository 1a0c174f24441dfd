package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/report"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/sensitivity"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep each factor from 50% to 150% of the base patient",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		steps, _ := cmd.Flags().GetInt("steps")
		base := measurementFromFlags(cmd)
		r := sensitivity.Analyze(engine, base, sensitivity.Linspace(0.5, 1.5, steps))

		fmt.Printf("%-15s", "Factor")
		for _, v := range r.Variations {
			fmt.Printf(" %6.0f%%", v*100)
		}
		fmt.Println()
		for _, f := range fuzzify.Factors() {
			fmt.Printf("%-15s", f)
			for _, y := range r.Curves[f] {
				fmt.Printf(" %7.3f", y)
			}
			fmt.Println()
		}

		f, rg := r.MostInfluential()
		fmt.Printf("\nMost influential factor: %s\n", f)
		fmt.Printf("Range of influence: %.3f\n", rg)

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			img, err := report.SensitivityPlot(r)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, img, 0644); err != nil {
				return fmt.Errorf("write plot: %w", err)
			}
			log.Info("sensitivity plot saved", zap.String("path", out))
		}
		return nil
	},
}

func init() {
	addMeasurementFlags(sensitivityCmd, referencePatient)
	sensitivityCmd.Flags().Int("steps", 11, "Number of variations between 50% and 150%")
	sensitivityCmd.Flags().String("out", "", "Write the sensitivity plot to this PNG file")
}
