package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/rulebank"
)

var comparisonCases = []struct {
	name string
	m    fuzzify.Measurement
}{
	{"Young, healthy", fuzzify.Measurement{BloodPressure: 110, Cholesterol: 150, HeartRate: 65, Age: 25, Smoking: 0, Glucose: 80}},
	{"Middle-aged, smoker", fuzzify.Measurement{BloodPressure: 130, Cholesterol: 190, HeartRate: 75, Age: 45, Smoking: 0.8, Glucose: 95}},
	{"Elderly, diabetic", fuzzify.Measurement{BloodPressure: 150, Cholesterol: 210, HeartRate: 85, Age: 70, Smoking: 0.3, Glucose: 150}},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the 3-factor classic bank with the 6-factor advanced bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		centers := cfg.Engine.Centers()
		classic := inference.New(inference.WithBank(rulebank.Classic()), inference.WithCenters(centers))
		advanced := inference.New(inference.WithBank(rulebank.Advanced()), inference.WithCenters(centers))

		fmt.Printf("%-25s %-12s %-12s %-12s\n", "Case", "Original", "Advanced", "Difference")
		fmt.Println(strings.Repeat("-", 65))
		for _, c := range comparisonCases {
			orig := classic.Diagnose(c.m).Sugeno
			adv := advanced.Diagnose(c.m).Sugeno
			fmt.Printf("%-25s %-12.3f %-12.3f %-+12.3f\n", c.name, orig, adv, adv-orig)
		}

		d := advanced.Diagnose(measurementFromFlags(cmd))
		diff := math.Abs(d.Mamdani - d.Sugeno)
		fmt.Printf("\nMamdani vs Sugeno for %s\n", measurementFromFlags(cmd))
		fmt.Printf("  Mamdani (COG):             %.3f\n", d.Mamdani)
		fmt.Printf("  Sugeno (weighted average): %.3f\n", d.Sugeno)
		fmt.Printf("  Absolute difference:       %.3f\n", diff)
		if diff < 0.1 {
			fmt.Println("  Both methods give very similar results")
		} else {
			fmt.Println("  Noticeable difference between methods")
		}
		return nil
	},
}

func init() {
	addMeasurementFlags(compareCmd, referencePatient)
}
