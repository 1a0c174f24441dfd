package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestMeasurementFlags_DefaultsAndOverride(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addMeasurementFlags(cmd, referencePatient)

	if got := measurementFromFlags(cmd); got != referencePatient {
		t.Fatalf("expected defaults %v, got %v", referencePatient, got)
	}

	if err := cmd.Flags().Parse([]string{"--bp", "160", "--smoking", "1.2"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := measurementFromFlags(cmd)
	if got.BloodPressure != 160 || got.Smoking != 1.2 {
		t.Errorf("overrides not applied: %v", got)
	}
	if got.Glucose != referencePatient.Glucose {
		t.Errorf("glucose changed: %v", got.Glucose)
	}
}

func TestRiskLabel(t *testing.T) {
	cases := map[float64]string{0.75: "healthy", 1.5: "middle", 2.49: "middle", 2.5: "sick", 3.25: "sick"}
	for score, want := range cases {
		if got := riskLabel(score); got != want {
			t.Errorf("riskLabel(%g) = %s, want %s", score, got, want)
		}
	}
}
