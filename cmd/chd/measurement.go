package main

import (
	"github.com/spf13/cobra"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/report"
)

// referencePatient is the medium-risk example patient.
var referencePatient = fuzzify.Measurement{
	BloodPressure: 130,
	Cholesterol:   190,
	HeartRate:     75,
	Age:           50,
	Smoking:       0.5,
	Glucose:       110,
}

var measurementFlags = []struct {
	factor fuzzify.Factor
	name   string
	usage  string
}{
	{fuzzify.BloodPressure, "bp", "Systolic blood pressure (mmHg)"},
	{fuzzify.Cholesterol, "chol", "Total cholesterol (mg/dL)"},
	{fuzzify.HeartRate, "hr", "Resting heart rate (bpm)"},
	{fuzzify.Age, "age", "Age (years)"},
	{fuzzify.Smoking, "smoking", "Smoking intensity (0 none, 1 heavy, up to 2)"},
	{fuzzify.Glucose, "glucose", "Fasting glucose (mg/dL)"},
}

func addMeasurementFlags(cmd *cobra.Command, defaults fuzzify.Measurement) {
	for _, f := range measurementFlags {
		cmd.Flags().Float64(f.name, defaults.Value(f.factor), f.usage)
	}
}

func measurementFromFlags(cmd *cobra.Command) fuzzify.Measurement {
	var m fuzzify.Measurement
	for _, f := range measurementFlags {
		v, _ := cmd.Flags().GetFloat64(f.name)
		m = m.With(f.factor, v)
	}
	return m
}

// riskLabel maps a score onto the healthy/middle/sick bands.
func riskLabel(score float64) string {
	switch {
	case score < report.HealthyThreshold:
		return "healthy"
	case score < report.SickThreshold:
		return "middle"
	default:
		return "sick"
	}
}
