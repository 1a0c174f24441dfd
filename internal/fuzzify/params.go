package fuzzify

import m "github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/membership"

// ExpertParameters returns the hand-tuned breakpoints used by the inference
// engine. Callers get a fresh copy.
func ExpertParameters() ParameterSet {
	return ParameterSet{
		BloodPressure: {
			{Low, m.Tri(100, 115, 130)},
			{Medium, m.Tri(120, 145, 170)},
			{High, m.Tri(160, 180, 200)},
		},
		Cholesterol: {
			{Low, m.Trap(100, 120, 180, 200)},
			{High, m.Trap(180, 200, 260, 280)},
		},
		HeartRate: {
			{Slow, m.Tri(50, 65, 80)},
			{Moderate, m.Tri(70, 85, 100)},
			{Fast, m.Tri(90, 145, 200)},
		},
		Age: {
			{Young, m.Trap(0, 0, 25, 35)},
			{Middle, m.Trap(30, 40, 50, 60)},
			{Old, m.Trap(50, 65, 100, 120)},
		},
		Smoking: {
			{None, m.Trap(-0.2, 0, 0, 0.2)},
			{Light, m.Tri(0, 0.3, 0.7)},
			{Heavy, m.Trap(0.5, 1, 3, 4)},
		},
		Glucose: {
			{No, m.Trap(0, 0, 90, 110)},
			{Pre, m.Tri(100, 112.5, 125)},
			{Yes, m.Trap(120, 150, 300, 400)},
		},
	}
}

// AdaptiveParameters returns the all-triangular breakpoints the neuro-fuzzy
// model trains against. Only rule weights adapt; these shapes stay fixed.
func AdaptiveParameters() ParameterSet {
	return ParameterSet{
		BloodPressure: {
			{Low, m.TriClipped(90, 115, 140)},
			{Medium, m.TriClipped(120, 145, 170)},
			{High, m.TriClipped(150, 180, 210)},
		},
		Cholesterol: {
			{Low, m.TriClipped(90, 150, 210)},
			{High, m.TriClipped(170, 230, 300)},
		},
		HeartRate: {
			{Slow, m.TriClipped(40, 60, 80)},
			{Moderate, m.TriClipped(65, 85, 105)},
			{Fast, m.TriClipped(90, 140, 180)},
		},
		Age: {
			{Young, m.TriClipped(0, 25, 40)},
			{Middle, m.TriClipped(30, 45, 60)},
			{Old, m.TriClipped(50, 70, 100)},
		},
		Smoking: {
			{None, m.TriClipped(-0.2, 0, 0.2)},
			{Light, m.TriClipped(0, 0.3, 0.7)},
			{Heavy, m.TriClipped(0.5, 1.5, 3)},
		},
		Glucose: {
			{No, m.TriClipped(60, 80, 100)},
			{Pre, m.TriClipped(90, 110, 130)},
			{Yes, m.TriClipped(115, 200, 350)},
		},
	}
}
