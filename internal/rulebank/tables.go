package rulebank

import f "github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"

func and(id int, class Class, ops ...Operand) Rule {
	return Rule{ID: id, Operator: And, Operands: ops, Class: class}
}

func unary(id int, class Class, op Operand) Rule {
	return Rule{ID: id, Operator: Unary, Operands: []Operand{op}, Class: class}
}

func on(factor f.Factor, category f.Category) Operand {
	return Operand{Factor: factor, Category: category}
}

// Advanced returns the 15-rule six-factor bank, numbered r1..r15.
func Advanced() *Bank {
	return NewBank([]Rule{
		and(1, Healthy, on(f.BloodPressure, f.Low), on(f.Cholesterol, f.Low), on(f.HeartRate, f.Slow)),
		and(2, Healthy, on(f.BloodPressure, f.Low), on(f.Cholesterol, f.Low), on(f.HeartRate, f.Moderate)),
		and(3, Middle, on(f.BloodPressure, f.Medium), on(f.Cholesterol, f.Low), on(f.HeartRate, f.Moderate)),
		and(4, Middle, on(f.BloodPressure, f.Medium), on(f.Cholesterol, f.High), on(f.HeartRate, f.Slow)),
		and(5, Sick, on(f.BloodPressure, f.High), on(f.Cholesterol, f.Low), on(f.HeartRate, f.Moderate)),
		and(6, Sick, on(f.BloodPressure, f.High), on(f.Cholesterol, f.High), on(f.HeartRate, f.Fast)),
		unary(7, Sick, on(f.Age, f.Old)),
		unary(8, Sick, on(f.Smoking, f.Heavy)),
		unary(9, Sick, on(f.Glucose, f.Yes)),
		and(10, Middle, on(f.Age, f.Middle), on(f.Smoking, f.Light)),
		and(11, Middle, on(f.Age, f.Old), on(f.Glucose, f.Pre)),
		and(12, Middle, on(f.Smoking, f.Light), on(f.Glucose, f.Pre)),
		and(13, Sick, on(f.Age, f.Old), on(f.Smoking, f.Heavy)),
		and(14, Sick, on(f.Age, f.Old), on(f.Glucose, f.Yes)),
		and(15, Sick, on(f.Smoking, f.Heavy), on(f.Glucose, f.Yes)),
	})
}

// Classic returns the original three-factor bank (r1..r6 of Advanced).
func Classic() *Bank {
	return NewBank(Advanced().rules[:6])
}
