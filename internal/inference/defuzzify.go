package inference

import "github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/rulebank"

// Aggregate takes the maximum strength per class; an empty class aggregates to 0.
func Aggregate(s rulebank.Strengths) map[rulebank.Class]float64 {
	out := make(map[rulebank.Class]float64, 3)
	for _, c := range rulebank.Classes() {
		max := 0.0
		for i, v := range s.ByClass[c] {
			if i == 0 || v > max {
				max = v
			}
		}
		out[c] = max
	}
	return out
}

// Mamdani is the centroid of the aggregated class strengths over the class
// centers. A zero denominator yields 0.
func Mamdani(agg map[rulebank.Class]float64, c Centers) float64 {
	var num, den float64
	for _, class := range rulebank.Classes() {
		num += agg[class] * c.Of(class)
		den += agg[class]
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// Sugeno is the strength-weighted average of class centers over every rule
// with strength strictly above 0. No firing rule yields 0.
func Sugeno(s rulebank.Strengths, c Centers) float64 {
	var num, den float64
	for _, class := range rulebank.Classes() {
		for _, v := range s.ByClass[class] {
			if v > 0 {
				num += v * c.Of(class)
				den += v
			}
		}
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// WeightedAverage sums strengths per class, including non-positive ones, and
// returns the center average weighted by those sums. Used with weighted
// strengths by the neuro-fuzzy model. A zero denominator yields 0.
func WeightedAverage(s rulebank.Strengths, c Centers) float64 {
	var num, den float64
	for _, class := range rulebank.Classes() {
		sum := 0.0
		for _, v := range s.ByClass[class] {
			sum += v
		}
		num += sum * c.Of(class)
		den += sum
	}
	if den == 0 {
		return 0
	}
	return num / den
}
