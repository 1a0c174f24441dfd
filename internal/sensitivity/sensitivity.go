package sensitivity

import (
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
)

// Result holds one Sugeno curve per factor, sampled at Variations.
type Result struct {
	Base       fuzzify.Measurement
	Variations []float64
	Curves     map[fuzzify.Factor][]float64
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// DefaultVariations is the 50%..150% sweep in 10% steps.
func DefaultVariations() []float64 {
	return Linspace(0.5, 1.5, 11)
}

// Analyze varies one factor at a time, multiplying it by each variation
// while the others stay at base, and records the Sugeno score.
func Analyze(engine *inference.Engine, base fuzzify.Measurement, variations []float64) Result {
	r := Result{
		Base:       base,
		Variations: append([]float64(nil), variations...),
		Curves:     make(map[fuzzify.Factor][]float64, len(fuzzify.Factors())),
	}
	for _, f := range fuzzify.Factors() {
		curve := make([]float64, len(variations))
		for i, v := range variations {
			curve[i] = engine.Diagnose(base.With(f, base.Value(f)*v)).Sugeno
		}
		r.Curves[f] = curve
	}
	return r
}

// Range is max minus min of the factor's curve.
func (r Result) Range(f fuzzify.Factor) float64 {
	c := r.Curves[f]
	if len(c) == 0 {
		return 0
	}
	lo, hi := c[0], c[0]
	for _, x := range c[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return hi - lo
}

// MostInfluential returns the factor with the widest output range; ties go
// to the earlier factor.
func (r Result) MostInfluential() (fuzzify.Factor, float64) {
	var best fuzzify.Factor
	bestRange := -1.0
	for _, f := range fuzzify.Factors() {
		if _, ok := r.Curves[f]; !ok {
			continue
		}
		if rg := r.Range(f); rg > bestRange {
			best, bestRange = f, rg
		}
	}
	if bestRange < 0 {
		return "", 0
	}
	return best, bestRange
}
