package dataset

import (
	"math"
	"math/rand"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
)

// #region types

// Set is a labelled data set: one CHD risk target per measurement.
type Set struct {
	Features []fuzzify.Measurement
	Targets  []float64
}

func (s Set) Len() int { return len(s.Features) }

// Rows returns each example as its six measurement values followed by the
// target, the column order of the CSV format.
func (s Set) Rows() [][]float64 {
	rows := make([][]float64, len(s.Features))
	for i, m := range s.Features {
		v := m.Vector()
		row := make([]float64, 0, len(v)+1)
		row = append(row, v[:]...)
		rows[i] = append(row, s.Targets[i])
	}
	return rows
}

func (s Set) subset(idx []int) Set {
	out := Set{
		Features: make([]fuzzify.Measurement, len(idx)),
		Targets:  make([]float64, len(idx)),
	}
	for i, j := range idx {
		out.Features[i] = s.Features[j]
		out.Targets[i] = s.Targets[j]
	}
	return out
}

// #endregion types

// #region synthetic

// Sampling ranges for Synthetic, per factor.
var ranges = [6][2]float64{
	{90, 210},  // blood pressure
	{100, 300}, // cholesterol
	{50, 150},  // heart rate
	{20, 90},   // age
	{0, 2},     // smoking
	{70, 300},  // glucose
}

// Synthetic draws n measurements uniformly over clinically plausible ranges
// and labels each with Risk. The same seed yields the same set.
func Synthetic(n int, seed int64) Set {
	rng := rand.New(rand.NewSource(seed))
	s := Set{
		Features: make([]fuzzify.Measurement, n),
		Targets:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		var v [6]float64
		for j, r := range ranges {
			v[j] = r[0] + rng.Float64()*(r[1]-r[0])
		}
		m := fuzzify.MeasurementFromVector(v)
		s.Features[i] = m
		s.Targets[i] = Risk(m)
	}
	return s
}

// step returns low below t1, mid below t2 and high otherwise.
func step(x, t1, t2, low, mid, high float64) float64 {
	switch {
	case x < t1:
		return low
	case x < t2:
		return mid
	default:
		return high
	}
}

// Risk is the heuristic label used for synthetic data: a per-factor score
// summed and scaled to the 0..4 CHD range.
func Risk(m fuzzify.Measurement) float64 {
	risk := step(m.BloodPressure, 120, 140, 0.5, 1.5, 2.5) +
		step(m.Cholesterol, 180, 240, 0.5, 1.5, 2.5) +
		step(m.HeartRate, 60, 100, 0.5, 1.0, 2.0) +
		step(m.Age, 40, 60, 0.3, 1.2, 2.0) +
		step(m.Smoking, 0.2, 1, 0.2, 1.5, 2.5) +
		step(m.Glucose, 100, 126, 0.3, 1.3, 2.3)
	return math.Min(4.0, risk/2.5)
}

// #endregion synthetic

// #region split

// Split shuffles s with seed and holds out ceil(testFraction*n) examples,
// always leaving at least one example for training when s is non-empty.
func Split(s Set, testFraction float64, seed int64) (train, test Set) {
	n := s.Len()
	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest < 0 {
		nTest = 0
	}
	if n > 0 && nTest >= n {
		nTest = n - 1
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return s.subset(perm[nTest:]), s.subset(perm[:nTest])
}

// #endregion split
