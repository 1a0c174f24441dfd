package fuzzify

// #region imports
import (
	"fmt"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/membership"
)

// #endregion

// #region factor

// Factor names one of the six patient measurements.
type Factor string

const (
	BloodPressure Factor = "blood_pressure"
	Cholesterol   Factor = "cholesterol"
	HeartRate     Factor = "heart_rate"
	Age           Factor = "age"
	Smoking       Factor = "smoking"
	Glucose       Factor = "glucose"
)

// Factors returns the factors in measurement-vector order.
func Factors() []Factor {
	return []Factor{BloodPressure, Cholesterol, HeartRate, Age, Smoking, Glucose}
}

// #endregion

// #region category

// Category is a linguistic label within a factor.
type Category string

const (
	Low      Category = "low"
	Medium   Category = "medium"
	High     Category = "high"
	Slow     Category = "slow"
	Moderate Category = "moderate"
	Fast     Category = "fast"
	Young    Category = "young"
	Middle   Category = "middle"
	Old      Category = "old"
	None     Category = "none"
	Light    Category = "light"
	Heavy    Category = "heavy"
	No       Category = "no"
	Pre      Category = "pre"
	Yes      Category = "yes"
)

// Degrees maps each category of one factor to its membership degree.
type Degrees map[Category]float64

// Fuzzified holds the degrees of every factor for one measurement.
type Fuzzified map[Factor]Degrees

// Degree returns f[factor][category], or 0 when either is missing.
func Degree(f Fuzzified, factor Factor, category Category) float64 {
	d, ok := f[factor]
	if !ok {
		return 0
	}
	return d[category]
}

// #endregion

// #region measurement

// Measurement is one crisp patient observation. Smoking is in packs per day.
type Measurement struct {
	BloodPressure float64 `json:"blood_pressure"`
	Cholesterol   float64 `json:"cholesterol"`
	HeartRate     float64 `json:"heart_rate"`
	Age           float64 `json:"age"`
	Smoking       float64 `json:"smoking"`
	Glucose       float64 `json:"glucose"`
}

// Vector returns the measurement in Factors() order.
func (m Measurement) Vector() [6]float64 {
	return [6]float64{m.BloodPressure, m.Cholesterol, m.HeartRate, m.Age, m.Smoking, m.Glucose}
}

// MeasurementFromVector is the inverse of Vector.
func MeasurementFromVector(v [6]float64) Measurement {
	return Measurement{
		BloodPressure: v[0],
		Cholesterol:   v[1],
		HeartRate:     v[2],
		Age:           v[3],
		Smoking:       v[4],
		Glucose:       v[5],
	}
}

// Value returns the reading for factor.
func (m Measurement) Value(f Factor) float64 {
	switch f {
	case BloodPressure:
		return m.BloodPressure
	case Cholesterol:
		return m.Cholesterol
	case HeartRate:
		return m.HeartRate
	case Age:
		return m.Age
	case Smoking:
		return m.Smoking
	case Glucose:
		return m.Glucose
	}
	return 0
}

// With returns a copy of m with factor set to v.
func (m Measurement) With(f Factor, v float64) Measurement {
	switch f {
	case BloodPressure:
		m.BloodPressure = v
	case Cholesterol:
		m.Cholesterol = v
	case HeartRate:
		m.HeartRate = v
	case Age:
		m.Age = v
	case Smoking:
		m.Smoking = v
	case Glucose:
		m.Glucose = v
	}
	return m
}

func (m Measurement) String() string {
	return fmt.Sprintf("bp=%g chol=%g hr=%g age=%g smoking=%g glucose=%g",
		m.BloodPressure, m.Cholesterol, m.HeartRate, m.Age, m.Smoking, m.Glucose)
}

// #endregion

// #region parameters

// CategoryShape binds a category to its membership function.
type CategoryShape struct {
	Category Category
	Shape    membership.Shape
}

// ParameterSet lists, per factor, its categories in display order.
type ParameterSet map[Factor][]CategoryShape

// #endregion
