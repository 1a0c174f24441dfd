package rulebank

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/membership"
)

var reference = fuzzify.Measurement{
	BloodPressure: 130, Cholesterol: 190, HeartRate: 75,
	Age: 50, Smoking: 0.5, Glucose: 110,
}

func TestAdvancedShape(t *testing.T) {
	b := Advanced()
	require.Equal(t, 15, b.Len())

	counts := map[Class]int{}
	for i, r := range b.Rules() {
		assert.Equal(t, i+1, r.ID)
		counts[r.Class]++
		if r.Operator == Unary {
			assert.Len(t, r.Operands, 1)
		}
	}
	assert.Equal(t, map[Class]int{Healthy: 2, Middle: 5, Sick: 8}, counts)
	assert.Equal(t, 6, Classic().Len())
}

func TestEvaluateReferenceMeasurement(t *testing.T) {
	s, err := Advanced().Evaluate(fuzzify.Default().Fuzzify(reference), nil)
	require.NoError(t, err)
	require.Len(t, s.PerRule, 15)

	third := 1.0 / 3.0
	want := []float64{0, 0, third, third, 0, 0, 0, 0, 0, 0.5, 0, 0.5, 0, 0, 0}
	for i := range want {
		assert.InDelta(t, want[i], s.PerRule[i], 1e-12, "r%d", i+1)
	}

	// Class lists keep rule order: Middle is r3, r4, r10, r11, r12.
	assert.Len(t, s.ByClass[Healthy], 2)
	require.Len(t, s.ByClass[Middle], 5)
	assert.Len(t, s.ByClass[Sick], 8)
	assert.InDelta(t, third, s.ByClass[Middle][0], 1e-12)
	assert.InDelta(t, third, s.ByClass[Middle][1], 1e-12)
	assert.InDelta(t, 0.5, s.ByClass[Middle][2], 1e-12)
	assert.Equal(t, 0.0, s.ByClass[Middle][3])
	assert.InDelta(t, 0.5, s.ByClass[Middle][4], 1e-12)
}

func TestStrengthsInUnitInterval(t *testing.T) {
	z := fuzzify.Default()
	for bp := 80.0; bp <= 220; bp += 17 {
		for age := 0.0; age <= 110; age += 13 {
			m := reference
			m.BloodPressure, m.Age = bp, age
			s, err := Advanced().Evaluate(z.Fuzzify(m), nil)
			require.NoError(t, err)
			for _, v := range s.PerRule {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestWeightedEvaluation(t *testing.T) {
	b := Advanced()
	f := fuzzify.Default().Fuzzify(reference)
	w := make([]float64, b.Len())
	for i := range w {
		w[i] = 3
	}
	s, err := b.Evaluate(f, w)
	require.NoError(t, err)
	// not clamped
	assert.InDelta(t, 1.5, s.PerRule[9], 1e-12)

	_, err = b.Evaluate(f, w[:3])
	assert.True(t, errors.Is(err, ErrWeightCount))
}

func TestAndIsMinimum(t *testing.T) {
	f := fuzzify.Fuzzified{
		fuzzify.Age:     {fuzzify.Old: 0.9},
		fuzzify.Glucose: {fuzzify.Yes: 0.2},
	}
	r := Advanced().Rules()[13] // r14 Age.Old AND Glucose.Yes
	assert.Equal(t, 0.2, r.Strength(f))

	r7 := Advanced().Rules()[6]
	assert.Equal(t, 0.9, r7.Strength(f))
}

func TestNaNPropagates(t *testing.T) {
	f := fuzzify.Fuzzified{
		fuzzify.Age:     {fuzzify.Old: 0.9},
		fuzzify.Glucose: {fuzzify.Yes: math.NaN()},
	}
	assert.True(t, math.IsNaN(Advanced().Rules()[13].Strength(f)))
}

func TestWithHedgeReturnsNewBank(t *testing.T) {
	base := Advanced()
	hedged := base.WithHedge(10, membership.HedgeIndeed)

	f := fuzzify.Default().Fuzzify(reference)
	a, err := base.Evaluate(f, nil)
	require.NoError(t, err)
	h, err := hedged.Evaluate(f, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, a.PerRule[9], 1e-12)
	assert.InDelta(t, 0.25, h.PerRule[9], 1e-12)
	assert.Equal(t, membership.HedgeNone, base.Rules()[9].Hedge)
}

func TestRulesReturnsCopy(t *testing.T) {
	b := Advanced()
	rules := b.Rules()
	rules[0].Operands[0].Category = fuzzify.High
	assert.Equal(t, fuzzify.Low, b.Rules()[0].Operands[0].Category)
}

func TestNaNInFirstOperandPropagates(t *testing.T) {
	f := fuzzify.Fuzzified{
		fuzzify.Age:     {fuzzify.Old: math.NaN()},
		fuzzify.Glucose: {fuzzify.Yes: 0.4},
	}
	assert.True(t, math.IsNaN(Advanced().Rules()[13].Strength(f)))
}
