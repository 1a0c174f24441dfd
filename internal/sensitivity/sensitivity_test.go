package sensitivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
)

func TestLinspace(t *testing.T) {
	v := Linspace(0.5, 1.5, 11)
	require.Len(t, v, 11)
	assert.Equal(t, 0.5, v[0])
	assert.InDelta(t, 1.0, v[5], 1e-12)
	assert.Equal(t, 1.5, v[10])

	assert.Nil(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{2}, Linspace(2, 3, 1))
}

func TestAnalyzeShape(t *testing.T) {
	engine := inference.New()
	base := fuzzify.Measurement{BloodPressure: 130, Cholesterol: 190, HeartRate: 75, Age: 50, Smoking: 0.5, Glucose: 110}

	r := Analyze(engine, base, DefaultVariations())

	require.Len(t, r.Curves, 6)
	for _, f := range fuzzify.Factors() {
		require.Len(t, r.Curves[f], 11, "factor %s", f)
		// variation 1.0 reproduces the base diagnosis
		assert.InDelta(t, engine.Diagnose(base).Sugeno, r.Curves[f][5], 1e-12, "factor %s", f)
	}
}

func TestAnalyzeMatchesDirectDiagnosis(t *testing.T) {
	engine := inference.New()
	base := fuzzify.Measurement{BloodPressure: 142, Cholesterol: 205, HeartRate: 91, Age: 57, Smoking: 0.6, Glucose: 121}

	r := Analyze(engine, base, []float64{0.8, 1.2})

	m := base
	m.Age = base.Age * 1.2
	assert.Equal(t, engine.Diagnose(m).Sugeno, r.Curves[fuzzify.Age][1])
}

func TestMostInfluential(t *testing.T) {
	r := Result{Curves: map[fuzzify.Factor][]float64{
		fuzzify.BloodPressure: {1, 1.5, 2},
		fuzzify.Age:           {0.5, 3, 1},
		fuzzify.Glucose:       {1, 3.5},
	}}
	f, rg := r.MostInfluential()
	assert.Equal(t, fuzzify.Age, f, "ties go to the earlier factor")
	assert.Equal(t, 2.5, rg)

	f, rg = Result{}.MostInfluential()
	assert.Equal(t, fuzzify.Factor(""), f)
	assert.Equal(t, 0.0, rg)
}
