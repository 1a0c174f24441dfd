package fuzzify

// #region fuzzifier

// Fuzzifier maps measurements to membership degrees under one ParameterSet.
// It is immutable after New and safe for concurrent use.
type Fuzzifier struct {
	params ParameterSet
}

// New copies params into a Fuzzifier.
func New(params ParameterSet) *Fuzzifier {
	cp := make(ParameterSet, len(params))
	for f, cats := range params {
		cp[f] = append([]CategoryShape(nil), cats...)
	}
	return &Fuzzifier{params: cp}
}

// Default returns a Fuzzifier over ExpertParameters.
func Default() *Fuzzifier {
	return New(ExpertParameters())
}

// Parameters returns a copy of the parameter set.
func (z *Fuzzifier) Parameters() ParameterSet {
	return New(z.params).params
}

// Fuzzify builds a fresh Fuzzified for m. Factors absent from the parameter
// set are absent from the result.
func (z *Fuzzifier) Fuzzify(m Measurement) Fuzzified {
	out := make(Fuzzified, len(z.params))
	for _, f := range Factors() {
		cats, ok := z.params[f]
		if !ok {
			continue
		}
		out[f] = degreesOf(cats, m.Value(f))
	}
	return out
}

// FuzzifyFactor returns the degrees of one factor at x.
func (z *Fuzzifier) FuzzifyFactor(f Factor, x float64) Degrees {
	return degreesOf(z.params[f], x)
}

func degreesOf(cats []CategoryShape, x float64) Degrees {
	d := make(Degrees, len(cats))
	for _, c := range cats {
		d[c.Category] = c.Shape.Eval(x)
	}
	return d
}

// #endregion

// #region per-factor

var expert = Default()

func FuzzifyBloodPressure(x float64) Degrees { return expert.FuzzifyFactor(BloodPressure, x) }
func FuzzifyCholesterol(x float64) Degrees   { return expert.FuzzifyFactor(Cholesterol, x) }
func FuzzifyHeartRate(x float64) Degrees     { return expert.FuzzifyFactor(HeartRate, x) }
func FuzzifyAge(x float64) Degrees           { return expert.FuzzifyFactor(Age, x) }
func FuzzifySmoking(x float64) Degrees       { return expert.FuzzifyFactor(Smoking, x) }
func FuzzifyGlucose(x float64) Degrees       { return expert.FuzzifyFactor(Glucose, x) }

// #endregion
