package membership

import "math"

// Hedge is a linguistic modifier applied to a membership degree.
type Hedge string

const (
	HedgeNone     Hedge = ""
	HedgeIndeed   Hedge = "indeed"   // concentration: mu^2
	HedgeSomewhat Hedge = "somewhat" // dilation: sqrt(mu)
)

// Apply modifies mu. Unknown hedges leave it unchanged.
func (h Hedge) Apply(mu float64) float64 {
	switch h {
	case HedgeIndeed:
		return mu * mu
	case HedgeSomewhat:
		return math.Sqrt(mu)
	}
	return mu
}

// ParseHedge maps a hedge name to a Hedge; ok is false for unknown names.
func ParseHedge(s string) (h Hedge, ok bool) {
	switch Hedge(s) {
	case HedgeNone, HedgeIndeed, HedgeSomewhat:
		return Hedge(s), true
	}
	return HedgeNone, false
}
