package membership

// #region imports
import (
	"errors"
	"fmt"
	"math"
)

// #endregion

// #region errors

// ErrInvalidParameters is returned by the validated constructors when
// breakpoints are unordered or not finite.
var ErrInvalidParameters = errors.New("invalid membership parameters")

// #endregion

// #region triangular

// Triangular returns the degree of x in the triangle (a, b, c).
// It is 0 at or outside [a, c], rises on (a, b] and falls on (b, c).
// A degenerate span (a == b or b == c) is never divided by: the branch that
// would use it cannot be reached, so the function stays total.
func Triangular(x, a, b, c float64) float64 {
	switch {
	case x <= a || x >= c:
		return 0
	case x <= b:
		return (x - a) / (b - a)
	case x < c:
		return (c - x) / (c - b)
	}
	// NaN lands here.
	return 0
}

// #endregion

// #region clipped-triangular

// ClippedTriangular is the triangle (a, b, c) written as
// max(0, min(rise, fall)). It agrees with Triangular on ordered, finite
// breakpoints with a < b < c, but a NaN x yields NaN instead of 0.
func ClippedTriangular(x, a, b, c float64) float64 {
	return math.Max(0, math.Min((x-a)/(b-a), (c-x)/(c-b)))
}

// #endregion

// #region trapezoidal

// Trapezoidal returns the degree of x in the trapezoid (a, b, c, d).
// It is 0 at or outside [a, d], rises on (a, b], is 1 on (b, c] and falls on
// (c, d). Degenerate spans behave as in Triangular: Trapezoidal(0, 0, 0, 25, 35)
// is 0 and every x in (0, 25] has degree 1.
func Trapezoidal(x, a, b, c, d float64) float64 {
	switch {
	case x <= a || x >= d:
		return 0
	case x <= b:
		return (x - a) / (b - a)
	case x <= c:
		return 1
	case x < d:
		return (d - x) / (d - c)
	}
	return 0
}

// #endregion

// #region shape

// Kind identifies the functional form of a Shape.
type Kind string

const (
	KindTriangular  Kind = "triangular"
	KindTrapezoidal Kind = "trapezoidal"
	KindClipped     Kind = "clipped-triangular"
)

// Shape is a membership function with its breakpoints. Triangular shapes use
// the first three points; the fourth is ignored.
type Shape struct {
	Kind   Kind
	Points [4]float64
}

// Tri builds a triangular shape without validation. Used for the fixed
// parameter tables.
func Tri(a, b, c float64) Shape {
	return Shape{Kind: KindTriangular, Points: [4]float64{a, b, c}}
}

// TriClipped builds a ClippedTriangular shape without validation. It needs
// a < b < c.
func TriClipped(a, b, c float64) Shape {
	return Shape{Kind: KindClipped, Points: [4]float64{a, b, c}}
}

// Trap builds a trapezoidal shape without validation.
func Trap(a, b, c, d float64) Shape {
	return Shape{Kind: KindTrapezoidal, Points: [4]float64{a, b, c, d}}
}

// NewTriangular validates a <= b <= c and returns the shape.
func NewTriangular(a, b, c float64) (Shape, error) {
	if err := checkOrdered(a, b, c); err != nil {
		return Shape{}, err
	}
	return Tri(a, b, c), nil
}

// NewTrapezoidal validates a <= b <= c <= d and returns the shape.
func NewTrapezoidal(a, b, c, d float64) (Shape, error) {
	if err := checkOrdered(a, b, c, d); err != nil {
		return Shape{}, err
	}
	return Trap(a, b, c, d), nil
}

// Eval returns the degree of x in the shape.
func (s Shape) Eval(x float64) float64 {
	p := s.Points
	switch s.Kind {
	case KindTrapezoidal:
		return Trapezoidal(x, p[0], p[1], p[2], p[3])
	case KindClipped:
		return ClippedTriangular(x, p[0], p[1], p[2])
	}
	return Triangular(x, p[0], p[1], p[2])
}

// Support returns the open interval outside of which the degree is 0.
func (s Shape) Support() (lo, hi float64) {
	if s.Kind == KindTrapezoidal {
		return s.Points[0], s.Points[3]
	}
	return s.Points[0], s.Points[2]
}

func (s Shape) String() string {
	if s.Kind == KindTrapezoidal {
		return fmt.Sprintf("trapezoidal(%g, %g, %g, %g)", s.Points[0], s.Points[1], s.Points[2], s.Points[3])
	}
	return fmt.Sprintf("%s(%g, %g, %g)", s.Kind, s.Points[0], s.Points[1], s.Points[2])
}

func checkOrdered(pts ...float64) error {
	for i, p := range pts {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: breakpoint %d is %v", ErrInvalidParameters, i, p)
		}
		if i > 0 && pts[i-1] > p {
			return fmt.Errorf("%w: breakpoints %v not ordered", ErrInvalidParameters, pts)
		}
	}
	return nil
}

// #endregion
