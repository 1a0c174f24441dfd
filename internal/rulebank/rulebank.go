package rulebank

// #region imports
import (
	"errors"
	"fmt"
	"math"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/membership"
)

// #endregion

// #region errors

// ErrWeightCount is returned when a weight vector does not match the bank size.
var ErrWeightCount = errors.New("weight count does not match rule count")

// #endregion

// #region class

// Class is an output class of the rule bank.
type Class string

const (
	Healthy Class = "healthy"
	Middle  Class = "middle"
	Sick    Class = "sick"
)

// Classes returns the classes in defuzzification order.
func Classes() []Class {
	return []Class{Healthy, Middle, Sick}
}

// #endregion

// #region rule

// Operator combines a rule's operands.
type Operator string

const (
	And   Operator = "and"   // minimum over operands
	Unary Operator = "unary" // single operand passed through
)

// Operand references one factor/category membership.
type Operand struct {
	Factor   fuzzify.Factor
	Category fuzzify.Category
}

// Rule is a static descriptor: antecedent operands, operator and class.
type Rule struct {
	ID       int
	Operator Operator
	Operands []Operand
	Class    Class
	Hedge    membership.Hedge
}

// Strength evaluates the rule's antecedent against f.
func (r Rule) Strength(f fuzzify.Fuzzified) float64 {
	if len(r.Operands) == 0 {
		return 0
	}
	s := fuzzify.Degree(f, r.Operands[0].Factor, r.Operands[0].Category)
	if r.Operator == And {
		for _, op := range r.Operands[1:] {
			// min; a NaN operand in any position wins.
			if v := fuzzify.Degree(f, op.Factor, op.Category); math.IsNaN(v) || v < s {
				s = v
			}
		}
	}
	return r.Hedge.Apply(s)
}

func (r Rule) String() string {
	s := fmt.Sprintf("r%d %s:", r.ID, r.Class)
	for i, op := range r.Operands {
		if i > 0 {
			s += " AND"
		}
		s += fmt.Sprintf(" %s.%s", op.Factor, op.Category)
	}
	if r.Hedge != membership.HedgeNone {
		s += fmt.Sprintf(" [%s]", r.Hedge)
	}
	return s
}

// #endregion

// #region bank

// Bank is an immutable ordered rule table.
type Bank struct {
	rules []Rule
}

// Strengths is one evaluation of a bank. PerRule follows bank order; ByClass
// keeps bank order within each class.
type Strengths struct {
	PerRule []float64
	ByClass map[Class][]float64
}

// NewBank copies rules into a Bank.
func NewBank(rules []Rule) *Bank {
	cp := make([]Rule, len(rules))
	for i, r := range rules {
		r.Operands = append([]Operand(nil), r.Operands...)
		cp[i] = r
	}
	return &Bank{rules: cp}
}

// Len returns the number of rules.
func (b *Bank) Len() int { return len(b.rules) }

// Rules returns a copy of the rule table.
func (b *Bank) Rules() []Rule {
	return NewBank(b.rules).rules
}

// WithHedge returns a new bank with the hedge set on the rule with the given ID.
// Unknown IDs leave the bank unchanged.
func (b *Bank) WithHedge(ruleID int, h membership.Hedge) *Bank {
	nb := NewBank(b.rules)
	for i := range nb.rules {
		if nb.rules[i].ID == ruleID {
			nb.rules[i].Hedge = h
		}
	}
	return nb
}

// Evaluate computes every rule's strength. A nil weights slice means
// unweighted; otherwise each strength is multiplied by its weight and the
// result is not clamped.
func (b *Bank) Evaluate(f fuzzify.Fuzzified, weights []float64) (Strengths, error) {
	if weights != nil && len(weights) != len(b.rules) {
		return Strengths{}, fmt.Errorf("evaluate: %w: got %d, want %d", ErrWeightCount, len(weights), len(b.rules))
	}

	out := Strengths{
		PerRule: make([]float64, len(b.rules)),
		ByClass: map[Class][]float64{Healthy: {}, Middle: {}, Sick: {}},
	}
	for i, r := range b.rules {
		s := r.Strength(f)
		if weights != nil {
			s *= weights[i]
		}
		out.PerRule[i] = s
		out.ByClass[r.Class] = append(out.ByClass[r.Class], s)
	}
	return out, nil
}

// ClassOf returns the class of each rule in bank order.
func (b *Bank) ClassOf() []Class {
	out := make([]Class, len(b.rules))
	for i, r := range b.rules {
		out[i] = r.Class
	}
	return out
}

// #endregion
