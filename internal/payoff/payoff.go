package payoff

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ID is a canonical strategy identifier such as "bull-call-spread".
type ID string

// Summary holds per-share risk metrics. Calculate scales it to dollars.
type Summary struct {
	MaxProfit Metric
	MaxLoss   Metric
	Breakeven Breakeven
}

// Strategy is a fully parameterised position. Implementations also provide
// either Legs (closed-form payoff) or PerShare (model-based payoff).
type Strategy interface {
	// ID returns the identifier the strategy is registered under.
	ID() ID
	// Validate checks strikes, premiums and strike ordering.
	Validate() error
	// Reference returns the price the default spot grid is centred on.
	Reference() decimal.Decimal
	// Summary returns per-share max profit, max loss and breakeven.
	Summary() Summary
}

// LegStrategy is a strategy whose payoff is the sum of its legs.
type LegStrategy interface {
	Strategy
	Legs() []Leg
}

// ModelStrategy is a strategy whose payoff comes from an approximation model
// rather than intrinsic value.
type ModelStrategy interface {
	Strategy
	PerShare(spot decimal.Decimal) decimal.Decimal
}

// Position sizes a strategy: lots contracts of lotSize shares each.
type Position struct {
	Lots    int64 `json:"lots"`
	LotSize int64 `json:"lotSize"`
}

// Validate rejects non-positive lots or lot size.
func (p Position) Validate() error {
	if p.Lots <= 0 || p.LotSize <= 0 {
		return fmt.Errorf("%w: lots=%d lotSize=%d", ErrInvalidPosition, p.Lots, p.LotSize)
	}
	return nil
}

// Multiplier returns lots * lotSize.
func (p Position) Multiplier() decimal.Decimal {
	return decimal.NewFromInt(p.Lots).Mul(decimal.NewFromInt(p.LotSize))
}

// Point is the total P&L at one sampled spot price. Legs holds the
// per-leg P&L in the order returned by Legs, when the strategy has legs.
type Point struct {
	Spot   decimal.Decimal   `json:"spot"`
	Payoff decimal.Decimal   `json:"payoff"`
	Legs   []decimal.Decimal `json:"legs,omitempty"`
}

// Result is the outcome of one calculation.
type Result struct {
	Strategy    ID        `json:"strategy"`
	Curve       []Point   `json:"payoffCurve"`
	MaxProfit   Metric    `json:"maxProfit"`
	MaxLoss     Metric    `json:"maxLoss"`
	Breakeven   Breakeven `json:"breakeven"`
	Approximate bool      `json:"approximate,omitempty"`
}

// At returns the point sampled at spot, if any.
func (r *Result) At(spot decimal.Decimal) (Point, bool) {
	for _, p := range r.Curve {
		if p.Spot.Equal(spot) {
			return p, true
		}
	}
	return Point{}, false
}

// Calculate evaluates s for pos at every spot. Inputs are validated up
// front; on error no partial result is returned.
func Calculate(s Strategy, pos Position, spots []decimal.Decimal) (*Result, error) {
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := validateSpots(spots); err != nil {
		return nil, err
	}

	mult := pos.Multiplier()
	curve := make([]Point, len(spots))

	switch st := s.(type) {
	case LegStrategy:
		legs := st.Legs()
		for i, spot := range spots {
			total := decimal.Zero
			perLeg := make([]decimal.Decimal, len(legs))
			for j, l := range legs {
				perLeg[j] = l.PerShare(spot).Mul(mult)
				total = total.Add(perLeg[j])
			}
			curve[i] = Point{Spot: spot, Payoff: total, Legs: perLeg}
		}
	case ModelStrategy:
		for i, spot := range spots {
			curve[i] = Point{Spot: spot, Payoff: st.PerShare(spot).Mul(mult)}
		}
	default:
		return nil, fmt.Errorf("payoff: strategy %s has neither legs nor a payoff model", s.ID())
	}

	sum := s.Summary()
	_, approximate := s.(ModelStrategy)
	return &Result{
		Strategy:    s.ID(),
		Curve:       curve,
		MaxProfit:   sum.MaxProfit.Scale(mult),
		MaxLoss:     sum.MaxLoss.Scale(mult),
		Breakeven:   sum.Breakeven,
		Approximate: approximate,
	}, nil
}

func validateSpots(spots []decimal.Decimal) error {
	if len(spots) == 0 {
		return ErrNoSpots
	}
	for i, s := range spots {
		if s.IsNegative() {
			return fmt.Errorf("%w: spot[%d] = %s", ErrInvalidSpots, i, s)
		}
		if i > 0 && !spots[i-1].LessThan(s) {
			return fmt.Errorf("%w: spot[%d] = %s follows %s", ErrInvalidSpots, i, s, spots[i-1])
		}
	}
	return nil
}
