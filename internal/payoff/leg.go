// Package payoff implements the expiry payoff engine for single-leg options
// positions and multi-leg combinations.
//
// Every strategy is expressed as a linear combination of two long-perspective
// primitives, CallLeg and PutLeg, evaluated at each leg's own strike and
// premium and signed by direction. The engine is stateless: strategies are
// plain parameter structs and Calculate is a pure function of its inputs.
//
// All monetary values use shopspring/decimal, never float64 for money.
package payoff

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CallLeg returns the per-share P&L of a long call at expiry:
//
//	max(0, spot - strike) - premium
func CallLeg(spot, strike, premium decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, spot.Sub(strike)).Sub(premium)
}

// PutLeg returns the per-share P&L of a long put at expiry:
//
//	max(0, strike - spot) - premium
func PutLeg(spot, strike, premium decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, strike.Sub(spot)).Sub(premium)
}

// Kind identifies the instrument behind a leg.
type Kind string

const (
	Call       Kind = "CALL"
	Put        Kind = "PUT"
	Underlying Kind = "UNDERLYING"
)

// Direction is +1 for long legs and -1 for short legs.
type Direction int

const (
	Long  Direction = 1
	Short Direction = -1
)

func (d Direction) String() string {
	if d == Short {
		return "SHORT"
	}
	return "LONG"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "LONG":
		*d = Long
	case "SHORT":
		*d = Short
	default:
		return fmt.Errorf("payoff: unknown leg direction %q", text)
	}
	return nil
}

// Leg is one component of a strategy. For Underlying legs Strike holds the
// entry price of the stock and Premium is ignored.
type Leg struct {
	Kind      Kind            `json:"kind"`
	Direction Direction       `json:"direction"`
	Strike    decimal.Decimal `json:"strike"`
	Premium   decimal.Decimal `json:"premium"`
	Ratio     int64           `json:"ratio"` // contracts per strategy unit; 0 is treated as 1
}

// PerShare returns the signed per-share P&L of the leg at spot.
func (l Leg) PerShare(spot decimal.Decimal) decimal.Decimal {
	var v decimal.Decimal
	switch l.Kind {
	case Call:
		v = CallLeg(spot, l.Strike, l.Premium)
	case Put:
		v = PutLeg(spot, l.Strike, l.Premium)
	case Underlying:
		v = spot.Sub(l.Strike)
	}
	ratio := l.Ratio
	if ratio == 0 {
		ratio = 1
	}
	return v.Mul(decimal.NewFromInt(int64(l.Direction) * ratio))
}

func longCall(strike, premium decimal.Decimal) Leg {
	return Leg{Kind: Call, Direction: Long, Strike: strike, Premium: premium}
}

func shortCall(strike, premium decimal.Decimal) Leg {
	return Leg{Kind: Call, Direction: Short, Strike: strike, Premium: premium}
}

func longPut(strike, premium decimal.Decimal) Leg {
	return Leg{Kind: Put, Direction: Long, Strike: strike, Premium: premium}
}

func shortPut(strike, premium decimal.Decimal) Leg {
	return Leg{Kind: Put, Direction: Short, Strike: strike, Premium: premium}
}

func stock(direction Direction, entry decimal.Decimal) Leg {
	return Leg{Kind: Underlying, Direction: direction, Strike: entry}
}
