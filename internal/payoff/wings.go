package payoff

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Winged strategies are quoted with a single net premium rather than one
// premium per leg. The net amount is carried on one leg and the others are
// priced at zero, which keeps the curve a plain sum of leg primitives.

// IronCondor: long put Strike1, short put Strike2, short call Strike3,
// long call Strike4, for a net credit of NetPremium.
//
// Max loss is taken on the wider wing, max(Strike2-Strike1, Strike4-Strike3)
// less NetPremium, so with unequal wings it is larger than the put-wing
// figure (Strike2-Strike1)-NetPremium.
type IronCondor struct {
	Strike1    decimal.Decimal `json:"strike1"`
	Strike2    decimal.Decimal `json:"strike2"`
	Strike3    decimal.Decimal `json:"strike3"`
	Strike4    decimal.Decimal `json:"strike4"`
	NetPremium decimal.Decimal `json:"netPremium"`
}

func (IronCondor) ID() ID                       { return IDIronCondor }
func (s IronCondor) Reference() decimal.Decimal { return s.Strike2 }

func (s IronCondor) Validate() error {
	return firstErr(
		checkStrike("strike1", s.Strike1),
		checkStrike("strike2", s.Strike2),
		checkStrike("strike3", s.Strike3),
		checkStrike("strike4", s.Strike4),
		checkPremium("netPremium", s.NetPremium),
		checkAscending([]string{"strike1", "strike2", "strike3", "strike4"},
			s.Strike1, s.Strike2, s.Strike3, s.Strike4),
	)
}

func (s IronCondor) Legs() []Leg {
	return []Leg{
		longPut(s.Strike1, decimal.Zero),
		shortPut(s.Strike2, s.NetPremium),
		shortCall(s.Strike3, decimal.Zero),
		longCall(s.Strike4, decimal.Zero),
	}
}

func (s IronCondor) Summary() Summary {
	wing := decimal.Max(s.Strike2.Sub(s.Strike1), s.Strike4.Sub(s.Strike3))
	return Summary{
		MaxProfit: Bound(s.NetPremium),
		MaxLoss:   Bound(wing.Sub(s.NetPremium).Neg()),
		Breakeven: Pair(s.Strike2.Sub(s.NetPremium), s.Strike3.Add(s.NetPremium)),
	}
}

// IronButterfly: long put Strike1, short put and short call Strike2,
// long call Strike3, for a net credit of NetPremium. As with IronCondor,
// max loss is the wider of the two wings less NetPremium.
type IronButterfly struct {
	Strike1    decimal.Decimal `json:"strike1"`
	Strike2    decimal.Decimal `json:"strike2"`
	Strike3    decimal.Decimal `json:"strike3"`
	NetPremium decimal.Decimal `json:"netPremium"`
}

func (IronButterfly) ID() ID                       { return IDIronButterfly }
func (s IronButterfly) Reference() decimal.Decimal { return s.Strike2 }

func (s IronButterfly) Validate() error {
	return validateThreeStrikes(s.Strike1, s.Strike2, s.Strike3, s.NetPremium)
}

func (s IronButterfly) Legs() []Leg {
	return []Leg{
		longPut(s.Strike1, decimal.Zero),
		shortPut(s.Strike2, s.NetPremium),
		shortCall(s.Strike2, decimal.Zero),
		longCall(s.Strike3, decimal.Zero),
	}
}

func (s IronButterfly) Summary() Summary {
	wing := decimal.Max(s.Strike2.Sub(s.Strike1), s.Strike3.Sub(s.Strike2))
	return Summary{
		MaxProfit: Bound(s.NetPremium),
		MaxLoss:   Bound(wing.Sub(s.NetPremium).Neg()),
		Breakeven: Pair(s.Strike2.Sub(s.NetPremium), s.Strike2.Add(s.NetPremium)),
	}
}

// CallButterfly: long call Strike1, two short calls Strike2, long call
// Strike3, for a net debit of NetPremium. Wings must be equal.
type CallButterfly struct {
	Strike1    decimal.Decimal `json:"strike1"`
	Strike2    decimal.Decimal `json:"strike2"`
	Strike3    decimal.Decimal `json:"strike3"`
	NetPremium decimal.Decimal `json:"netPremium"`
}

func (CallButterfly) ID() ID                       { return IDCallButterfly }
func (s CallButterfly) Reference() decimal.Decimal { return s.Strike2 }

func (s CallButterfly) Validate() error {
	if err := validateThreeStrikes(s.Strike1, s.Strike2, s.Strike3, s.NetPremium); err != nil {
		return err
	}
	lower, upper := s.Strike2.Sub(s.Strike1), s.Strike3.Sub(s.Strike2)
	if !lower.Equal(upper) {
		return fmt.Errorf("%w: lower wing %s, upper wing %s", ErrUnequalWings, lower, upper)
	}
	return nil
}

func (s CallButterfly) Legs() []Leg {
	body := shortCall(s.Strike2, decimal.Zero)
	body.Ratio = 2
	return []Leg{
		longCall(s.Strike1, s.NetPremium),
		body,
		longCall(s.Strike3, decimal.Zero),
	}
}

func (s CallButterfly) Summary() Summary {
	return Summary{
		MaxProfit: Bound(s.Strike2.Sub(s.Strike1).Sub(s.NetPremium)),
		MaxLoss:   Bound(s.NetPremium.Neg()),
		Breakeven: Pair(s.Strike1.Add(s.NetPremium), s.Strike3.Sub(s.NetPremium)),
	}
}

func validateThreeStrikes(k1, k2, k3, net decimal.Decimal) error {
	return firstErr(
		checkStrike("strike1", k1),
		checkStrike("strike2", k2),
		checkStrike("strike3", k3),
		checkPremium("netPremium", net),
		checkAscending([]string{"strike1", "strike2", "strike3"}, k1, k2, k3),
	)
}
