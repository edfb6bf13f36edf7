package payoff

import "github.com/shopspring/decimal"

// Vertical spreads. Strike1/Premium1 is always the first-named leg of the
// strategy; the required strike order therefore differs per spread.

// BullCallSpread buys a call at Strike1 and sells a call at the higher Strike2.
type BullCallSpread struct {
	Strike1  decimal.Decimal `json:"strike1"`
	Premium1 decimal.Decimal `json:"premium1"`
	Strike2  decimal.Decimal `json:"strike2"`
	Premium2 decimal.Decimal `json:"premium2"`
}

func (BullCallSpread) ID() ID                       { return IDBullCallSpread }
func (s BullCallSpread) Reference() decimal.Decimal { return s.Strike2 }

func (s BullCallSpread) Validate() error {
	return firstErr(
		validateVertical(s.Strike1, s.Premium1, s.Strike2, s.Premium2),
		checkAscending([]string{"strike1", "strike2"}, s.Strike1, s.Strike2),
	)
}

func (s BullCallSpread) Legs() []Leg {
	return []Leg{longCall(s.Strike1, s.Premium1), shortCall(s.Strike2, s.Premium2)}
}

func (s BullCallSpread) Summary() Summary {
	debit := s.Premium1.Sub(s.Premium2)
	return Summary{
		MaxProfit: Bound(s.Strike2.Sub(s.Strike1).Sub(debit)),
		MaxLoss:   Bound(debit.Neg()),
		Breakeven: Single(s.Strike1.Add(debit)),
	}
}

// BullPutSpread sells a put at Strike1 and buys a put at the lower Strike2.
type BullPutSpread struct {
	Strike1  decimal.Decimal `json:"strike1"`
	Premium1 decimal.Decimal `json:"premium1"`
	Strike2  decimal.Decimal `json:"strike2"`
	Premium2 decimal.Decimal `json:"premium2"`
}

func (BullPutSpread) ID() ID                       { return IDBullPutSpread }
func (s BullPutSpread) Reference() decimal.Decimal { return s.Strike2 }

func (s BullPutSpread) Validate() error {
	return firstErr(
		validateVertical(s.Strike1, s.Premium1, s.Strike2, s.Premium2),
		checkAscending([]string{"strike2", "strike1"}, s.Strike2, s.Strike1),
	)
}

func (s BullPutSpread) Legs() []Leg {
	return []Leg{shortPut(s.Strike1, s.Premium1), longPut(s.Strike2, s.Premium2)}
}

func (s BullPutSpread) Summary() Summary {
	credit := s.Premium1.Sub(s.Premium2)
	return Summary{
		MaxProfit: Bound(credit),
		MaxLoss:   Bound(s.Strike1.Sub(s.Strike2).Sub(credit).Neg()),
		Breakeven: Single(s.Strike1.Sub(credit)),
	}
}

// BearCallSpread sells a call at Strike1 and buys a call at the higher Strike2.
type BearCallSpread struct {
	Strike1  decimal.Decimal `json:"strike1"`
	Premium1 decimal.Decimal `json:"premium1"`
	Strike2  decimal.Decimal `json:"strike2"`
	Premium2 decimal.Decimal `json:"premium2"`
}

func (BearCallSpread) ID() ID                       { return IDBearCallSpread }
func (s BearCallSpread) Reference() decimal.Decimal { return s.Strike2 }

func (s BearCallSpread) Validate() error {
	return firstErr(
		validateVertical(s.Strike1, s.Premium1, s.Strike2, s.Premium2),
		checkAscending([]string{"strike1", "strike2"}, s.Strike1, s.Strike2),
	)
}

func (s BearCallSpread) Legs() []Leg {
	return []Leg{shortCall(s.Strike1, s.Premium1), longCall(s.Strike2, s.Premium2)}
}

func (s BearCallSpread) Summary() Summary {
	credit := s.Premium1.Sub(s.Premium2)
	return Summary{
		MaxProfit: Bound(credit),
		MaxLoss:   Bound(s.Strike2.Sub(s.Strike1).Sub(credit).Neg()),
		Breakeven: Single(s.Strike1.Add(credit)),
	}
}

// BearPutSpread buys a put at Strike1 and sells a put at the lower Strike2.
type BearPutSpread struct {
	Strike1  decimal.Decimal `json:"strike1"`
	Premium1 decimal.Decimal `json:"premium1"`
	Strike2  decimal.Decimal `json:"strike2"`
	Premium2 decimal.Decimal `json:"premium2"`
}

func (BearPutSpread) ID() ID                       { return IDBearPutSpread }
func (s BearPutSpread) Reference() decimal.Decimal { return s.Strike2 }

func (s BearPutSpread) Validate() error {
	return firstErr(
		validateVertical(s.Strike1, s.Premium1, s.Strike2, s.Premium2),
		checkAscending([]string{"strike2", "strike1"}, s.Strike2, s.Strike1),
	)
}

func (s BearPutSpread) Legs() []Leg {
	return []Leg{longPut(s.Strike1, s.Premium1), shortPut(s.Strike2, s.Premium2)}
}

func (s BearPutSpread) Summary() Summary {
	debit := s.Premium1.Sub(s.Premium2)
	return Summary{
		MaxProfit: Bound(s.Strike1.Sub(s.Strike2).Sub(debit)),
		MaxLoss:   Bound(debit.Neg()),
		Breakeven: Single(s.Strike1.Sub(debit)),
	}
}

func validateVertical(k1, p1, k2, p2 decimal.Decimal) error {
	return firstErr(
		checkStrike("strike1", k1),
		checkPremium("premium1", p1),
		checkStrike("strike2", k2),
		checkPremium("premium2", p2),
	)
}
