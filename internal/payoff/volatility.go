package payoff

import "github.com/shopspring/decimal"

// LongStraddle buys a call (Premium1) and a put (Premium2) at one strike.
type LongStraddle struct {
	Strike   decimal.Decimal `json:"strike"`
	Premium1 decimal.Decimal `json:"premium1"`
	Premium2 decimal.Decimal `json:"premium2"`
}

func (LongStraddle) ID() ID                       { return IDLongStraddle }
func (s LongStraddle) Reference() decimal.Decimal { return s.Strike }

func (s LongStraddle) Validate() error {
	return validateSameStrike(s.Strike, s.Premium1, s.Premium2)
}

func (s LongStraddle) Legs() []Leg {
	return []Leg{longCall(s.Strike, s.Premium1), longPut(s.Strike, s.Premium2)}
}

func (s LongStraddle) Summary() Summary {
	total := s.Premium1.Add(s.Premium2)
	return Summary{
		MaxProfit: Unlimited(),
		MaxLoss:   Bound(total.Neg()),
		Breakeven: Pair(s.Strike.Sub(total), s.Strike.Add(total)),
	}
}

// ShortStraddle sells a call (Premium1) and a put (Premium2) at one strike.
type ShortStraddle struct {
	Strike   decimal.Decimal `json:"strike"`
	Premium1 decimal.Decimal `json:"premium1"`
	Premium2 decimal.Decimal `json:"premium2"`
}

func (ShortStraddle) ID() ID                       { return IDShortStraddle }
func (s ShortStraddle) Reference() decimal.Decimal { return s.Strike }

func (s ShortStraddle) Validate() error {
	return validateSameStrike(s.Strike, s.Premium1, s.Premium2)
}

func (s ShortStraddle) Legs() []Leg {
	return []Leg{shortCall(s.Strike, s.Premium1), shortPut(s.Strike, s.Premium2)}
}

func (s ShortStraddle) Summary() Summary {
	total := s.Premium1.Add(s.Premium2)
	return Summary{
		MaxProfit: Bound(total),
		MaxLoss:   Unlimited(),
		Breakeven: Pair(s.Strike.Sub(total), s.Strike.Add(total)),
	}
}

// LongStrangle buys an out-of-the-money put and call.
type LongStrangle struct {
	PutStrike   decimal.Decimal `json:"putStrike"`
	PutPremium  decimal.Decimal `json:"putPremium"`
	CallStrike  decimal.Decimal `json:"callStrike"`
	CallPremium decimal.Decimal `json:"callPremium"`
}

func (LongStrangle) ID() ID { return IDLongStrangle }

func (s LongStrangle) Reference() decimal.Decimal { return midpoint(s.PutStrike, s.CallStrike) }

func (s LongStrangle) Validate() error {
	return validateStrangle(s.PutStrike, s.PutPremium, s.CallStrike, s.CallPremium)
}

func (s LongStrangle) Legs() []Leg {
	return []Leg{longPut(s.PutStrike, s.PutPremium), longCall(s.CallStrike, s.CallPremium)}
}

func (s LongStrangle) Summary() Summary {
	total := s.PutPremium.Add(s.CallPremium)
	return Summary{
		MaxProfit: Unlimited(),
		MaxLoss:   Bound(total.Neg()),
		Breakeven: Pair(s.PutStrike.Sub(total), s.CallStrike.Add(total)),
	}
}

// ShortStrangle sells an out-of-the-money put and call.
type ShortStrangle struct {
	PutStrike   decimal.Decimal `json:"putStrike"`
	PutPremium  decimal.Decimal `json:"putPremium"`
	CallStrike  decimal.Decimal `json:"callStrike"`
	CallPremium decimal.Decimal `json:"callPremium"`
}

func (ShortStrangle) ID() ID { return IDShortStrangle }

func (s ShortStrangle) Reference() decimal.Decimal { return midpoint(s.PutStrike, s.CallStrike) }

func (s ShortStrangle) Validate() error {
	return validateStrangle(s.PutStrike, s.PutPremium, s.CallStrike, s.CallPremium)
}

func (s ShortStrangle) Legs() []Leg {
	return []Leg{shortPut(s.PutStrike, s.PutPremium), shortCall(s.CallStrike, s.CallPremium)}
}

func (s ShortStrangle) Summary() Summary {
	total := s.PutPremium.Add(s.CallPremium)
	return Summary{
		MaxProfit: Bound(total),
		MaxLoss:   Unlimited(),
		Breakeven: Pair(s.PutStrike.Sub(total), s.CallStrike.Add(total)),
	}
}

func validateStrangle(putK, putP, callK, callP decimal.Decimal) error {
	return firstErr(
		checkStrike("putStrike", putK),
		checkPremium("putPremium", putP),
		checkStrike("callStrike", callK),
		checkPremium("callPremium", callP),
		checkAscending([]string{"putStrike", "callStrike"}, putK, callK),
	)
}

var two = decimal.NewFromInt(2)

func midpoint(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Div(two)
}
