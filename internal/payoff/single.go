package payoff

import "github.com/shopspring/decimal"

// LongCall buys one call.
type LongCall struct {
	Strike  decimal.Decimal `json:"strike"`
	Premium decimal.Decimal `json:"premium"`
}

func (LongCall) ID() ID                       { return IDLongCall }
func (s LongCall) Reference() decimal.Decimal { return s.Strike }
func (s LongCall) Legs() []Leg                { return []Leg{longCall(s.Strike, s.Premium)} }

func (s LongCall) Validate() error {
	return firstErr(checkStrike("strike", s.Strike), checkPremium("premium", s.Premium))
}

func (s LongCall) Summary() Summary {
	return Summary{
		MaxProfit: Unlimited(),
		MaxLoss:   Bound(s.Premium.Neg()),
		Breakeven: Single(s.Strike.Add(s.Premium)),
	}
}

// LongPut buys one put. Max profit is reached if the underlying goes to zero.
type LongPut struct {
	Strike  decimal.Decimal `json:"strike"`
	Premium decimal.Decimal `json:"premium"`
}

func (LongPut) ID() ID                       { return IDLongPut }
func (s LongPut) Reference() decimal.Decimal { return s.Strike }
func (s LongPut) Legs() []Leg                { return []Leg{longPut(s.Strike, s.Premium)} }

func (s LongPut) Validate() error {
	return firstErr(checkStrike("strike", s.Strike), checkPremium("premium", s.Premium))
}

func (s LongPut) Summary() Summary {
	return Summary{
		MaxProfit: Bound(s.Strike.Sub(s.Premium)),
		MaxLoss:   Bound(s.Premium.Neg()),
		Breakeven: Single(s.Strike.Sub(s.Premium)),
	}
}

// ShortCall writes one naked call.
type ShortCall struct {
	Strike  decimal.Decimal `json:"strike"`
	Premium decimal.Decimal `json:"premium"`
}

func (ShortCall) ID() ID                       { return IDShortCall }
func (s ShortCall) Reference() decimal.Decimal { return s.Strike }
func (s ShortCall) Legs() []Leg                { return []Leg{shortCall(s.Strike, s.Premium)} }

func (s ShortCall) Validate() error {
	return firstErr(checkStrike("strike", s.Strike), checkPremium("premium", s.Premium))
}

func (s ShortCall) Summary() Summary {
	return Summary{
		MaxProfit: Bound(s.Premium),
		MaxLoss:   Unlimited(),
		Breakeven: Single(s.Strike.Add(s.Premium)),
	}
}

// ShortPut writes one naked put. Max loss is reached if the underlying goes to zero.
type ShortPut struct {
	Strike  decimal.Decimal `json:"strike"`
	Premium decimal.Decimal `json:"premium"`
}

func (ShortPut) ID() ID                       { return IDShortPut }
func (s ShortPut) Reference() decimal.Decimal { return s.Strike }
func (s ShortPut) Legs() []Leg                { return []Leg{shortPut(s.Strike, s.Premium)} }

func (s ShortPut) Validate() error {
	return firstErr(checkStrike("strike", s.Strike), checkPremium("premium", s.Premium))
}

func (s ShortPut) Summary() Summary {
	return Summary{
		MaxProfit: Bound(s.Premium),
		MaxLoss:   Bound(s.Strike.Sub(s.Premium).Neg()),
		Breakeven: Single(s.Strike.Sub(s.Premium)),
	}
}
