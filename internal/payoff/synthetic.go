package payoff

import "github.com/shopspring/decimal"

// SyntheticLongStock buys a call and sells a put at the same strike.
// Premium1 is paid for the call, Premium2 received for the put.
type SyntheticLongStock struct {
	Strike   decimal.Decimal `json:"strike"`
	Premium1 decimal.Decimal `json:"premium1"`
	Premium2 decimal.Decimal `json:"premium2"`
}

func (SyntheticLongStock) ID() ID                       { return IDSyntheticLongStock }
func (s SyntheticLongStock) Reference() decimal.Decimal { return s.Strike }

func (s SyntheticLongStock) Validate() error {
	return validateSameStrike(s.Strike, s.Premium1, s.Premium2)
}

func (s SyntheticLongStock) Legs() []Leg {
	return []Leg{longCall(s.Strike, s.Premium1), shortPut(s.Strike, s.Premium2)}
}

// Summary reports the downside as Large: the loss is bounded by the strike
// in theory but the figure is not meaningful for display.
func (s SyntheticLongStock) Summary() Summary {
	return Summary{
		MaxProfit: Unlimited(),
		MaxLoss:   Large(),
		Breakeven: Single(s.Strike.Add(s.Premium1.Sub(s.Premium2))),
	}
}

// SyntheticShortStock buys a put and sells a call at the same strike.
// Premium1 is paid for the put, Premium2 received for the call.
type SyntheticShortStock struct {
	Strike   decimal.Decimal `json:"strike"`
	Premium1 decimal.Decimal `json:"premium1"`
	Premium2 decimal.Decimal `json:"premium2"`
}

func (SyntheticShortStock) ID() ID                       { return IDSyntheticShortStock }
func (s SyntheticShortStock) Reference() decimal.Decimal { return s.Strike }

func (s SyntheticShortStock) Validate() error {
	return validateSameStrike(s.Strike, s.Premium1, s.Premium2)
}

func (s SyntheticShortStock) Legs() []Leg {
	return []Leg{longPut(s.Strike, s.Premium1), shortCall(s.Strike, s.Premium2)}
}

func (s SyntheticShortStock) Summary() Summary {
	return Summary{
		MaxProfit: Large(),
		MaxLoss:   Unlimited(),
		Breakeven: Single(s.Strike.Sub(s.Premium1.Sub(s.Premium2))),
	}
}

// ProtectivePut holds the underlying bought at StockPrice and a put
// bought at Strike as insurance.
type ProtectivePut struct {
	StockPrice decimal.Decimal `json:"stockPrice"`
	Strike     decimal.Decimal `json:"strike"`
	Premium    decimal.Decimal `json:"premium"`
}

func (ProtectivePut) ID() ID                       { return IDProtectivePut }
func (s ProtectivePut) Reference() decimal.Decimal { return s.Strike }

func (s ProtectivePut) Validate() error {
	return firstErr(
		checkStrike("stockPrice", s.StockPrice),
		checkStrike("strike", s.Strike),
		checkPremium("premium", s.Premium),
	)
}

func (s ProtectivePut) Legs() []Leg {
	return []Leg{stock(Long, s.StockPrice), longPut(s.Strike, s.Premium)}
}

func (s ProtectivePut) Summary() Summary {
	return Summary{
		MaxProfit: Unlimited(),
		MaxLoss:   Bound(s.StockPrice.Sub(s.Strike).Add(s.Premium).Neg()),
		Breakeven: Single(s.StockPrice.Add(s.Premium)),
	}
}

// ProtectiveCall holds the underlying sold short at StockPrice and a call
// bought at Strike to cap the upside risk.
type ProtectiveCall struct {
	StockPrice decimal.Decimal `json:"stockPrice"`
	Strike     decimal.Decimal `json:"strike"`
	Premium    decimal.Decimal `json:"premium"`
}

func (ProtectiveCall) ID() ID                       { return IDProtectiveCall }
func (s ProtectiveCall) Reference() decimal.Decimal { return s.Strike }

func (s ProtectiveCall) Validate() error {
	return firstErr(
		checkStrike("stockPrice", s.StockPrice),
		checkStrike("strike", s.Strike),
		checkPremium("premium", s.Premium),
	)
}

func (s ProtectiveCall) Legs() []Leg {
	return []Leg{stock(Short, s.StockPrice), longCall(s.Strike, s.Premium)}
}

func (s ProtectiveCall) Summary() Summary {
	return Summary{
		MaxProfit: Bound(s.StockPrice.Sub(s.Premium)),
		MaxLoss:   Bound(s.Strike.Sub(s.StockPrice).Add(s.Premium).Neg()),
		Breakeven: Single(s.StockPrice.Sub(s.Premium)),
	}
}

func validateSameStrike(k, p1, p2 decimal.Decimal) error {
	return firstErr(
		checkStrike("strike", k),
		checkPremium("premium1", p1),
		checkPremium("premium2", p2),
	)
}
