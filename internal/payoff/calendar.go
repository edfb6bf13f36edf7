package payoff

import (
	"math"

	"github.com/shopspring/decimal"
)

// CalendarWidth is the width of the profit peak as a fraction of strike.
const CalendarWidth = 0.05

const calendarScale = 8

// farLegRetention is the share of its premium the far-dated option is
// assumed to keep when the near-dated option expires.
var farLegRetention = decimal.NewFromFloat(0.7)

// CalendarSpread buys a far-dated option (Premium1) and sells a near-dated
// option (Premium2) at the same strike. The curve is evaluated at the near
// expiry.
//
// Intrinsic value alone cannot price the far leg at the near expiry, so the
// payoff is an approximation, not a pricing model:
//
//	D = |premium1 - premium2|            net debit
//	P = max(0, premium2 - 0.3*premium1)  peak profit: near leg expires worthless,
//	                                     far leg keeps 70% of premium1
//	w = CalendarWidth * strike
//	payoff(s) = -D + (P+D) * exp(-((s-strike)/w)^2)
//
// The curve peaks at the strike and decays towards -D, never below it.
type CalendarSpread struct {
	Strike   decimal.Decimal `json:"strike"`
	Premium1 decimal.Decimal `json:"premium1"`
	Premium2 decimal.Decimal `json:"premium2"`
}

func (CalendarSpread) ID() ID                       { return IDCalendarSpread }
func (s CalendarSpread) Reference() decimal.Decimal { return s.Strike }

func (s CalendarSpread) Validate() error {
	return validateSameStrike(s.Strike, s.Premium1, s.Premium2)
}

// NetDebit returns D.
func (s CalendarSpread) NetDebit() decimal.Decimal {
	return s.Premium1.Sub(s.Premium2).Abs()
}

// PeakProfit returns P.
func (s CalendarSpread) PeakProfit() decimal.Decimal {
	decay := s.Premium1.Mul(decimal.NewFromInt(1).Sub(farLegRetention))
	return decimal.Max(decimal.Zero, s.Premium2.Sub(decay))
}

func (s CalendarSpread) width() float64 {
	return CalendarWidth * s.Strike.InexactFloat64()
}

// PerShare evaluates the approximation at spot.
func (s CalendarSpread) PerShare(spot decimal.Decimal) decimal.Decimal {
	debit := s.NetDebit()
	peak := s.PeakProfit()

	x := spot.Sub(s.Strike).InexactFloat64() / s.width()
	bump := peak.Add(debit).InexactFloat64() * math.Exp(-x*x)
	v := decimal.NewFromFloat(bump).Round(calendarScale).Sub(debit)
	return decimal.Max(v, debit.Neg())
}

// Summary reports the modelled peak and floor. Breakevens solve
// payoff(s) = 0; with no debit or no peak they collapse onto the strike.
func (s CalendarSpread) Summary() Summary {
	debit := s.NetDebit()
	peak := s.PeakProfit()

	be := Pair(s.Strike, s.Strike)
	if debit.IsPositive() && peak.IsPositive() {
		ratio := peak.Add(debit).InexactFloat64() / debit.InexactFloat64()
		half := decimal.NewFromFloat(s.width() * math.Sqrt(math.Log(ratio))).Round(calendarScale)
		be = Pair(s.Strike.Sub(half), s.Strike.Add(half))
	}
	return Summary{
		MaxProfit: Bound(peak),
		MaxLoss:   Bound(debit.Neg()),
		Breakeven: be,
	}
}
