// Package model defines the wire types shared by the HTTP service, the CLI
// and the result cache. All monetary values use shopspring/decimal, never
// float64 for money.
package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atmx/payoff-engine/internal/payoff"
)

// Calculation is the response for one payoff calculation.
// Schema: {id, strategy, payoffCurve, maxProfit, maxLoss, breakeven, ...}
type Calculation struct {
	ID              string            `json:"id"`
	Strategy        payoff.ID         `json:"strategy"`
	Lots            int64             `json:"lots"`
	LotSize         int64             `json:"lotSize"`
	Curve           []payoff.Point    `json:"payoffCurve"`
	MaxProfit       payoff.Metric     `json:"maxProfit"`
	MaxLoss         payoff.Metric     `json:"maxLoss"`
	Breakeven       DisplayBreakeven  `json:"breakeven"`       // number, or "a & b" for pairs
	BreakevenPoints []decimal.Decimal `json:"breakevenPoints"` // always numeric, ascending
	Approximate     bool              `json:"approximate,omitempty"`
	Cached          bool              `json:"cached,omitempty"`
	ComputedAt      time.Time         `json:"computedAt"`
}

// NewCalculation wraps an engine result for the wire.
func NewCalculation(id string, pos payoff.Position, res *payoff.Result, at time.Time) *Calculation {
	return &Calculation{
		ID:              id,
		Strategy:        res.Strategy,
		Lots:            pos.Lots,
		LotSize:         pos.LotSize,
		Curve:           res.Curve,
		MaxProfit:       res.MaxProfit,
		MaxLoss:         res.MaxLoss,
		Breakeven:       DisplayBreakeven{res.Breakeven},
		BreakevenPoints: res.Breakeven.Points(),
		Approximate:     res.Approximate,
		ComputedAt:      at.UTC(),
	}
}

// Summary is the curve-free view of a calculation broadcast to live
// subscribers.
type Summary struct {
	ID          string           `json:"id"`
	Strategy    payoff.ID        `json:"strategy"`
	Lots        int64            `json:"lots"`
	LotSize     int64            `json:"lotSize"`
	Points      int              `json:"points"`
	MaxProfit   payoff.Metric    `json:"maxProfit"`
	MaxLoss     payoff.Metric    `json:"maxLoss"`
	Breakeven   DisplayBreakeven `json:"breakeven"`
	Approximate bool             `json:"approximate,omitempty"`
}

// Summary drops the curve.
func (c *Calculation) Summary() Summary {
	return Summary{
		ID:          c.ID,
		Strategy:    c.Strategy,
		Lots:        c.Lots,
		LotSize:     c.LotSize,
		Points:      len(c.Curve),
		MaxProfit:   c.MaxProfit,
		MaxLoss:     c.MaxLoss,
		Breakeven:   c.Breakeven,
		Approximate: c.Approximate,
	}
}

// DisplayBreakeven renders a single breakeven as a number and a pair as a
// display string joined with " & ", each point fixed to two places.
type DisplayBreakeven struct {
	payoff.Breakeven
}

// BreakevenSeparator joins the two points of a pair.
const BreakevenSeparator = " & "

func (b DisplayBreakeven) String() string {
	if b.IsPair() {
		return b.Format(2, BreakevenSeparator)
	}
	return b.Breakeven.Format(2, "")
}

func (b DisplayBreakeven) MarshalJSON() ([]byte, error) {
	if b.IsPair() {
		return []byte(strconv.Quote(b.Format(2, BreakevenSeparator))), nil
	}
	return b.Breakeven.MarshalJSON()
}

// UnmarshalJSON accepts the display form produced by MarshalJSON as well as
// anything payoff.Breakeven accepts.
func (b *DisplayBreakeven) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if lo, hi, ok := strings.Cut(s, BreakevenSeparator); ok {
			l, err := decimal.NewFromString(lo)
			if err != nil {
				return err
			}
			h, err := decimal.NewFromString(hi)
			if err != nil {
				return err
			}
			b.Breakeven = payoff.Pair(l, h)
			return nil
		}
	}
	return b.Breakeven.UnmarshalJSON(data)
}

// StrategyInfo is one entry of the strategy catalog.
type StrategyInfo struct {
	ID          payoff.ID      `json:"id"`
	Name        string         `json:"name"`
	Outlook     payoff.Outlook `json:"outlook"`
	Fields      []string       `json:"fields"`
	Approximate bool           `json:"approximate,omitempty"`
}

// GridResponse is returned by the grid preview endpoint.
type GridResponse struct {
	Reference decimal.Decimal   `json:"reference"`
	Spots     []decimal.Decimal `json:"spotPrices"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
