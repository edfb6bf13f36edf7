package payoff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MetricKind discriminates the Metric union.
type MetricKind int

const (
	// Bounded metrics carry an exact dollar value.
	Bounded MetricKind = iota
	// Unbounded metrics grow without limit as spot moves ("Unlimited").
	Unbounded
	// Approximate metrics are unbounded in practice but not formula-exact ("Large").
	Approximate
)

// Display labels for the non-numeric metric kinds.
const (
	LabelUnlimited = "Unlimited"
	LabelLarge     = "Large"
)

// Metric is a max-profit or max-loss figure: Bounded(value) | Unbounded | Approximate.
// The zero value is Bounded(0).
type Metric struct {
	kind  MetricKind
	value decimal.Decimal
}

// Bound returns a Bounded metric.
func Bound(v decimal.Decimal) Metric { return Metric{kind: Bounded, value: v} }

// Unlimited returns an Unbounded metric.
func Unlimited() Metric { return Metric{kind: Unbounded} }

// Large returns an Approximate metric.
func Large() Metric { return Metric{kind: Approximate} }

// Kind reports which variant m holds.
func (m Metric) Kind() MetricKind { return m.kind }

// Value returns the numeric value and true for Bounded metrics.
func (m Metric) Value() (decimal.Decimal, bool) {
	if m.kind != Bounded {
		return decimal.Zero, false
	}
	return m.value, true
}

// Scale multiplies a Bounded value by factor; other kinds are returned unchanged.
func (m Metric) Scale(factor decimal.Decimal) Metric {
	if m.kind != Bounded {
		return m
	}
	return Bound(m.value.Mul(factor))
}

// Equal reports whether both metrics hold the same variant and value.
func (m Metric) Equal(o Metric) bool {
	if m.kind != o.kind {
		return false
	}
	return m.kind != Bounded || m.value.Equal(o.value)
}

func (m Metric) String() string {
	switch m.kind {
	case Unbounded:
		return LabelUnlimited
	case Approximate:
		return LabelLarge
	default:
		return m.value.String()
	}
}

// MarshalJSON encodes Bounded metrics as numbers and the others as their labels.
func (m Metric) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case Unbounded:
		return json.Marshal(LabelUnlimited)
	case Approximate:
		return json.Marshal(LabelLarge)
	default:
		return m.value.MarshalJSON()
	}
}

// UnmarshalJSON accepts a number, a numeric string, or one of the labels.
func (m *Metric) UnmarshalJSON(data []byte) error {
	trimmed := string(bytes.Trim(data, `"`))
	switch {
	case strings.EqualFold(trimmed, LabelUnlimited):
		*m = Unlimited()
		return nil
	case strings.EqualFold(trimmed, LabelLarge):
		*m = Large()
		return nil
	}
	v, err := decimal.NewFromString(trimmed)
	if err != nil {
		return fmt.Errorf("payoff: invalid metric %s: %w", data, err)
	}
	*m = Bound(v)
	return nil
}

// Breakeven holds one breakeven price or an ascending pair of them. Breakevens
// are per-share strike-equivalent prices and are never scaled by position size.
type Breakeven struct {
	points []decimal.Decimal
}

// Single returns a one-point breakeven.
func Single(v decimal.Decimal) Breakeven {
	return Breakeven{points: []decimal.Decimal{v}}
}

// Pair returns a two-point breakeven ordered ascending.
func Pair(a, b decimal.Decimal) Breakeven {
	if b.LessThan(a) {
		a, b = b, a
	}
	return Breakeven{points: []decimal.Decimal{a, b}}
}

// Points returns a copy of the breakeven prices.
func (b Breakeven) Points() []decimal.Decimal {
	out := make([]decimal.Decimal, len(b.points))
	copy(out, b.points)
	return out
}

// IsPair reports whether b holds two points.
func (b Breakeven) IsPair() bool { return len(b.points) == 2 }

// Equal reports whether both breakevens hold the same points.
func (b Breakeven) Equal(o Breakeven) bool {
	if len(b.points) != len(o.points) {
		return false
	}
	for i := range b.points {
		if !b.points[i].Equal(o.points[i]) {
			return false
		}
	}
	return true
}

// Format renders the points with fixed decimal places joined by sep,
// e.g. "93.00 & 107.00".
func (b Breakeven) Format(places int32, sep string) string {
	parts := make([]string, len(b.points))
	for i, p := range b.points {
		parts[i] = p.StringFixed(places)
	}
	return strings.Join(parts, sep)
}

func (b Breakeven) String() string { return b.Format(2, " & ") }

// MarshalJSON encodes a single point as a number and a pair as an array.
func (b Breakeven) MarshalJSON() ([]byte, error) {
	if len(b.points) == 1 {
		return b.points[0].MarshalJSON()
	}
	if b.points == nil {
		return []byte("null"), nil
	}
	return json.Marshal(b.points)
}

// UnmarshalJSON accepts either a scalar or an array of one or two points.
func (b *Breakeven) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = Breakeven{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var pts []decimal.Decimal
		if err := json.Unmarshal(data, &pts); err != nil {
			return fmt.Errorf("payoff: invalid breakeven %s: %w", data, err)
		}
		switch len(pts) {
		case 1:
			*b = Single(pts[0])
		case 2:
			*b = Pair(pts[0], pts[1])
		default:
			return fmt.Errorf("payoff: breakeven must hold one or two points, got %d", len(pts))
		}
		return nil
	}
	var v decimal.Decimal
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("payoff: invalid breakeven %s: %w", data, err)
	}
	*b = Single(v)
	return nil
}
