package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atmx/payoff-engine/internal/payoff"
)

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// encode mirrors the HTTP and CLI writers, which leave HTML characters alone.
func encode(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		t.Fatal(err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

func TestDisplayBreakeven_Pair(t *testing.T) {
	b := DisplayBreakeven{payoff.Pair(d(93), d(107))}
	raw := encode(t, b)
	if string(raw) != `"93.00 & 107.00"` {
		t.Errorf("marshal = %s", raw)
	}

	var back DisplayBreakeven
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(b.Breakeven) {
		t.Errorf("got %s, want %s", back, b)
	}
}

func TestDisplayBreakeven_SingleStaysNumeric(t *testing.T) {
	b := DisplayBreakeven{payoff.Single(d(105))}
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "&") {
		t.Errorf("single breakeven rendered as pair: %s", raw)
	}
	if b.String() != "105.00" {
		t.Errorf("String() = %q", b.String())
	}
}

func TestNewCalculation(t *testing.T) {
	s := payoff.LongStraddle{Strike: d(100), Premium1: d(4), Premium2: d(3)}
	pos := payoff.Position{Lots: 1, LotSize: 50}
	res, err := payoff.Calculate(s, pos, []decimal.Decimal{d(90), d(100), d(110)})
	if err != nil {
		t.Fatal(err)
	}

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("IST", 19800))
	calc := NewCalculation("abc", pos, res, at)

	if calc.ComputedAt.Location() != time.UTC {
		t.Errorf("computedAt not UTC: %v", calc.ComputedAt)
	}
	if len(calc.BreakevenPoints) != 2 || !calc.BreakevenPoints[0].Equal(d(93)) {
		t.Errorf("breakevenPoints = %v", calc.BreakevenPoints)
	}

	raw, err := json.Marshal(calc)
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "strategy", "payoffCurve", "maxProfit", "maxLoss", "breakeven", "lots", "lotSize"} {
		if _, ok := body[key]; !ok {
			t.Errorf("response missing %q", key)
		}
	}
	if body["maxProfit"] != payoff.LabelUnlimited {
		t.Errorf("maxProfit = %v", body["maxProfit"])
	}
	if body["breakeven"] != "93.00 & 107.00" {
		t.Errorf("breakeven = %v", body["breakeven"])
	}

	sum := calc.Summary()
	if sum.Points != 3 || sum.ID != "abc" {
		t.Errorf("summary = %+v", sum)
	}
}
