package payoff

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

var fifty = Position{Lots: 1, LotSize: 50}

type strategyCase struct {
	name      string
	strategy  Strategy
	at        map[float64]float64 // spot -> expected payoff for fifty
	maxProfit Metric
	maxLoss   Metric
	breakeven Breakeven
}

func TestStrategies(t *testing.T) {
	cases := []strategyCase{
		{
			name:      "long call",
			strategy:  LongCall{Strike: d(100), Premium: d(5)},
			at:        map[float64]float64{90: -250, 100: -250, 105: 0, 115: 500},
			maxProfit: Unlimited(),
			maxLoss:   Bound(d(-250)),
			breakeven: Single(d(105)),
		},
		{
			name:      "long put",
			strategy:  LongPut{Strike: d(100), Premium: d(5)},
			at:        map[float64]float64{85: 500, 95: 0, 110: -250},
			maxProfit: Bound(d(4750)),
			maxLoss:   Bound(d(-250)),
			breakeven: Single(d(95)),
		},
		{
			name:      "short call",
			strategy:  ShortCall{Strike: d(100), Premium: d(5)},
			at:        map[float64]float64{90: 250, 105: 0, 115: -500},
			maxProfit: Bound(d(250)),
			maxLoss:   Unlimited(),
			breakeven: Single(d(105)),
		},
		{
			name:      "short put",
			strategy:  ShortPut{Strike: d(100), Premium: d(5)},
			at:        map[float64]float64{85: -500, 95: 0, 110: 250},
			maxProfit: Bound(d(250)),
			maxLoss:   Bound(d(-4750)),
			breakeven: Single(d(95)),
		},
		{
			name:      "bull call spread",
			strategy:  BullCallSpread{Strike1: d(100), Premium1: d(5), Strike2: d(110), Premium2: d(2)},
			at:        map[float64]float64{90: -150, 103: 0, 120: 350},
			maxProfit: Bound(d(350)),
			maxLoss:   Bound(d(-150)),
			breakeven: Single(d(103)),
		},
		{
			name:      "bull put spread",
			strategy:  BullPutSpread{Strike1: d(100), Premium1: d(5), Strike2: d(90), Premium2: d(2)},
			at:        map[float64]float64{80: -350, 97: 0, 110: 150},
			maxProfit: Bound(d(150)),
			maxLoss:   Bound(d(-350)),
			breakeven: Single(d(97)),
		},
		{
			name:      "bear call spread",
			strategy:  BearCallSpread{Strike1: d(100), Premium1: d(5), Strike2: d(110), Premium2: d(2)},
			at:        map[float64]float64{90: 150, 103: 0, 120: -350},
			maxProfit: Bound(d(150)),
			maxLoss:   Bound(d(-350)),
			breakeven: Single(d(103)),
		},
		{
			name:      "bear put spread",
			strategy:  BearPutSpread{Strike1: d(100), Premium1: d(5), Strike2: d(90), Premium2: d(2)},
			at:        map[float64]float64{80: 350, 97: 0, 110: -150},
			maxProfit: Bound(d(350)),
			maxLoss:   Bound(d(-150)),
			breakeven: Single(d(97)),
		},
		{
			name:      "synthetic long stock",
			strategy:  SyntheticLongStock{Strike: d(100), Premium1: d(5), Premium2: d(3)},
			at:        map[float64]float64{90: -600, 102: 0, 110: 400},
			maxProfit: Unlimited(),
			maxLoss:   Large(),
			breakeven: Single(d(102)),
		},
		{
			name:      "synthetic short stock",
			strategy:  SyntheticShortStock{Strike: d(100), Premium1: d(5), Premium2: d(3)},
			at:        map[float64]float64{90: 400, 98: 0, 110: -600},
			maxProfit: Large(),
			maxLoss:   Unlimited(),
			breakeven: Single(d(98)),
		},
		{
			name:      "protective put",
			strategy:  ProtectivePut{StockPrice: d(100), Strike: d(95), Premium: d(3)},
			at:        map[float64]float64{80: -400, 95: -400, 103: 0, 120: 850},
			maxProfit: Unlimited(),
			maxLoss:   Bound(d(-400)),
			breakeven: Single(d(103)),
		},
		{
			name:      "protective call",
			strategy:  ProtectiveCall{StockPrice: d(100), Strike: d(105), Premium: d(3)},
			at:        map[float64]float64{80: 850, 97: 0, 105: -400, 120: -400},
			maxProfit: Bound(d(4850)),
			maxLoss:   Bound(d(-400)),
			breakeven: Single(d(97)),
		},
		{
			name:      "long straddle",
			strategy:  LongStraddle{Strike: d(100), Premium1: d(4), Premium2: d(3)},
			at:        map[float64]float64{93: 0, 100: -350, 107: 0, 120: 650},
			maxProfit: Unlimited(),
			maxLoss:   Bound(d(-350)),
			breakeven: Pair(d(93), d(107)),
		},
		{
			name:      "short straddle",
			strategy:  ShortStraddle{Strike: d(100), Premium1: d(4), Premium2: d(3)},
			at:        map[float64]float64{80: -650, 93: 0, 100: 350, 107: 0},
			maxProfit: Bound(d(350)),
			maxLoss:   Unlimited(),
			breakeven: Pair(d(93), d(107)),
		},
		{
			name:      "long strangle",
			strategy:  LongStrangle{PutStrike: d(90), PutPremium: d(2), CallStrike: d(110), CallPremium: d(3)},
			at:        map[float64]float64{85: 0, 100: -250, 115: 0},
			maxProfit: Unlimited(),
			maxLoss:   Bound(d(-250)),
			breakeven: Pair(d(85), d(115)),
		},
		{
			name:      "short strangle",
			strategy:  ShortStrangle{PutStrike: d(90), PutPremium: d(2), CallStrike: d(110), CallPremium: d(3)},
			at:        map[float64]float64{85: 0, 100: 250, 115: 0, 125: -500},
			maxProfit: Bound(d(250)),
			maxLoss:   Unlimited(),
			breakeven: Pair(d(85), d(115)),
		},
		{
			name:      "iron condor",
			strategy:  IronCondor{Strike1: d(80), Strike2: d(90), Strike3: d(110), Strike4: d(120), NetPremium: d(3)},
			at:        map[float64]float64{70: -350, 87: 0, 100: 150, 113: 0, 130: -350},
			maxProfit: Bound(d(150)),
			maxLoss:   Bound(d(-350)),
			breakeven: Pair(d(87), d(113)),
		},
		{
			name:      "iron butterfly",
			strategy:  IronButterfly{Strike1: d(90), Strike2: d(100), Strike3: d(110), NetPremium: d(6)},
			at:        map[float64]float64{80: -200, 94: 0, 100: 300, 106: 0, 120: -200},
			maxProfit: Bound(d(300)),
			maxLoss:   Bound(d(-200)),
			breakeven: Pair(d(94), d(106)),
		},
		{
			name:      "call butterfly",
			strategy:  CallButterfly{Strike1: d(90), Strike2: d(100), Strike3: d(110), NetPremium: d(2)},
			at:        map[float64]float64{80: -100, 92: 0, 100: 400, 108: 0, 120: -100},
			maxProfit: Bound(d(400)),
			maxLoss:   Bound(d(-100)),
			breakeven: Pair(d(92), d(108)),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Calculate(tc.strategy, fifty, ladder(60, 140))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for spot, want := range tc.at {
				p, ok := res.At(d(spot))
				if !ok {
					t.Fatalf("spot %v not sampled", spot)
				}
				if !p.Payoff.Equal(d(want)) {
					t.Errorf("payoff(%v) = %s, want %v", spot, p.Payoff, want)
				}
			}
			if !res.MaxProfit.Equal(tc.maxProfit) {
				t.Errorf("maxProfit = %s, want %s", res.MaxProfit, tc.maxProfit)
			}
			if !res.MaxLoss.Equal(tc.maxLoss) {
				t.Errorf("maxLoss = %s, want %s", res.MaxLoss, tc.maxLoss)
			}
			if !res.Breakeven.Equal(tc.breakeven) {
				t.Errorf("breakeven = %s, want %s", res.Breakeven, tc.breakeven)
			}
			if res.Approximate {
				t.Error("closed-form strategy reported as approximate")
			}
		})
	}
}

func TestCalculate_LegBreakdownSumsToTotal(t *testing.T) {
	s := IronCondor{Strike1: d(80), Strike2: d(90), Strike3: d(110), Strike4: d(120), NetPremium: d(3)}
	res, err := Calculate(s, fifty, ladder(70, 130))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range res.Curve {
		if len(p.Legs) != 4 {
			t.Fatalf("spot %s: got %d legs, want 4", p.Spot, len(p.Legs))
		}
		sum := decimal.Zero
		for _, v := range p.Legs {
			sum = sum.Add(v)
		}
		if !sum.Equal(p.Payoff) {
			t.Errorf("spot %s: legs sum to %s, payoff %s", p.Spot, sum, p.Payoff)
		}
	}
}

func TestWings_MaxLossUsesWiderWing(t *testing.T) {
	tests := []struct {
		name    string
		s       Strategy
		maxLoss float64
	}{
		{"condor wide call wing", IronCondor{Strike1: d(80), Strike2: d(90), Strike3: d(110), Strike4: d(125), NetPremium: d(3)}, -600},
		{"condor wide put wing", IronCondor{Strike1: d(70), Strike2: d(90), Strike3: d(110), Strike4: d(120), NetPremium: d(3)}, -850},
		{"butterfly wide call wing", IronButterfly{Strike1: d(90), Strike2: d(100), Strike3: d(115), NetPremium: d(6)}, -450},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.s, fifty, ladder(50, 150))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.MaxLoss.Equal(Bound(d(tt.maxLoss))) {
				t.Errorf("maxLoss = %s, want %v", res.MaxLoss, tt.maxLoss)
			}
			lowest := res.Curve[0].Payoff
			for _, p := range res.Curve[1:] {
				lowest = decimal.Min(lowest, p.Payoff)
			}
			if !lowest.Equal(d(tt.maxLoss)) {
				t.Errorf("curve minimum = %s, want %v", lowest, tt.maxLoss)
			}
		})
	}
}

func TestCalculate_BreakevenIsZeroCrossing(t *testing.T) {
	res, err := Calculate(LongCall{Strike: d(100), Premium: d(5)}, fifty, ladder(85, 115))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Breakeven.Equal(Single(d(105))) {
		t.Fatalf("breakeven = %s, want 105", res.Breakeven)
	}
	p, _ := res.At(d(105))
	if !p.Payoff.IsZero() {
		t.Errorf("payoff(105) = %s, want 0", p.Payoff)
	}
}

func TestCalendarSpread(t *testing.T) {
	// Far leg bought for 5, near leg sold for 2.
	s := CalendarSpread{Strike: d(100), Premium1: d(5), Premium2: d(2)}
	pos := Position{Lots: 2, LotSize: 25}
	res, err := Calculate(s, pos, ladder(70, 130))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Approximate {
		t.Error("calendar spread should be approximate")
	}

	// D = 5 - 2 = 3, P = 2 - 0.3*5 = 0.5
	if !res.MaxLoss.Equal(Bound(d(-150))) {
		t.Errorf("maxLoss = %s, want -150", res.MaxLoss)
	}
	if !res.MaxProfit.Equal(Bound(d(25))) {
		t.Errorf("maxProfit = %s, want 25", res.MaxProfit)
	}

	peak, _ := res.At(d(100))
	if !peak.Payoff.Equal(d(25)) {
		t.Errorf("payoff at strike = %s, want 25", peak.Payoff)
	}

	floor := d(-150)
	for _, p := range res.Curve {
		if p.Payoff.LessThan(floor) {
			t.Errorf("payoff(%s) = %s below floor %s", p.Spot, p.Payoff, floor)
		}
		if p.Legs != nil {
			t.Errorf("approximate curve should not carry legs")
		}
	}

	pts := res.Breakeven.Points()
	if len(pts) != 2 {
		t.Fatalf("expected two breakevens, got %v", pts)
	}
	lo, hi := pts[0], pts[1]
	if !lo.Add(hi).Equal(d(200)) {
		t.Errorf("breakevens %s, %s not symmetric around strike", lo, hi)
	}
	for _, be := range pts {
		v := s.PerShare(be).InexactFloat64()
		if math.Abs(v) > 1e-6 {
			t.Errorf("payoff at breakeven %s = %v, want ~0", be, v)
		}
	}
}

// At the strike the near leg expires worthless and the far leg is worth 70%
// of what was paid for it.
func TestCalendarSpread_PeakFollowsLegRoles(t *testing.T) {
	tests := []struct {
		far, near float64
		want      float64
	}{
		{5, 2, 0.5}, // 0.7*5 - 5 + 2
		{10, 4, 1},  // 0.7*10 - 10 + 4
		{6, 1, 0},   // near credit below the far leg's decay
		{4, 4, 2.8}, // zero debit
	}
	for _, tt := range tests {
		s := CalendarSpread{Strike: d(100), Premium1: d(tt.far), Premium2: d(tt.near)}
		if got := s.PeakProfit(); !got.Equal(d(tt.want)) {
			t.Errorf("far=%v near=%v: PeakProfit = %s, want %v", tt.far, tt.near, got, tt.want)
		}
		if got := s.PerShare(d(100)); !got.Equal(d(tt.want)) {
			t.Errorf("far=%v near=%v: payoff at strike = %s, want %v", tt.far, tt.near, got, tt.want)
		}
	}
}

func TestCalendarSpread_ZeroDebit(t *testing.T) {
	s := CalendarSpread{Strike: d(100), Premium1: d(3), Premium2: d(3)}
	sum := s.Summary()
	if !sum.Breakeven.Equal(Pair(d(100), d(100))) {
		t.Errorf("breakeven = %s, want 100 & 100", sum.Breakeven)
	}
	if !sum.MaxLoss.Equal(Bound(decimal.Zero)) {
		t.Errorf("maxLoss = %s, want 0", sum.MaxLoss)
	}
}

func TestCalculate_Errors(t *testing.T) {
	call := LongCall{Strike: d(100), Premium: d(5)}
	tests := []struct {
		name     string
		strategy Strategy
		pos      Position
		spots    []decimal.Decimal
		want     error
	}{
		{"zero lots", call, Position{Lots: 0, LotSize: 50}, ladder(90, 110), ErrInvalidPosition},
		{"negative lot size", call, Position{Lots: 1, LotSize: -1}, ladder(90, 110), ErrInvalidPosition},
		{"zero strike", LongCall{Premium: d(5)}, fifty, ladder(90, 110), ErrInvalidStrike},
		{"negative premium", LongPut{Strike: d(100), Premium: d(-1)}, fifty, ladder(90, 110), ErrInvalidPremium},
		{"no spots", call, fifty, nil, ErrNoSpots},
		{"descending spots", call, fifty, []decimal.Decimal{d(101), d(100)}, ErrInvalidSpots},
		{"duplicate spots", call, fifty, []decimal.Decimal{d(100), d(100)}, ErrInvalidSpots},
		{"negative spot", call, fifty, []decimal.Decimal{d(-1), d(100)}, ErrInvalidSpots},
		{
			"bull call inverted", BullCallSpread{Strike1: d(110), Premium1: d(5), Strike2: d(100), Premium2: d(2)},
			fifty, ladder(90, 110), ErrStrikeOrder,
		},
		{
			"bull put inverted", BullPutSpread{Strike1: d(90), Premium1: d(5), Strike2: d(100), Premium2: d(2)},
			fifty, ladder(90, 110), ErrStrikeOrder,
		},
		{
			"strangle inverted", LongStrangle{PutStrike: d(110), PutPremium: d(2), CallStrike: d(90), CallPremium: d(3)},
			fifty, ladder(90, 110), ErrStrikeOrder,
		},
		{
			"condor unordered", IronCondor{Strike1: d(80), Strike2: d(110), Strike3: d(90), Strike4: d(120), NetPremium: d(3)},
			fifty, ladder(90, 110), ErrStrikeOrder,
		},
		{
			"butterfly unequal wings", CallButterfly{Strike1: d(90), Strike2: d(100), Strike3: d(120), NetPremium: d(2)},
			fifty, ladder(90, 110), ErrUnequalWings,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.strategy, tt.pos, tt.spots)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if res != nil {
				t.Error("expected no partial result on error")
			}
		})
	}
}

func TestReference(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     float64
	}{
		{LongCall{Strike: d(100)}, 100},
		{BullCallSpread{Strike1: d(100), Strike2: d(110)}, 110},
		{IronCondor{Strike1: d(80), Strike2: d(90), Strike3: d(110), Strike4: d(120)}, 90},
		{ProtectivePut{StockPrice: d(100), Strike: d(95)}, 95},
		{LongStrangle{PutStrike: d(90), CallStrike: d(110)}, 100},
	}
	for _, tt := range tests {
		if got := tt.strategy.Reference(); !got.Equal(d(tt.want)) {
			t.Errorf("%s reference = %s, want %v", tt.strategy.ID(), got, tt.want)
		}
	}
}
