package cli

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/atmx/payoff-engine/internal/payoff"
)

// renderChart plots curve as an ASCII chart of at most width columns and
// height rows. The zero line is always in range.
func renderChart(curve []payoff.Point, width, height int) []string {
	if len(curve) == 0 || width < 2 || height < 3 {
		return nil
	}
	cols := min(width, len(curve))

	values := make([]float64, cols)
	spots := make([]decimal.Decimal, cols)
	lo, hi := 0.0, 0.0
	for c := range cols {
		i := 0
		if cols > 1 {
			i = c * (len(curve) - 1) / (cols - 1)
		}
		values[c] = curve[i].Payoff.InexactFloat64()
		spots[c] = curve[i].Spot
		lo = math.Min(lo, values[c])
		hi = math.Max(hi, values[c])
	}
	if hi == lo {
		hi = lo + 1
	}

	rowOf := func(v float64) int {
		return int(math.Round((hi - v) / (hi - lo) * float64(height-1)))
	}
	zero := rowOf(0)

	grid := make([][]rune, height)
	for r := range grid {
		fill := ' '
		if r == zero {
			fill = '─'
		}
		grid[r] = []rune(strings.Repeat(string(fill), cols))
	}
	for c, v := range values {
		grid[rowOf(v)][c] = '•'
	}

	labels := map[int]string{
		0:          money(decimal.NewFromFloat(hi)),
		zero:       "0",
		height - 1: money(decimal.NewFromFloat(lo)),
	}
	pad := 0
	for _, l := range labels {
		pad = max(pad, len(l))
	}

	out := make([]string, 0, height+2)
	for r, line := range grid {
		label := labels[r]
		out = append(out, strings.Repeat(" ", pad-len(label))+label+" │"+string(line))
	}
	out = append(out, strings.Repeat(" ", pad)+" └"+strings.Repeat("─", cols))

	first, last := money(spots[0]), money(spots[cols-1])
	gap := max(1, cols-len(first)-len(last))
	out = append(out, strings.Repeat(" ", pad+2)+first+strings.Repeat(" ", gap)+last)
	return out
}
