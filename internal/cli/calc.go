package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/atmx/payoff-engine/internal/model"
	"github.com/atmx/payoff-engine/internal/payoff"
	"github.com/atmx/payoff-engine/internal/request"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("12")).
	Padding(0, 1)

var cardLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)

// calcView is the serialised form of a calculation for json and yaml output.
type calcView struct {
	ID          string     `json:"id" yaml:"id"`
	Strategy    payoff.ID  `json:"strategy" yaml:"strategy"`
	Lots        int64      `json:"lots" yaml:"lots"`
	LotSize     int64      `json:"lotSize" yaml:"lotSize"`
	MaxProfit   string     `json:"maxProfit" yaml:"maxProfit"`
	MaxLoss     string     `json:"maxLoss" yaml:"maxLoss"`
	Breakeven   []string   `json:"breakeven" yaml:"breakeven"`
	Approximate bool       `json:"approximate,omitempty" yaml:"approximate,omitempty"`
	Curve       []pointRow `json:"payoffCurve" yaml:"payoffCurve"`
}

// pointRow is one curve point; legs are joined with ';' so the row stays flat for csv.
type pointRow struct {
	Spot   string `json:"spot" yaml:"spot" csv:"spot"`
	Payoff string `json:"payoff" yaml:"payoff" csv:"payoff"`
	Legs   string `json:"legs,omitempty" yaml:"legs,omitempty" csv:"legs"`
}

func newCalcView(c *model.Calculation) calcView {
	v := calcView{
		ID:          c.ID,
		Strategy:    c.Strategy,
		Lots:        c.Lots,
		LotSize:     c.LotSize,
		MaxProfit:   c.MaxProfit.String(),
		MaxLoss:     c.MaxLoss.String(),
		Approximate: c.Approximate,
		Curve:       make([]pointRow, len(c.Curve)),
	}
	for _, p := range c.BreakevenPoints {
		v.Breakeven = append(v.Breakeven, p.String())
	}
	for i, p := range c.Curve {
		legs := make([]string, len(p.Legs))
		for j, l := range p.Legs {
			legs[j] = l.String()
		}
		v.Curve[i] = pointRow{Spot: p.Spot.String(), Payoff: p.Payoff.String(), Legs: strings.Join(legs, ";")}
	}
	return v
}

func newCalcCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <strategy> [name=value ...]",
		Short: "Calculate a strategy payoff",
		Long: `Calculate the expiry payoff curve, max profit, max loss and breakeven
of a strategy. Parameters may be given as positional name=value pairs or
with --param.`,
		Example: `  payoff calc long-call strike=100 premium=5 --lot-size 50
  payoff calc "Iron Condor" -p strike1=80 -p strike2=90 -p strike3=110 -p strike4=120 -p netPremium=3
  payoff calc bull-call-spread strike1=100 premium1=5 strike2=110 premium2=2 --spots 90,100,110,120 -o csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := NewOutput(cmd)
			if err != nil {
				return err
			}

			params, _ := cmd.Flags().GetStringArray("param")
			fields, err := buildFields(cmd, args[0], append(args[1:], params...))
			if err != nil {
				return err
			}
			req, err := request.FromFields(fields)
			if err != nil {
				return err
			}
			c, err := app.Service.Compute(cmd.Context(), req)
			if err != nil {
				return err
			}

			view := newCalcView(c)
			chart, _ := cmd.Flags().GetBool("chart")
			return output.Value(view, func() { renderCalc(output, c, chart) }, view.Curve)
		},
	}

	cmd.Flags().StringArrayP("param", "p", nil, "strategy parameter as name=value (repeatable)")
	cmd.Flags().Int64("lots", request.DefaultLots, "number of lots")
	cmd.Flags().Int64("lot-size", request.DefaultLotSize, "shares per lot")
	cmd.Flags().StringSlice("spots", nil, "explicit ascending spot prices (default: grid around the reference strike)")
	cmd.Flags().Bool("chart", false, "draw an ASCII payoff chart in table output")

	return cmd
}

// buildFields assembles the flat request bag. Values stay strings; the
// decoder accepts quoted decimals.
func buildFields(cmd *cobra.Command, strategy string, pairs []string) (map[string]any, error) {
	fields := map[string]any{request.FieldStrategy: strategy}
	for _, kv := range pairs {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q: want name=value", kv)
		}
		switch name {
		case request.FieldStrategy, request.FieldLots, request.FieldLotSize, request.FieldSpots:
			return nil, fmt.Errorf("%s is set with its own flag, not as a parameter", name)
		}
		fields[name] = strings.TrimSpace(value)
	}

	if cmd.Flags().Changed("lots") {
		lots, _ := cmd.Flags().GetInt64("lots")
		fields[request.FieldLots] = lots
	}
	if cmd.Flags().Changed("lot-size") {
		lotSize, _ := cmd.Flags().GetInt64("lot-size")
		fields[request.FieldLotSize] = lotSize
	}
	if spots, _ := cmd.Flags().GetStringSlice("spots"); len(spots) > 0 {
		for i := range spots {
			spots[i] = strings.TrimSpace(spots[i])
		}
		fields[request.FieldSpots] = spots
	}
	return fields, nil
}

func renderCalc(output *Output, c *model.Calculation, chart bool) {
	name := string(c.Strategy)
	if info, ok := payoff.Describe(c.Strategy); ok {
		name = info.Name
	}

	row := func(label, value string) string {
		return cardLabel.Render(label) + value
	}
	lines := []string{
		bold(name),
		row("Position", fmt.Sprintf("%d × %d", c.Lots, c.LotSize)),
		row("Max Profit", metric(c.MaxProfit)),
		row("Max Loss", metric(c.MaxLoss)),
		row("Breakeven", c.Breakeven.String()),
	}
	if c.Approximate {
		lines = append(lines, dim("approximate model"))
	}
	output.Println(cardStyle.Render(strings.Join(lines, "\n")))
	output.Println()

	if chart {
		for _, line := range renderChart(c.Curve, 60, 15) {
			output.Println(line)
		}
		output.Println()
	}

	table := NewTable(output, "Spot", "Payoff")
	for _, p := range c.Curve {
		table.AddRow(money(p.Spot), signed(p.Payoff))
	}
	table.Render()
}
