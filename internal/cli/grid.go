package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/atmx/payoff-engine/internal/model"
)

type spotRow struct {
	Spot string `csv:"spot"`
}

func newGridCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "grid <reference>",
		Short: "Preview the default spot grid around a reference price",
		Example: `  payoff grid 100
  payoff grid 19500 -o csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := NewOutput(cmd)
			if err != nil {
				return err
			}
			ref, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("reference must be a number: %q", args[0])
			}
			spots, err := app.Config.Grid.ToGrid().Spots(ref)
			if err != nil {
				return err
			}

			rows := make([]spotRow, len(spots))
			for i, s := range spots {
				rows[i] = spotRow{Spot: s.String()}
			}
			resp := model.GridResponse{Reference: ref, Spots: spots}
			return output.Value(resp, func() {
				output.Printf("%s spots from %s to %s around %s\n",
					bold(len(spots)), money(spots[0]), money(spots[len(spots)-1]), money(ref))
			}, rows)
		},
	}
}
