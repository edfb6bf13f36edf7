package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/atmx/payoff-engine/internal/model"
	"github.com/atmx/payoff-engine/internal/payoff"
	"github.com/atmx/payoff-engine/internal/request"
)

type strategyRow struct {
	ID          payoff.ID      `json:"id" yaml:"id" csv:"id"`
	Name        string         `json:"name" yaml:"name" csv:"name"`
	Outlook     payoff.Outlook `json:"outlook" yaml:"outlook" csv:"outlook"`
	Fields      string         `json:"-" yaml:"-" csv:"fields"`
	Approximate bool           `json:"-" yaml:"-" csv:"approximate"`
}

func newStrategiesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "strategies [strategy]",
		Aliases: []string{"ls"},
		Short:   "List supported strategies and their parameters",
		Example: `  payoff strategies
  payoff strategies iron-condor -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := NewOutput(cmd)
			if err != nil {
				return err
			}

			catalog := payoff.Catalog()
			if len(args) == 1 {
				id, err := payoff.ParseID(args[0])
				if err != nil {
					return err
				}
				info, _ := payoff.Describe(id)
				catalog = []payoff.Info{info}
			}

			infos := make([]model.StrategyInfo, len(catalog))
			rows := make([]strategyRow, len(catalog))
			for i, info := range catalog {
				fields, _ := request.Fields(info.ID)
				infos[i] = model.StrategyInfo{
					ID:          info.ID,
					Name:        info.Name,
					Outlook:     info.Outlook,
					Fields:      fields,
					Approximate: info.Approximate,
				}
				rows[i] = strategyRow{
					ID:          info.ID,
					Name:        info.Name,
					Outlook:     info.Outlook,
					Fields:      strings.Join(fields, " "),
					Approximate: info.Approximate,
				}
			}

			var v any = infos
			if len(args) == 1 {
				v = infos[0]
			}
			return output.Value(v, func() {
				table := NewTable(output, "ID", "Name", "Outlook", "Parameters")
				for _, r := range rows {
					name := r.Name
					if r.Approximate {
						name += dim(" (approx.)")
					}
					table.AddRow(string(r.ID), name, string(r.Outlook), r.Fields)
				}
				table.Render()
			}, rows)
		},
	}
}
