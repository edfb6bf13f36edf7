// Package cli implements the payoff command-line client. It drives the
// same calculation pipeline as the HTTP service, in process.
package cli

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/atmx/payoff-engine/internal/calc"
	"github.com/atmx/payoff-engine/internal/config"
	"github.com/atmx/payoff-engine/internal/logging"
)

// Version information, overridden at link time.
var (
	Version   = "dev"
	BuildDate = "unknown"
)

// App holds the command dependencies, built once flags are parsed.
type App struct {
	Config  *config.Config
	Service *calc.Service
	Logger  *slog.Logger
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   "payoff",
		Short: "Options strategy payoff calculator",
		Long: `payoff evaluates the expiry P&L of twenty standard options strategies.

Strategy parameters are passed as --param name=value pairs; run
'payoff strategies <id>' to see which parameters a strategy takes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(file)
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				level = slog.LevelDebug
			}
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				color.NoColor = true
			}

			app.Config = cfg
			app.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			app.Service = calc.NewService(cfg.Grid.ToGrid(), cfg.Limits.Limiter(), nil, nil)
			cmd.SetContext(logging.ToContext(cmd.Context(), app.Logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./payoff.yaml or /etc/payoff/payoff.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", FormatTable, "output format: table, json, yaml or csv")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newCalcCmd(app))
	rootCmd.AddCommand(newStrategiesCmd(app))
	rootCmd.AddCommand(newGridCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := NewOutput(cmd)
			if err != nil {
				return err
			}
			return output.Value(map[string]string{"version": Version, "buildDate": BuildDate}, func() {
				output.Printf("payoff %s (built %s)\n", Version, BuildDate)
			})
		},
	}
}
