package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/atmx/payoff-engine/internal/cli"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
