package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/atmx/payoff-engine/internal/payoff"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

// Output writes command results in the selected format.
type Output struct {
	writer io.Writer
	format string
}

// NewOutput creates an Output from the --output flag.
func NewOutput(cmd *cobra.Command) (*Output, error) {
	format, _ := cmd.Flags().GetString("output")
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV:
	default:
		return nil, fmt.Errorf("unknown output format %q (must be table, json, yaml or csv)", format)
	}
	return &Output{writer: cmd.OutOrStdout(), format: format}, nil
}

// Printf prints a formatted message.
func (o *Output) Printf(format string, args ...any) {
	fmt.Fprintf(o.writer, format, args...)
}

// Println prints a message with newline.
func (o *Output) Println(args ...any) {
	fmt.Fprintln(o.writer, args...)
}

// Value renders v as JSON or YAML, or calls table for the table format.
// rows, when given, is a slice of csv-tagged structs for the csv format.
func (o *Output) Value(v any, table func(), rows ...any) error {
	switch o.format {
	case FormatJSON:
		enc := json.NewEncoder(o.writer)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(o.writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		if len(rows) == 0 {
			return fmt.Errorf("csv output is not supported by this command")
		}
		return gocsv.Marshal(rows[0], o.writer)
	default:
		table()
		return nil
	}
}

// money formats v with thousands separators and two decimals.
func money(v decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", v.Round(2).InexactFloat64())
}

// signed colours v by sign.
func signed(v decimal.Decimal) string {
	s := money(v)
	switch {
	case v.IsPositive():
		return green(s)
	case v.IsNegative():
		return red(s)
	}
	return s
}

// metric renders a max profit/loss value.
func metric(m payoff.Metric) string {
	if v, ok := m.Value(); ok {
		return signed(v)
	}
	if m.Kind() == payoff.Unbounded {
		return bold(m.String())
	}
	return m.String()
}

// Table is a plain aligned text table.
type Table struct {
	headers []string
	rows    [][]string
	output  *Output
}

// NewTable creates a table with the given headers.
func NewTable(output *Output, headers ...string) *Table {
	return &Table{headers: headers, output: output}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render renders the table. Cells are right-aligned except the first column.
func (t *Table) Render() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visibleLen(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && visibleLen(cell) > widths[i] {
				widths[i] = visibleLen(cell)
			}
		}
	}

	t.printRow(t.headers, widths, true)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.output.Println("  " + strings.Join(sep, "  "))
	for _, row := range t.rows {
		t.printRow(row, widths, false)
	}
}

func (t *Table) printRow(cells []string, widths []int, header bool) {
	var b strings.Builder
	b.WriteString("  ")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if header {
			cell = bold(cell)
		}
		pad := strings.Repeat(" ", w-visibleLen(cell))
		if i == 0 {
			b.WriteString(cell + pad)
		} else {
			b.WriteString(pad + cell)
		}
		if i < len(widths)-1 {
			b.WriteString("  ")
		}
	}
	t.output.Println(b.String())
}

// visibleLen is the printed width of s, ignoring ANSI colour sequences.
func visibleLen(s string) int {
	n, esc := 0, false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc:
			if r == 'm' {
				esc = false
			}
		default:
			n++
		}
	}
	return n
}
