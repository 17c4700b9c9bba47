package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/projsim/stats"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

func errorText(err error) string {
	return red.Sprintf("error: %v", err)
}

func printSectionHeader(w io.Writer, title string, descriptions ...string) {
	fmt.Fprintln(w)
	bold.Fprintln(w, title)
	bold.Fprintln(w, strings.Repeat("=", max(len(title), 40)))
	for _, desc := range descriptions {
		fmt.Fprintln(w, desc)
	}
	fmt.Fprintln(w)
}

// summaryRow is one statistic across several summaries.
type summaryRow struct {
	label string
	value func(stats.Summary) float64
}

var summaryRows = []summaryRow{
	{"Mean", func(s stats.Summary) float64 { return s.Mean }},
	{"Std dev", func(s stats.Summary) float64 { return s.StdDev }},
	{"Min", func(s stats.Summary) float64 { return s.Min }},
	{"P10", func(s stats.Summary) float64 { return s.P10 }},
	{"P50", func(s stats.Summary) float64 { return s.P50 }},
	{"P80", func(s stats.Summary) float64 { return s.P80 }},
	{"P90", func(s stats.Summary) float64 { return s.P90 }},
	{"P95", func(s stats.Summary) float64 { return s.P95 }},
	{"Max", func(s stats.Summary) float64 { return s.Max }},
}

func renderDurationCost(w io.Writer, duration, cost stats.Summary) error {
	table := tablewriter.NewWriter(w)
	table.Header("Statistic", "Duration (days)", "Cost")
	for _, row := range summaryRows {
		_ = table.Append(
			row.label,
			formatDays(row.value(duration)),
			formatMoney(row.value(cost)),
		)
	}
	return table.Render()
}

// probabilityColor grades a probability of success.
func probabilityColor(p float64) *color.Color {
	switch {
	case p >= 0.8:
		return green
	case p >= 0.5:
		return yellow
	default:
		return red
	}
}

func formatDays(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// formatMoney renders v rounded to whole units with thousands separators.
func formatMoney(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}
