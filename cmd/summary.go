package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/hearthlab/hearth"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	owner  string
	budget bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display yearly totals by conscious spending plan label" }
func (*summaryCmd) Usage() string {
	return `hfp summary -o <owner> [-b]

  Displays yearly totals from the transaction feed, one column per conscious
  spending plan label. With -b, the budget grid is summarized instead.

Usage Examples:
# Summarize alice's transaction history.
$ hfp summary -o alice

`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "o", "", "Owner to report on.")
	f.BoolVar(&c.budget, "b", false, "Summarize the budget grid instead of transactions.")
}

// cspColumns is the label order of the summary table.
var cspColumns = []string{
	hearth.LabelIncome,
	hearth.LabelFixed,
	hearth.LabelGuiltFree,
	hearth.LabelSavings,
	hearth.LabelInvestments,
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.owner == "" {
		fmt.Fprintf(os.Stderr, "Error: -o <owner> is required\n")
		return subcommands.ExitUsageError
	}
	feed, err := DecodeFeed(c.owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load feed: %v\n", err)
		return subcommands.ExitFailure
	}

	columns := map[string]map[int]float64{}
	years := map[int]bool{}
	for _, label := range cspColumns {
		filter := hearth.ByCSPLabel(label)
		series := feed.PastSeries(filter)
		if c.budget {
			series = feed.BudgetSeries(filter)
		}
		columns[label] = map[int]float64{}
		for y, v := range series.Values() {
			columns[label][y] = v
			years[y] = true
		}
	}
	if len(years) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no data found for owner %q.\n", c.owner)
		return subcommands.ExitSuccess
	}

	first, last := 0, 0
	for y := range years {
		if first == 0 || y < first {
			first = y
		}
		if y > last {
			last = y
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Summary for %s\n\n", c.owner)
	fmt.Fprintf(&b, "| Year |")
	for _, label := range cspColumns {
		fmt.Fprintf(&b, " %s |", label)
	}
	fmt.Fprintf(&b, " net |\n|---|")
	for range cspColumns {
		fmt.Fprintf(&b, "---|")
	}
	fmt.Fprintf(&b, "---|\n")
	for y := first; y <= last; y++ {
		if !years[y] {
			continue
		}
		var net float64
		fmt.Fprintf(&b, "| %d |", y)
		for _, label := range cspColumns {
			v := columns[label][y]
			net += v
			fmt.Fprintf(&b, " %.0f |", v)
		}
		fmt.Fprintf(&b, " %.0f |\n", net)
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
