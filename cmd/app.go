// Package cmd implements the CLI application to run household projections.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/hearthlab/hearth"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "feed")
	c.Register(&fetchCmd{}, "quotes")
	c.Register(&simulateCmd{}, "retirement")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var recordsFile = flag.String("records-file", "records.jsonl", "Path to the transactions feed (JSONL format)")
var configFile = flag.String("config-file", "config.json", "Path to the feed configuration file")
var budgetFile = flag.String("budget-file", "budget.json", "Path to the budget grid file")

// DecodeFeed loads and processes the transaction feed for one owner.
func DecodeFeed(owner string) (*hearth.Feed, error) {
	f, err := os.Open(*recordsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open records file %q: %w", *recordsFile, err)
	}
	defer f.Close()
	records, err := hearth.DecodeRecords(*recordsFile, f)
	if err != nil {
		return nil, err
	}

	cf, err := os.Open(*configFile)
	if err != nil {
		return nil, fmt.Errorf("could not open config file %q: %w", *configFile, err)
	}
	defer cf.Close()
	cfg, err := hearth.DecodeConfig(*configFile, cf)
	if err != nil {
		return nil, err
	}

	var budget hearth.Budget
	bf, err := os.Open(*budgetFile)
	if err == nil {
		defer bf.Close()
		budget, err = hearth.DecodeBudget(*budgetFile, bf)
		if err != nil {
			return nil, err
		}
	}

	return hearth.NewFeed(owner, cfg, records, budget), nil
}

// DecodePlanFile loads a retirement plan file.
func DecodePlanFile(filename string) (*hearth.Plan, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open plan file %q: %w", filename, err)
	}
	defer f.Close()
	return hearth.DecodePlan(filename, f)
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
