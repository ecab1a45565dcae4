// Package cmd implements the CLI application to manage the portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/fgalarza/cartera"
)

// Commands lists the subcommands for the main package to register.
var Commands = []subcommands.Command{
	&addCmd{},
	&editCmd{},
	&delCmd{},
	&summaryCmd{},
	&tickersCmd{},
	&updateCmd{},
	&infAddCmd{},
	&infEditCmd{},
	&infDelCmd{},
	&inflationCmd{},
}

// As a CLI application it is short lived, so global flags are fine.

var dbPath = flag.String("db", "cartera.db", "path to the portfolio database file")
var books = flag.String("books", "", "comma-separated mirror book names")
var overridesPath = flag.String("overrides", "", "path to a JSON valuation override list")

// openStore opens the database with the configured mirror books.
func openStore() (*cartera.Store, error) {
	var mirrors []cartera.Book
	for _, name := range strings.Split(*books, ",") {
		if name = strings.TrimSpace(name); name != "" {
			mirrors = append(mirrors, cartera.Book(name))
		}
	}
	return cartera.Open(*dbPath, mirrors...)
}

// newUpdater builds an updater over the live providers, loading the override
// list when one is configured.
func newUpdater(s *cartera.Store) (*cartera.Updater, error) {
	var overrides []cartera.Override
	if *overridesPath != "" {
		var err error
		if overrides, err = cartera.LoadOverrides(*overridesPath); err != nil {
			return nil, err
		}
	}
	return cartera.NewUpdater(s, cartera.NewWebSource(), overrides), nil
}

// render pretty-prints a markdown report on the terminal. If the terminal
// renderer fails the raw markdown is still readable.
func render(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
