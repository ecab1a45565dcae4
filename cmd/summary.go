package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/fgalarza/cartera"
	"github.com/fgalarza/cartera/renderer"
)

type summaryCmd struct {
	book    string
	divisor int64
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the positions and the evolution of a book" }
func (*summaryCmd) Usage() string    { return "finv summary [-book <name>] [-divisor <n>]\n" }
func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.book, "book", "", "book to show (default: main)")
	f.Int64Var(&c.divisor, "divisor", 1, "divide quantity and amounts for display")
}
func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	positions, err := s.Positions(cartera.Book(c.book), cartera.WithDivisor(c.divisor))
	if err != nil {
		return fail(err)
	}
	render(renderer.PositionsMarkdown(c.book, positions))

	// The evolution tables run over the main book's ledger; mirror books
	// share the same valuations.
	live, err := s.Positions(cartera.MainBook)
	if err != nil {
		return fail(err)
	}
	snaps, err := s.Snapshots()
	if err != nil {
		return fail(err)
	}
	total := cartera.CategoryEvolution(snaps)
	categories := cartera.CategoryEvolutionByCategory(live, snaps)
	render(renderer.EvolutionMarkdown(total, categories))

	return subcommands.ExitSuccess
}
