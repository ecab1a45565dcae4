package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/fgalarza/cartera"
	"github.com/fgalarza/cartera/renderer"
)

type tickersCmd struct{}

func (*tickersCmd) Name() string             { return "tickers" }
func (*tickersCmd) Synopsis() string         { return "show per-ticker holdings and price evolution" }
func (*tickersCmd) Usage() string            { return "finv tickers\n" }
func (*tickersCmd) SetFlags(f *flag.FlagSet) {}
func (*tickersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	live, err := s.Positions(cartera.MainBook)
	if err != nil {
		return fail(err)
	}
	snaps, err := s.Snapshots()
	if err != nil {
		return fail(err)
	}
	render(renderer.TickersMarkdown(cartera.TickerTotals(live), cartera.TickerEvolutions(snaps)))
	return subcommands.ExitSuccess
}
