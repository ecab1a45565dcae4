package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera"
	"github.com/fgalarza/cartera/date"
)

type updateCmd struct {
	notify bool
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "refresh valuations, capture the daily snapshot and summarize"
}
func (*updateCmd) Usage() string { return "finv update [-notify]\n" }
func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.notify, "notify", false, "send the summary through the Telegram bot")
}
func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	u, err := newUpdater(s)
	if err != nil {
		return fail(err)
	}
	// A partial refresh still snapshots and reports whatever did update.
	if err := u.Refresh(); err != nil {
		log.Printf("warning: refresh incomplete: %v", err)
	}
	if err := s.AppendHistorical(); err != nil {
		return fail(err)
	}

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
	message := cartera.UpdateMessage(date.Today(), total, categories, usdRate(live))
	fmt.Print(message)

	if c.notify {
		t, err := cartera.NewTelegramNotifier()
		if err != nil {
			return fail(err)
		}
		if err := t.Notify(message); err != nil {
			return fail(err)
		}
	}
	return subcommands.ExitSuccess
}

// usdRate returns the USD rate the cycle ran with, as written into the cash
// positions, or zero when no cash lot exists.
func usdRate(live []cartera.Position) decimal.Decimal {
	for _, p := range live {
		if p.Category == cartera.USD {
			return p.CurrentValue
		}
	}
	return decimal.Decimal{}
}
