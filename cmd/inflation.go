package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera"
	"github.com/fgalarza/cartera/date"
	"github.com/fgalarza/cartera/renderer"
)

// parseMonth accepts "YYYY-MM" or a full date; either way the record lands
// on the first of the month.
func parseMonth(s string) (date.Date, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return date.FromTime(t), nil
	}
	on, err := date.Parse(s)
	if err != nil {
		return date.Date{}, fmt.Errorf("month %q: want YYYY-MM", s)
	}
	return on.FirstOfMonth(), nil
}

type infAddCmd struct {
	month string
	value string
}

func (*infAddCmd) Name() string     { return "inf-add" }
func (*infAddCmd) Synopsis() string { return "add a monthly inflation index record" }
func (*infAddCmd) Usage() string    { return "finv inf-add -month YYYY-MM -value <index>\n" }
func (c *infAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "month of the record")
	f.StringVar(&c.value, "value", "", "reference index value")
}
func (c *infAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r cartera.InflationRecord
	var err error
	if r.Month, err = parseMonth(c.month); err != nil {
		fmt.Println(err)
		return subcommands.ExitUsageError
	}
	if r.RefValue, err = decimal.NewFromString(c.value); err != nil {
		fmt.Println("value:", err)
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	if err := s.AddInflation(&r); err != nil {
		return fail(err)
	}
	fmt.Printf("added inflation record %d (%s)\n", r.ID, r.Month)
	return subcommands.ExitSuccess
}

type infEditCmd struct {
	id    int64
	month string
	value string
}

func (*infEditCmd) Name() string     { return "inf-edit" }
func (*infEditCmd) Synopsis() string { return "edit a monthly inflation index record" }
func (*infEditCmd) Usage() string    { return "finv inf-edit -id <id> [-month YYYY-MM] [-value <index>]\n" }
func (c *infEditCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "record id")
	f.StringVar(&c.month, "month", "", "month of the record")
	f.StringVar(&c.value, "value", "", "reference index value")
}
func (c *infEditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		fmt.Println("an -id is required")
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	r, err := s.InflationRecord(c.id)
	if err != nil {
		return fail(err)
	}
	if c.month != "" {
		if r.Month, err = parseMonth(c.month); err != nil {
			fmt.Println(err)
			return subcommands.ExitUsageError
		}
	}
	if c.value != "" {
		if r.RefValue, err = decimal.NewFromString(c.value); err != nil {
			fmt.Println("value:", err)
			return subcommands.ExitUsageError
		}
	}
	if err := s.UpdateInflation(r); err != nil {
		return fail(err)
	}
	fmt.Printf("updated inflation record %d\n", r.ID)
	return subcommands.ExitSuccess
}

type infDelCmd struct {
	id int64
}

func (*infDelCmd) Name() string     { return "inf-del" }
func (*infDelCmd) Synopsis() string { return "delete a monthly inflation index record" }
func (*infDelCmd) Usage() string    { return "finv inf-del -id <id>\n" }
func (c *infDelCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "record id")
}
func (c *infDelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		fmt.Println("an -id is required")
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	if err := s.DeleteInflation(c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("deleted inflation record %d\n", c.id)
	return subcommands.ExitSuccess
}

type inflationCmd struct{}

func (*inflationCmd) Name() string             { return "inflation" }
func (*inflationCmd) Synopsis() string         { return "show the inflation index and its derived rates" }
func (*inflationCmd) Usage() string            { return "finv inflation\n" }
func (*inflationCmd) SetFlags(f *flag.FlagSet) {}
func (*inflationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	records, err := s.InflationRecords()
	if err != nil {
		return fail(err)
	}
	render(renderer.InflationMarkdown(cartera.InflationRates(records)))
	return subcommands.ExitSuccess
}
