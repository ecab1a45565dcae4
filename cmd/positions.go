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

type addCmd struct {
	book      string
	on        string
	category  string
	ticker    string
	quantity  string
	principal string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new position, priced immediately" }
func (*addCmd) Usage() string {
	return "finv add -category <1..4> -ticker <ticker> -qty <n> -amount <n> [-date YYYY-MM-DD] [-book <name>]\n"
}
func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.book, "book", "", "book to add into (default: main)")
	f.StringVar(&c.on, "date", "", "purchase date (default: today)")
	f.StringVar(&c.category, "category", "", "category: 1. FCI, 2. Cedear, 3. Accion, 4. USD")
	f.StringVar(&c.ticker, "ticker", "", "instrument ticker (empty for USD)")
	f.StringVar(&c.quantity, "qty", "", "quantity bought")
	f.StringVar(&c.principal, "amount", "", "amount paid for the lot")
}
func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.position()
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	u, err := newUpdater(s)
	if err != nil {
		return fail(err)
	}
	// A pricing failure is not fatal: the lot lands unvalued and the next
	// update cycle fills it in.
	if err := u.Price(&p); err != nil {
		log.Printf("warning: pricing new position: %v", err)
	}

	if err := s.AddPosition(cartera.Book(c.book), &p); err != nil {
		return fail(err)
	}
	fmt.Printf("added position %d (%s %s)\n", p.ID, p.Category, p.Ticker)
	return subcommands.ExitSuccess
}

func (c *addCmd) position() (cartera.Position, error) {
	var p cartera.Position
	var err error
	if p.Category, err = cartera.ParseCategory(c.category); err != nil {
		return p, err
	}
	p.Ticker = c.ticker
	if p.Quantity, err = decimal.NewFromString(c.quantity); err != nil {
		return p, fmt.Errorf("qty: %w", err)
	}
	if p.Principal, err = decimal.NewFromString(c.principal); err != nil {
		return p, fmt.Errorf("amount: %w", err)
	}
	p.PurchaseDate = date.Today()
	if c.on != "" {
		if p.PurchaseDate, err = date.Parse(c.on); err != nil {
			return p, err
		}
	}
	return p, nil
}

type editCmd struct {
	book      string
	id        int64
	on        string
	category  string
	ticker    string
	quantity  string
	principal string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit the user fields of a position" }
func (*editCmd) Usage() string {
	return "finv edit -id <id> [-category ...] [-ticker ...] [-qty ...] [-amount ...] [-date ...] [-book <name>]\n"
}
func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.book, "book", "", "book to edit (default: main)")
	f.Int64Var(&c.id, "id", 0, "position id")
	f.StringVar(&c.on, "date", "", "purchase date")
	f.StringVar(&c.category, "category", "", "category")
	f.StringVar(&c.ticker, "ticker", "", "instrument ticker")
	f.StringVar(&c.quantity, "qty", "", "quantity")
	f.StringVar(&c.principal, "amount", "", "amount paid")
}
func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		fmt.Println("an -id is required")
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	p, err := s.Position(cartera.Book(c.book), c.id)
	if err != nil {
		return fail(err)
	}
	if err := c.apply(&p); err != nil {
		fmt.Println(err)
		return subcommands.ExitUsageError
	}
	if err := s.UpdatePosition(cartera.Book(c.book), p); err != nil {
		return fail(err)
	}
	fmt.Printf("updated position %d\n", p.ID)
	return subcommands.ExitSuccess
}

// apply overwrites only the fields given on the command line.
func (c *editCmd) apply(p *cartera.Position) error {
	var err error
	if c.category != "" {
		if p.Category, err = cartera.ParseCategory(c.category); err != nil {
			return err
		}
	}
	if c.ticker != "" {
		p.Ticker = c.ticker
	}
	if c.quantity != "" {
		if p.Quantity, err = decimal.NewFromString(c.quantity); err != nil {
			return fmt.Errorf("qty: %w", err)
		}
	}
	if c.principal != "" {
		if p.Principal, err = decimal.NewFromString(c.principal); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
	}
	if c.on != "" {
		if p.PurchaseDate, err = date.Parse(c.on); err != nil {
			return err
		}
	}
	return nil
}

type delCmd struct {
	book string
	id   int64
}

func (*delCmd) Name() string     { return "del" }
func (*delCmd) Synopsis() string { return "delete a position" }
func (*delCmd) Usage() string    { return "finv del -id <id> [-book <name>]\n" }
func (c *delCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.book, "book", "", "book to delete from (default: main)")
	f.Int64Var(&c.id, "id", 0, "position id")
}
func (c *delCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		fmt.Println("an -id is required")
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	if err := s.DeletePosition(cartera.Book(c.book), c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("deleted position %d\n", c.id)
	return subcommands.ExitSuccess
}
