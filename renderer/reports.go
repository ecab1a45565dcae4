// Package renderer turns the rollup views into markdown report tables.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera"
)

// Currency is the display currency for amounts in the rendered tables.
var Currency = "ARS"

func amount(d decimal.Decimal) string {
	return cartera.NewMoney(d, Currency).String()
}

func percent(p *cartera.Percent) string {
	if p == nil {
		return "-"
	}
	return p.SignedString()
}

// EvolutionMarkdown renders the portfolio evolution view: the aggregate
// Total row followed by one row per category.
func EvolutionMarkdown(total cartera.Evolution, categories []cartera.Evolution) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	on, _ := total.Current.Latest()
	doc.H1(fmt.Sprintf("Evolución al %s", on))

	rows := make([][]string, 0, len(categories)+1)
	for _, e := range append([]cartera.Evolution{total}, categories...) {
		rows = append(rows, []string{
			e.Label,
			amount(e.LastInvested()),
			amount(e.LastCurrent()),
			amount(e.Gain),
			percent(e.GainPct),
			percent(e.Change),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Categoría", "Invertido", "Actual", "Ganancia", "Ganancia %", "Variación"},
		Rows:   rows,
	})

	return doc.String()
}

// TickersMarkdown renders the per-ticker views: the live holdings totals and
// the ledgered price evolution.
func TickersMarkdown(totals []cartera.TickerTotal, evolutions []cartera.TickerEvolution) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Tenencias")
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{
			t.Ticker,
			t.Category.String(),
			amount(t.Invested),
			amount(t.Current),
			amount(t.Gain),
			percent(t.GainPct),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Ticker", "Categoría", "Invertido", "Actual", "Ganancia", "Ganancia %"},
		Rows:   rows,
	})

	doc.H2("Cotizaciones")
	rows = rows[:0]
	for _, t := range evolutions {
		on, _ := t.Prices.Latest()
		rows = append(rows, []string{
			t.Ticker,
			t.Category.String(),
			t.LastPrice().StringFixed(2),
			on.String(),
			percent(t.Change),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Ticker", "Categoría", "Último valor", "Fecha", "Variación"},
		Rows:   rows,
	})

	return doc.String()
}

// InflationMarkdown renders the inflation index view with its derived rates.
func InflationMarkdown(rates []cartera.InflationRate) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Inflación")
	rows := make([][]string, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, []string{
			fmt.Sprintf("%04d-%02d", r.Month.Year(), r.Month.Month()),
			r.RefValue.StringFixed(2),
			percent(r.Monthly),
			percent(r.YearOverYear),
			percent(r.Cumulative),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Mes", "Índice", "Mensual", "Interanual", "Acumulada"},
		Rows:   rows,
	})

	return doc.String()
}

// PositionsMarkdown renders one book's live positions.
func PositionsMarkdown(book string, positions []cartera.Position) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Posiciones"
	if book != "" {
		title = fmt.Sprintf("Posiciones (%s)", book)
	}
	doc.H1(title)

	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		gain := "-"
		if g, err := p.GainPct(); err == nil {
			gain = g.SignedString()
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			p.PurchaseDate.String(),
			p.Category.String(),
			p.Ticker,
			p.Quantity.String(),
			amount(p.Principal),
			amount(p.CurrentAmount()),
			p.ValuationDate.String(),
			gain,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Id", "Compra", "Categoría", "Ticker", "Cantidad", "Invertido", "Actual", "Valuación", "Ganancia %"},
		Rows:   rows,
	})

	return doc.String()
}
