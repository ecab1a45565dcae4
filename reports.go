package cartera

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

// The rollup engine: pure, side-effect-free transforms over the live
// positions and the historical ledger. Nothing here touches the store or the
// network, so every view is trivially recomputable and testable.

// PercentChange returns the relative change of the last point of a series
// against the one before it, as a percentage rounded to 2 decimals with
// halves away from zero (1.005 -> 1.01, -1.005 -> -1.01). A series with
// fewer than two points, or a zero prior value, has no defined change and
// fails with ErrDataUnavailable.
func PercentChange(series []decimal.Decimal) (Percent, error) {
	if len(series) < 2 {
		return 0, fmt.Errorf("change over %d points: %w", len(series), ErrDataUnavailable)
	}
	last, prior := series[len(series)-1], series[len(series)-2]
	if prior.IsZero() {
		return 0, fmt.Errorf("change from zero: %w", ErrDataUnavailable)
	}
	pct := last.Sub(prior).Div(prior).Mul(decimal.NewFromInt(100)).Round(2)
	return Percent(pct.InexactFloat64()), nil
}

// changeOf is PercentChange for report rows: an undefined change renders as
// an absent cell, not an error.
func changeOf(series []decimal.Decimal) *Percent {
	c, err := PercentChange(series)
	if err != nil {
		return nil
	}
	return &c
}

// Evolution is one evolution report row: an invested and a current amount
// series over the ledger dates, and the latest day-over-day change of the
// current series. GainPct and Change are nil when undefined, the condition
// PercentChange reports as ErrDataUnavailable; nil is distinct from a zero
// change.
type Evolution struct {
	Label    string
	Invested date.History[decimal.Decimal]
	Current  date.History[decimal.Decimal]
	Gain     decimal.Decimal
	GainPct  *Percent
	Change   *Percent
}

// LastInvested returns the most recent invested total of the row.
func (e Evolution) LastInvested() decimal.Decimal {
	_, v := e.Invested.Latest()
	return v
}

// LastCurrent returns the most recent current total of the row.
func (e Evolution) LastCurrent() decimal.Decimal {
	_, v := e.Current.Latest()
	return v
}

var addDecimal = func(old, new decimal.Decimal) decimal.Decimal { return old.Add(new) }

// TotalsByDate folds the ledger into two parallel series, invested and
// current portfolio totals per valuation date, ascending.
func TotalsByDate(snaps []Snapshot) (invested, current date.History[decimal.Decimal]) {
	for _, s := range snaps {
		invested.Merge(s.ValuationDate, s.Principal, addDecimal)
		current.Merge(s.ValuationDate, s.CurrentAmount(), addDecimal)
	}
	return invested, current
}

// CategoryEvolution returns the single aggregate "Total" row: the whole
// portfolio's invested and current series, its unrealized gain at the latest
// ledger day, and the latest day-over-day change.
func CategoryEvolution(snaps []Snapshot) Evolution {
	invested, current := TotalsByDate(snaps)
	e := Evolution{
		Label:    "Total",
		Invested: invested,
		Current:  current,
		Change:   changeOf(current.Series()),
	}
	e.Gain = e.LastCurrent().Sub(e.LastInvested())
	if inv := e.LastInvested(); !inv.IsZero() {
		pct := Percent(e.Gain.Div(inv).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64())
		e.GainPct = &pct
	}
	return e
}

// CategoryEvolutionByCategory returns one row per category present in the
// ledger, in category order. The gain figures are joined in from the live
// positions: Gain is the category's summed unrealized gain and GainPct
// relates it to the category's latest ledgered current total, giving the
// gain's weight in today's holdings rather than in the principal.
func CategoryEvolutionByCategory(live []Position, snaps []Snapshot) []Evolution {
	byCat := make(map[Category]*Evolution)
	for _, s := range snaps {
		e, ok := byCat[s.Category]
		if !ok {
			e = &Evolution{Label: s.Category.String()}
			byCat[s.Category] = e
		}
		e.Invested.Merge(s.ValuationDate, s.Principal, addDecimal)
		e.Current.Merge(s.ValuationDate, s.CurrentAmount(), addDecimal)
	}

	gains := make(map[Category]decimal.Decimal)
	for _, p := range live {
		gains[p.Category] = gains[p.Category].Add(p.GainAmount())
	}

	var rows []Evolution
	for _, c := range Categories() {
		e, ok := byCat[c]
		if !ok {
			continue
		}
		e.Change = changeOf(e.Current.Series())
		e.Gain = gains[c]
		if cur := e.LastCurrent(); !cur.IsZero() {
			pct := Percent(e.Gain.Div(cur).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64())
			e.GainPct = &pct
		}
		rows = append(rows, *e)
	}
	return rows
}

// TickerEvolution is one per-ticker report row: the instrument's per-unit
// valuation over the ledger dates and its latest day-over-day change, nil
// when undefined (see PercentChange).
type TickerEvolution struct {
	Ticker   string
	Category Category
	Prices   date.History[decimal.Decimal]
	Change   *Percent
}

// LastPrice returns the instrument's most recent ledgered valuation.
func (t TickerEvolution) LastPrice() decimal.Decimal {
	_, v := t.Prices.Latest()
	return v
}

// TickerEvolutions groups the ledger by ticker, keeping one per-unit price
// per day (several lots of the same instrument share the valuation, so last
// write wins). Rows are sorted by ticker. The change runs over the price
// series, not the amount series.
func TickerEvolutions(snaps []Snapshot) []TickerEvolution {
	byTicker := make(map[string]*TickerEvolution)
	for _, s := range snaps {
		t, ok := byTicker[s.Ticker]
		if !ok {
			t = &TickerEvolution{Ticker: s.Ticker}
			byTicker[s.Ticker] = t
		}
		t.Category = s.Category
		t.Prices.Append(s.ValuationDate, s.CurrentValue)
	}

	rows := make([]TickerEvolution, 0, len(byTicker))
	for _, t := range byTicker {
		t.Change = changeOf(t.Prices.Series())
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Ticker < rows[j].Ticker })
	return rows
}

// TickerTotal is one live holdings row: a ticker's lots summed up.
type TickerTotal struct {
	Ticker   string
	Category Category
	Invested decimal.Decimal
	Current  decimal.Decimal
	Gain     decimal.Decimal
	GainPct  *Percent
}

// TickerTotals groups the live positions by ticker, summing principal,
// current and gain amounts. Rows are sorted by ticker.
func TickerTotals(live []Position) []TickerTotal {
	byTicker := make(map[string]*TickerTotal)
	for _, p := range live {
		t, ok := byTicker[p.Ticker]
		if !ok {
			t = &TickerTotal{Ticker: p.Ticker}
			byTicker[p.Ticker] = t
		}
		t.Category = p.Category
		t.Invested = t.Invested.Add(p.Principal)
		t.Current = t.Current.Add(p.CurrentAmount())
		t.Gain = t.Gain.Add(p.GainAmount())
	}

	rows := make([]TickerTotal, 0, len(byTicker))
	for _, t := range byTicker {
		if !t.Invested.IsZero() {
			pct := Percent(t.Gain.Div(t.Invested).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64())
			t.GainPct = &pct
		}
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Ticker < rows[j].Ticker })
	return rows
}
