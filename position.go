package cartera

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

// Position is one purchase lot of an instrument, the unit of portfolio
// tracking. ID is assigned by the store and never changes.
type Position struct {
	ID           int64
	PurchaseDate date.Date
	Category     Category
	Ticker       string // empty for USD cash lots
	Quantity     decimal.Decimal
	Principal    decimal.Decimal // amount paid for the lot
	CurrentValue decimal.Decimal // per-unit valuation, refreshed by the updater
	ValuationDate date.Date
}

// CurrentAmount returns the lot's market value: CurrentValue × Quantity.
func (p Position) CurrentAmount() decimal.Decimal {
	return p.CurrentValue.Mul(p.Quantity)
}

// GainAmount returns the unrealized gain (or loss) of the lot.
func (p Position) GainAmount() decimal.Decimal {
	return p.CurrentAmount().Sub(p.Principal)
}

// GainPct returns the gain as a percentage of the principal, rounded to two
// decimals. A lot with zero principal has no defined gain percentage.
func (p Position) GainPct() (Percent, error) {
	if p.Principal.IsZero() {
		return 0, fmt.Errorf("gain%% of position %d: zero principal: %w", p.ID, ErrDataUnavailable)
	}
	pct := p.GainAmount().Div(p.Principal).Mul(decimal.NewFromInt(100)).Round(2)
	return Percent(pct.InexactFloat64()), nil
}

// Snapshot is one row of the historical ledger: the state of a position as
// captured at the end of an update cycle. Its embedded ID is the id of the
// source position; a position has at most one snapshot per valuation date.
type Snapshot struct {
	Position
}
