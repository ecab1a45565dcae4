package cartera

import (
	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

// InflationRecord is one monthly observation of the reference price index.
// Month is always the first day of the month, and at most one record exists
// per month.
type InflationRecord struct {
	ID       int64
	Month    date.Date
	RefValue decimal.Decimal
}
