package cartera

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

// InflationRate is one month of the inflation view: the raw index value and
// the three derived rates. A rate without enough history is nil.
type InflationRate struct {
	Month        date.Date
	RefValue     decimal.Decimal
	Monthly      *Percent // vs the previous month on record
	YearOverYear *Percent // vs the record 12 rows earlier
	Cumulative   *Percent // vs the December of the previous calendar year
}

// InflationRates derives the monthly, year-over-year and cumulative rate
// series from the raw index records.
//
// The year-over-year rate is positional: each row is compared with the row
// exactly 12 places earlier in the sorted series, so a gap in the records
// shifts the comparison rather than skipping it. The cumulative rate anchors
// on the December row of the previous calendar year and accumulates the
// index growth since.
func InflationRates(records []InflationRecord) []InflationRate {
	sorted := make([]InflationRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Month.Before(sorted[j].Month) })

	decembers := make(map[int]decimal.Decimal)
	for _, r := range sorted {
		if r.Month.Month() == time.December {
			decembers[r.Month.Year()] = r.RefValue
		}
	}

	rates := make([]InflationRate, 0, len(sorted))
	for i, r := range sorted {
		rate := InflationRate{Month: r.Month, RefValue: r.RefValue}
		if i >= 1 {
			rate.Monthly = rateVs(r.RefValue, sorted[i-1].RefValue)
		}
		if i >= 12 {
			rate.YearOverYear = rateVs(r.RefValue, sorted[i-12].RefValue)
		}
		if anchor, ok := decembers[r.Month.Year()-1]; ok {
			rate.Cumulative = rateVs(r.RefValue, anchor)
		}
		rates = append(rates, rate)
	}
	return rates
}

func rateVs(value, base decimal.Decimal) *Percent {
	if base.IsZero() {
		return nil
	}
	pct := Percent(value.Sub(base).Div(base).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64())
	return &pct
}
