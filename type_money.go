package cartera

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money wraps a monetary value for display purposes. Amount arithmetic in
// the rollups stays in decimal.Decimal; Money only exists so reports format
// values with the proper currency conventions.
type Money struct {
	value *money.Money
}

// NewMoney creates a Money from a decimal amount in major units.
func NewMoney(amount decimal.Decimal, currency string) Money {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return Money{}
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	return Money{money.New(amount.Mul(factor).IntPart(), currency)}
}

// String returns the display representation ("$1.234,56" for ARS).
func (m Money) String() string {
	if m.value == nil {
		return ""
	}
	return m.value.Display()
}

func (m Money) IsZero() bool { return m.value == nil || m.value.IsZero() }
