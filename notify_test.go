package cartera

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

func pct(v Percent) *Percent { return &v }

func TestUpdateMessage(t *testing.T) {
	total := Evolution{Label: "Total", Change: pct(1.25)}
	categories := []Evolution{
		{Label: "FCI", Change: pct(-0.40)},
		{Label: "Accion", Change: pct(0)},
		{Label: "USD"}, // no change computable
	}
	msg := UpdateMessage(date.MustParse("2026-08-27"), total, categories, decimal.NewFromInt(1300))

	for _, want := range []string{
		"2026-08-27",
		"🟢 Cartera: +1.25%",
		"🔴 FCI: -0.40%",
		"🟢 Accion: +0.00%", // a flat day reads as a gain
		"USD: -",
		"USD: $1300.00",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestUpdateMessageNoRate(t *testing.T) {
	msg := UpdateMessage(date.MustParse("2026-08-27"), Evolution{Label: "Total"}, nil, decimal.Decimal{})
	if strings.Contains(msg, "USD: $") {
		t.Errorf("message carries a rate line without a rate:\n%s", msg)
	}
}
