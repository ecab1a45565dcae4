package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera"
	"github.com/fgalarza/cartera/date"
)

func pct(v cartera.Percent) *cartera.Percent { return &v }

func TestEvolutionMarkdown(t *testing.T) {
	var total cartera.Evolution
	total.Label = "Total"
	total.Invested.Append(date.MustParse("2026-08-26"), decimal.NewFromInt(1500))
	total.Current.Append(date.MustParse("2026-08-26"), decimal.NewFromInt(1550))
	total.Gain = decimal.NewFromInt(50)
	total.GainPct = pct(3.33)
	total.Change = pct(3.33)

	var fund cartera.Evolution
	fund.Label = "FCI"
	fund.Current.Append(date.MustParse("2026-08-26"), decimal.NewFromInt(450))

	got := EvolutionMarkdown(total, []cartera.Evolution{fund})

	for _, want := range []string{
		"# Evolución al 2026-08-26",
		"| Total |",
		"| FCI |",
		"+3.33%",
		"- |", // the fund row has no computable change
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown missing %q:\n%s", want, got)
		}
	}
}

func TestInflationMarkdown(t *testing.T) {
	rates := []cartera.InflationRate{
		{Month: date.MustParse("2026-03-01"), RefValue: decimal.RequireFromString("7864.13"), Monthly: pct(2.4)},
	}
	got := InflationMarkdown(rates)
	for _, want := range []string{"2026-03", "7864.13", "+2.40%"} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown missing %q:\n%s", want, got)
		}
	}
}

func TestPositionsMarkdownBookTitle(t *testing.T) {
	got := PositionsMarkdown("jes", nil)
	if !strings.Contains(got, "Posiciones (jes)") {
		t.Errorf("markdown missing book title:\n%s", got)
	}
}
