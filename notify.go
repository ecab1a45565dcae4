package cartera

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

// Notifier delivers a preformatted update summary. The core builds the
// message content; delivery belongs to the sink.
type Notifier interface {
	Notify(message string) error
}

// glyph marks a change as a gain or a loss. A flat day counts as a gain.
func glyph(p Percent) string {
	if p < 0 {
		return "🔴"
	}
	return "🟢"
}

func changeLine(label string, p *Percent) string {
	if p == nil {
		return fmt.Sprintf("%s: -", label)
	}
	return fmt.Sprintf("%s %s: %s", glyph(*p), label, p.SignedString())
}

// UpdateMessage builds the end-of-cycle summary: the date, the portfolio's
// day-over-day change, each category's change, and the USD rate the cycle
// ran with.
func UpdateMessage(on date.Date, total Evolution, categories []Evolution, usdRate decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Actualización %s\n\n", on)
	fmt.Fprintf(&b, "%s\n", changeLine("Cartera", total.Change))
	for _, e := range categories {
		fmt.Fprintf(&b, "%s\n", changeLine(e.Label, e.Change))
	}
	if !usdRate.IsZero() {
		fmt.Fprintf(&b, "\nUSD: $%s\n", usdRate.StringFixed(2))
	}
	return b.String()
}
