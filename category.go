package cartera

import (
	"fmt"
	"strings"
)

// Category classifies a position by the kind of instrument it holds, which
// determines how its valuation is refreshed.
type Category int

const (
	// Fund is a mutual fund (FCI) priced from the broker's fund data page.
	Fund Category = iota + 1
	// Cedear is a local certificate over a foreign share, priced from the
	// daily close series.
	Cedear
	// Accion is a local-market equity, priced like a cedear.
	Accion
	// USD is a cash position in US dollars, priced from the reference buy
	// rate.
	USD
)

func (c Category) String() string {
	switch c {
	case Fund:
		return "FCI"
	case Cedear:
		return "Cedear"
	case Accion:
		return "Accion"
	case USD:
		return "USD"
	default:
		return "unknown"
	}
}

// Label returns the prefixed display label stored in the database
// ("1. FCI", "2. Cedear", ...). The numeric prefix keeps categories in their
// traditional report order.
func (c Category) Label() string { return fmt.Sprintf("%d. %s", int(c), c) }

// Categories lists all valid categories in report order.
func Categories() []Category { return []Category{Fund, Cedear, Accion, USD} }

// ParseCategory parses a category from its stored label or bare name.
// Parsing happens once, at the store boundary; the rest of the code only
// sees the tagged enumeration.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty category")
	}
	// Labels are prefixed with the category number ("3. Accion"); the digit
	// alone identifies the category.
	switch s[0] {
	case '1':
		return Fund, nil
	case '2':
		return Cedear, nil
	case '3':
		return Accion, nil
	case '4':
		return USD, nil
	}
	for _, c := range Categories() {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}
