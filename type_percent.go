package cartera

import "fmt"

// Percent is a signed percentage value (5.0 means +5%). The rollup engine
// returns plain numbers; how a value is displayed (sign, color, glyph) is up
// to the presentation layer.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.2f%%", p)
}
