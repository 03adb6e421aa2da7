package fundnav

import "fmt"

// Percent is a rate expressed in percent: 5.141 means 5.141%.
type Percent float64

// Rate converts a plain rate (0.05141) to a Percent.
func Rate(r float64) Percent { return Percent(r * 100) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String formats IRR the way reports show them: 3 decimals.
func (p Percent) String() string {
	return fmt.Sprintf("%.3f%%", float64(p))
}
