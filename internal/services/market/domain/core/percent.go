package core

import "fmt"

// Percent is a whole percentage in [0,100].
type Percent int

// Valid reports whether p is within [0,100].
func (p Percent) Valid() bool {
	return p >= 0 && p <= 100
}

// String implements fmt.Stringer.
func (p Percent) String() string {
	return fmt.Sprintf("%d%%", int(p))
}

// SumPercents adds percentages without clamping.
func SumPercents(values ...Percent) int {
	total := 0
	for _, v := range values {
		total += int(v)
	}
	return total
}
