package model

import "fmt"

// MaxDenominator is the shortest supported note value (a 128th).
const MaxDenominator = 128

// MaxDots bounds the number of augmentation dots on a duration.
const MaxDots = 8

// Duration is a note value of 1/Denominator of a whole note, lengthened
// by Dots augmentation dots.
type Duration struct {
	Denominator int
	Dots        int
}

var (
	Whole        = Duration{Denominator: 1}
	Half         = Duration{Denominator: 2}
	Quarter      = Duration{Denominator: 4}
	Eighth       = Duration{Denominator: 8}
	Sixteenth    = Duration{Denominator: 16}
	ThirtySecond = Duration{Denominator: 32}
)

func NewDuration(denominator, dots int) Duration {
	return Duration{Denominator: denominator, Dots: dots}
}

func (d Duration) Dotted() Duration {
	d.Dots++
	return d
}

// DenominatorValid reports whether the denominator is a power of two in
// [1, MaxDenominator].
func (d Duration) DenominatorValid() bool {
	return IsNoteValue(d.Denominator)
}

func (d Duration) Valid() bool {
	return d.DenominatorValid() && d.Dots >= 0 && d.Dots <= MaxDots
}

func (d Duration) String() string {
	return fmt.Sprintf("1/%d+%d dots", d.Denominator, d.Dots)
}

// IsNoteValue reports whether n is a power of two in [1, MaxDenominator].
func IsNoteValue(n int) bool {
	return n >= 1 && n <= MaxDenominator && n&(n-1) == 0
}
