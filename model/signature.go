package model

// MaxFifths is the largest number of sharps or flats in a key signature.
const MaxFifths = 7

// KeySignature counts accidentals around the circle of fifths: positive
// values are sharps, negative values are flats, zero is C major / A minor.
type KeySignature struct {
	Fifths int
	Minor  bool
}

func Sharps(n int) KeySignature {
	return KeySignature{Fifths: n}
}

func Flats(n int) KeySignature {
	return KeySignature{Fifths: -n}
}

func (k KeySignature) InMinor() KeySignature {
	k.Minor = true
	return k
}

func (k KeySignature) Valid() bool {
	return k.Fifths >= -MaxFifths && k.Fifths <= MaxFifths
}

type TimeSignature struct {
	Beats int
	Unit  int
}

func CommonTime() TimeSignature {
	return TimeSignature{Beats: 4, Unit: 4}
}

func (t TimeSignature) Valid() bool {
	return t.Beats >= 1 && IsNoteValue(t.Unit)
}
