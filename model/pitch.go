package model

import "fmt"

// NoteName is a diatonic step, ordered C..B so that its value is the
// step index within an octave.
type NoteName int

const (
	C NoteName = iota
	D
	E
	F
	G
	A
	B
)

var noteNameStrings = [...]string{"C", "D", "E", "F", "G", "A", "B"}

func (n NoteName) Valid() bool {
	return n >= C && n <= B
}

func (n NoteName) String() string {
	if !n.Valid() {
		return fmt.Sprintf("NoteName(%d)", int(n))
	}
	return noteNameStrings[n]
}

// Accidental is the chromatic alteration in semitones.
type Accidental int

const (
	DoubleFlat  Accidental = -2
	Flat        Accidental = -1
	Natural     Accidental = 0
	Sharp       Accidental = 1
	DoubleSharp Accidental = 2
)

func (a Accidental) Valid() bool {
	return a >= DoubleFlat && a <= DoubleSharp
}

func (a Accidental) String() string {
	switch a {
	case DoubleFlat:
		return "bb"
	case Flat:
		return "b"
	case Natural:
		return ""
	case Sharp:
		return "#"
	case DoubleSharp:
		return "##"
	}
	return fmt.Sprintf("Accidental(%d)", int(a))
}

// MiddleCOctave is the octave that holds middle C in scientific pitch
// notation.
const MiddleCOctave = 4

type Pitch struct {
	Name       NoteName
	Accidental Accidental
	Octave     int
}

func NewPitch(name NoteName, octave int) Pitch {
	return Pitch{Name: name, Octave: octave}
}

func (p Pitch) Sharp() Pitch {
	p.Accidental = Sharp
	return p
}

func (p Pitch) Flat() Pitch {
	p.Accidental = Flat
	return p
}

func (p Pitch) WithAccidental(a Accidental) Pitch {
	p.Accidental = a
	return p
}

// Step is the number of diatonic steps above C0, ignoring accidentals.
func (p Pitch) Step() int {
	return p.Octave*7 + int(p.Name)
}

func (p Pitch) String() string {
	return fmt.Sprintf("%v%v%d", p.Name, p.Accidental, p.Octave)
}
