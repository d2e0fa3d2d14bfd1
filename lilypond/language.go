package lilypond

import (
	"fmt"
	"strings"

	"github.com/jsphweid/lilyscore/model"
)

// Language selects the note-name vocabulary LilyPond reads, as set by the
// \language statement.
type Language int

const (
	English Language = iota
	Nederlands
)

func (l Language) String() string {
	switch l {
	case English:
		return "english"
	case Nederlands:
		return "nederlands"
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

func (l Language) valid() bool {
	return l == English || l == Nederlands
}

func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(s) {
	case "english", "en":
		return English, nil
	case "nederlands", "dutch", "nl":
		return Nederlands, nil
	}
	return English, fmt.Errorf("unknown note language %q", s)
}

var noteNames = [...]string{"c", "d", "e", "f", "g", "a", "b"}

var englishAccidentals = map[model.Accidental]string{
	model.DoubleFlat:  "ff",
	model.Flat:        "f",
	model.Natural:     "",
	model.Sharp:       "s",
	model.DoubleSharp: "ss",
}

var nederlandsAccidentals = map[model.Accidental]string{
	model.DoubleFlat:  "eses",
	model.Flat:        "es",
	model.Natural:     "",
	model.Sharp:       "is",
	model.DoubleSharp: "isis",
}

// noteName spells a pitch class without octave marks. Name and accidental
// must already be valid.
func (l Language) noteName(name model.NoteName, acc model.Accidental) string {
	n := noteNames[name]
	if l == Nederlands {
		// Vowel names drop the e of "es": es, eses, as, ases.
		if (name == model.E || name == model.A) && acc < model.Natural {
			return n + nederlandsAccidentals[acc][1:]
		}
		return n + nederlandsAccidentals[acc]
	}
	return n + englishAccidentals[acc]
}

func octaveMarks(marks int) string {
	switch {
	case marks > 0:
		return strings.Repeat("'", marks)
	case marks < 0:
		return strings.Repeat(",", -marks)
	}
	return ""
}

// absoluteMarks converts a scientific octave to LilyPond's absolute marks,
// where an unmarked note name lies in the octave below middle C.
func absoluteMarks(octave int) int {
	return octave - (model.MiddleCOctave - 1)
}

// relativeMarks returns the marks LilyPond's \relative mode needs to reach
// p from ref. The unmarked choice is the nearest staff position, so at most
// a fourth away; accidentals are ignored.
func relativeMarks(ref, p model.Pitch) int {
	unmarked := ref.Step() + stepDelta(ref.Name, p.Name)
	return (p.Step() - unmarked) / 7
}

func stepDelta(from, to model.NoteName) int {
	diff := int(to) - int(from)
	if diff > 3 {
		diff -= 7
	} else if diff < -3 {
		diff += 7
	}
	return diff
}
