package lilypond

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/lilyscore/model"
)

// NoteToken is one decoded note or rest token such as "cis'4." or "r8".
// Marks keep the raw octave marks; resolve them with Absolute or
// RelativeTo depending on how the token was written.
type NoteToken struct {
	Rest        bool
	Name        model.NoteName
	Accidental  model.Accidental
	Marks       int
	Duration    model.Duration
	HasDuration bool
}

var (
	englishNotePattern = regexp.MustCompile(
		`^([a-gr])(ss|s|ff|f|x|-sharpsharp|-sharp|-flatflat|-flat)?(,+|'+)?(\d+)?(\.*)$`)
	nederlandsNotePattern = regexp.MustCompile(
		`^([a-gr])(isis|eses|ses|is|es|s)?(,+|'+)?(\d+)?(\.*)$`)
)

var englishAccidentalTokens = map[string]model.Accidental{
	"":            model.Natural,
	"s":           model.Sharp,
	"-sharp":      model.Sharp,
	"ss":          model.DoubleSharp,
	"x":           model.DoubleSharp,
	"-sharpsharp": model.DoubleSharp,
	"f":           model.Flat,
	"-flat":       model.Flat,
	"ff":          model.DoubleFlat,
	"-flatflat":   model.DoubleFlat,
}

var nederlandsAccidentalTokens = map[string]model.Accidental{
	"":     model.Natural,
	"is":   model.Sharp,
	"isis": model.DoubleSharp,
	"es":   model.Flat,
	"eses": model.DoubleFlat,
}

// ParseNote decodes a single note or rest token written in lang. It is the
// inverse of the per-event output of Render; it does not read documents.
func ParseNote(token string, lang Language) (NoteToken, error) {
	var pattern *regexp.Regexp
	switch lang {
	case English:
		pattern = englishNotePattern
	case Nederlands:
		pattern = nederlandsNotePattern
	default:
		return NoteToken{}, fmt.Errorf("unknown language %v", lang)
	}

	m := pattern.FindStringSubmatch(token)
	if m == nil {
		return NoteToken{}, fmt.Errorf("%q is not a %v note token", token, lang)
	}
	name, acc, marks, num, dots := m[1], m[2], m[3], m[4], m[5]

	var t NoteToken
	if name == "r" {
		if acc != "" || marks != "" {
			return NoteToken{}, fmt.Errorf("rest %q cannot carry pitch", token)
		}
		t.Rest = true
	} else {
		t.Name = model.NoteName(strings.Index("cdefgab", name))
		a, err := decodeAccidental(t.Name, acc, lang)
		if err != nil {
			return NoteToken{}, fmt.Errorf("%q: %w", token, err)
		}
		t.Accidental = a
		if strings.HasPrefix(marks, "'") {
			t.Marks = len(marks)
		} else {
			t.Marks = -len(marks)
		}
	}

	if num != "" {
		den, err := strconv.Atoi(num)
		if err != nil || !model.IsNoteValue(den) {
			return NoteToken{}, fmt.Errorf("%q: %w: %s is not a note value", token, ErrInvalidDuration, num)
		}
		t.Duration = model.Duration{Denominator: den, Dots: len(dots)}
		t.HasDuration = true
	} else if dots != "" {
		return NoteToken{}, fmt.Errorf("%q: dots without a duration", token)
	}
	if t.Duration.Dots > model.MaxDots {
		return NoteToken{}, fmt.Errorf("%q: %w: too many dots", token, ErrInvalidDuration)
	}
	return t, nil
}

func decodeAccidental(name model.NoteName, acc string, lang Language) (model.Accidental, error) {
	if lang == English {
		return englishAccidentalTokens[acc], nil
	}
	// e and a take the short flat spellings (es, as, eses, ases), and also
	// accept the regular ones (ees, aeses).
	vowel := name == model.E || name == model.A
	switch acc {
	case "s":
		if vowel {
			return model.Flat, nil
		}
	case "ses":
		if vowel {
			return model.DoubleFlat, nil
		}
	default:
		return nederlandsAccidentalTokens[acc], nil
	}
	return model.Natural, fmt.Errorf("accidental %q needs a vowel note name", acc)
}

// Absolute resolves the token as written in absolute octave mode.
func (t NoteToken) Absolute() model.Pitch {
	return model.Pitch{Name: t.Name, Accidental: t.Accidental, Octave: t.Marks + model.MiddleCOctave - 1}
}

// RelativeTo resolves the token as written in \relative mode after ref.
func (t NoteToken) RelativeTo(ref model.Pitch) model.Pitch {
	step := ref.Step() + stepDelta(ref.Name, t.Name) + 7*t.Marks
	return model.Pitch{Name: t.Name, Accidental: t.Accidental, Octave: (step - int(t.Name)) / 7}
}
