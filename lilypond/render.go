// Package lilypond renders a model.Score as LilyPond source text.
//
// Rendering is a pure function of the score and the options: no I/O, no
// shared state, and either the complete document or an error.
package lilypond

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/lilyscore/constants"
	"github.com/jsphweid/lilyscore/model"
	"github.com/jsphweid/lilyscore/util"
)

// Mode selects how octaves are written.
type Mode int

const (
	// Relative wraps each voice in \relative and writes every octave as a
	// delta from the previous pitch.
	Relative Mode = iota
	// Absolute writes every octave with marks counted from the octave
	// below middle C.
	Absolute
)

func (m Mode) String() string {
	switch m {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

type Options struct {
	Version  string
	Language Language
	Mode     Mode
	// RelativeTo is the starting reference of each voice in Relative mode.
	RelativeTo model.Pitch
	MinOctave  int
	MaxOctave  int
}

func DefaultOptions() Options {
	return Options{
		Version:    constants.DefaultLilyPondVersion,
		Language:   English,
		Mode:       Relative,
		RelativeTo: model.NewPitch(model.C, model.MiddleCOctave),
		MinOctave:  0,
		MaxOctave:  9,
	}
}

const indentUnit = "  "

var headerKeyPattern = regexp.MustCompile(`^[A-Za-z]+(?:[-_][A-Za-z]+)*$`)

// Render renders s with DefaultOptions.
func Render(s model.Score) (string, error) {
	return RenderWithOptions(s, DefaultOptions())
}

// RenderWithOptions walks the score depth first in insertion order. On
// error it returns "" and a *RenderError naming the offending entity.
func RenderWithOptions(s model.Score, opts Options) (string, error) {
	r := &renderer{opts: opts}
	if err := r.validateOptions(); err != nil {
		return "", err
	}
	if err := r.score(s); err != nil {
		return "", err
	}
	return r.b.String(), nil
}

type renderer struct {
	opts   Options
	b      strings.Builder
	depth  int
	ref    model.Pitch
	tokens []string
}

func (r *renderer) validateOptions() error {
	if !r.opts.Language.valid() {
		return fmt.Errorf("unknown language %v", r.opts.Language)
	}
	switch r.opts.Mode {
	case Relative:
		if err := r.checkPitch(noPosition, r.opts.RelativeTo); err != nil {
			return err
		}
	case Absolute:
	default:
		return fmt.Errorf("unknown octave mode %v", r.opts.Mode)
	}
	return nil
}

func (r *renderer) line(s string) {
	if s != "" {
		r.b.WriteString(strings.Repeat(indentUnit, r.depth))
		r.b.WriteString(s)
	}
	r.b.WriteByte('\n')
}

func (r *renderer) score(s model.Score) error {
	r.line(`\version ` + quote(r.opts.Version))
	r.line(`\language ` + quote(r.opts.Language.String()))

	if len(s.Header) > 0 {
		r.line("")
		r.line(`\header {`)
		r.depth++
		for _, key := range util.SortedKeys(s.Header) {
			if !headerKeyPattern.MatchString(key) {
				e := fail(noPosition, KindInvalidHeader, "key %q is not a LilyPond identifier", key)
				e.Field = key
				return e
			}
			r.line(key + " = " + quote(s.Header[key]))
		}
		r.depth--
		r.line("}")
	}

	switch len(s.Voices) {
	case 0:
		return nil
	case 1:
		r.line("")
		return r.voice(0, s.Voices[0])
	}

	r.line("")
	r.line("<<")
	r.depth++
	for i, v := range s.Voices {
		if err := r.voice(i, v); err != nil {
			return err
		}
	}
	r.depth--
	r.line(">>")
	return nil
}

func (r *renderer) voice(index int, v model.Voice) error {
	pos := Position{Voice: index, Measure: -1, Event: -1, Pitch: -1}

	open := `\new Voice`
	if v.Name != "" {
		open += " = " + quote(v.Name)
	}
	if r.opts.Mode == Relative {
		ref := r.opts.RelativeTo
		open += ` \relative ` + r.opts.Language.noteName(ref.Name, ref.Accidental) + octaveMarks(absoluteMarks(ref.Octave))
		r.ref = ref
	}
	r.line(open + " {")
	r.depth++

	if v.Key != nil {
		k, err := r.key(pos, *v.Key)
		if err != nil {
			return err
		}
		r.line(k)
	}
	if v.Time != nil {
		t := *v.Time
		if !t.Valid() {
			return fail(pos, KindInvalidTime, "%d/%d needs at least one beat and a power-of-two unit up to %d", t.Beats, t.Unit, model.MaxDenominator)
		}
		r.line(fmt.Sprintf(`\time %d/%d`, t.Beats, t.Unit))
	}

	for mi, m := range v.Measures {
		pos.Measure = mi
		r.tokens = r.tokens[:0]
		for ei, e := range m.Events {
			pos.Event = ei
			tok, err := r.event(pos, e)
			if err != nil {
				return err
			}
			r.tokens = append(r.tokens, tok)
		}
		if len(r.tokens) > 0 {
			r.line(strings.Join(r.tokens, " ") + " |")
		}
	}

	r.depth--
	r.line("}")
	return nil
}

func (r *renderer) event(pos Position, e model.Event) (string, error) {
	switch e := e.(type) {
	case model.Note:
		p, err := r.pitch(pos, e.Pitch)
		if err != nil {
			return "", err
		}
		d, err := r.duration(pos, e.Duration)
		if err != nil {
			return "", err
		}
		return p + d, nil
	case model.Rest:
		d, err := r.duration(pos, e.Duration)
		if err != nil {
			return "", err
		}
		return "r" + d, nil
	case model.Chord:
		if len(e.Pitches) == 0 {
			return "", fail(pos, KindInvalidPitch, "chord has no pitches")
		}
		d, err := r.duration(pos, e.Duration)
		if err != nil {
			return "", err
		}
		parts := make([]string, len(e.Pitches))
		for i, p := range e.Pitches {
			pos.Pitch = i
			if parts[i], err = r.pitch(pos, p); err != nil {
				return "", err
			}
		}
		// the next event is relative to the first pitch of the chord
		r.ref = e.Pitches[0]
		return "<" + strings.Join(parts, " ") + ">" + d, nil
	case nil:
		return "", fail(pos, KindInvalidPitch, "missing event")
	default:
		return "", fail(pos, KindInvalidPitch, "unsupported event %T", e)
	}
}

func (r *renderer) checkPitch(pos Position, p model.Pitch) error {
	if !p.Name.Valid() {
		return fail(pos, KindInvalidPitch, "note name %v is not one of A-G", p.Name)
	}
	if !p.Accidental.Valid() {
		return fail(pos, KindInvalidPitch, "accidental %v is beyond a double sharp or flat", p.Accidental)
	}
	if p.Octave < r.opts.MinOctave || p.Octave > r.opts.MaxOctave {
		return fail(pos, KindInvalidPitch, "octave %d is outside [%d, %d]", p.Octave, r.opts.MinOctave, r.opts.MaxOctave)
	}
	return nil
}

func (r *renderer) pitch(pos Position, p model.Pitch) (string, error) {
	if err := r.checkPitch(pos, p); err != nil {
		return "", err
	}
	var marks int
	if r.opts.Mode == Relative {
		marks = relativeMarks(r.ref, p)
		r.ref = p
	} else {
		marks = absoluteMarks(p.Octave)
	}
	return r.opts.Language.noteName(p.Name, p.Accidental) + octaveMarks(marks), nil
}

func (r *renderer) duration(pos Position, d model.Duration) (string, error) {
	if !d.DenominatorValid() {
		return "", fail(pos, KindInvalidDuration, "denominator %d is not a power of two in [1, %d]", d.Denominator, model.MaxDenominator)
	}
	if d.Dots < 0 || d.Dots > model.MaxDots {
		return "", fail(pos, KindInvalidDuration, "%d dots is outside [0, %d]", d.Dots, model.MaxDots)
	}
	return DurationToken(d), nil
}

// DurationToken writes d as a numeral followed by its dots. d must be valid.
func DurationToken(d model.Duration) string {
	return strconv.Itoa(d.Denominator) + strings.Repeat(".", d.Dots)
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
