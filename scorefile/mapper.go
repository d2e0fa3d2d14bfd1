package scorefile

import (
	"fmt"
	"strings"

	"github.com/jsphweid/lilyscore/model"
	"github.com/pkg/errors"
)

var noteNames = map[string]model.NoteName{
	"c": model.C, "d": model.D, "e": model.E, "f": model.F,
	"g": model.G, "a": model.A, "b": model.B,
}

var accidentals = map[string]model.Accidental{
	"":             model.Natural,
	"natural":      model.Natural,
	"sharp":        model.Sharp,
	"#":            model.Sharp,
	"double-sharp": model.DoubleSharp,
	"##":           model.DoubleSharp,
	"x":            model.DoubleSharp,
	"flat":         model.Flat,
	"b":            model.Flat,
	"double-flat":  model.DoubleFlat,
	"bb":           model.DoubleFlat,
}

// Map converts a decoded file into a score. Structural problems (unknown
// names, an event that is both a rest and a note) fail here; numeric ranges
// are left to the renderer.
func Map(f File) (model.Score, error) {
	s := model.NewScore()
	for k, v := range f.Header {
		s.SetHeader(k, v)
	}
	for vi, dto := range f.Voices {
		v, err := mapVoice(fmt.Sprintf("voices[%d]", vi), dto)
		if err != nil {
			return model.Score{}, err
		}
		s.AddVoice(v)
	}
	return s, nil
}

func mapVoice(path string, dto Voice) (model.Voice, error) {
	v := model.NewVoice(dto.Name)
	if dto.Key != nil {
		v = v.WithKey(model.KeySignature{Fifths: dto.Key.Fifths, Minor: dto.Key.Minor})
	}
	if dto.Time != nil {
		v = v.WithTime(model.TimeSignature{Beats: dto.Time.Beats, Unit: dto.Time.Unit})
	}
	for mi, events := range dto.Measures {
		var m model.Measure
		for ei, e := range events {
			evt, err := mapEvent(fmt.Sprintf("%s.measures[%d][%d]", path, mi, ei), e)
			if err != nil {
				return model.Voice{}, err
			}
			m.Events = append(m.Events, evt)
		}
		v.Measures = append(v.Measures, m)
	}
	return v, nil
}

func mapEvent(path string, e Event) (model.Event, error) {
	d := model.Duration{Denominator: e.Duration, Dots: e.Dots}
	if d.Denominator == 0 {
		d.Denominator = model.Quarter.Denominator
	}

	hasNote, hasChord := e.Note != "", len(e.Chord) > 0
	switch {
	case e.Rest && (hasNote || hasChord):
		return nil, errors.Errorf("%s: a rest cannot carry a note or chord", path)
	case hasNote && hasChord:
		return nil, errors.Errorf("%s: an event is either a note or a chord", path)
	case e.Rest:
		return model.NewRest(d), nil
	case hasNote:
		p, err := mapPitch(path, e.Pitch)
		if err != nil {
			return nil, err
		}
		return model.NewNote(p, d), nil
	case hasChord:
		c := model.Chord{Duration: d}
		for i, dto := range e.Chord {
			p, err := mapPitch(fmt.Sprintf("%s.chord[%d]", path, i), dto)
			if err != nil {
				return nil, err
			}
			c.Pitches = append(c.Pitches, p)
		}
		return c, nil
	}
	return nil, errors.Errorf("%s: event needs a note, a rest or a chord", path)
}

func mapPitch(path string, dto Pitch) (model.Pitch, error) {
	name, ok := noteNames[strings.ToLower(dto.Note)]
	if !ok {
		return model.Pitch{}, errors.Errorf("%s: unknown note name %q", path, dto.Note)
	}
	acc, ok := accidentals[strings.ToLower(dto.Accidental)]
	if !ok {
		return model.Pitch{}, errors.Errorf("%s: unknown accidental %q", path, dto.Accidental)
	}
	octave := model.MiddleCOctave
	if dto.Octave != nil {
		octave = *dto.Octave
	}
	return model.Pitch{Name: name, Accidental: acc, Octave: octave}, nil
}
