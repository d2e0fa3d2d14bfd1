package midi

import (
	"fmt"
	"io"
	"sort"

	"github.com/jsphweid/lilyscore/constants"
	"github.com/jsphweid/lilyscore/lilypond"
	"github.com/jsphweid/lilyscore/model"
	"github.com/jsphweid/lilyscore/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type ExportOptions struct {
	TicksPerQuarter uint16
	// Tempo in quarter notes per minute.
	Tempo    float64
	Velocity uint8
}

func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		TicksPerQuarter: constants.TicksPerQuarter,
		Tempo:           constants.DefaultTempo,
		Velocity:        constants.DefaultVelocity,
	}
}

// WriteScore writes s as a format 1 Standard MIDI File: a conductor track
// with tempo and meter, then one track per voice. Nothing is written if any
// event is out of range.
func WriteScore(w io.Writer, s model.Score, opts ExportOptions) error {
	if opts.TicksPerQuarter == 0 {
		return fmt.Errorf("ticks per quarter must be positive")
	}
	if opts.Tempo <= 0 {
		return fmt.Errorf("tempo must be positive, got %v", opts.Tempo)
	}

	mf := smf.New()
	mf.TimeFormat = smf.MetricTicks(opts.TicksPerQuarter)

	var conductor smf.Track
	if title := s.Header[model.HeaderTitle]; title != "" {
		conductor.Add(0, smf.MetaTrackSequenceName(title))
	}
	conductor.Add(0, smf.MetaTempo(opts.Tempo))
	for _, v := range s.Voices {
		if v.Time != nil && v.Time.Valid() && v.Time.Beats <= 255 {
			conductor.Add(0, smf.MetaMeter(uint8(v.Time.Beats), uint8(v.Time.Unit)))
			break
		}
	}
	conductor.Close(0)

	tracks := []smf.Track{conductor}
	for vi, v := range s.Voices {
		track, err := voiceTrack(vi, v, opts)
		if err != nil {
			return err
		}
		tracks = append(tracks, track)
	}
	for _, t := range tracks {
		if err := mf.Add(t); err != nil {
			return err
		}
	}

	_, err := mf.WriteTo(w)
	return err
}

type timedMessage struct {
	tick uint64
	off  bool
	msg  gomidi.Message
}

// channel assigns voices to channels round-robin, skipping the General
// MIDI percussion channel.
func channel(voice int) uint8 {
	ch := uint8(voice % 15)
	if ch >= 9 {
		ch++
	}
	return ch
}

func voiceTrack(vi int, v model.Voice, opts ExportOptions) (smf.Track, error) {
	ch := channel(vi)
	vel := util.Min(opts.Velocity, 127)

	var msgs []timedMessage
	var now uint64
	for mi, m := range v.Measures {
		for ei, e := range m.Events {
			pos := lilypond.Position{Voice: vi, Measure: mi, Event: ei, Pitch: -1}
			if e == nil {
				return nil, positioned(pos, lilypond.KindInvalidPitch, fmt.Errorf("%w: missing event", lilypond.ErrInvalidPitch))
			}
			length, err := Ticks(e.EventDuration(), opts.TicksPerQuarter)
			if err != nil {
				return nil, positioned(pos, lilypond.KindInvalidDuration, err)
			}

			var pitches []model.Pitch
			_, isChord := e.(model.Chord)
			switch e := e.(type) {
			case model.Note:
				pitches = []model.Pitch{e.Pitch}
			case model.Chord:
				if len(e.Pitches) == 0 {
					return nil, positioned(pos, lilypond.KindInvalidPitch, fmt.Errorf("%w: chord has no pitches", lilypond.ErrInvalidPitch))
				}
				pitches = e.Pitches
			}

			for pi, p := range pitches {
				key, err := NoteNumber(p)
				if err != nil {
					if isChord {
						pos.Pitch = pi
					}
					return nil, positioned(pos, lilypond.KindInvalidPitch, err)
				}
				msgs = append(msgs,
					timedMessage{tick: now, msg: gomidi.NoteOn(ch, key, vel)},
					timedMessage{tick: now + uint64(length), off: true, msg: gomidi.NoteOff(ch, key)},
				)
			}
			now += uint64(length)
		}
	}

	// note offs go first so repeated keys retrigger cleanly
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var track smf.Track
	if v.Name != "" {
		track.Add(0, smf.MetaTrackSequenceName(v.Name))
	}
	var last uint64
	for _, m := range msgs {
		track.Add(uint32(m.tick-last), m.msg)
		last = m.tick
	}
	track.Close(uint32(now - last))
	return track, nil
}

func positioned(pos lilypond.Position, kind lilypond.Kind, err error) error {
	return &lilypond.RenderError{Kind: kind, Position: pos, Err: err}
}
