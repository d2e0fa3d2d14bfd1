package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/lilyscore/lilypond"
	"github.com/jsphweid/lilyscore/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var semitones = [...]int{0, 2, 4, 5, 7, 9, 11}

// NoteNumber maps a pitch to its MIDI key; C4 (middle C) is 60.
func NoteNumber(p model.Pitch) (uint8, error) {
	if !p.Name.Valid() || !p.Accidental.Valid() {
		return 0, fmt.Errorf("%w: %v", lilypond.ErrInvalidPitch, p)
	}
	n := (p.Octave+1)*12 + semitones[p.Name] + int(p.Accidental)
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%w: %v is MIDI key %d, outside [0, 127]", lilypond.ErrInvalidPitch, p, n)
	}
	return uint8(n), nil
}

// Ticks is the length of d at ppq ticks per quarter note. Each dot adds
// half of the previous addition; sub-tick remainders are dropped.
func Ticks(d model.Duration, ppq uint16) (uint32, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %v", lilypond.ErrInvalidDuration, d)
	}
	base := 4 * uint32(ppq) / uint32(d.Denominator)
	total, add := base, base
	for i := 0; i < d.Dots; i++ {
		add /= 2
		total += add
	}
	return total, nil
}

// ReadFile loads a Standard MIDI File from disk.
func ReadFile(path string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, fmt.Errorf("error parsing midi file %s: %v", path, r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (*smf.SMF, error) {
	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}

// NoteEvent is a sounding note with absolute tick positions.
type NoteEvent struct {
	Track   int
	Channel uint8
	Key     uint8
	Start   uint64
	Length  uint64
}

// Notes pairs note starts with their ends, ordered by start tick, then
// track, then key. Notes left open at the end of a track are dropped.
func Notes(s *smf.SMF) []NoteEvent {
	var res []NoteEvent
	for ti, track := range s.Tracks {
		var absTicks uint64
		open := make(map[[2]uint8]uint64)
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			msg := gomidi.Message(evt.Message)
			var ch, key, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				open[[2]uint8{ch, key}] = absTicks
			case msg.GetNoteEnd(&ch, &key):
				start, ok := open[[2]uint8{ch, key}]
				if !ok {
					continue
				}
				delete(open, [2]uint8{ch, key})
				res = append(res, NoteEvent{Track: ti, Channel: ch, Key: key, Start: start, Length: absTicks - start})
			}
		}
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].Start != res[j].Start {
			return res[i].Start < res[j].Start
		}
		if res[i].Track != res[j].Track {
			return res[i].Track < res[j].Track
		}
		return res[i].Key < res[j].Key
	})
	return res
}
