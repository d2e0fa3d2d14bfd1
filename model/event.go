package model

// Event is one of Note, Rest or Chord. The set is closed: the unexported
// method keeps other packages from adding variants.
type Event interface {
	EventDuration() Duration
	event()
}

type Note struct {
	Pitch    Pitch
	Duration Duration
}

type Rest struct {
	Duration Duration
}

// Chord sounds all of its pitches together. Pitches keep their given order.
type Chord struct {
	Pitches  []Pitch
	Duration Duration
}

func NewNote(p Pitch, d Duration) Note {
	return Note{Pitch: p, Duration: d}
}

func NewRest(d Duration) Rest {
	return Rest{Duration: d}
}

func NewChord(d Duration, pitches ...Pitch) Chord {
	return Chord{Pitches: pitches, Duration: d}
}

func (n Note) EventDuration() Duration  { return n.Duration }
func (r Rest) EventDuration() Duration  { return r.Duration }
func (c Chord) EventDuration() Duration { return c.Duration }

func (Note) event()  {}
func (Rest) event()  {}
func (Chord) event() {}
