package model

// Common header fields. Any other key accepted by LilyPond's \header block
// may be used as well.
const (
	HeaderTitle    = "title"
	HeaderSubtitle = "subtitle"
	HeaderComposer = "composer"
	HeaderArranger = "arranger"
	HeaderTagline  = "tagline"
)

type Measure struct {
	Events []Event
}

func NewMeasure(events ...Event) Measure {
	return Measure{Events: events}
}

type Voice struct {
	// Name is optional. Named voices render as \new Voice = "name".
	Name     string
	Key      *KeySignature
	Time     *TimeSignature
	Measures []Measure
}

func NewVoice(name string, measures ...Measure) Voice {
	return Voice{Name: name, Measures: measures}
}

func (v Voice) WithKey(k KeySignature) Voice {
	v.Key = &k
	return v
}

func (v Voice) WithTime(t TimeSignature) Voice {
	v.Time = &t
	return v
}

// Score owns its voices. Header holds free-form metadata such as title and
// composer.
type Score struct {
	Header map[string]string
	Voices []Voice
}

func NewScore(voices ...Voice) Score {
	return Score{Header: map[string]string{}, Voices: voices}
}

func (s *Score) SetHeader(key, value string) {
	if s.Header == nil {
		s.Header = map[string]string{}
	}
	s.Header[key] = value
}

func (s *Score) AddVoice(v Voice) {
	s.Voices = append(s.Voices, v)
}
