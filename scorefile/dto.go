package scorefile

// File is the on-disk shape of a score. YAML and JSON share the same
// field names.
type File struct {
	Header map[string]string `yaml:"header" json:"header"`
	Voices []Voice           `yaml:"voices" json:"voices"`
}

type Voice struct {
	Name string `yaml:"name" json:"name"`
	Key  *Key   `yaml:"key" json:"key"`
	Time *Time  `yaml:"time" json:"time"`
	// Each measure is a list of events.
	Measures [][]Event `yaml:"measures" json:"measures"`
}

type Key struct {
	Fifths int  `yaml:"fifths" json:"fifths"`
	Minor  bool `yaml:"minor" json:"minor"`
}

type Time struct {
	Beats int `yaml:"beats" json:"beats"`
	Unit  int `yaml:"unit" json:"unit"`
}

type Pitch struct {
	Note       string `yaml:"note" json:"note"`
	Accidental string `yaml:"accidental" json:"accidental"`
	// Octave defaults to 4, the octave of middle C.
	Octave *int `yaml:"octave" json:"octave"`
}

// Event holds exactly one of a note (Pitch), a rest or a chord.
type Event struct {
	Pitch    `yaml:",inline"`
	Rest     bool    `yaml:"rest" json:"rest"`
	Chord    []Pitch `yaml:"chord" json:"chord"`
	Duration int     `yaml:"duration" json:"duration"`
	Dots     int     `yaml:"dots" json:"dots"`
}
