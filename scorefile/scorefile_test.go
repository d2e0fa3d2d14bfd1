package scorefile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsphweid/lilyscore/lilypond"
	"github.com/jsphweid/lilyscore/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minuet() model.Score {
	n := func(name model.NoteName, octave int, d model.Duration) model.Event {
		return model.NewNote(model.NewPitch(name, octave), d)
	}
	melody := model.NewVoice("melody",
		model.NewMeasure(
			n(model.D, 5, model.Quarter),
			n(model.G, 4, model.Eighth),
			n(model.A, 4, model.Eighth),
			n(model.B, 4, model.Eighth),
			n(model.C, 5, model.Eighth),
		),
		model.NewMeasure(
			n(model.D, 5, model.Quarter),
			n(model.G, 4, model.Quarter),
			model.NewRest(model.Quarter),
		),
	).WithKey(model.Sharps(1)).WithTime(model.TimeSignature{Beats: 3, Unit: 4})
	bass := model.NewVoice("bass",
		model.NewMeasure(model.NewChord(model.Half.Dotted(),
			model.NewPitch(model.G, 3), model.NewPitch(model.B, 3), model.NewPitch(model.D, 4))),
		model.NewMeasure(model.NewNote(model.NewPitch(model.F, 3).Sharp(), model.Half.Dotted())),
	)
	s := model.NewScore(melody, bass)
	s.SetHeader(model.HeaderTitle, "Minuet in G")
	s.SetHeader(model.HeaderComposer, "Christian Petzold")
	return s
}

func TestLoadFileYAMLAndJSON(t *testing.T) {
	for _, name := range []string{"minuet.yaml", "minuet.json"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadFile(filepath.Join("testdata", name))
			require.NoError(t, err)
			if diff := cmp.Diff(minuet(), s); diff != "" {
				t.Errorf("score mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadedScoreRenders(t *testing.T) {
	s, err := LoadFile(filepath.Join("testdata", "minuet.yaml"))
	require.NoError(t, err)

	out, err := lilypond.Render(s)
	require.NoError(t, err)
	assert.Equal(t, `\version "2.24.0"
\language "english"

\header {
  composer = "Christian Petzold"
  title = "Minuet in G"
}

<<
  \new Voice = "melody" \relative c' {
    \key g \major
    \time 3/4
    d'4 g,8 a8 b8 c8 |
    d4 g,4 r4 |
  }
  \new Voice = "bass" \relative c' {
    <g b d>2. |
    fs2. |
  }
>>
`, out)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "unknown_field.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join("testdata", "minuet.toml"))
	assert.ErrorContains(t, err, "unsupported score file extension")
}

func TestDecodeMappingErrors(t *testing.T) {
	cases := []struct {
		doc  string
		want string
	}{
		{`{"voices":[{"measures":[[{"note":"h"}]]}]}`, `voices[0].measures[0][0]: unknown note name "h"`},
		{`{"voices":[{"measures":[[{"note":"c","accidental":"triple"}]]}]}`, `unknown accidental "triple"`},
		{`{"voices":[{},{"measures":[[],[{"rest":true,"note":"c"}]]}]}`, `voices[1].measures[1][0]: a rest cannot carry`},
		{`{"voices":[{"measures":[[{"note":"c","chord":[{"note":"e"}]}]]}]}`, `either a note or a chord`},
		{`{"voices":[{"measures":[[{"duration":4}]]}]}`, `needs a note, a rest or a chord`},
		{`{"voices":[{"measures":[[{"chord":[{"note":"c"},{"note":"q"}]}]]}]}`, `voices[0].measures[0][0].chord[1]: unknown note name "q"`},
		{`{"voices":[{"bogus":1}]}`, `bogus`},
	}
	for _, c := range cases {
		_, err := Decode(strings.NewReader(c.doc), JSON)
		require.Error(t, err, c.doc)
		assert.Contains(t, err.Error(), c.want)
	}
}

func TestDecodeDefaults(t *testing.T) {
	s, err := Decode(strings.NewReader(`
voices:
  - measures:
      - - {note: E, accidental: b}
        - {rest: true, duration: 8, dots: 1}
`), YAML)
	require.NoError(t, err)
	require.Len(t, s.Voices, 1)

	assert.Equal(t, []model.Event{
		model.NewNote(model.NewPitch(model.E, 4).Flat(), model.Quarter),
		model.NewRest(model.Eighth.Dotted()),
	}, s.Voices[0].Measures[0].Events)
}

func TestDecodeKeepsInvalidNumbersForRenderer(t *testing.T) {
	s, err := Decode(strings.NewReader(`{"voices":[{"measures":[[{"note":"c","duration":3}]]}]}`), JSON)
	require.NoError(t, err)

	out, err := lilypond.Render(s)
	assert.Equal(t, "", out)
	assert.ErrorIs(t, err, lilypond.ErrInvalidDuration)
}

func TestDecodeEmptyDocument(t *testing.T) {
	s, err := Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Empty(t, s.Voices)
}
