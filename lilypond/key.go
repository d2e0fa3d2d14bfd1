package lilypond

import "github.com/jsphweid/lilyscore/model"

type tonic struct {
	name model.NoteName
	acc  model.Accidental
}

// Indexed by fifths + 7.
var majorTonics = [...]tonic{
	{model.C, model.Flat}, {model.G, model.Flat}, {model.D, model.Flat}, {model.A, model.Flat},
	{model.E, model.Flat}, {model.B, model.Flat}, {model.F, model.Natural},
	{model.C, model.Natural},
	{model.G, model.Natural}, {model.D, model.Natural}, {model.A, model.Natural}, {model.E, model.Natural},
	{model.B, model.Natural}, {model.F, model.Sharp}, {model.C, model.Sharp},
}

var minorTonics = [...]tonic{
	{model.A, model.Flat}, {model.E, model.Flat}, {model.B, model.Flat}, {model.F, model.Natural},
	{model.C, model.Natural}, {model.G, model.Natural}, {model.D, model.Natural},
	{model.A, model.Natural},
	{model.E, model.Natural}, {model.B, model.Natural}, {model.F, model.Sharp}, {model.C, model.Sharp},
	{model.G, model.Sharp}, {model.D, model.Sharp}, {model.A, model.Sharp},
}

func (r *renderer) key(pos Position, k model.KeySignature) (string, error) {
	if !k.Valid() {
		return "", fail(pos, KindInvalidKey, "%d fifths is outside [-%d, %d]", k.Fifths, model.MaxFifths, model.MaxFifths)
	}
	t, mode := majorTonics[k.Fifths+model.MaxFifths], `\major`
	if k.Minor {
		t, mode = minorTonics[k.Fifths+model.MaxFifths], `\minor`
	}
	return `\key ` + r.opts.Language.noteName(t.name, t.acc) + " " + mode, nil
}
