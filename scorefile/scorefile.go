// Package scorefile reads scores written as YAML or JSON documents.
package scorefile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jsphweid/lilyscore/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	YAML Format = iota
	JSON
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return YAML, errors.Errorf("unsupported score file extension %q", filepath.Ext(path))
}

func LoadFile(path string) (model.Score, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return model.Score{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Score{}, errors.Wrap(err, "could not read score file")
	}
	s, err := Decode(bytes.NewReader(b), format)
	if err != nil {
		return model.Score{}, errors.Wrapf(err, "%s", path)
	}
	return s, nil
}

// Decode reads a whole document and maps it onto the model. Unknown fields
// are rejected.
func Decode(r io.Reader, format Format) (model.Score, error) {
	var f File
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return model.Score{}, errors.Wrap(err, "could not decode yaml score")
		}
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return model.Score{}, errors.Wrap(err, "could not decode json score")
		}
	default:
		return model.Score{}, errors.Errorf("unknown format %v", format)
	}
	return Map(f)
}
