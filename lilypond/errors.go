package lilypond

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for each render failure kind. errors.Is matches them
// through a *RenderError.
var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidPitch    = errors.New("invalid pitch")
	ErrInvalidKey      = errors.New("invalid key signature")
	ErrInvalidTime     = errors.New("invalid time signature")
	ErrInvalidHeader   = errors.New("invalid header")
)

type Kind string

const (
	KindInvalidDuration Kind = "invalid_duration"
	KindInvalidPitch    Kind = "invalid_pitch"
	KindInvalidKey      Kind = "invalid_key"
	KindInvalidTime     Kind = "invalid_time"
	KindInvalidHeader   Kind = "invalid_header"
)

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidDuration:
		return ErrInvalidDuration
	case KindInvalidPitch:
		return ErrInvalidPitch
	case KindInvalidKey:
		return ErrInvalidKey
	case KindInvalidTime:
		return ErrInvalidTime
	case KindInvalidHeader:
		return ErrInvalidHeader
	}
	return errors.New(string(k))
}

// Position locates an entity in the score tree. Indexes that do not apply
// are -1.
type Position struct {
	Voice   int
	Measure int
	Event   int
	// Pitch is the index inside a chord.
	Pitch int
}

var noPosition = Position{Voice: -1, Measure: -1, Event: -1, Pitch: -1}

func (p Position) String() string {
	var parts []string
	if p.Voice >= 0 {
		parts = append(parts, fmt.Sprintf("voice %d", p.Voice))
	}
	if p.Measure >= 0 {
		parts = append(parts, fmt.Sprintf("measure %d", p.Measure))
	}
	if p.Event >= 0 {
		parts = append(parts, fmt.Sprintf("event %d", p.Event))
	}
	if p.Pitch >= 0 {
		parts = append(parts, fmt.Sprintf("pitch %d", p.Pitch))
	}
	return strings.Join(parts, ", ")
}

// RenderError reports the first entity that could not be rendered.
type RenderError struct {
	Kind     Kind
	Position Position
	// Field names the header key for KindInvalidHeader.
	Field string
	Err   error
}

func (e *RenderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var where string
	switch {
	case e.Field != "":
		where = fmt.Sprintf("header %q", e.Field)
	default:
		where = e.Position.String()
	}
	if where == "" {
		return e.Err.Error()
	}
	return where + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a *RenderError of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *RenderError
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

func fail(pos Position, kind Kind, format string, args ...any) *RenderError {
	return &RenderError{
		Kind:     kind,
		Position: pos,
		Err:      fmt.Errorf("%w: %s", kind.sentinel(), fmt.Sprintf(format, args...)),
	}
}
