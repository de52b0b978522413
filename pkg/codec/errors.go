package codec

import (
	"errors"
	"fmt"

	"github.com/ssargent/stylegraph/pkg/guid"
)

// Sentinel errors. Match them with errors.Is; the typed errors below carry
// the details.
var (
	ErrUnsupported = errors.New("codec: recognized but unsupported class")
	ErrUnknownID   = errors.New("codec: unknown class identifier")
	ErrMalformed   = errors.New("codec: malformed stream")

	ErrBufferExhausted    = errors.New("codec: buffer exhausted")
	ErrReservedMismatch   = errors.New("codec: reserved bytes mismatch")
	ErrUnsupportedVersion = errors.New("codec: unsupported version")
	ErrDepthExceeded      = errors.New("codec: maximum object depth exceeded")
	ErrBadTerminator      = errors.New("codec: missing terminator")
	ErrInvalidString      = errors.New("codec: invalid string")
	ErrInvalidEnum        = errors.New("codec: invalid enumerated value")
	ErrTrailingBytes      = errors.New("codec: trailing bytes after root object")

	ErrRegistrySealed = errors.New("codec: registry is sealed")
	ErrNullID         = errors.New("codec: null identifier cannot be registered")
	ErrDuplicateID    = errors.New("codec: identifier already registered")
)

// UnsupportedError reports a class identifier that is catalogued as a real
// type but has no decoder.
type UnsupportedError struct {
	ID     guid.GUID
	Name   string
	Offset int
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("codec: %s objects are not yet supported (%s at offset %d)", e.Name, e.ID, e.Offset)
}

// Is makes errors.Is(err, ErrUnsupported) succeed.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// UnknownIDError reports a class identifier found in neither the registry nor
// the unsupported catalog. These are worth capturing for later cataloguing.
type UnknownIDError struct {
	ID     guid.GUID
	Offset int
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("codec: unknown class identifier %s at offset %d", e.ID, e.Offset)
}

// Is makes errors.Is(err, ErrUnknownID) succeed.
func (e *UnknownIDError) Is(target error) bool {
	return target == ErrUnknownID
}

// MalformedError reports bytes that did not match the expected grammar. The
// enclosing decode cannot continue past it.
type MalformedError struct {
	Offset int
	Field  string
	Reason string
	Cause  error
}

func (e *MalformedError) Error() string {
	msg := "codec: malformed stream"
	if e.Field != "" {
		msg += fmt.Sprintf(" reading %s", e.Field)
	}
	msg += fmt.Sprintf(" at offset %d", e.Offset)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil && e.Reason == "" {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrMalformed) succeed for every malformed cause.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}

// Outcome is the coarse classification of a decode result.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeUnsupported Outcome = "unsupported"
	OutcomeUnknown     Outcome = "unknown"
	OutcomeMalformed   Outcome = "malformed"
	OutcomeError       Outcome = "error"
)

// Classify maps a decode error to its outcome. A nil error is OutcomeOK.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrUnsupported):
		return OutcomeUnsupported
	case errors.Is(err, ErrUnknownID):
		return OutcomeUnknown
	case errors.Is(err, ErrMalformed):
		return OutcomeMalformed
	default:
		return OutcomeError
	}
}
