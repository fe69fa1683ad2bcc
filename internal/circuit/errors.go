package circuit

import "errors"

// Domain errors for circuit operations.
var (
	// ErrInvalidMagnitude indicates a magnitude that is not a finite number.
	ErrInvalidMagnitude = errors.New("circuit: invalid magnitude (not a finite number)")

	// ErrEmptyKind indicates a component without a kind tag.
	ErrEmptyKind = errors.New("circuit: empty component kind")

	// ErrCorruptSnapshot indicates persisted state that could not be decoded.
	ErrCorruptSnapshot = errors.New("circuit: corrupt snapshot")

	// ErrIndexOutOfRange indicates a component index outside the sequence.
	ErrIndexOutOfRange = errors.New("circuit: component index out of range")
)
