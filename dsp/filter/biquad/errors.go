package biquad

import "errors"

var (
	// ErrLengthMismatch is the panic value (wrapped) when source and
	// destination buffers differ in length.
	ErrLengthMismatch = errors.New("biquad: dst and src length mismatch")

	// ErrStateSize is the panic value (wrapped) when a state snapshot does
	// not match the number of sections.
	ErrStateSize = errors.New("biquad: state size does not match section count")

	// ErrNegativeCount is the panic value (wrapped) for a negative
	// replication count.
	ErrNegativeCount = errors.New("biquad: negative section count")
)
