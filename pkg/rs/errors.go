package rs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned for codec parameters that cannot describe a code.
	ErrInvalidConfig = errors.New("invalid codec configuration")

	// ErrInvalidMessage is returned when a message or codeword does not fit the codec.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrDecodeFailure is returned when a received word is not within t symbol errors
	// of any codeword.
	ErrDecodeFailure = errors.New("decode failure")
)

// DecodeFailure reports that no error-count hypothesis from MaxErrors down to zero
// produced a valid message polynomial.
type DecodeFailure struct {
	N, K      int
	MaxErrors int
	Reason    string
}

func (e *DecodeFailure) Error() string {
	msg := fmt.Sprintf("cannot decode (n=%d, k=%d): more than %d symbol errors", e.N, e.K, e.MaxErrors)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *DecodeFailure) Unwrap() error {
	return ErrDecodeFailure
}
