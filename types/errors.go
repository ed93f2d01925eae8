package types

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedTransactionType = errors.New("unsupported transaction type")
	ErrEmptyOwnershipProof        = errors.New("at least one proof required")
	ErrInvalidAddressType         = errors.New("invalid address type")
	ErrInvalidContractTypeName    = errors.New("contract type name is not valid UTF-8")
	ErrPayloadSizeMismatch        = errors.New("payload size does not match header")
)

// DecodeError is returned for malformed input. No partially decoded value accompanies it.
type DecodeError struct {
	What  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.What, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// IsDecodeError checks if an error is a decode error
func IsDecodeError(err error) bool {
	var d *DecodeError
	return errors.As(err, &d)
}

// WrapDecodeError wraps err as a DecodeError for the named value. nil stays nil.
func WrapDecodeError(what string, err error) error {
	if err == nil {
		return nil
	}
	return &DecodeError{What: what, Cause: err}
}
