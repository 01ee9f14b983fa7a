package textcodec

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidInput indicates an absent (nil) input was passed to an
	// operation that requires one. It reports a caller bug, not a runtime
	// condition worth retrying.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a Config could not be turned into a Codec.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrUnmarshal indicates the serializer failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the serializer failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// InputError reports a rejected input for a named operation.
type InputError struct {
	Op string // Operation that rejected the input (encode, decode, escape, ...)
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s: nil", e.Op, ErrInvalidInput.Error())
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// ConfigError represents a configuration error.
// It wraps a sentinel error with the offending field and value.
type ConfigError struct {
	Err   error  // Underlying sentinel error (ErrInvalidConfig, ErrInvalidTag)
	Field string // Field that triggered the error
	Value string // Offending value
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("%s: %q (field %s)", e.Err.Error(), e.Value, e.Field)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SerializerError represents a marshal/unmarshal error.
type SerializerError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the serializer
}

func (e *SerializerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *SerializerError) Unwrap() error {
	return e.Err
}

func newInputError(op string) error {
	return &InputError{Op: op}
}

func newConfigError(sentinel error, field, value string) error {
	return &ConfigError{
		Err:   sentinel,
		Field: field,
		Value: value,
	}
}

func newSerializerError(sentinel error, cause error) error {
	return &SerializerError{
		Err:   sentinel,
		Cause: cause,
	}
}
