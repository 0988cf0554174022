package model

import "fmt"

// DecodeErrorKind enumerates the ways a wire payload can fail to decode
// into a closed-world type.
type DecodeErrorKind string

const (
	// DecodeErrorUnknownVariant is raised when a discriminated union's tag
	// field does not match any known variant.
	DecodeErrorUnknownVariant DecodeErrorKind = "unknown_variant"
	// DecodeErrorMalformedField is raised when a field's shape does not
	// match what the wire schema promises (e.g. properties that isn't a
	// JSON object).
	DecodeErrorMalformedField DecodeErrorKind = "malformed_field"
)

// DecodeError reports a schema violation found while decoding a response
// body into an entity or discriminated-union value. Unknown variants are
// never silently defaulted; they always produce a DecodeError.
type DecodeError struct {
	Kind    DecodeErrorKind
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at %s: %s", e.Path, e.Message)
}

func unknownVariant(path, message string) error {
	return &DecodeError{Kind: DecodeErrorUnknownVariant, Path: path, Message: message}
}

func malformedField(path, message string) error {
	return &DecodeError{Kind: DecodeErrorMalformedField, Path: path, Message: message}
}
