package protocol

import "fmt"

// Sentinel decode errors that carry no extra detail, grounded on the
// teacher's one-error-value-per-failure-mode convention
// (backend/native/errors.go, backend/gogpu/errors.go).
var (
	// ErrTruncatedHeader is returned when the payload is shorter than
	// HeaderSize.
	ErrTruncatedHeader = &DecodeError{Kind: "TruncatedHeader"}

	// ErrBadMagic is returned when the header's magic field does not
	// match Magic.
	ErrBadMagic = &DecodeError{Kind: "BadMagic"}

	// ErrTruncatedBody is returned when the payload is shorter than the
	// sum of its declared sections.
	ErrTruncatedBody = &DecodeError{Kind: "TruncatedBody"}

	// ErrTrailingBytes is returned when the payload is longer than the
	// sum of its declared sections.
	ErrTrailingBytes = &DecodeError{Kind: "TrailingBytes"}
)

// DecodeError is the structured error type returned by Decode. Kind
// identifies the validation rule that failed (see spec.md §4.1); Detail
// carries the offending index, id, or offset where applicable.
type DecodeError struct {
	Kind   string
	Detail string
	err    error // wrapped cause, if any
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return "blom: " + e.Kind
	}
	return fmt.Sprintf("blom: %s: %s", e.Kind, e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.err }

// Is reports whether target is a DecodeError of the same Kind, so callers
// can write errors.Is(err, protocol.ErrBadMagic).
func (e *DecodeError) Is(target error) bool {
	other, ok := target.(*DecodeError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func unsupportedVersion(v uint16) error {
	return &DecodeError{Kind: "UnsupportedVersion", Detail: fmt.Sprintf("%d", v)}
}

func duplicateID(id uint32) error {
	return &DecodeError{Kind: "DuplicateId", Detail: fmt.Sprintf("%d", id)}
}

func danglingEdge(index int) error {
	return &DecodeError{Kind: "DanglingEdge", Detail: fmt.Sprintf("%d", index)}
}

func invalidLabel(index int) error {
	return &DecodeError{Kind: "InvalidLabel", Detail: fmt.Sprintf("%d", index)}
}

func badOffsets(index int) error {
	return &DecodeError{Kind: "BadLabelOffset", Detail: fmt.Sprintf("%d", index)}
}

func invalidImportance(index int) error {
	return &DecodeError{Kind: "InvalidImportance", Detail: fmt.Sprintf("%d", index)}
}
