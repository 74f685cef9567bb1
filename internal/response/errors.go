package response

import (
	"errors"
	"net/http"
)

// Kind tags an error with the failure class it belongs to. Storage
// failures surface to the client, mail failures are swallowed by the
// reconciler, and missing records are empty results (never errors) so
// they carry no Kind at all.
type Kind string

const (
	KindStorage    Kind = "storage"
	KindMail       Kind = "mail"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
)

// TaggedError wraps an error with its Kind.
type TaggedError struct {
	kind Kind
	err  error
}

func (e *TaggedError) Error() string { return e.err.Error() }
func (e *TaggedError) Unwrap() error { return e.err }
func (e *TaggedError) Kind() Kind    { return e.kind }

// Tag wraps err with a Kind. Returns nil for a nil err.
func Tag(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &TaggedError{kind: kind, err: err}
}

// KindOf reports the Kind of err, defaulting to KindStorage for untagged
// errors: anything unexpected at the request boundary is treated as a
// storage-layer failure.
func KindOf(err error) Kind {
	var te *TaggedError
	if errors.As(err, &te) {
		return te.kind
	}
	return KindStorage
}

// StatusOf maps an error's Kind to the HTTP status used for it.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
