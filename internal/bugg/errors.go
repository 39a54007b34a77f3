package bugg

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	ConfigMissing   ErrorKind = "config_missing"
	ConfigMalformed ErrorKind = "config_malformed"
	LayoutMismatch  ErrorKind = "layout_mismatch"
	InvalidFileName ErrorKind = "invalid_file_name"
)

var (
	// ErrDeclined is returned when the operator answers "n" to a confirmation.
	ErrDeclined = errors.New("declined by operator")

	// ErrNoResponse is returned when input ends before the operator answers.
	ErrNoResponse = errors.New("no response from operator")

	// ErrUnexpectedPath is returned when a local path does not follow the
	// audio/<project>/<device>/conf_<config>/<file> layout.
	ErrUnexpectedPath = errors.New("unexpected audio file path")
)

// ValidationError is a run-aborting precondition failure. Message is the
// operator-facing diagnostic and names the offending path.
type ValidationError struct {
	Kind    ErrorKind
	Path    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s\n%v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsKind reports whether err is a ValidationError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Kind == kind
}

// UploadError reports a BlobStore failure for a single object. Objects
// uploaded before it stay committed.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
