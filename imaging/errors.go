package imaging

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// RemoteError indicates a failure talking to the HealthImaging service
// (auth, not-found, throttling, network).
//
// The original underlying error can be accessed via errors.Unwrap.
type RemoteError struct {
	// Op is the service operation that failed, e.g. "GetImageFrame".
	Op string
	// Code is the service error code when the failure carries one
	// (e.g. "ResourceNotFoundException"), empty otherwise.
	Code string
	cause error
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.cause)
}

func (e *RemoteError) Unwrap() error { return e.cause }

// DecodeError indicates a malformed or undecodable metadata document.
//
// The original underlying error can be accessed via errors.Unwrap.
type DecodeError struct {
	// Stage is the decode stage that failed: "gunzip" or "parse".
	Stage string
	cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image set metadata (%s): %v", e.Stage, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// remoteError wraps a service call failure, extracting the error code when
// the SDK surfaced one.
func remoteError(op string, err error) *RemoteError {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return &RemoteError{Op: op, Code: ae.ErrorCode(), cause: err}
	}
	return &RemoteError{Op: op, cause: err}
}
