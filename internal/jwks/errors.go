package jwks

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMissing is returned when the DCR endpoint property is absent or blank.
	ErrConfigMissing = errors.New("DCR_JWKS_REG_ENDPOINT property is not configured")
	// ErrNetwork is matched by every transport-level failure reaching the remote endpoint.
	ErrNetwork = errors.New("remote keyset endpoint unreachable")
	// ErrRemoteStatus is matched when the remote endpoint answers with a non-200 status.
	ErrRemoteStatus = errors.New("remote keyset endpoint returned an unexpected status")
	// ErrParse is returned when either source holds malformed JSON.
	ErrParse = errors.New("malformed keyset document")
	// ErrLocalRead is returned when the local certificate file exists but cannot be read.
	ErrLocalRead = errors.New("local keyset unreadable")
)

// NetworkError carries the transport failure raised while fetching the
// remote keyset, including timeouts and cancellation.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: GET %s: %v", ErrNetwork, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// StatusError reports a non-200 answer from the remote endpoint.
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: GET %s: HTTP status %d", ErrRemoteStatus, e.Endpoint, e.Status)
}

func (e *StatusError) Is(target error) bool { return target == ErrRemoteStatus }
