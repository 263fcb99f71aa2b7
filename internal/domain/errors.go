package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEntryNotFound  = errors.New("config entry not found")
	ErrSecretNotFound = errors.New("secret not found")

	ErrAuthentication = errors.New("authentication failed")
	ErrCommunication  = errors.New("communication failed")
)

// ErrorKind tags a ClientError, ordered from least to most specific: every
// authentication error is also a communication error, and both are client
// errors. Check for ErrAuthentication before ErrCommunication.
type ErrorKind int

const (
	KindClient ErrorKind = iota
	KindCommunication
	KindAuthentication
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindCommunication:
		return "communication"
	default:
		return "client"
	}
}

type ClientError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewClientError(message string, err error) *ClientError {
	return &ClientError{Kind: KindClient, Message: message, Err: err}
}

func NewCommunicationError(message string, err error) *ClientError {
	return &ClientError{Kind: KindCommunication, Message: message, Err: err}
}

func NewAuthenticationError(message string, err error) *ClientError {
	return &ClientError{Kind: KindAuthentication, Message: message, Err: err}
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

func (e *ClientError) Is(target error) bool {
	switch target {
	case ErrAuthentication:
		return e.Kind == KindAuthentication
	case ErrCommunication:
		return e.Kind >= KindCommunication
	default:
		return false
	}
}

// KindOf reports the kind of a client error anywhere in the chain. The
// second result is false when err carries no ClientError.
func KindOf(err error) (ErrorKind, bool) {
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		return KindClient, false
	}
	return clientErr.Kind, true
}

type FormatError struct {
	Key    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid account key %q: %s", e.Key, e.Reason)
}
