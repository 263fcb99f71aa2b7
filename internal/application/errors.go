package application

import (
	"errors"
	"fmt"

	"github.com/oraad/ogero-sensors/internal/domain"
)

var (
	// ErrAuthFailed means the stored credentials were rejected and the entry
	// needs re-authentication.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrUpdateFailed is a transient refresh failure; cached values stay.
	ErrUpdateFailed = errors.New("update failed")
	// ErrNotReady is returned by setup when the portal could not be reached
	// or returned no data. The host retries later.
	ErrNotReady = errors.New("entry not ready")

	ErrCoordinatorClosed        = errors.New("coordinator closed")
	ErrAccountAlreadyConfigured = errors.New("account already configured")
	ErrEntryNotLoaded           = errors.New("entry not loaded")
)

// RefreshError is the outcome of a failed refresh. It matches ErrAuthFailed
// for authentication failures and ErrUpdateFailed for everything else.
type RefreshError struct {
	Kind domain.ErrorKind
	Err  error
}

func (e *RefreshError) Error() string {
	if e.Kind == domain.KindAuthentication {
		return fmt.Sprintf("%v: %v", ErrAuthFailed, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrUpdateFailed, e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

func (e *RefreshError) Is(target error) bool {
	switch target {
	case ErrAuthFailed:
		return e.Kind == domain.KindAuthentication
	case ErrUpdateFailed:
		return e.Kind != domain.KindAuthentication
	default:
		return false
	}
}

func newRefreshError(err error) *RefreshError {
	kind, ok := domain.KindOf(err)
	if !ok {
		kind = domain.KindClient
	}
	return &RefreshError{Kind: kind, Err: err}
}
