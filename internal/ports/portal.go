package ports

import (
	"context"
	"errors"

	"github.com/oraad/ogero-sensors/internal/domain"
)

var (
	// ErrInvalidCredentials is returned by data calls once the portal rejects
	// the session credentials.
	ErrInvalidCredentials = errors.New("invalid portal credentials")
	// ErrTransport wraps network and server-side failures of a Portal.
	ErrTransport = errors.New("portal transport failure")
)

// Portal is the upstream provider client. A nil result with a nil error means
// the portal returned no data.
type Portal interface {
	Login(ctx context.Context) (bool, error)
	GetAccounts(ctx context.Context, filter *domain.Account) ([]domain.Account, error)
	GetBillInfo(ctx context.Context, account domain.Account) (*domain.BillInfo, error)
	GetConsumptionInfo(ctx context.Context, account domain.Account) (*domain.Consumption, error)
}

// PortalFactory opens a portal session for one set of credentials.
type PortalFactory func(username, password string) Portal
