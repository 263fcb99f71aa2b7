package application

import (
	"context"
	"errors"
	"net"

	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgNoAccount          = "No account found."
	msgNoBillInfo         = "No bill info found."
	msgNoConsumptionInfo  = "No consumption info found."
)

// Client maps every portal outcome onto one of the three domain.ClientError
// kinds. It keeps no state of its own.
type Client struct {
	portal ports.Portal
}

func NewClient(portal ports.Portal) *Client {
	return &Client{portal: portal}
}

func (c *Client) Login(ctx context.Context) (bool, error) {
	ok, err := c.portal.Login(ctx)
	if err != nil {
		return false, classify("login", err)
	}
	if !ok {
		return false, domain.NewAuthenticationError(msgInvalidCredentials, nil)
	}
	return true, nil
}

func (c *Client) ListAccounts(ctx context.Context, filter *domain.Account) ([]domain.Account, error) {
	accounts, err := c.portal.GetAccounts(ctx, filter)
	if err != nil {
		return nil, classify("list accounts", err)
	}
	if len(accounts) == 0 {
		return nil, domain.NewClientError(msgNoAccount, nil)
	}
	return accounts, nil
}

func (c *Client) GetBills(ctx context.Context, account domain.Account) (domain.BillInfo, error) {
	info, err := c.portal.GetBillInfo(ctx, account)
	if err != nil {
		return domain.BillInfo{}, classify("get bills", err)
	}
	if info == nil {
		return domain.BillInfo{}, domain.NewClientError(msgNoBillInfo, nil)
	}
	return *info, nil
}

func (c *Client) GetConsumption(ctx context.Context, account domain.Account) (domain.Consumption, error) {
	consumption, err := c.portal.GetConsumptionInfo(ctx, account)
	if err != nil {
		return domain.Consumption{}, classify("get consumption", err)
	}
	if consumption == nil {
		return domain.Consumption{}, domain.NewClientError(msgNoConsumptionInfo, nil)
	}
	return *consumption, nil
}

func classify(op string, err error) error {
	var clientErr *domain.ClientError
	if errors.As(err, &clientErr) {
		return err
	}

	var netErr net.Error
	switch {
	case errors.Is(err, ports.ErrInvalidCredentials):
		return domain.NewAuthenticationError(op, err)
	case errors.Is(err, ports.ErrTransport),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return domain.NewCommunicationError(op, err)
	default:
		return domain.NewClientError(op, err)
	}
}
