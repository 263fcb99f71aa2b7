// Package portal is the HTTP client of the account portal API.
package portal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
)

const (
	maxResponseBytes = 1 << 20

	loginPath       = "/login"
	accountsPath    = "/accounts"
	billsPath       = "/bills"
	consumptionPath = "/consumption"
)

var errUnauthorized = errors.New("portal session unauthorized")

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout bounds each request. Zero leaves it to the caller's context.
	Timeout time.Duration
	// Rate is requests per second shared by every session of one factory.
	// Zero disables limiting.
	Rate float64
	Log  zerolog.Logger
}

type Client struct {
	opts     Options
	limiter  *rate.Limiter
	username string
	password string

	mu    sync.Mutex
	token string
}

var _ ports.Portal = (*Client)(nil)

func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

func NewClient(opts Options, username, password string) *Client {
	return newClient(opts, newLimiter(opts.Rate), username, password)
}

func newClient(opts Options, limiter *rate.Limiter, username, password string) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	opts.Log = opts.Log.With().Str("component", "portal").Logger()

	return &Client{opts: opts, limiter: limiter, username: username, password: password}
}

// Factory returns a ports.PortalFactory whose sessions share one rate limiter.
func Factory(opts Options) ports.PortalFactory {
	limiter := newLimiter(opts.Rate)
	return func(username, password string) ports.Portal {
		return newClient(opts, limiter, username, password)
	}
}

// Login reports false when the portal rejects the credentials.
func (c *Client) Login(ctx context.Context) (bool, error) {
	token, err := c.login(ctx)
	if errors.Is(err, ports.ErrInvalidCredentials) {
		c.opts.Log.Debug().Str("username", c.username).Msg("portal rejected credentials")
		return false, nil
	}
	if err != nil {
		return false, err
	}

	c.setToken(token)
	return true, nil
}

func (c *Client) GetAccounts(ctx context.Context, filter *domain.Account) ([]domain.Account, error) {
	query := url.Values{}
	if filter != nil {
		setAccountQuery(query, *filter)
	}

	var payload []accountPayload
	found, err := c.authorized(ctx, accountsPath, query, &payload)
	if err != nil || !found {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(payload))
	for _, account := range payload {
		accounts = append(accounts, account.toDomain())
	}
	return accounts, nil
}

func (c *Client) GetBillInfo(ctx context.Context, account domain.Account) (*domain.BillInfo, error) {
	query := url.Values{}
	setAccountQuery(query, account)

	var payload billInfoPayload
	found, err := c.authorized(ctx, billsPath, query, &payload)
	if err != nil || !found {
		return nil, err
	}

	info, err := payload.toDomain()
	if err != nil {
		return nil, fmt.Errorf("decode bills response: %w", err)
	}
	return &info, nil
}

func (c *Client) GetConsumptionInfo(ctx context.Context, account domain.Account) (*domain.Consumption, error) {
	query := url.Values{}
	setAccountQuery(query, account)

	var payload consumptionPayload
	found, err := c.authorized(ctx, consumptionPath, query, &payload)
	if err != nil || !found {
		return nil, err
	}

	consumption := payload.toDomain()
	return &consumption, nil
}

func setAccountQuery(query url.Values, account domain.Account) {
	if account.Internet != "" {
		query.Set("internet", account.Internet)
	}
	if account.Phone != "" {
		query.Set("phone", account.Phone)
	}
}

// authorized runs a GET with the session token, logging in first when there is
// no token and once more when the portal answers 401.
func (c *Client) authorized(ctx context.Context, path string, query url.Values, out any) (bool, error) {
	if c.currentToken() == "" {
		if err := c.relogin(ctx); err != nil {
			return false, err
		}
	}

	found, err := c.get(ctx, path, query, out)
	if !errors.Is(err, errUnauthorized) {
		return found, err
	}

	c.opts.Log.Debug().Str("path", path).Msg("portal session expired, logging in again")
	if err := c.relogin(ctx); err != nil {
		return false, err
	}

	found, err = c.get(ctx, path, query, out)
	if errors.Is(err, errUnauthorized) {
		return false, fmt.Errorf("get %s: %w", path, ports.ErrInvalidCredentials)
	}
	return found, err
}

func (c *Client) relogin(ctx context.Context) error {
	token, err := c.login(ctx)
	if err != nil {
		return err
	}
	c.setToken(token)
	return nil
}

func (c *Client) login(ctx context.Context) (string, error) {
	body, err := json.Marshal(loginRequest{Username: c.username, Password: c.password})
	if err != nil {
		return "", fmt.Errorf("encode login request: %w", err)
	}

	var payload loginResponse
	found, err := c.do(ctx, http.MethodPost, loginPath, nil, body, "", &payload)
	if errors.Is(err, errUnauthorized) {
		return "", fmt.Errorf("login: %w", ports.ErrInvalidCredentials)
	}
	if err != nil {
		return "", err
	}
	if !found || payload.Token == "" {
		return "", errors.New("login response missing token")
	}

	return payload.Token, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (bool, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, c.currentToken(), out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, token string, out any) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	endpoint := c.opts.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		return false, fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %s %s: %w", ports.ErrTransport, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, errUnauthorized
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return false, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return false, fmt.Errorf("%w: %s %s: status %d", ports.ErrTransport, method, path, resp.StatusCode)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return false, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return false, fmt.Errorf("%w: read %s response: %w", ports.ErrTransport, path, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return false, fmt.Errorf("decode %s response: %w", path, err)
	}

	return true, nil
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.opts.Timeout)
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}
