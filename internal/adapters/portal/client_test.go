package portal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
)

type fakePortal struct {
	logins   atomic.Int32
	token    atomic.Value
	password string
	handlers map[string]http.HandlerFunc
}

func newFakePortal(t *testing.T, handlers map[string]http.HandlerFunc) (*fakePortal, *httptest.Server) {
	t.Helper()

	fake := &fakePortal{password: "secret", handlers: handlers}
	fake.token.Store("token-1")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fake.logins.Add(1)
		if req.Password != fake.password {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(loginResponse{Token: fake.token.Load().(string)})
	})
	for pattern, handler := range handlers {
		handler := handler
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+fake.token.Load().(string) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			handler(w, r)
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return fake, server
}

func newTestClient(server *httptest.Server, password string) *Client {
	return NewClient(Options{BaseURL: server.URL + "/", Timeout: 5 * time.Second, Log: zerolog.Nop()}, "user@example.com", password)
}

func TestClientLoginSucceeds(t *testing.T) {
	t.Parallel()

	fake, server := newFakePortal(t, nil)
	client := newTestClient(server, "secret")

	ok, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(1), fake.logins.Load())
	assert.Equal(t, "token-1", client.currentToken())
}

func TestClientLoginRejectedReturnsFalse(t *testing.T) {
	t.Parallel()

	_, server := newFakePortal(t, nil)
	client := newTestClient(server, "wrong")

	ok, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientGetAccountsPassesFilter(t *testing.T) {
	t.Parallel()

	_, server := newFakePortal(t, map[string]http.HandlerFunc{
		"GET /accounts": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "01234567", r.URL.Query().Get("phone"))
			assert.Empty(t, r.URL.Query().Get("internet"))
			_, _ = w.Write([]byte(`[{"internet":"L1","phone":"01234567"}]`))
		},
	})
	client := newTestClient(server, "secret")

	accounts, err := client.GetAccounts(context.Background(), &domain.Account{Phone: "01234567"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{{Internet: "L1", Phone: "01234567"}}, accounts)
}

func TestClientGetBillInfoDecodesBills(t *testing.T) {
	t.Parallel()

	_, server := newFakePortal(t, map[string]http.HandlerFunc{
		"GET /bills": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "L1", r.URL.Query().Get("internet"))
			assert.Equal(t, "01", r.URL.Query().Get("phone"))
			_, _ = w.Write([]byte(`{
				"total_outstanding": {"amount": 3500.7, "currency": "LBP"},
				"bills": [
					{"date": "2026-01-05", "amount": {"amount": 1500, "currency": "LBP"}, "status": "UNPAID"},
					{"date": "2026-02-05", "amount": {"amount": 2000, "currency": "LBP"}, "status": "paid"}
				]
			}`))
		},
	})
	client := newTestClient(server, "secret")

	info, err := client.GetBillInfo(context.Background(), domain.NewAccount("L1", "01"))
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, domain.Money{Amount: 3500.7, Currency: "LBP"}, info.TotalOutstanding)
	require.Len(t, info.Bills, 2)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), info.Bills[0].Date)
	assert.Equal(t, domain.BillStatusUnpaid, info.Bills[0].Status)
	assert.Equal(t, domain.BillStatusPaid, info.Bills[1].Status)
}

func TestClientGetConsumptionInfoDecodesConsumption(t *testing.T) {
	t.Parallel()

	_, server := newFakePortal(t, map[string]http.HandlerFunc{
		"GET /consumption": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"quota":100,"speed":"8 Mbps","total_consumption":45.5,"extra_consumption":1.25,"last_update":"2026-03-01T10:00:00Z"}`))
		},
	})
	client := newTestClient(server, "secret")

	consumption, err := client.GetConsumptionInfo(context.Background(), domain.NewAccount("L1", "01"))
	require.NoError(t, err)
	require.NotNil(t, consumption)
	assert.Equal(t, int64(100), consumption.Quota)
	assert.Equal(t, "8 Mbps", consumption.Speed)
	assert.InDelta(t, 45.5, consumption.TotalConsumption, 0.001)
	assert.InDelta(t, 1.25, consumption.ExtraConsumption, 0.001)
	assert.True(t, consumption.LastUpdate.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))
}

func TestClientMissingDataReturnsNil(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "not found", handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }},
		{name: "no content", handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }},
		{name: "null body", handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("null\n")) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, server := newFakePortal(t, map[string]http.HandlerFunc{"GET /consumption": tc.handler})
			client := newTestClient(server, "secret")

			consumption, err := client.GetConsumptionInfo(context.Background(), domain.NewAccount("L1", "01"))
			require.NoError(t, err)
			assert.Nil(t, consumption)
		})
	}
}

func TestClientReloginsOnceWhenSessionExpires(t *testing.T) {
	t.Parallel()

	fake, server := newFakePortal(t, map[string]http.HandlerFunc{
		"GET /accounts": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"internet":"L1","phone":"01"}]`))
		},
	})
	client := newTestClient(server, "secret")

	ok, err := client.Login(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	fake.token.Store("token-2")

	accounts, err := client.GetAccounts(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, int32(2), fake.logins.Load())
	assert.Equal(t, "token-2", client.currentToken())
}

func TestClientDataCallWithRejectedCredentialsReturnsInvalidCredentials(t *testing.T) {
	t.Parallel()

	_, server := newFakePortal(t, map[string]http.HandlerFunc{
		"GET /bills": func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be reached without a session")
		},
	})
	client := newTestClient(server, "wrong")

	_, err := client.GetBillInfo(context.Background(), domain.NewAccount("L1", "01"))
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestClientServerErrorIsTransportFailure(t *testing.T) {
	t.Parallel()

	_, server := newFakePortal(t, map[string]http.HandlerFunc{
		"GET /bills": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	})
	client := newTestClient(server, "secret")

	_, err := client.GetBillInfo(context.Background(), domain.NewAccount("L1", "01"))
	require.ErrorIs(t, err, ports.ErrTransport)
	assert.ErrorContains(t, err, "status 502")
}

func TestClientUnreachablePortalIsTransportFailure(t *testing.T) {
	t.Parallel()

	_, server := newFakePortal(t, nil)
	client := newTestClient(server, "secret")
	server.Close()

	_, err := client.Login(context.Background())
	require.ErrorIs(t, err, ports.ErrTransport)
}

func TestClientMalformedBodyIsNotTransportFailure(t *testing.T) {
	t.Parallel()

	_, server := newFakePortal(t, map[string]http.HandlerFunc{
		"GET /consumption": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"quota":`))
		},
	})
	client := newTestClient(server, "secret")

	_, err := client.GetConsumptionInfo(context.Background(), domain.NewAccount("L1", "01"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ports.ErrTransport))
	assert.False(t, errors.Is(err, ports.ErrInvalidCredentials))
	assert.ErrorContains(t, err, "decode /consumption response")
}

func TestClientCanceledContextStopsBeforeRequest(t *testing.T) {
	t.Parallel()

	fake, server := newFakePortal(t, nil)
	client := newTestClient(server, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Login(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), fake.logins.Load())
}

func TestFactorySessionsShareLimiter(t *testing.T) {
	t.Parallel()

	factory := Factory(Options{BaseURL: "http://127.0.0.1", Rate: 1})

	first := factory("a", "x").(*Client)
	second := factory("b", "y").(*Client)

	assert.Same(t, first.limiter, second.limiter)
	assert.Equal(t, "a", first.username)
	assert.Equal(t, "b", second.username)
}
