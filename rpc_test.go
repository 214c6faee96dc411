package betfair

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func newTestClient(t *testing.T, srv *httptest.Server, cfg ClientConfig) *Client {
	t.Helper()
	if cfg.AppKey == "" {
		cfg.AppKey = "test-app-key"
	}
	if cfg.Endpoints.Betting == "" {
		cfg.Endpoints.Betting = srv.URL
	}
	if cfg.Endpoints.Account == "" {
		cfg.Endpoints.Account = srv.URL
	}
	cfg.HTTPClient = srv.Client()
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestCallEnvelopeAndHeaders(t *testing.T) {
	type envelope struct {
		JSONRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
		ID      int             `json:"id"`
	}

	var (
		gotEnvelope envelope
		gotHeaders  http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotEnvelope); err != nil {
			t.Errorf("request body not a JSON envelope: %v", err)
		}
		w.Write([]byte(`{"jsonrpc":"2.0","result":[{"marketCount":7}],"id":1}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, ClientConfig{SessionToken: "session-1"})

	resp, err := c.Call(context.Background(), "SportsAPING/v1.0/listEventTypes", map[string]any{"filter": map[string]any{}})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	if gotEnvelope.JSONRPC != "2.0" || gotEnvelope.ID != 1 {
		t.Errorf("envelope = %+v, want jsonrpc 2.0 id 1", gotEnvelope)
	}
	if gotEnvelope.Method != "SportsAPING/v1.0/listEventTypes" {
		t.Errorf("method = %q", gotEnvelope.Method)
	}
	if string(gotEnvelope.Params) != `{"filter":{}}` {
		t.Errorf("params = %s", gotEnvelope.Params)
	}

	headers := []struct{ key, want string }{
		{"X-Application", "test-app-key"},
		{"X-Authentication", "session-1"},
		{"Content-Type", "application/json"},
		{"Accept", "application/json"},
	}
	for _, h := range headers {
		if got := gotHeaders.Get(h.key); got != h.want {
			t.Errorf("%s = %q, want %q", h.key, got, h.want)
		}
	}

	if string(resp.Result) != `[{"marketCount":7}]` {
		t.Errorf("Result = %s", resp.Result)
	}
	if len(resp.Body) == 0 {
		t.Error("Body empty")
	}
	if resp.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", resp.Elapsed)
	}
}

func TestCallRoutesByNamespace(t *testing.T) {
	betting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","result":"betting","id":1}`))
	}))
	defer betting.Close()
	account := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","result":"account","id":1}`))
	}))
	defer account.Close()

	c := newTestClient(t, betting, ClientConfig{
		SessionToken: "s",
		Endpoints:    Endpoints{Betting: betting.URL, Account: account.URL},
	})

	tests := []struct {
		method string
		want   string
	}{
		{"SportsAPING/v1.0/listEventTypes", `"betting"`},
		{"AccountAPING/v1.0/getAccountFunds", `"account"`},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp, err := c.Call(context.Background(), tt.method, struct{}{})
			if err != nil {
				t.Fatalf("Call: %v", err)
			}
			if string(resp.Result) != tt.want {
				t.Errorf("routed to %s, want %s", resp.Result, tt.want)
			}
		})
	}
}

func TestCallWithoutSessionFailsFast(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := newTestClient(t, srv, ClientConfig{})

	_, err := c.Call(context.Background(), "SportsAPING/v1.0/listEventTypes", struct{}{})
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
	if calls != 0 {
		t.Errorf("server reached %d times despite missing session", calls)
	}
}

func TestCallAPIError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
		wantIs   error
	}{
		{
			name:     "betting exception",
			body:     `{"jsonrpc":"2.0","error":{"code":-32099,"message":"ANGX-0003","data":{"APINGException":{"requestUUID":"prdang001-123","errorCode":"INVALID_SESSION_INFORMATION","errorDetails":"session expired"}}},"id":1}`,
			wantCode: "INVALID_SESSION_INFORMATION",
			wantIs:   ErrInvalidSession,
		},
		{
			name:     "account exception",
			body:     `{"jsonrpc":"2.0","error":{"code":-32099,"message":"ANGX-0011","data":{"AccountAPINGException":{"requestUUID":"prdang002-456","errorCode":"INVALID_APP_KEY","errorDetails":""}}},"id":1}`,
			wantCode: "INVALID_APP_KEY",
			wantIs:   ErrUnauthorized,
		},
		{
			name:     "no exception payload",
			body:     `{"jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found"},"id":1}`,
			wantCode: "",
			wantIs:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv, ClientConfig{SessionToken: "s"})

			_, err := c.Call(context.Background(), "SportsAPING/v1.0/listMarketBook", struct{}{})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.ErrorCode != tt.wantCode {
				t.Errorf("ErrorCode = %q, want %q", apiErr.ErrorCode, tt.wantCode)
			}
			if apiErr.Method != "SportsAPING/v1.0/listMarketBook" {
				t.Errorf("Method = %q", apiErr.Method)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(%v) = false for %v", tt.wantIs, err)
			}
		})
	}
}

func TestCallHTTPStatusSentinels(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusInternalServerError, ErrServerError},
		{http.StatusBadGateway, ErrServerError},
		{http.StatusServiceUnavailable, ErrServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := newTestClient(t, srv, ClientConfig{SessionToken: "s"})

			_, err := c.Call(context.Background(), "SportsAPING/v1.0/listEventTypes", struct{}{})
			if !errors.Is(err, tt.want) {
				t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.want)
			}
		})
	}
}

type recordedCall struct {
	method  string
	elapsed time.Duration
	err     error
}

type captureRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (r *captureRecorder) RecordCall(method string, elapsed time.Duration, err error) {
	r.mu.Lock()
	r.calls = append(r.calls, recordedCall{method, elapsed, err})
	r.mu.Unlock()
}

func TestCallRecorder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","result":[],"id":1}`))
	}))
	defer srv.Close()

	rec := &captureRecorder{}
	c := newTestClient(t, srv, ClientConfig{SessionToken: "s", Recorder: rec})

	if _, err := c.Call(context.Background(), "SportsAPING/v1.0/listEventTypes", struct{}{}); err != nil {
		t.Fatalf("Call: %v", err)
	}
	c.SetSessionToken("")
	if _, err := c.Call(context.Background(), "SportsAPING/v1.0/listEvents", struct{}{}); err == nil {
		t.Fatal("expected ErrNoSession")
	}

	if len(rec.calls) != 2 {
		t.Fatalf("recorded %d calls, want 2", len(rec.calls))
	}
	if rec.calls[0].method != "SportsAPING/v1.0/listEventTypes" || rec.calls[0].err != nil {
		t.Errorf("first call = %+v", rec.calls[0])
	}
	if rec.calls[0].elapsed <= 0 {
		t.Errorf("first call elapsed = %v, want > 0", rec.calls[0].elapsed)
	}
	if !errors.Is(rec.calls[1].err, ErrNoSession) {
		t.Errorf("second call err = %v, want ErrNoSession", rec.calls[1].err)
	}
}

func TestNewClientRequiresAppKey(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Error("expected error for missing app key")
	}
}
