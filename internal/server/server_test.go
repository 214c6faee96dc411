package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nunnsy/betfair"
	"github.com/nunnsy/betfair/betting"
	"github.com/nunnsy/betfair/internal/domain"
)

type fakeCache struct {
	markets map[string]domain.MarketSummary
}

func newFakeCache(ms ...domain.MarketSummary) *fakeCache {
	f := &fakeCache{markets: make(map[string]domain.MarketSummary)}
	for _, m := range ms {
		f.markets[m.MarketID] = m
	}
	return f
}

func (f *fakeCache) Set(_ context.Context, m domain.MarketSummary) error {
	f.markets[m.MarketID] = m
	return nil
}

func (f *fakeCache) SetBatch(_ context.Context, ms []domain.MarketSummary) error {
	for _, m := range ms {
		f.markets[m.MarketID] = m
	}
	return nil
}

func (f *fakeCache) Get(_ context.Context, marketID string) (domain.MarketSummary, error) {
	m, ok := f.markets[marketID]
	if !ok {
		return domain.MarketSummary{}, domain.ErrNotFound
	}
	return m, nil
}

func (f *fakeCache) List(_ context.Context) ([]domain.MarketSummary, error) {
	out := make([]domain.MarketSummary, 0, len(f.markets))
	for _, m := range f.markets {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeCache) Invalidate(_ context.Context, marketID string) error {
	delete(f.markets, marketID)
	return nil
}

type fakeAudits struct {
	rows      []domain.OrderAudit
	gotFilter domain.AuditFilter
}

func (f *fakeAudits) Insert(_ context.Context, audit domain.OrderAudit) error {
	f.rows = append(f.rows, audit)
	return nil
}

func (f *fakeAudits) GetByID(_ context.Context, id string) (domain.OrderAudit, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return domain.OrderAudit{}, domain.ErrNotFound
}

func (f *fakeAudits) List(_ context.Context, filter domain.AuditFilter) ([]domain.OrderAudit, error) {
	f.gotFilter = filter
	return f.rows, nil
}

func (f *fakeAudits) Count(_ context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

type fakeBudget struct {
	remaining int
}

func (f *fakeBudget) Spend(_ context.Context, n int) (int, error) {
	f.remaining -= n
	return f.remaining, nil
}

func (f *fakeBudget) Remaining(_ context.Context) (int, error) {
	return f.remaining, nil
}

type fakeArchive struct {
	infos []domain.BlobInfo
}

func (f *fakeArchive) Get(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeArchive) List(_ context.Context, _ string) ([]domain.BlobInfo, error) {
	return f.infos, nil
}

func (f *fakeArchive) Exists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

type fakeExec struct {
	method string
	resp   *betfair.Response
	err    error
}

func (f *fakeExec) Call(_ context.Context, method string, _ any) (*betfair.Response, error) {
	f.method = method
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type staticSession string

func (s staticSession) SessionToken() string { return string(s) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(t *testing.T, cfg Config, handlers Handlers) http.Handler {
	t.Helper()
	srv := NewServer(cfg, handlers, testLogger())
	return srv.httpServer.Handler
}

func defaultHandlers(exec betting.Executor) Handlers {
	logger := testLogger()
	return Handlers{
		Status: NewStatusHandler("serve", staticSession("tok"),
			&fakeBudget{remaining: 900}, nil, nil,
			&fakeArchive{infos: []domain.BlobInfo{{Path: "archive/settlements/2026-08.jsonl", Size: 2048}}},
			logger),
		Markets: NewMarketHandler(newFakeCache(domain.MarketSummary{
			MarketID: "1.234", Name: "Match Odds", EventName: "A v B",
		}), logger),
		Orders: NewOrderHandler(betting.NewClient(exec), logger),
		Audits: NewAuditHandler(&fakeAudits{}, logger),
	}
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, Config{Port: 0}, defaultHandlers(&fakeExec{}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}

func TestAuth(t *testing.T) {
	h := newTestHandler(t, Config{Port: 0, APIKey: "sekrit"}, defaultHandlers(&fakeExec{}))

	tests := []struct {
		name       string
		decorate   func(*http.Request)
		wantStatus int
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized},
		{"wrong key", func(r *http.Request) { r.Header.Set("X-API-Key", "nope") }, http.StatusUnauthorized},
		{"api key header", func(r *http.Request) { r.Header.Set("X-API-Key", "sekrit") }, http.StatusOK},
		{"bearer token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer sekrit") }, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			tt.decorate(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetStatus(t *testing.T) {
	h := newTestHandler(t, Config{Port: 0}, defaultHandlers(&fakeExec{}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["mode"] != "serve" {
		t.Errorf("mode = %v, want serve", body["mode"])
	}
	if body["authenticated"] != true {
		t.Errorf("authenticated = %v, want true", body["authenticated"])
	}
	if body["tx_budget_remaining"] != float64(900) {
		t.Errorf("tx_budget_remaining = %v, want 900", body["tx_budget_remaining"])
	}
	if body["archive_objects"] != float64(1) || body["archive_bytes"] != float64(2048) {
		t.Errorf("archive stats = %v/%v, want 1/2048", body["archive_objects"], body["archive_bytes"])
	}
	if _, ok := body["settlement_count"]; ok {
		t.Error("settlement_count present although no settlement store was wired")
	}
}

func TestGetMarket(t *testing.T) {
	h := newTestHandler(t, Config{Port: 0}, defaultHandlers(&fakeExec{}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/markets/1.234", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/markets/1.234 = %d, want 200", rec.Code)
	}
	var m domain.MarketSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if m.Name != "Match Odds" {
		t.Errorf("market name = %q, want Match Odds", m.Name)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/markets/1.999", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /api/markets/1.999 = %d, want 404", rec.Code)
	}
}

func TestListCurrentOrders(t *testing.T) {
	exec := &fakeExec{resp: &betfair.Response{
		Result:  json.RawMessage(`{"currentOrders":[{"betId":"42","marketId":"1.234"}],"moreAvailable":false}`),
		Elapsed: 5 * time.Millisecond,
	}}
	h := newTestHandler(t, Config{Port: 0}, defaultHandlers(exec))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders?marketId=1.234", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/orders = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if exec.method != "SportsAPING/v1.0/listCurrentOrders" {
		t.Errorf("exchange method = %q", exec.method)
	}
	var report betting.CurrentOrderSummaryReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(report.CurrentOrders) != 1 || report.CurrentOrders[0].BetID != "42" {
		t.Errorf("orders = %+v, want one order with bet id 42", report.CurrentOrders)
	}
}

func TestListCurrentOrdersNoSession(t *testing.T) {
	exec := &fakeExec{err: betfair.ErrNoSession}
	h := newTestHandler(t, Config{Port: 0}, defaultHandlers(exec))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /api/orders = %d, want 503", rec.Code)
	}
}

func TestListAuditsFilter(t *testing.T) {
	audits := &fakeAudits{rows: []domain.OrderAudit{{ID: "a1", Op: domain.AuditOpPlace}}}
	handlers := defaultHandlers(&fakeExec{})
	handlers.Audits = NewAuditHandler(audits, testLogger())
	h := newTestHandler(t, Config{Port: 0}, handlers)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/audits?op=place&marketId=1.234&limit=9999&offset=10", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/audits = %d, want 200", rec.Code)
	}
	got := audits.gotFilter
	if got.Op != domain.AuditOpPlace || got.MarketID != "1.234" {
		t.Errorf("filter = %+v, want op place market 1.234", got)
	}
	if got.Limit != 500 {
		t.Errorf("limit = %d, want clamp to 500", got.Limit)
	}
	if got.Offset != 10 {
		t.Errorf("offset = %d, want 10", got.Offset)
	}
}

func TestGetAuditNotFound(t *testing.T) {
	h := newTestHandler(t, Config{Port: 0}, defaultHandlers(&fakeExec{}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/audits/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /api/audits/missing = %d, want 404", rec.Code)
	}
}
