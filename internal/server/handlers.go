package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nunnsy/betfair"
	"github.com/nunnsy/betfair/betting"
	"github.com/nunnsy/betfair/internal/domain"
	"github.com/nunnsy/betfair/internal/metrics"
)

// writeJSON marshals v as JSON and writes it to the response with the given
// HTTP status code. If marshaling fails, it falls back to a plain-text 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError sends a JSON-formatted error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// sessionSource reports the current session token; the exchange client
// satisfies it.
type sessionSource interface {
	SessionToken() string
}

// StatusHandler reports the run mode, session state and store counters.
// Every collaborator except the session source is optional; absent ones are
// omitted from the response.
type StatusHandler struct {
	mode        string
	session     sessionSource
	budget      domain.TxBudget
	settlements domain.SettlementStore
	audits      domain.OrderAuditStore
	archive     domain.BlobReader
	logger      *slog.Logger
}

// NewStatusHandler creates a StatusHandler. Pass nil for collaborators the
// current mode did not wire.
func NewStatusHandler(
	mode string,
	session sessionSource,
	budget domain.TxBudget,
	settlements domain.SettlementStore,
	audits domain.OrderAuditStore,
	archive domain.BlobReader,
	logger *slog.Logger,
) *StatusHandler {
	return &StatusHandler{
		mode:        mode,
		session:     session,
		budget:      budget,
		settlements: settlements,
		audits:      audits,
		archive:     archive,
		logger:      logger.With(slog.String("handler", "status")),
	}
}

// GetStatus responds with the current backend state.
// GET /api/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]any{
		"mode":          h.mode,
		"authenticated": h.session.SessionToken() != "",
	}

	if h.budget != nil {
		remaining, err := h.budget.Remaining(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "budget remaining", slog.String("error", err.Error()))
		} else {
			status["tx_budget_remaining"] = remaining
		}
	}

	if h.settlements != nil {
		if n, err := h.settlements.Count(ctx); err == nil {
			status["settlement_count"] = n
		}
	}
	if h.audits != nil {
		if n, err := h.audits.Count(ctx); err == nil {
			status["audit_count"] = n
		}
	}

	if h.archive != nil {
		infos, err := h.archive.List(ctx, "archive/settlements/")
		if err != nil {
			h.logger.ErrorContext(ctx, "archive list", slog.String("error", err.Error()))
		} else {
			var bytes int64
			for _, info := range infos {
				bytes += info.Size
			}
			status["archive_objects"] = len(infos)
			status["archive_bytes"] = bytes
		}
	}

	writeJSON(w, http.StatusOK, status)
}

// MarketHandler serves the cached market catalogue.
type MarketHandler struct {
	cache  domain.CatalogueCache
	logger *slog.Logger
}

// NewMarketHandler creates a MarketHandler backed by the catalogue cache.
func NewMarketHandler(cache domain.CatalogueCache, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{
		cache:  cache,
		logger: logger.With(slog.String("handler", "markets")),
	}
}

// ListMarkets responds with every cached market summary.
// GET /api/markets
func (h *MarketHandler) ListMarkets(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.cache.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "catalogue list", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "catalogue unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"markets": summaries,
		"count":   len(summaries),
	})
}

// GetMarket responds with one cached market summary.
// GET /api/markets/{id}
func (h *MarketHandler) GetMarket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	m, err := h.cache.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.RecordCatalogueLookup(false, nil)
			writeError(w, http.StatusNotFound, "market not cached")
			return
		}
		metrics.RecordCatalogueLookup(false, err)
		h.logger.ErrorContext(r.Context(), "catalogue get", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "catalogue unavailable")
		return
	}
	metrics.RecordCatalogueLookup(true, nil)
	writeJSON(w, http.StatusOK, m)
}

// OrderHandler proxies current-order queries to the exchange.
type OrderHandler struct {
	betting *betting.Client
	logger  *slog.Logger
}

// NewOrderHandler creates an OrderHandler that queries through the given
// betting client.
func NewOrderHandler(bettingClient *betting.Client, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		betting: bettingClient,
		logger:  logger.With(slog.String("handler", "orders")),
	}
}

// ListCurrent responds with the account's current orders straight from the
// exchange. Optional query parameters: marketId (repeatable), fromRecord,
// recordCount.
// GET /api/orders
func (h *OrderHandler) ListCurrent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := betting.ListCurrentOrdersRequest{
		MarketIDs: q["marketId"],
	}
	if v := q.Get("fromRecord"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			req.FromRecord = n
		}
	}
	if v := q.Get("recordCount"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			req.RecordCount = n
		}
	}

	report, err := h.betting.ListCurrentOrders(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list current orders", slog.String("error", err.Error()))
		if errors.Is(err, betfair.ErrNoSession) {
			writeError(w, http.StatusServiceUnavailable, "no active session")
			return
		}
		writeError(w, http.StatusBadGateway, "exchange call failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// AuditHandler serves the order mutation log.
type AuditHandler struct {
	store  domain.OrderAuditStore
	logger *slog.Logger
}

// NewAuditHandler creates an AuditHandler backed by the audit store.
func NewAuditHandler(store domain.OrderAuditStore, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "audits")),
	}
}

// ListAudits responds with audit rows, newest first. Optional query
// parameters: op, marketId, status, limit (default 50, max 500), offset.
// GET /api/audits
func (h *AuditHandler) ListAudits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.AuditFilter{
		Op:       domain.AuditOp(q.Get("op")),
		MarketID: q.Get("marketId"),
		Status:   q.Get("status"),
		Limit:    50,
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	audits, err := h.store.List(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list audits", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "audit store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"audits": audits,
		"count":  len(audits),
	})
}

// GetAudit responds with one audit row by id.
// GET /api/audits/{id}
func (h *AuditHandler) GetAudit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	audit, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "audit not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "get audit", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "audit store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, audit)
}
