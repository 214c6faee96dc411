package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nunnsy/betfair/account"
	"github.com/nunnsy/betfair/betting"
	"github.com/nunnsy/betfair/internal/crypto"
	"github.com/nunnsy/betfair/internal/domain"
	"github.com/nunnsy/betfair/internal/metrics"
	"github.com/nunnsy/betfair/internal/notify"
	"github.com/nunnsy/betfair/internal/server"
)

const (
	ordersPageSize  = 100
	clearedPageSize = 200
	bookChunkSize   = 10
	bookConcurrency = 4

	archiveLockKey = "settlements:archive"
	archiveLockTTL = 5 * time.Minute
)

// login resolves the configured password and establishes a session on the
// exchange client. Every mode calls it before its first RPC.
func (a *App) login(ctx context.Context, deps *Dependencies) error {
	password, err := crypto.ResolvePassword(crypto.PasswordConfig{
		Plaintext:     a.cfg.Login.Password,
		EncryptedPath: a.cfg.Login.EncryptedPasswordPath,
		Passphrase:    a.cfg.Login.VaultPassphrase,
	})
	if err != nil {
		return fmt.Errorf("resolve password: %w", err)
	}

	switch a.cfg.Login.Method {
	case "cert":
		err = deps.Exchange.CertLogin(ctx, a.cfg.Login.Username, password)
	default:
		err = deps.Exchange.InteractiveLogin(ctx, a.cfg.Login.Username, password)
	}
	metrics.RecordSessionRefresh(err)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	a.logger.InfoContext(ctx, "session established",
		slog.String("method", a.cfg.Login.Method),
		slog.String("username", a.cfg.Login.Username),
	)
	return nil
}

// keepAlive extends the session on the configured interval until the context
// ends. A failed keep-alive triggers a full re-login before giving up.
func (a *App) keepAlive(ctx context.Context, deps *Dependencies) error {
	ticker := time.NewTicker(a.cfg.Login.KeepAliveInterval.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := deps.Exchange.KeepAlive(ctx)
			metrics.RecordSessionRefresh(err)
			if err == nil {
				a.logger.DebugContext(ctx, "session extended")
				continue
			}
			a.logger.WarnContext(ctx, "keep-alive failed, re-authenticating",
				slog.String("error", err.Error()),
			)
			if err := a.login(ctx, deps); err != nil {
				return fmt.Errorf("keep-alive re-login: %w", err)
			}
		}
	}
}

// LoginMode verifies the configured credentials end to end: it logs in,
// round-trips an authenticated call, and logs out again.
func (a *App) LoginMode(ctx context.Context, deps *Dependencies) error {
	if err := a.login(ctx, deps); err != nil {
		return err
	}

	details, err := deps.Account.GetAccountDetails(ctx)
	if err != nil {
		return fmt.Errorf("login mode: verify session: %w", err)
	}
	a.logger.InfoContext(ctx, "session verified",
		slog.String("account", strings.TrimSpace(details.FirstName+" "+details.LastName)),
		slog.String("currency", details.CurrencyCode),
	)

	if err := deps.Exchange.Logout(ctx); err != nil {
		return fmt.Errorf("login mode: logout: %w", err)
	}
	a.logger.InfoContext(ctx, "session closed")
	return nil
}

// MarketsMode fetches the market catalogue for the configured filter and
// writes trimmed summaries to the cache, replacing whatever was there.
func (a *App) MarketsMode(ctx context.Context, deps *Dependencies) error {
	if err := a.login(ctx, deps); err != nil {
		return err
	}

	job := a.cfg.Job
	catalogues, err := deps.Betting.ListMarketCatalogue(ctx, betting.ListMarketCatalogueRequest{
		Filter: &betting.MarketFilter{
			EventTypeIDs:   job.EventTypeIDs,
			CompetitionIDs: job.CompetitionIDs,
			MarketIDs:      job.MarketIDs,
		},
		MarketProjection: []betting.MarketProjection{
			betting.MarketProjectionEvent,
			betting.MarketProjectionEventType,
			betting.MarketProjectionCompetition,
			betting.MarketProjectionMarketStartTime,
			betting.MarketProjectionMarketDescription,
			betting.MarketProjectionRunnerDescription,
		},
		Sort:       betting.MarketSortMaximumTraded,
		MaxResults: job.MaxMarkets,
		Locale:     a.cfg.Exchange.Locale,
	})
	if err != nil {
		return fmt.Errorf("markets mode: list market catalogue: %w", err)
	}

	now := time.Now().UTC()
	summaries := make([]domain.MarketSummary, 0, len(catalogues))
	for _, mc := range catalogues {
		summaries = append(summaries, marketSummary(mc, now))
	}

	if err := deps.Catalogue.SetBatch(ctx, summaries); err != nil {
		return fmt.Errorf("markets mode: cache catalogue: %w", err)
	}

	for _, s := range summaries {
		a.logger.DebugContext(ctx, "market cached",
			slog.String("market_id", s.MarketID),
			slog.String("name", s.Name),
			slog.String("event", s.EventName),
		)
	}
	a.logger.InfoContext(ctx, "catalogue refreshed", slog.Int("markets", len(summaries)))
	return nil
}

// BookMode fetches the live book for the configured markets, a chunk per
// call, a few calls in flight at once.
func (a *App) BookMode(ctx context.Context, deps *Dependencies) error {
	ids := a.cfg.Job.MarketIDs
	if len(ids) == 0 {
		return fmt.Errorf("book mode: job.market_ids is empty")
	}
	if err := a.login(ctx, deps); err != nil {
		return err
	}

	chunks := chunkStrings(ids, bookChunkSize)
	results := make([][]betting.MarketBook, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bookConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			books, err := deps.Betting.ListMarketBook(gctx, betting.ListMarketBookRequest{
				MarketIDs: chunk,
				PriceProjection: &betting.PriceProjection{
					PriceData: []betting.PriceData{betting.PriceDataExBestOffers},
				},
				Locale: a.cfg.Exchange.Locale,
			})
			if err != nil {
				return fmt.Errorf("list market book %v: %w", chunk, err)
			}
			results[i] = books
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("book mode: %w", err)
	}

	var total int
	for _, books := range results {
		for _, book := range books {
			total++
			a.logger.InfoContext(ctx, "market book",
				slog.String("market_id", book.MarketID),
				slog.String("status", string(book.Status)),
				slog.Bool("inplay", book.Inplay),
				slog.Int("active_runners", book.NumberOfActiveRunners),
				slog.Float64("total_matched", book.TotalMatched),
			)
			for _, r := range book.Runners {
				a.logger.DebugContext(ctx, "runner book",
					slog.String("market_id", book.MarketID),
					slog.Int64("selection_id", r.SelectionID),
					slog.String("status", string(r.Status)),
					slog.Float64("last_traded", r.LastPriceTraded),
					slog.Float64("best_back", bestPrice(r.EX, true)),
					slog.Float64("best_lay", bestPrice(r.EX, false)),
				)
			}
		}
	}
	a.logger.InfoContext(ctx, "books fetched", slog.Int("markets", total))
	return nil
}

// OrdersMode pages through the caller's current orders and logs them.
func (a *App) OrdersMode(ctx context.Context, deps *Dependencies) error {
	if err := a.login(ctx, deps); err != nil {
		return err
	}

	req := betting.ListCurrentOrdersRequest{
		MarketIDs:       a.cfg.Job.MarketIDs,
		OrderProjection: betting.OrderProjectionAll,
		RecordCount:     ordersPageSize,
	}

	var total int
	for {
		report, err := deps.Betting.ListCurrentOrders(ctx, req)
		if err != nil {
			return fmt.Errorf("orders mode: list current orders: %w", err)
		}
		for _, o := range report.CurrentOrders {
			a.logger.InfoContext(ctx, "current order",
				slog.String("bet_id", o.BetID),
				slog.String("market_id", o.MarketID),
				slog.Int64("selection_id", o.SelectionID),
				slog.String("side", string(o.Side)),
				slog.String("status", string(o.Status)),
				slog.Float64("price", o.PriceSize.Price),
				slog.Float64("size", o.PriceSize.Size),
				slog.Float64("size_matched", o.SizeMatched),
				slog.Float64("size_remaining", o.SizeRemaining),
			)
		}
		total += len(report.CurrentOrders)
		if !report.MoreAvailable || len(report.CurrentOrders) == 0 {
			break
		}
		req.FromRecord += len(report.CurrentOrders)
	}

	a.logger.InfoContext(ctx, "current orders listed", slog.Int("orders", total))
	return nil
}

// PlaceMode places a single limit order from the job configuration. The call
// is budget-gated, audited and notified regardless of outcome.
func (a *App) PlaceMode(ctx context.Context, deps *Dependencies) error {
	job := a.cfg.Job
	if job.MarketID == "" || job.SelectionID == 0 {
		return fmt.Errorf("place mode: job.market_id and job.selection_id are required")
	}
	if job.Price <= 0 || job.Size <= 0 {
		return fmt.Errorf("place mode: job.price and job.size must be positive")
	}
	if err := a.login(ctx, deps); err != nil {
		return err
	}

	remaining, err := deps.Budget.Spend(ctx, 1)
	metrics.RecordBudgetRemaining(remaining)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetExhausted) {
			a.logger.WarnContext(ctx, "transaction budget exhausted, order not sent",
				slog.Int("remaining", remaining),
			)
		}
		return fmt.Errorf("place mode: transaction budget: %w", err)
	}

	customerRef := job.CustomerRef
	if customerRef == "" {
		customerRef = uuid.NewString()
	}

	req := betting.PlaceOrdersRequest{
		MarketID: job.MarketID,
		Instructions: []betting.PlaceInstruction{{
			OrderType:   betting.OrderTypeLimit,
			SelectionID: job.SelectionID,
			Side:        betting.Side(strings.ToUpper(job.Side)),
			LimitOrder: &betting.LimitOrder{
				Size:            job.Size,
				Price:           job.Price,
				PersistenceType: betting.PersistenceType(strings.ToUpper(job.Persistence)),
			},
		}},
		CustomerRef: customerRef,
	}

	start := time.Now()
	report, err := deps.Betting.PlaceOrders(ctx, req)

	audit := domain.OrderAudit{
		Op:          domain.AuditOpPlace,
		MarketID:    job.MarketID,
		CustomerRef: customerRef,
		Request:     auditPayload(req),
		Elapsed:     time.Since(start),
	}
	if err != nil {
		audit.ErrorCode = err.Error()
	} else {
		audit.Status = string(report.Status)
		audit.ErrorCode = string(report.ErrorCode)
		audit.Report = auditPayload(report)
		audit.Elapsed = report.Elapsed
	}
	if insErr := deps.Audits.Insert(ctx, audit); insErr != nil {
		a.logger.ErrorContext(ctx, "audit insert failed",
			slog.String("op", string(domain.AuditOpPlace)),
			slog.String("error", insErr.Error()),
		)
	}
	metrics.RecordOrderReport("place", reportStatus(err, audit.Status))

	if err != nil {
		a.notify(ctx, deps, notify.EventError, "Order placement failed",
			fmt.Sprintf("%s on %s: %v", strings.ToUpper(job.Side), job.MarketID, err))
		return fmt.Errorf("place mode: place orders: %w", err)
	}

	for _, ir := range report.InstructionReports {
		a.logger.InfoContext(ctx, "place instruction",
			slog.String("bet_id", ir.BetID),
			slog.String("status", string(ir.Status)),
			slog.String("error_code", string(ir.ErrorCode)),
			slog.Float64("avg_price_matched", ir.AveragePriceMatched),
			slog.Float64("size_matched", ir.SizeMatched),
		)
	}
	a.logger.InfoContext(ctx, "order placed",
		slog.String("market_id", report.MarketID),
		slog.String("status", string(report.Status)),
		slog.String("customer_ref", customerRef),
		slog.Int("budget_remaining", remaining),
	)

	a.notify(ctx, deps, notify.EventOrderPlaced, "Order placed",
		fmt.Sprintf("%s %.2f @ %.2f on %s (%s)",
			strings.ToUpper(job.Side), job.Size, job.Price, job.MarketID, report.Status))
	return nil
}

// CancelMode cancels unmatched bets. With job.bet_id it cancels one bet; with
// only job.market_id it clears the market; with neither it clears everything.
func (a *App) CancelMode(ctx context.Context, deps *Dependencies) error {
	job := a.cfg.Job
	req := betting.CancelOrdersRequest{
		MarketID:    job.MarketID,
		CustomerRef: job.CustomerRef,
	}
	if job.BetID != "" {
		if job.MarketID == "" {
			return fmt.Errorf("cancel mode: job.market_id is required with job.bet_id")
		}
		req.Instructions = []betting.CancelInstruction{{BetID: job.BetID}}
	}
	if err := a.login(ctx, deps); err != nil {
		return err
	}

	remaining, err := deps.Budget.Spend(ctx, 1)
	metrics.RecordBudgetRemaining(remaining)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetExhausted) {
			a.logger.WarnContext(ctx, "transaction budget exhausted, cancel not sent",
				slog.Int("remaining", remaining),
			)
		}
		return fmt.Errorf("cancel mode: transaction budget: %w", err)
	}

	start := time.Now()
	report, err := deps.Betting.CancelOrders(ctx, req)

	audit := domain.OrderAudit{
		Op:          domain.AuditOpCancel,
		MarketID:    job.MarketID,
		CustomerRef: job.CustomerRef,
		Request:     auditPayload(req),
		Elapsed:     time.Since(start),
	}
	if err != nil {
		audit.ErrorCode = err.Error()
	} else {
		audit.Status = string(report.Status)
		audit.ErrorCode = string(report.ErrorCode)
		audit.Report = auditPayload(report)
		audit.Elapsed = report.Elapsed
	}
	if insErr := deps.Audits.Insert(ctx, audit); insErr != nil {
		a.logger.ErrorContext(ctx, "audit insert failed",
			slog.String("op", string(domain.AuditOpCancel)),
			slog.String("error", insErr.Error()),
		)
	}
	metrics.RecordOrderReport("cancel", reportStatus(err, audit.Status))

	if err != nil {
		a.notify(ctx, deps, notify.EventError, "Order cancel failed",
			fmt.Sprintf("market %q: %v", job.MarketID, err))
		return fmt.Errorf("cancel mode: cancel orders: %w", err)
	}

	var cancelled float64
	for _, ir := range report.InstructionReports {
		cancelled += ir.SizeCancelled
	}
	a.logger.InfoContext(ctx, "orders cancelled",
		slog.String("market_id", job.MarketID),
		slog.String("status", string(report.Status)),
		slog.Int("instructions", len(report.InstructionReports)),
		slog.Float64("size_cancelled", cancelled),
	)

	scope := job.MarketID
	if scope == "" {
		scope = "all markets"
	}
	a.notify(ctx, deps, notify.EventOrderCancelled, "Orders cancelled",
		fmt.Sprintf("%s: %d instruction(s), %.2f cancelled (%s)",
			scope, len(report.InstructionReports), cancelled, report.Status))
	return nil
}

// SettledMode mirrors the cleared-bet window into the settlement store and
// appends new rows to the cold archive, serialised by the archive lock.
func (a *App) SettledMode(ctx context.Context, deps *Dependencies) error {
	if err := a.login(ctx, deps); err != nil {
		return err
	}

	from, to := a.settledWindow(time.Now().UTC())
	a.logger.InfoContext(ctx, "fetching settled bets",
		slog.Time("from", from),
		slog.Time("to", to),
	)

	req := betting.ListClearedOrdersRequest{
		BetStatus:        betting.BetStatusSettled,
		SettledDateRange: &betting.TimeRange{From: &from, To: &to},
		RecordCount:      clearedPageSize,
	}

	var settlements []domain.Settlement
	for {
		report, err := deps.Betting.ListClearedOrders(ctx, req)
		if err != nil {
			return fmt.Errorf("settled mode: list cleared orders: %w", err)
		}
		for _, co := range report.ClearedOrders {
			settlements = append(settlements, settlementFromCleared(co))
		}
		if !report.MoreAvailable || len(report.ClearedOrders) == 0 {
			break
		}
		req.FromRecord += len(report.ClearedOrders)
	}

	if len(settlements) == 0 {
		a.logger.InfoContext(ctx, "no settled bets in window")
		return nil
	}

	written, err := deps.Settlements.UpsertBatch(ctx, settlements)
	if err != nil {
		return fmt.Errorf("settled mode: store settlements: %w", err)
	}
	metrics.RecordSettlementsStored(written)

	var profit float64
	for _, st := range settlements {
		profit += st.Profit
	}
	a.logger.InfoContext(ctx, "settlements stored",
		slog.Int("fetched", len(settlements)),
		slog.Int64("written", written),
		slog.Float64("net_profit", profit),
	)

	archived, err := a.archiveSettlements(ctx, deps, from, to)
	if err != nil {
		return fmt.Errorf("settled mode: %w", err)
	}

	a.notify(ctx, deps, notify.EventSettlement, "Settlements stored",
		fmt.Sprintf("%d bets in window, net profit %.2f, %d archived",
			len(settlements), profit, archived))
	return nil
}

// archiveSettlements writes not-yet-archived rows in the window to cold
// storage and marks them archived. The lock serialises concurrent runs:
// archive objects are rewritten whole, so interleaved appends would drop
// lines. A held lock skips archiving; the rows stay pending for the next run.
func (a *App) archiveSettlements(ctx context.Context, deps *Dependencies, from, to time.Time) (int64, error) {
	unlock, err := deps.Locks.Acquire(ctx, archiveLockKey, archiveLockTTL)
	if err != nil {
		if errors.Is(err, domain.ErrLockHeld) {
			a.logger.WarnContext(ctx, "archive lock held elsewhere, skipping archive")
			return 0, nil
		}
		return 0, fmt.Errorf("acquire archive lock: %w", err)
	}
	defer unlock()

	stored, err := deps.Settlements.ListSettledBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("list stored settlements: %w", err)
	}
	pending := stored[:0:0]
	for _, st := range stored {
		if st.ArchivedAt == nil {
			pending = append(pending, st)
		}
	}
	if len(pending) == 0 {
		a.logger.InfoContext(ctx, "nothing to archive")
		return 0, nil
	}

	archived, err := deps.Archiver.Archive(ctx, pending)
	if err != nil {
		return 0, fmt.Errorf("archive settlements: %w", err)
	}
	metrics.RecordSettlementsArchived(archived)

	betIDs := make([]string, len(pending))
	for i, st := range pending {
		betIDs[i] = st.BetID
	}
	if err := deps.Settlements.MarkArchived(ctx, betIDs, time.Now().UTC()); err != nil {
		return archived, fmt.Errorf("mark archived: %w", err)
	}

	a.logger.InfoContext(ctx, "settlements archived", slog.Int64("records", archived))
	return archived, nil
}

// AccountMode reads the funds snapshot and account profile.
func (a *App) AccountMode(ctx context.Context, deps *Dependencies) error {
	if err := a.login(ctx, deps); err != nil {
		return err
	}

	var (
		funds   *account.AccountFunds
		details *account.AccountDetails
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		funds, err = deps.Account.GetAccountFunds(gctx, account.GetAccountFundsRequest{})
		return err
	})
	g.Go(func() error {
		var err error
		details, err = deps.Account.GetAccountDetails(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("account mode: %w", err)
	}

	a.logger.InfoContext(ctx, "account",
		slog.String("name", strings.TrimSpace(details.FirstName+" "+details.LastName)),
		slog.String("currency", details.CurrencyCode),
		slog.String("timezone", details.Timezone),
		slog.Float64("available", funds.AvailableToBetBalance),
		slog.Float64("exposure", funds.Exposure),
		slog.Float64("exposure_limit", funds.ExposureLimit),
		slog.Int("points", funds.PointsBalance),
	)
	return nil
}

// ServeMode runs the ops HTTP server with a session keep-alive loop until the
// context is cancelled.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	if err := a.login(ctx, deps); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.keepAlive(ctx, deps)
	})

	srv := server.NewServer(
		server.Config{Port: a.cfg.Server.Port, APIKey: a.cfg.Server.APIKey},
		server.Handlers{
			Status: server.NewStatusHandler(
				a.cfg.Mode, deps.Exchange, deps.Budget,
				deps.Settlements, deps.Audits, deps.BlobReader, a.logger,
			),
			Markets: server.NewMarketHandler(deps.Catalogue, a.logger),
			Orders:  server.NewOrderHandler(deps.Betting, a.logger),
			Audits:  server.NewAuditHandler(deps.Audits, a.logger),
		},
		a.logger,
	)

	g.Go(func() error {
		a.logger.InfoContext(ctx, "ops server listening", slog.Int("port", a.cfg.Server.Port))
		return srv.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.logger.InfoContext(ctx, "ops server shutting down")
		return srv.Shutdown(shutCtx)
	})

	return g.Wait()
}

// notify sends through the notifier and logs delivery failures instead of
// propagating them; a lost notification never fails the job that caused it.
func (a *App) notify(ctx context.Context, deps *Dependencies, event, title, message string) {
	if err := deps.Notifier.Notify(ctx, event, title, message); err != nil {
		a.logger.WarnContext(ctx, "notification failed",
			slog.String("event", event),
			slog.String("error", err.Error()),
		)
	}
}

// settledWindow resolves the cleared-order window. Explicit RFC3339 bounds
// win; a missing end defaults to now, a missing start to settled_days back
// from the end.
func (a *App) settledWindow(now time.Time) (time.Time, time.Time) {
	job := a.cfg.Job

	to := now
	if job.SettledTo != "" {
		if t, err := time.Parse(time.RFC3339, job.SettledTo); err == nil {
			to = t
		}
	}
	if job.SettledFrom != "" {
		if t, err := time.Parse(time.RFC3339, job.SettledFrom); err == nil {
			return t, to
		}
	}
	return to.AddDate(0, 0, -job.SettledDays), to
}

// marketSummary trims a catalogue entry to the shape the cache keeps.
func marketSummary(mc betting.MarketCatalogue, fetchedAt time.Time) domain.MarketSummary {
	s := domain.MarketSummary{
		MarketID:     mc.MarketID,
		Name:         mc.MarketName,
		StartTime:    mc.MarketStartTime,
		TotalMatched: mc.TotalMatched,
		FetchedAt:    fetchedAt,
	}
	if mc.Event != nil {
		s.EventName = mc.Event.Name
	}
	if mc.EventType != nil {
		s.EventTypeName = mc.EventType.Name
	}
	if mc.Competition != nil {
		s.CompetitionName = mc.Competition.Name
	}
	if mc.Description != nil {
		s.MarketType = mc.Description.MarketType
	}
	for _, r := range mc.Runners {
		s.Runners = append(s.Runners, domain.RunnerSummary{
			SelectionID:  r.SelectionID,
			Name:         r.RunnerName,
			Handicap:     r.Handicap,
			SortPriority: r.SortPriority,
		})
	}
	return s
}

// settlementFromCleared maps one cleared bet to the persisted shape.
func settlementFromCleared(co betting.ClearedOrder) domain.Settlement {
	return domain.Settlement{
		BetID:               co.BetID,
		MarketID:            co.MarketID,
		SelectionID:         co.SelectionID,
		Handicap:            co.Handicap,
		EventTypeID:         co.EventTypeID,
		EventID:             co.EventID,
		Side:                string(co.Side),
		BetOutcome:          co.BetOutcome,
		OrderType:           string(co.OrderType),
		PersistenceType:     string(co.PersistenceType),
		PriceRequested:      co.PriceRequested,
		PriceMatched:        co.PriceMatched,
		PriceReduced:        co.PriceReduced,
		SizeSettled:         co.SizeSettled,
		SizeCancelled:       co.SizeCancelled,
		Profit:              co.Profit,
		Commission:          co.Commission,
		BetCount:            co.BetCount,
		CustomerOrderRef:    co.CustomerOrderRef,
		CustomerStrategyRef: co.CustomerStrategyRef,
		PlacedAt:            co.PlacedDate,
		SettledAt:           co.SettledDate,
	}
}

// auditPayload converts a wire struct to the generic map shape the audit
// store persists as JSONB.
func auditPayload(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// reportStatus normalises an execution report status for the metrics label;
// a failed call is labelled "error".
func reportStatus(err error, status string) string {
	if err != nil {
		return "error"
	}
	return strings.ToLower(status)
}

func chunkStrings(ss []string, size int) [][]string {
	var chunks [][]string
	for len(ss) > size {
		chunks = append(chunks, ss[:size])
		ss = ss[size:]
	}
	if len(ss) > 0 {
		chunks = append(chunks, ss)
	}
	return chunks
}

// bestPrice picks the top rung of the requested side of a ladder, 0 when the
// ladder is empty.
func bestPrice(ex *betting.ExchangePrices, back bool) float64 {
	if ex == nil {
		return 0
	}
	ladder := ex.AvailableToLay
	if back {
		ladder = ex.AvailableToBack
	}
	if len(ladder) == 0 {
		return 0
	}
	return ladder[0].Price
}
