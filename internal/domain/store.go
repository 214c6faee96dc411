package domain

import (
	"context"
	"time"
)

// OrderAuditStore persists an append-only log of order mutations.
type OrderAuditStore interface {
	Insert(ctx context.Context, audit OrderAudit) error
	GetByID(ctx context.Context, id string) (OrderAudit, error)
	List(ctx context.Context, filter AuditFilter) ([]OrderAudit, error)
	Count(ctx context.Context) (int64, error)
}

// SettlementStore persists cleared bets keyed by bet id.
type SettlementStore interface {
	UpsertBatch(ctx context.Context, settlements []Settlement) (int64, error)
	GetByBetID(ctx context.Context, betID string) (Settlement, error)
	ListByMarket(ctx context.Context, marketID string) ([]Settlement, error)
	ListSettledBetween(ctx context.Context, from, to time.Time) ([]Settlement, error)
	MarkArchived(ctx context.Context, betIDs []string, at time.Time) error
	Count(ctx context.Context) (int64, error)
}

// CatalogueCache provides fast market summary lookups.
type CatalogueCache interface {
	Set(ctx context.Context, m MarketSummary) error
	SetBatch(ctx context.Context, ms []MarketSummary) error
	Get(ctx context.Context, marketID string) (MarketSummary, error)
	List(ctx context.Context) ([]MarketSummary, error)
	Invalidate(ctx context.Context, marketID string) error
}

// TxBudget bounds charged order transactions inside a sliding window. Spend
// returns ErrBudgetExhausted when the window's allowance is gone; the caller
// must not send the order call in that case.
type TxBudget interface {
	Spend(ctx context.Context, n int) (remaining int, err error)
	Remaining(ctx context.Context) (int, error)
}

// LockManager provides distributed mutual exclusion for jobs that must not
// run concurrently, such as the settlement archive writer.
type LockManager interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}
