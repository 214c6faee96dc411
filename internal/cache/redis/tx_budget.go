package redis

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nunnsy/betfair/internal/domain"
)

//go:embed scripts/budget_window.lua
var budgetWindowLua string

const txBudgetKey = "budget:tx"

// TxBudget implements domain.TxBudget with a sliding window backed by a Redis
// sorted set and an atomic Lua script. The exchange charges for order traffic
// above a per-hour allowance, so every order call spends from the budget
// before it is sent.
type TxBudget struct {
	rdb    *redis.Client
	script *redis.Script
	limit  int
	window time.Duration
}

// NewTxBudget creates a TxBudget allowing limit charged transactions per
// window. A zero or negative window defaults to one hour.
func NewTxBudget(c *Client, limit int, window time.Duration) *TxBudget {
	if window <= 0 {
		window = time.Hour
	}
	return &TxBudget{
		rdb:    c.Underlying(),
		script: redis.NewScript(budgetWindowLua),
		limit:  limit,
		window: window,
	}
}

// Spend charges n transactions against the window. It returns the remaining
// allowance, or domain.ErrBudgetExhausted (with the unchanged remainder) when
// the charge would exceed the window limit.
func (tb *TxBudget) Spend(ctx context.Context, n int) (int, error) {
	allowed, remaining, err := tb.run(ctx, n)
	if err != nil {
		return 0, err
	}
	if !allowed {
		return remaining, domain.ErrBudgetExhausted
	}
	return remaining, nil
}

// Remaining reports the current unspent allowance without charging.
func (tb *TxBudget) Remaining(ctx context.Context) (int, error) {
	_, remaining, err := tb.run(ctx, 0)
	return remaining, err
}

func (tb *TxBudget) run(ctx context.Context, n int) (bool, int, error) {
	now := time.Now().UnixMicro()

	result, err := tb.script.Run(
		ctx,
		tb.rdb,
		[]string{txBudgetKey},
		now,
		tb.window.Microseconds(),
		tb.limit,
		n,
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("redis: tx budget: %w", err)
	}
	if len(result) < 2 {
		return false, 0, fmt.Errorf("redis: tx budget: unexpected result length %d", len(result))
	}

	return result[0] == 1, int(result[1]), nil
}

// Compile-time interface check.
var _ domain.TxBudget = (*TxBudget)(nil)
