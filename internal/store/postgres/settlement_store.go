package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nunnsy/betfair/internal/domain"
)

// SettlementStore implements domain.SettlementStore using PostgreSQL.
type SettlementStore struct {
	pool *pgxpool.Pool
}

var _ domain.SettlementStore = (*SettlementStore)(nil)

// NewSettlementStore creates a new SettlementStore backed by the given
// connection pool.
func NewSettlementStore(pool *pgxpool.Pool) *SettlementStore {
	return &SettlementStore{pool: pool}
}

const settlementUpsert = `
	INSERT INTO settlements (
		bet_id, market_id, selection_id, handicap,
		event_type_id, event_id, side, bet_outcome,
		order_type, persistence_type,
		price_requested, price_matched, price_reduced,
		size_settled, size_cancelled, profit, commission, bet_count,
		customer_order_ref, customer_strategy_ref,
		placed_at, settled_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8,
		$9, $10,
		$11, $12, $13,
		$14, $15, $16, $17, $18,
		$19, $20,
		$21, $22
	)
	ON CONFLICT (bet_id) DO UPDATE SET
		market_id             = EXCLUDED.market_id,
		selection_id          = EXCLUDED.selection_id,
		handicap              = EXCLUDED.handicap,
		event_type_id         = EXCLUDED.event_type_id,
		event_id              = EXCLUDED.event_id,
		side                  = EXCLUDED.side,
		bet_outcome           = EXCLUDED.bet_outcome,
		order_type            = EXCLUDED.order_type,
		persistence_type      = EXCLUDED.persistence_type,
		price_requested       = EXCLUDED.price_requested,
		price_matched         = EXCLUDED.price_matched,
		price_reduced         = EXCLUDED.price_reduced,
		size_settled          = EXCLUDED.size_settled,
		size_cancelled        = EXCLUDED.size_cancelled,
		profit                = EXCLUDED.profit,
		commission            = EXCLUDED.commission,
		bet_count             = EXCLUDED.bet_count,
		customer_order_ref    = EXCLUDED.customer_order_ref,
		customer_strategy_ref = EXCLUDED.customer_strategy_ref,
		placed_at             = EXCLUDED.placed_at,
		settled_at            = EXCLUDED.settled_at`

// UpsertBatch inserts or updates cleared bets in a single batch operation,
// returning the number of rows written. Re-fetching an overlapping window is
// safe: rows are keyed by bet id and updated in place.
func (s *SettlementStore) UpsertBatch(ctx context.Context, settlements []domain.Settlement) (int64, error) {
	if len(settlements) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, st := range settlements {
		batch.Queue(settlementUpsert,
			st.BetID, st.MarketID, st.SelectionID, st.Handicap,
			st.EventTypeID, st.EventID, st.Side, st.BetOutcome,
			st.OrderType, st.PersistenceType,
			st.PriceRequested, st.PriceMatched, st.PriceReduced,
			st.SizeSettled, st.SizeCancelled, st.Profit, st.Commission, st.BetCount,
			st.CustomerOrderRef, st.CustomerStrategyRef,
			st.PlacedAt, st.SettledAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	var written int64
	for i := range settlements {
		tag, err := br.Exec()
		if err != nil {
			return written, fmt.Errorf("postgres: upsert settlement batch item %d: %w", i, err)
		}
		written += tag.RowsAffected()
	}
	return written, nil
}

const settlementCols = `bet_id, market_id, selection_id, handicap,
	event_type_id, event_id, side, bet_outcome,
	order_type, persistence_type,
	price_requested, price_matched, price_reduced,
	size_settled, size_cancelled, profit, commission, bet_count,
	customer_order_ref, customer_strategy_ref,
	placed_at, settled_at, archived_at, created_at`

// GetByBetID returns one settlement by its bet id.
func (s *SettlementStore) GetByBetID(ctx context.Context, betID string) (domain.Settlement, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+settlementCols+` FROM settlements WHERE bet_id = $1`, betID)
	st, err := scanSettlement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Settlement{}, domain.ErrNotFound
		}
		return domain.Settlement{}, fmt.Errorf("postgres: get settlement %s: %w", betID, err)
	}
	return st, nil
}

// ListByMarket returns all settlements for one market, newest settled first.
func (s *SettlementStore) ListByMarket(ctx context.Context, marketID string) ([]domain.Settlement, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+settlementCols+` FROM settlements
		 WHERE market_id = $1 ORDER BY settled_at DESC NULLS LAST`, marketID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list settlements for market %s: %w", marketID, err)
	}
	defer rows.Close()
	return collectSettlements(rows)
}

// ListSettledBetween returns settlements whose settled time falls inside
// [from, to), oldest first so archives append in order.
func (s *SettlementStore) ListSettledBetween(ctx context.Context, from, to time.Time) ([]domain.Settlement, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+settlementCols+` FROM settlements
		 WHERE settled_at >= $1 AND settled_at < $2 ORDER BY settled_at ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: list settlements between %s and %s: %w",
			from.Format(time.RFC3339), to.Format(time.RFC3339), err)
	}
	defer rows.Close()
	return collectSettlements(rows)
}

// MarkArchived stamps the given bets as written to cold storage.
func (s *SettlementStore) MarkArchived(ctx context.Context, betIDs []string, at time.Time) error {
	if len(betIDs) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE settlements SET archived_at = $1 WHERE bet_id = ANY($2)`, at, betIDs)
	if err != nil {
		return fmt.Errorf("postgres: mark %d settlements archived: %w", len(betIDs), err)
	}
	return nil
}

// Count returns the total number of settlement rows.
func (s *SettlementStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM settlements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count settlements: %w", err)
	}
	return n, nil
}

func scanSettlement(row pgx.Row) (domain.Settlement, error) {
	var st domain.Settlement
	err := row.Scan(
		&st.BetID, &st.MarketID, &st.SelectionID, &st.Handicap,
		&st.EventTypeID, &st.EventID, &st.Side, &st.BetOutcome,
		&st.OrderType, &st.PersistenceType,
		&st.PriceRequested, &st.PriceMatched, &st.PriceReduced,
		&st.SizeSettled, &st.SizeCancelled, &st.Profit, &st.Commission, &st.BetCount,
		&st.CustomerOrderRef, &st.CustomerStrategyRef,
		&st.PlacedAt, &st.SettledAt, &st.ArchivedAt, &st.CreatedAt,
	)
	if err != nil {
		return domain.Settlement{}, err
	}
	return st, nil
}

func collectSettlements(rows pgx.Rows) ([]domain.Settlement, error) {
	var settlements []domain.Settlement
	for rows.Next() {
		st, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan settlement: %w", err)
		}
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: settlements rows: %w", err)
	}
	return settlements, nil
}
