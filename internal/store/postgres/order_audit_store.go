package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nunnsy/betfair/internal/domain"
)

// OrderAuditStore implements domain.OrderAuditStore using PostgreSQL.
type OrderAuditStore struct {
	pool *pgxpool.Pool
}

var _ domain.OrderAuditStore = (*OrderAuditStore)(nil)

// NewOrderAuditStore creates a new OrderAuditStore backed by the given
// connection pool.
func NewOrderAuditStore(pool *pgxpool.Pool) *OrderAuditStore {
	return &OrderAuditStore{pool: pool}
}

// Insert appends one order mutation row. A missing ID is assigned a fresh
// uuid; the request params and execution report maps are stored as JSONB.
func (s *OrderAuditStore) Insert(ctx context.Context, audit domain.OrderAudit) error {
	if audit.ID == "" {
		audit.ID = uuid.NewString()
	}

	requestJSON, err := json.Marshal(audit.Request)
	if err != nil {
		return fmt.Errorf("postgres: marshal audit request: %w", err)
	}
	reportJSON, err := json.Marshal(audit.Report)
	if err != nil {
		return fmt.Errorf("postgres: marshal audit report: %w", err)
	}

	const query = `
		INSERT INTO order_audit (
			id, op, market_id, customer_ref, status, error_code,
			request, report, elapsed_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.pool.Exec(ctx, query,
		audit.ID, string(audit.Op), audit.MarketID, audit.CustomerRef,
		audit.Status, audit.ErrorCode,
		requestJSON, reportJSON, audit.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("postgres: insert order audit %s: %w", audit.ID, err)
	}
	return nil
}

const auditCols = `id, op, market_id, customer_ref, status, error_code,
	request, report, elapsed_ms, created_at`

// GetByID returns one audit row by its uuid.
func (s *OrderAuditStore) GetByID(ctx context.Context, id string) (domain.OrderAudit, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+auditCols+` FROM order_audit WHERE id = $1`, id)
	a, err := scanAudit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OrderAudit{}, domain.ErrNotFound
		}
		return domain.OrderAudit{}, fmt.Errorf("postgres: get order audit %s: %w", id, err)
	}
	return a, nil
}

// List returns audit rows matching the filter, newest first.
func (s *OrderAuditStore) List(ctx context.Context, filter domain.AuditFilter) ([]domain.OrderAudit, error) {
	query := `SELECT ` + auditCols + ` FROM order_audit WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Op != "" {
		query += fmt.Sprintf(" AND op = $%d", argIdx)
		args = append(args, string(filter.Op))
		argIdx++
	}
	if filter.MarketID != "" {
		query += fmt.Sprintf(" AND market_id = $%d", argIdx)
		args = append(args, filter.MarketID)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *filter.Since)
		argIdx++
	}
	if filter.Until != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *filter.Until)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
		argIdx++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list order audits: %w", err)
	}
	defer rows.Close()

	var audits []domain.OrderAudit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan order audit: %w", err)
		}
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list order audits rows: %w", err)
	}
	return audits, nil
}

// Count returns the total number of audit rows.
func (s *OrderAuditStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM order_audit`).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count order audits: %w", err)
	}
	return n, nil
}

func scanAudit(row pgx.Row) (domain.OrderAudit, error) {
	var (
		a           domain.OrderAudit
		op          string
		requestJSON []byte
		reportJSON  []byte
		elapsedMs   int64
	)
	if err := row.Scan(
		&a.ID, &op, &a.MarketID, &a.CustomerRef, &a.Status, &a.ErrorCode,
		&requestJSON, &reportJSON, &elapsedMs, &a.CreatedAt,
	); err != nil {
		return domain.OrderAudit{}, err
	}

	a.Op = domain.AuditOp(op)
	a.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	if requestJSON != nil {
		if err := json.Unmarshal(requestJSON, &a.Request); err != nil {
			return domain.OrderAudit{}, fmt.Errorf("unmarshal request: %w", err)
		}
	}
	if reportJSON != nil {
		if err := json.Unmarshal(reportJSON, &a.Report); err != nil {
			return domain.OrderAudit{}, fmt.Errorf("unmarshal report: %w", err)
		}
	}
	return a, nil
}
