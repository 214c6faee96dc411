// Package domain holds the persistence-facing entities of the tool: audit
// rows for order mutations, settled-bet records mirrored from the exchange,
// and trimmed market summaries for the ops surface. The exchange wire types
// stay in the betting and account packages; everything here is what we keep.
package domain

import "time"

// AuditOp names the order mutation an audit row records.
type AuditOp string

const (
	AuditOpPlace   AuditOp = "place"
	AuditOpCancel  AuditOp = "cancel"
	AuditOpUpdate  AuditOp = "update"
	AuditOpReplace AuditOp = "replace"
)

// OrderAudit is one order mutation as sent to and answered by the exchange.
// Request and Report hold the full params object and execution report as
// stored (JSONB in postgres), so disputes can be reconstructed byte for byte.
type OrderAudit struct {
	ID          string // uuid
	Op          AuditOp
	MarketID    string
	CustomerRef string
	Status      string // execution report status, "" when the call failed
	ErrorCode   string // execution report error code or transport error
	Request     map[string]any
	Report      map[string]any
	Elapsed     time.Duration
	CreatedAt   time.Time
}

// AuditFilter narrows List queries. Zero fields match everything.
type AuditFilter struct {
	Op       AuditOp
	MarketID string
	Status   string
	Since    *time.Time
	Until    *time.Time
	Limit    int
	Offset   int
}
