package domain

import "time"

// Settlement is one cleared bet as persisted locally. It mirrors the
// exchange's cleared-order record, keyed by bet id; re-fetching a window
// upserts rather than duplicates.
type Settlement struct {
	BetID               string
	MarketID            string
	SelectionID         int64
	Handicap            float64
	EventTypeID         string
	EventID             string
	Side                string
	BetOutcome          string
	OrderType           string
	PersistenceType     string
	PriceRequested      float64
	PriceMatched        float64
	PriceReduced        bool
	SizeSettled         float64
	SizeCancelled       float64
	Profit              float64
	Commission          float64
	BetCount            int
	CustomerOrderRef    string
	CustomerStrategyRef string
	PlacedAt            *time.Time
	SettledAt           *time.Time
	ArchivedAt          *time.Time // set once the row has been written to cold storage
	CreatedAt           time.Time
}
