package domain

import "time"

// MarketSummary is the trimmed catalogue entry kept in the cache and served
// by the ops endpoints. The full catalogue payload stays with the caller;
// this is just enough to identify a market without another exchange call.
type MarketSummary struct {
	MarketID        string          `json:"marketId"`
	Name            string          `json:"name"`
	EventName       string          `json:"eventName,omitempty"`
	EventTypeName   string          `json:"eventTypeName,omitempty"`
	CompetitionName string          `json:"competitionName,omitempty"`
	MarketType      string          `json:"marketType,omitempty"`
	StartTime       *time.Time      `json:"startTime,omitempty"`
	TotalMatched    float64         `json:"totalMatched"`
	Runners         []RunnerSummary `json:"runners,omitempty"`
	FetchedAt       time.Time       `json:"fetchedAt"`
}

// RunnerSummary is one selection within a cached market.
type RunnerSummary struct {
	SelectionID  int64   `json:"selectionId"`
	Name         string  `json:"name"`
	Handicap     float64 `json:"handicap,omitempty"`
	SortPriority int     `json:"sortPriority,omitempty"`
}
