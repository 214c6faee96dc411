package betting

import "time"

// Wire shapes shared by several operations. Optional fields use pointers or
// omitempty so an unset field is absent from the payload rather than null;
// the exchange reads absence, not null, as "no preference".

// MarketFilter narrows which markets an operation considers. The zero value
// marshals to {} and matches everything.
type MarketFilter struct {
	TextQuery          string              `json:"textQuery,omitempty"`
	EventTypeIDs       []string            `json:"eventTypeIds,omitempty"`
	EventIDs           []string            `json:"eventIds,omitempty"`
	CompetitionIDs     []string            `json:"competitionIds,omitempty"`
	MarketIDs          []string            `json:"marketIds,omitempty"`
	Venues             []string            `json:"venues,omitempty"`
	BSPOnly            *bool               `json:"bspOnly,omitempty"`
	TurnInPlayEnabled  *bool               `json:"turnInPlayEnabled,omitempty"`
	InPlayOnly         *bool               `json:"inPlayOnly,omitempty"`
	MarketBettingTypes []MarketBettingType `json:"marketBettingTypes,omitempty"`
	MarketCountries    []string            `json:"marketCountries,omitempty"`
	MarketTypeCodes    []string            `json:"marketTypeCodes,omitempty"`
	MarketStartTime    *TimeRange          `json:"marketStartTime,omitempty"`
	WithOrders         []OrderStatus       `json:"withOrders,omitempty"`
	RaceTypes          []string            `json:"raceTypes,omitempty"`
}

// TimeRange bounds a query in time. Either end may be open.
type TimeRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// PriceProjection selects the price data returned with a market book.
type PriceProjection struct {
	PriceData             []PriceData            `json:"priceData,omitempty"`
	ExBestOffersOverrides *ExBestOffersOverrides `json:"exBestOffersOverrides,omitempty"`
	Virtualise            *bool                  `json:"virtualise,omitempty"`
	RolloverStakes        *bool                  `json:"rolloverStakes,omitempty"`
}

// ExBestOffersOverrides tunes the EX_BEST_OFFERS ladder depth and rollup.
type ExBestOffersOverrides struct {
	BestPricesDepth          int     `json:"bestPricesDepth,omitempty"`
	RollupModel              string  `json:"rollupModel,omitempty"`
	RollupLimit              int     `json:"rollupLimit,omitempty"`
	RollupLiabilityThreshold float64 `json:"rollupLiabilityThreshold,omitempty"`
	RollupLiabilityFactor    int     `json:"rollupLiabilityFactor,omitempty"`
}

// MarketVersion pins an order operation to a market version; the exchange
// rejects the operation if the market has since changed materially.
type MarketVersion struct {
	Version int64 `json:"version"`
}

// RunnerID identifies one runner within one market.
type RunnerID struct {
	MarketID    string   `json:"marketId"`
	SelectionID int64    `json:"selectionId"`
	Handicap    *float64 `json:"handicap,omitempty"`
}

// PlaceInstruction is one requested bet inside placeOrders. Exactly one of
// LimitOrder, LimitOnCloseOrder or MarketOnCloseOrder must match OrderType;
// mismatches are rejected remotely, not validated here.
type PlaceInstruction struct {
	OrderType          OrderType           `json:"orderType"`
	SelectionID        int64               `json:"selectionId"`
	Handicap           *float64            `json:"handicap,omitempty"`
	Side               Side                `json:"side"`
	LimitOrder         *LimitOrder         `json:"limitOrder,omitempty"`
	LimitOnCloseOrder  *LimitOnCloseOrder  `json:"limitOnCloseOrder,omitempty"`
	MarketOnCloseOrder *MarketOnCloseOrder `json:"marketOnCloseOrder,omitempty"`
	CustomerOrderRef   string              `json:"customerOrderRef,omitempty"`
}

// LimitOrder is a plain exchange bet at a fixed price.
type LimitOrder struct {
	Size            float64         `json:"size,omitempty"`
	Price           float64         `json:"price"`
	PersistenceType PersistenceType `json:"persistenceType,omitempty"`
	TimeInForce     TimeInForce     `json:"timeInForce,omitempty"`
	MinFillSize     float64         `json:"minFillSize,omitempty"`
	BetTargetType   BetTargetType   `json:"betTargetType,omitempty"`
	BetTargetSize   float64         `json:"betTargetSize,omitempty"`
}

// LimitOnCloseOrder takes the starting price if it is at least Price.
type LimitOnCloseOrder struct {
	Liability float64 `json:"liability"`
	Price     float64 `json:"price"`
}

// MarketOnCloseOrder takes the starting price unconditionally.
type MarketOnCloseOrder struct {
	Liability float64 `json:"liability"`
}

// CancelInstruction cancels one bet, fully or down by SizeReduction.
type CancelInstruction struct {
	BetID         string   `json:"betId"`
	SizeReduction *float64 `json:"sizeReduction,omitempty"`
}

// UpdateInstruction changes the persistence of one unmatched bet.
type UpdateInstruction struct {
	BetID              string          `json:"betId"`
	NewPersistenceType PersistenceType `json:"newPersistenceType"`
}

// ReplaceInstruction cancels one bet and re-places it at NewPrice.
type ReplaceInstruction struct {
	BetID    string  `json:"betId"`
	NewPrice float64 `json:"newPrice"`
}
