package betting

import "context"

// ListCurrentOrdersRequest filters listCurrentOrders. The date range field
// is always transmitted, empty by default; it bounds the date named by
// OrderBy (placed time unless specified otherwise). Paging runs through
// FromRecord/RecordCount as plain pass-through values.
type ListCurrentOrdersRequest struct {
	BetIDs                 []string        `json:"betIds,omitempty"`
	MarketIDs              []string        `json:"marketIds,omitempty"`
	OrderProjection        OrderProjection `json:"orderProjection,omitempty"`
	CustomerOrderRefs      []string        `json:"customerOrderRefs,omitempty"`
	CustomerStrategyRefs   []string        `json:"customerStrategyRefs,omitempty"`
	DateRange              *TimeRange      `json:"dateRange"`
	OrderBy                OrderBy         `json:"orderBy,omitempty"`
	SortDir                SortDir         `json:"sortDir,omitempty"`
	FromRecord             int             `json:"fromRecord,omitempty"`
	RecordCount            int             `json:"recordCount,omitempty"`
	IncludeItemDescription bool            `json:"includeItemDescription,omitempty"`
}

// ListCurrentOrders returns the caller's orders, open ones by default.
func (c *Client) ListCurrentOrders(ctx context.Context, req ListCurrentOrdersRequest) (*CurrentOrderSummaryReport, error) {
	if req.DateRange == nil {
		req.DateRange = &TimeRange{}
	}
	return callOne[CurrentOrderSummaryReport](ctx, c, "listCurrentOrders", req)
}

// ListClearedOrdersRequest filters listClearedOrders. BetStatus defaults to
// BetStatusSettled; the settled date range is always transmitted, empty by
// default.
type ListClearedOrdersRequest struct {
	BetStatus              BetStatus  `json:"betStatus"`
	EventTypeIDs           []string   `json:"eventTypeIds,omitempty"`
	EventIDs               []string   `json:"eventIds,omitempty"`
	MarketIDs              []string   `json:"marketIds,omitempty"`
	RunnerIDs              []RunnerID `json:"runnerIds,omitempty"`
	BetIDs                 []string   `json:"betIds,omitempty"`
	CustomerOrderRefs      []string   `json:"customerOrderRefs,omitempty"`
	CustomerStrategyRefs   []string   `json:"customerStrategyRefs,omitempty"`
	Side                   Side       `json:"side,omitempty"`
	SettledDateRange       *TimeRange `json:"settledDateRange"`
	GroupBy                GroupBy    `json:"groupBy,omitempty"`
	IncludeItemDescription bool       `json:"includeItemDescription,omitempty"`
	Locale                 string     `json:"locale,omitempty"`
	FromRecord             int        `json:"fromRecord,omitempty"`
	RecordCount            int        `json:"recordCount,omitempty"`
}

// ListClearedOrders returns the caller's settled bets, or another clearance
// state when BetStatus says so. With GroupBy set, rows are aggregates over
// the chosen dimension instead of individual bets.
func (c *Client) ListClearedOrders(ctx context.Context, req ListClearedOrdersRequest) (*ClearedOrderSummaryReport, error) {
	if req.BetStatus == "" {
		req.BetStatus = BetStatusSettled
	}
	if req.SettledDateRange == nil {
		req.SettledDateRange = &TimeRange{}
	}
	return callOne[ClearedOrderSummaryReport](ctx, c, "listClearedOrders", req)
}

// ListMarketProfitAndLossRequest shapes listMarketProfitAndLoss. Only
// markets the caller has bets on produce rows.
type ListMarketProfitAndLossRequest struct {
	MarketIDs          []string `json:"marketIds"`
	IncludeSettledBets bool     `json:"includeSettledBets,omitempty"`
	IncludeBSPBets     bool     `json:"includeBspBets,omitempty"`
	NetOfCommission    bool     `json:"netOfCommission,omitempty"`
}

// ListMarketProfitAndLoss returns the caller's exposure per market.
func (c *Client) ListMarketProfitAndLoss(ctx context.Context, req ListMarketProfitAndLossRequest) ([]MarketProfitAndLoss, error) {
	return callList[MarketProfitAndLoss](ctx, c, "listMarketProfitAndLoss", req)
}

// PlaceOrdersRequest submits up to 200 place instructions against one
// market. CustomerRef deduplicates the whole call on the exchange side;
// MarketVersion makes it conditional on the market being unchanged; Async
// acknowledges receipt without waiting for matching.
type PlaceOrdersRequest struct {
	MarketID            string             `json:"marketId"`
	Instructions        []PlaceInstruction `json:"instructions"`
	CustomerRef         string             `json:"customerRef,omitempty"`
	MarketVersion       *MarketVersion     `json:"marketVersion,omitempty"`
	CustomerStrategyRef string             `json:"customerStrategyRef,omitempty"`
	Async               bool               `json:"async,omitempty"`
}

// PlaceOrders places bets. Rejections come back inside the report as
// status/error-code values, not as errors.
func (c *Client) PlaceOrders(ctx context.Context, req PlaceOrdersRequest) (*PlaceExecutionReport, error) {
	return callOne[PlaceExecutionReport](ctx, c, "placeOrders", req)
}

// CancelOrdersRequest cancels bets. The zero value transmits an empty
// params object, which the exchange reads as "cancel all unmatched bets
// across all markets". With MarketID set and no instructions, everything
// unmatched on that market is cancelled.
type CancelOrdersRequest struct {
	MarketID     string              `json:"marketId,omitempty"`
	Instructions []CancelInstruction `json:"instructions,omitempty"`
	CustomerRef  string              `json:"customerRef,omitempty"`
}

// CancelOrders cancels unmatched bets, entirely or by size reduction.
func (c *Client) CancelOrders(ctx context.Context, req CancelOrdersRequest) (*CancelExecutionReport, error) {
	return callOne[CancelExecutionReport](ctx, c, "cancelOrders", req)
}

// UpdateOrdersRequest changes bet persistence on one market.
type UpdateOrdersRequest struct {
	MarketID     string              `json:"marketId"`
	Instructions []UpdateInstruction `json:"instructions"`
	CustomerRef  string              `json:"customerRef,omitempty"`
}

// UpdateOrders updates non-exposure-changing fields of unmatched bets.
func (c *Client) UpdateOrders(ctx context.Context, req UpdateOrdersRequest) (*UpdateExecutionReport, error) {
	return callOne[UpdateExecutionReport](ctx, c, "updateOrders", req)
}

// ReplaceOrdersRequest atomically cancels and re-places bets at new prices
// on one market.
type ReplaceOrdersRequest struct {
	MarketID      string               `json:"marketId"`
	Instructions  []ReplaceInstruction `json:"instructions"`
	CustomerRef   string               `json:"customerRef,omitempty"`
	MarketVersion *MarketVersion       `json:"marketVersion,omitempty"`
	Async         bool                 `json:"async,omitempty"`
}

// ReplaceOrders is cancel-then-place per instruction; the report carries
// both halves.
func (c *Client) ReplaceOrders(ctx context.Context, req ReplaceOrdersRequest) (*ReplaceExecutionReport, error) {
	return callOne[ReplaceExecutionReport](ctx, c, "replaceOrders", req)
}
