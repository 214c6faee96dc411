package betting

import (
	"context"
	"time"
)

// ListEventTypesRequest filters listEventTypes. A nil Filter matches every
// market; the filter field itself is always transmitted.
type ListEventTypesRequest struct {
	Filter *MarketFilter `json:"filter"`
	Locale string        `json:"locale,omitempty"`
}

// ListEventTypes returns the event types (sports) with matching markets.
func (c *Client) ListEventTypes(ctx context.Context, req ListEventTypesRequest) ([]EventTypeResult, error) {
	if req.Filter == nil {
		req.Filter = &MarketFilter{}
	}
	return callList[EventTypeResult](ctx, c, "listEventTypes", req)
}

// ListCompetitionsRequest filters listCompetitions.
type ListCompetitionsRequest struct {
	Filter *MarketFilter `json:"filter"`
	Locale string        `json:"locale,omitempty"`
}

// ListCompetitions returns the competitions with matching markets.
func (c *Client) ListCompetitions(ctx context.Context, req ListCompetitionsRequest) ([]CompetitionResult, error) {
	if req.Filter == nil {
		req.Filter = &MarketFilter{}
	}
	return callList[CompetitionResult](ctx, c, "listCompetitions", req)
}

// ListTimeRangesRequest filters listTimeRanges. Granularity defaults to
// TimeGranularityDays when unset.
type ListTimeRangesRequest struct {
	Filter      *MarketFilter   `json:"filter"`
	Granularity TimeGranularity `json:"granularity"`
}

// ListTimeRanges returns the time buckets holding matching markets.
func (c *Client) ListTimeRanges(ctx context.Context, req ListTimeRangesRequest) ([]TimeRangeResult, error) {
	if req.Filter == nil {
		req.Filter = &MarketFilter{}
	}
	if req.Granularity == "" {
		req.Granularity = TimeGranularityDays
	}
	return callList[TimeRangeResult](ctx, c, "listTimeRanges", req)
}

// ListEventsRequest filters listEvents.
type ListEventsRequest struct {
	Filter *MarketFilter `json:"filter"`
	Locale string        `json:"locale,omitempty"`
}

// ListEvents returns the events with matching markets.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]EventResult, error) {
	if req.Filter == nil {
		req.Filter = &MarketFilter{}
	}
	return callList[EventResult](ctx, c, "listEvents", req)
}

// ListMarketTypesRequest filters listMarketTypes.
type ListMarketTypesRequest struct {
	Filter *MarketFilter `json:"filter"`
	Locale string        `json:"locale,omitempty"`
}

// ListMarketTypes returns the market type codes with matching markets.
// Market types are cross-sport, e.g. MATCH_ODDS appears under many event
// types.
func (c *Client) ListMarketTypes(ctx context.Context, req ListMarketTypesRequest) ([]MarketTypeResult, error) {
	if req.Filter == nil {
		req.Filter = &MarketFilter{}
	}
	return callList[MarketTypeResult](ctx, c, "listMarketTypes", req)
}

// ListCountriesRequest filters listCountries.
type ListCountriesRequest struct {
	Filter *MarketFilter `json:"filter"`
	Locale string        `json:"locale,omitempty"`
}

// ListCountries returns the countries hosting matching markets.
func (c *Client) ListCountries(ctx context.Context, req ListCountriesRequest) ([]CountryResult, error) {
	if req.Filter == nil {
		req.Filter = &MarketFilter{}
	}
	return callList[CountryResult](ctx, c, "listCountries", req)
}

// ListVenuesRequest filters listVenues.
type ListVenuesRequest struct {
	Filter *MarketFilter `json:"filter"`
	Locale string        `json:"locale,omitempty"`
}

// ListVenues returns the venues hosting matching markets. Only horse racing
// markets carry venues.
func (c *Client) ListVenues(ctx context.Context, req ListVenuesRequest) ([]VenueResult, error) {
	if req.Filter == nil {
		req.Filter = &MarketFilter{}
	}
	return callList[VenueResult](ctx, c, "listVenues", req)
}

// ListMarketCatalogueRequest filters and shapes listMarketCatalogue.
// MaxResults defaults to 1 when unset; the exchange caps it at 1000 and
// weights large projections against the request limit.
type ListMarketCatalogueRequest struct {
	Filter           *MarketFilter      `json:"filter"`
	MarketProjection []MarketProjection `json:"marketProjection,omitempty"`
	Sort             MarketSort         `json:"sort,omitempty"`
	MaxResults       int                `json:"maxResults"`
	Locale           string             `json:"locale,omitempty"`
}

// ListMarketCatalogue returns static market data for matching markets. The
// catalogue changes rarely compared to the book, so callers poll it far less
// often.
func (c *Client) ListMarketCatalogue(ctx context.Context, req ListMarketCatalogueRequest) ([]MarketCatalogue, error) {
	if req.Filter == nil {
		req.Filter = &MarketFilter{}
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 1
	}
	return callList[MarketCatalogue](ctx, c, "listMarketCatalogue", req)
}

// ListMarketBookRequest shapes listMarketBook. MarketIDs is required; the
// remaining fields are transmitted only when set.
type ListMarketBookRequest struct {
	MarketIDs                     []string         `json:"marketIds"`
	PriceProjection               *PriceProjection `json:"priceProjection,omitempty"`
	OrderProjection               OrderProjection  `json:"orderProjection,omitempty"`
	MatchProjection               MatchProjection  `json:"matchProjection,omitempty"`
	IncludeOverallPosition        *bool            `json:"includeOverallPosition,omitempty"`
	PartitionMatchedByStrategyRef bool             `json:"partitionMatchedByStrategyRef,omitempty"`
	CustomerStrategyRefs          []string         `json:"customerStrategyRefs,omitempty"`
	CurrencyCode                  string           `json:"currencyCode,omitempty"`
	MatchedSince                  *time.Time       `json:"matchedSince,omitempty"`
	BetIDs                        []string         `json:"betIds,omitempty"`
	Locale                        string           `json:"locale,omitempty"`
}

// ListMarketBook returns dynamic market state, one book per requested
// market id.
func (c *Client) ListMarketBook(ctx context.Context, req ListMarketBookRequest) ([]MarketBook, error) {
	return callList[MarketBook](ctx, c, "listMarketBook", req)
}

// ListRunnerBookRequest shapes listRunnerBook: one market, one selection.
type ListRunnerBookRequest struct {
	MarketID                      string           `json:"marketId"`
	SelectionID                   int64            `json:"selectionId"`
	Handicap                      *float64         `json:"handicap,omitempty"`
	PriceProjection               *PriceProjection `json:"priceProjection,omitempty"`
	OrderProjection               OrderProjection  `json:"orderProjection,omitempty"`
	MatchProjection               MatchProjection  `json:"matchProjection,omitempty"`
	IncludeOverallPosition        *bool            `json:"includeOverallPosition,omitempty"`
	PartitionMatchedByStrategyRef bool             `json:"partitionMatchedByStrategyRef,omitempty"`
	CustomerStrategyRefs          []string         `json:"customerStrategyRefs,omitempty"`
	CurrencyCode                  string           `json:"currencyCode,omitempty"`
	MatchedSince                  *time.Time       `json:"matchedSince,omitempty"`
	BetIDs                        []string         `json:"betIds,omitempty"`
	Locale                        string           `json:"locale,omitempty"`
}

// ListRunnerBook returns the book for a single runner. The exchange answers
// with the same shape as listMarketBook: a one-element list whose market
// book carries only the requested runner.
func (c *Client) ListRunnerBook(ctx context.Context, req ListRunnerBookRequest) ([]MarketBook, error) {
	return callList[MarketBook](ctx, c, "listRunnerBook", req)
}
