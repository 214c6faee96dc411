// Package account binds the exchange's Accounts API: funds, profile,
// statement and currency operations in the AccountAPING/v1.0 namespace.
//
// It follows the same contract as the betting package: request structs
// marshal to the params object with unset fields absent, the executor's
// errors propagate unchanged, and typed results carry the call's round-trip
// duration.
package account

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nunnsy/betfair"
)

const namespace = betfair.AccountPrefix

// Executor performs one RPC round trip against the exchange.
type Executor interface {
	Call(ctx context.Context, method string, params any) (*betfair.Response, error)
}

var _ Executor = (*betfair.Client)(nil)

// Client exposes the account operations.
type Client struct {
	exec Executor
}

// NewClient wraps an executor, typically a *betfair.Client.
func NewClient(exec Executor) *Client {
	return &Client{exec: exec}
}

// CallMeta is attached to every typed result.
type CallMeta struct {
	Elapsed time.Duration `json:"-"`
}

func (m *CallMeta) setElapsed(d time.Duration) { m.Elapsed = d }

type metered interface {
	setElapsed(time.Duration)
}

type resultPtr[T any] interface {
	*T
	metered
}

// Invoke dispatches any operation in the Accounts namespace and returns the
// parsed result payload undecoded plus the round-trip duration.
func (c *Client) Invoke(ctx context.Context, operation string, params any) (json.RawMessage, time.Duration, error) {
	resp, err := c.exec.Call(ctx, namespace+operation, params)
	if err != nil {
		return nil, 0, err
	}
	return resp.Result, resp.Elapsed, nil
}

func callOne[T any, PT resultPtr[T]](ctx context.Context, c *Client, operation string, params any) (*T, error) {
	resp, err := c.exec.Call(ctx, namespace+operation, params)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return nil, fmt.Errorf("account: %s: decode result: %w", operation, err)
	}
	PT(out).setElapsed(resp.Elapsed)
	return out, nil
}

func callList[T any, PT resultPtr[T]](ctx context.Context, c *Client, operation string, params any) ([]T, error) {
	resp, err := c.exec.Call(ctx, namespace+operation, params)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := json.Unmarshal(resp.Result, &out); err != nil {
		return nil, fmt.Errorf("account: %s: decode result: %w", operation, err)
	}
	for i := range out {
		PT(&out[i]).setElapsed(resp.Elapsed)
	}
	return out, nil
}

// GetAccountFundsRequest selects the wallet to read.
type GetAccountFundsRequest struct {
	Wallet Wallet `json:"wallet,omitempty"`
}

// GetAccountFunds returns available balance, exposure and commission state.
func (c *Client) GetAccountFunds(ctx context.Context, req GetAccountFundsRequest) (*AccountFunds, error) {
	return callOne[AccountFunds](ctx, c, "getAccountFunds", req)
}

// GetAccountDetails returns the authenticated account's profile.
func (c *Client) GetAccountDetails(ctx context.Context) (*AccountDetails, error) {
	return callOne[AccountDetails](ctx, c, "getAccountDetails", struct{}{})
}

// GetAccountStatementRequest filters the statement. The item date range is
// always transmitted, empty by default.
type GetAccountStatementRequest struct {
	Locale        string      `json:"locale,omitempty"`
	FromRecord    int         `json:"fromRecord,omitempty"`
	RecordCount   int         `json:"recordCount,omitempty"`
	ItemDateRange *TimeRange  `json:"itemDateRange"`
	IncludeItem   IncludeItem `json:"includeItem,omitempty"`
	Wallet        Wallet      `json:"wallet,omitempty"`
}

// GetAccountStatement pages through the account ledger.
func (c *Client) GetAccountStatement(ctx context.Context, req GetAccountStatementRequest) (*AccountStatementReport, error) {
	if req.ItemDateRange == nil {
		req.ItemDateRange = &TimeRange{}
	}
	return callOne[AccountStatementReport](ctx, c, "getAccountStatement", req)
}

// ListCurrencyRatesRequest selects the base currency for rates.
type ListCurrencyRatesRequest struct {
	FromCurrency string `json:"fromCurrency,omitempty"`
}

// ListCurrencyRates returns exchange rates from the given currency, GBP
// when unset. Rates refresh hourly on the exchange side.
func (c *Client) ListCurrencyRates(ctx context.Context, req ListCurrencyRatesRequest) ([]CurrencyRate, error) {
	return callList[CurrencyRate](ctx, c, "listCurrencyRates", req)
}
