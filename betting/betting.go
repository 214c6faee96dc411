// Package betting binds the exchange's Sports API: one typed method per
// remote operation in the SportsAPING/v1.0 namespace.
//
// Every method builds a params object from its request struct, dispatches it
// through an Executor and decodes the result. Fields left unset are absent
// from the payload; a handful of operations apply the documented server-side
// defaults first (see the individual request types). The package raises no
// errors of its own beyond decode failures: transport and API errors come
// back from the executor untouched, and business-level rejections arrive as
// ordinary report values whose status and error-code fields the caller
// inspects.
package betting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nunnsy/betfair"
)

// namespace prefixes every operation's remote method name.
const namespace = betfair.BettingPrefix

// Executor performs one RPC round trip against the exchange.
type Executor interface {
	Call(ctx context.Context, method string, params any) (*betfair.Response, error)
}

var _ Executor = (*betfair.Client)(nil)

// Client exposes the betting operations. Methods are independent and
// stateless; a Client is safe for concurrent use whenever its Executor is.
type Client struct {
	exec Executor
}

// NewClient wraps an executor, typically a *betfair.Client.
func NewClient(exec Executor) *Client {
	return &Client{exec: exec}
}

// CallMeta is attached to every typed result.
type CallMeta struct {
	// Elapsed is the network round-trip duration of the call that produced
	// this value.
	Elapsed time.Duration `json:"-"`
}

func (m *CallMeta) setElapsed(d time.Duration) { m.Elapsed = d }

type metered interface {
	setElapsed(time.Duration)
}

// resultPtr constrains the decode helpers to pointers of result structs.
type resultPtr[T any] interface {
	*T
	metered
}

// Invoke dispatches any operation in the Sports namespace and returns the
// parsed result payload undecoded, plus the round-trip duration. It is the
// raw twin of the typed methods: params may be any marshallable value, and
// the JSON comes back exactly as the exchange sent it.
func (c *Client) Invoke(ctx context.Context, operation string, params any) (json.RawMessage, time.Duration, error) {
	resp, err := c.exec.Call(ctx, namespace+operation, params)
	if err != nil {
		return nil, 0, err
	}
	return resp.Result, resp.Elapsed, nil
}

// callList runs an operation whose result is a JSON array, yielding one
// typed element per array entry.
func callList[T any, PT resultPtr[T]](ctx context.Context, c *Client, operation string, params any) ([]T, error) {
	resp, err := c.exec.Call(ctx, namespace+operation, params)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := json.Unmarshal(resp.Result, &out); err != nil {
		return nil, fmt.Errorf("betting: %s: decode result: %w", operation, err)
	}
	for i := range out {
		PT(&out[i]).setElapsed(resp.Elapsed)
	}
	return out, nil
}

// callOne runs an operation whose result is a single JSON object.
func callOne[T any, PT resultPtr[T]](ctx context.Context, c *Client, operation string, params any) (*T, error) {
	resp, err := c.exec.Call(ctx, namespace+operation, params)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return nil, fmt.Errorf("betting: %s: decode result: %w", operation, err)
	}
	PT(out).setElapsed(resp.Elapsed)
	return out, nil
}
