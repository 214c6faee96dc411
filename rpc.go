package betfair

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Namespace prefixes for fully qualified method names. The executor routes
// a call to the betting or account endpoint by the method's namespace.
const (
	BettingPrefix = "SportsAPING/v1.0/"
	AccountPrefix = "AccountAPING/v1.0/"
)

// Response is one completed RPC round trip: the raw envelope bytes as read
// off the wire, the parsed result payload, and the time the network call
// took. Result is nil when the envelope carried an error instead.
type Response struct {
	Body    []byte
	Result  json.RawMessage
	Elapsed time.Duration
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
	ID      int             `json:"id"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// The exception payload key differs per namespace; both carry the same shape.
type rpcErrorData struct {
	APING        *apingException `json:"APINGException"`
	AccountAPING *apingException `json:"AccountAPINGException"`
}

type apingException struct {
	RequestUUID  string `json:"requestUUID"`
	ErrorCode    string `json:"errorCode"`
	ErrorDetails string `json:"errorDetails"`
}

// Call executes one JSON-RPC method against the exchange. The method must be
// fully qualified ("SportsAPING/v1.0/listMarketBook"); its namespace selects
// the betting or account endpoint. params is marshalled verbatim as the
// request's params object.
//
// Errors: ErrNoSession before any network activity when the client holds no
// session token; wrapped transport sentinels for non-200 statuses; *APIError
// for an error envelope. Callers get exactly one attempt per Call.
func (c *Client) Call(ctx context.Context, method string, params any) (*Response, error) {
	resp, err := c.call(ctx, method, params)
	if c.recorder != nil {
		var elapsed time.Duration
		if resp != nil {
			elapsed = resp.Elapsed
		}
		c.recorder.RecordCall(method, elapsed, err)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) call(ctx context.Context, method string, params any) (*Response, error) {
	token := c.SessionToken()
	if token == "" {
		return nil, fmt.Errorf("%s: %w", method, ErrNoSession)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: rate limiter: %w", method, err)
		}
	}

	endpoint := c.endpoints.Betting
	if strings.HasPrefix(method, AccountPrefix) {
		endpoint = c.endpoints.Account
	}

	envelope, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Application", c.appKey)
	req.Header.Set("X-Authentication", token)

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: http request: %w", method, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", method, err)
	}

	if err := checkStatus(method, httpResp.StatusCode); err != nil {
		return nil, err
	}

	var parsed rpcResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%s: decode envelope: %w", method, err)
	}

	if parsed.Error != nil {
		return nil, newAPIError(method, parsed.Error)
	}

	return &Response{
		Body:    body,
		Result:  parsed.Result,
		Elapsed: elapsed,
	}, nil
}

// checkStatus maps non-200 HTTP statuses to sentinel errors. The exchange
// answers well-formed RPC calls with 200 even on business failures, so
// anything else is a transport or gateway problem.
func checkStatus(method string, status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s: HTTP %d: %w", method, status, ErrUnauthorized)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%s: HTTP %d: %w", method, status, ErrRateLimited)
	case status == http.StatusBadRequest:
		return fmt.Errorf("%s: HTTP %d: %w", method, status, ErrBadRequest)
	case status >= 500:
		return fmt.Errorf("%s: HTTP %d: %w", method, status, ErrServerError)
	default:
		return fmt.Errorf("%s: unexpected HTTP status %d", method, status)
	}
}

func newAPIError(method string, rpcErr *rpcError) *APIError {
	apiErr := &APIError{
		Method:  method,
		Code:    rpcErr.Code,
		Message: rpcErr.Message,
	}
	if len(rpcErr.Data) > 0 {
		var data rpcErrorData
		if err := json.Unmarshal(rpcErr.Data, &data); err == nil {
			exc := data.APING
			if exc == nil {
				exc = data.AccountAPING
			}
			if exc != nil {
				apiErr.ErrorCode = exc.ErrorCode
				apiErr.ErrorDetails = exc.ErrorDetails
				apiErr.RequestUUID = exc.RequestUUID
			}
		}
	}
	return apiErr
}
