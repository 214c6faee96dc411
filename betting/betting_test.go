package betting

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nunnsy/betfair"
)

// fakeExecutor records the dispatched method and params and returns a canned
// response.
type fakeExecutor struct {
	method string
	params any

	result  string
	elapsed time.Duration
	err     error
}

func (f *fakeExecutor) Call(_ context.Context, method string, params any) (*betfair.Response, error) {
	f.method = method
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &betfair.Response{
		Body:    []byte(`{"jsonrpc":"2.0","result":` + f.result + `,"id":1}`),
		Result:  json.RawMessage(f.result),
		Elapsed: f.elapsed,
	}, nil
}

// marshalParams renders the captured params the way the transport would.
func marshalParams(t *testing.T, params any) map[string]any {
	t.Helper()
	data, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal params: %v", err)
	}
	return m
}

func TestOperationMethodNames(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		result string
		call   func(c *Client) error
		want   string
	}{
		{"listEventTypes", `[]`, func(c *Client) error { _, err := c.ListEventTypes(ctx, ListEventTypesRequest{}); return err }, "SportsAPING/v1.0/listEventTypes"},
		{"listCompetitions", `[]`, func(c *Client) error { _, err := c.ListCompetitions(ctx, ListCompetitionsRequest{}); return err }, "SportsAPING/v1.0/listCompetitions"},
		{"listTimeRanges", `[]`, func(c *Client) error { _, err := c.ListTimeRanges(ctx, ListTimeRangesRequest{}); return err }, "SportsAPING/v1.0/listTimeRanges"},
		{"listEvents", `[]`, func(c *Client) error { _, err := c.ListEvents(ctx, ListEventsRequest{}); return err }, "SportsAPING/v1.0/listEvents"},
		{"listMarketTypes", `[]`, func(c *Client) error { _, err := c.ListMarketTypes(ctx, ListMarketTypesRequest{}); return err }, "SportsAPING/v1.0/listMarketTypes"},
		{"listCountries", `[]`, func(c *Client) error { _, err := c.ListCountries(ctx, ListCountriesRequest{}); return err }, "SportsAPING/v1.0/listCountries"},
		{"listVenues", `[]`, func(c *Client) error { _, err := c.ListVenues(ctx, ListVenuesRequest{}); return err }, "SportsAPING/v1.0/listVenues"},
		{"listMarketCatalogue", `[]`, func(c *Client) error { _, err := c.ListMarketCatalogue(ctx, ListMarketCatalogueRequest{}); return err }, "SportsAPING/v1.0/listMarketCatalogue"},
		{"listMarketBook", `[]`, func(c *Client) error { _, err := c.ListMarketBook(ctx, ListMarketBookRequest{}); return err }, "SportsAPING/v1.0/listMarketBook"},
		{"listRunnerBook", `[]`, func(c *Client) error { _, err := c.ListRunnerBook(ctx, ListRunnerBookRequest{}); return err }, "SportsAPING/v1.0/listRunnerBook"},
		{"listMarketProfitAndLoss", `[]`, func(c *Client) error { _, err := c.ListMarketProfitAndLoss(ctx, ListMarketProfitAndLossRequest{}); return err }, "SportsAPING/v1.0/listMarketProfitAndLoss"},
		{"listCurrentOrders", `{"currentOrders":[],"moreAvailable":false}`, func(c *Client) error { _, err := c.ListCurrentOrders(ctx, ListCurrentOrdersRequest{}); return err }, "SportsAPING/v1.0/listCurrentOrders"},
		{"listClearedOrders", `{"clearedOrders":[],"moreAvailable":false}`, func(c *Client) error { _, err := c.ListClearedOrders(ctx, ListClearedOrdersRequest{}); return err }, "SportsAPING/v1.0/listClearedOrders"},
		{"placeOrders", `{"status":"SUCCESS"}`, func(c *Client) error { _, err := c.PlaceOrders(ctx, PlaceOrdersRequest{}); return err }, "SportsAPING/v1.0/placeOrders"},
		{"cancelOrders", `{"status":"SUCCESS"}`, func(c *Client) error { _, err := c.CancelOrders(ctx, CancelOrdersRequest{}); return err }, "SportsAPING/v1.0/cancelOrders"},
		{"updateOrders", `{"status":"SUCCESS"}`, func(c *Client) error { _, err := c.UpdateOrders(ctx, UpdateOrdersRequest{}); return err }, "SportsAPING/v1.0/updateOrders"},
		{"replaceOrders", `{"status":"SUCCESS"}`, func(c *Client) error { _, err := c.ReplaceOrders(ctx, ReplaceOrdersRequest{}); return err }, "SportsAPING/v1.0/replaceOrders"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{result: tt.result}
			if err := tt.call(NewClient(exec)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exec.method != tt.want {
				t.Errorf("method = %q, want %q", exec.method, tt.want)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	ctx := context.Background()

	t.Run("listEventTypes transmits only the filter", func(t *testing.T) {
		exec := &fakeExecutor{result: `[]`}
		c := NewClient(exec)
		if _, err := c.ListEventTypes(ctx, ListEventTypesRequest{}); err != nil {
			t.Fatalf("ListEventTypes: %v", err)
		}
		params := marshalParams(t, exec.params)
		if len(params) != 1 {
			t.Fatalf("params = %v, want only filter", params)
		}
		filter, ok := params["filter"].(map[string]any)
		if !ok || len(filter) != 0 {
			t.Errorf("filter = %v, want empty object", params["filter"])
		}
	})

	t.Run("listTimeRanges defaults granularity to DAYS", func(t *testing.T) {
		exec := &fakeExecutor{result: `[]`}
		c := NewClient(exec)
		if _, err := c.ListTimeRanges(ctx, ListTimeRangesRequest{}); err != nil {
			t.Fatalf("ListTimeRanges: %v", err)
		}
		params := marshalParams(t, exec.params)
		if params["granularity"] != "DAYS" {
			t.Errorf("granularity = %v, want DAYS", params["granularity"])
		}
	})

	t.Run("listMarketCatalogue defaults maxResults to 1", func(t *testing.T) {
		exec := &fakeExecutor{result: `[]`}
		c := NewClient(exec)
		if _, err := c.ListMarketCatalogue(ctx, ListMarketCatalogueRequest{}); err != nil {
			t.Fatalf("ListMarketCatalogue: %v", err)
		}
		params := marshalParams(t, exec.params)
		if params["maxResults"] != float64(1) {
			t.Errorf("maxResults = %v, want 1", params["maxResults"])
		}
	})

	t.Run("listMarketCatalogue keeps an explicit maxResults", func(t *testing.T) {
		exec := &fakeExecutor{result: `[]`}
		c := NewClient(exec)
		if _, err := c.ListMarketCatalogue(ctx, ListMarketCatalogueRequest{MaxResults: 250}); err != nil {
			t.Fatalf("ListMarketCatalogue: %v", err)
		}
		params := marshalParams(t, exec.params)
		if params["maxResults"] != float64(250) {
			t.Errorf("maxResults = %v, want 250", params["maxResults"])
		}
	})

	t.Run("listClearedOrders defaults betStatus to SETTLED", func(t *testing.T) {
		exec := &fakeExecutor{result: `{"clearedOrders":[],"moreAvailable":false}`}
		c := NewClient(exec)
		if _, err := c.ListClearedOrders(ctx, ListClearedOrdersRequest{}); err != nil {
			t.Fatalf("ListClearedOrders: %v", err)
		}
		params := marshalParams(t, exec.params)
		if params["betStatus"] != "SETTLED" {
			t.Errorf("betStatus = %v, want SETTLED", params["betStatus"])
		}
		dateRange, ok := params["settledDateRange"].(map[string]any)
		if !ok || len(dateRange) != 0 {
			t.Errorf("settledDateRange = %v, want empty object", params["settledDateRange"])
		}
	})

	t.Run("listCurrentOrders always transmits a date range", func(t *testing.T) {
		exec := &fakeExecutor{result: `{"currentOrders":[],"moreAvailable":false}`}
		c := NewClient(exec)
		if _, err := c.ListCurrentOrders(ctx, ListCurrentOrdersRequest{}); err != nil {
			t.Fatalf("ListCurrentOrders: %v", err)
		}
		params := marshalParams(t, exec.params)
		dateRange, ok := params["dateRange"].(map[string]any)
		if !ok || len(dateRange) != 0 {
			t.Errorf("dateRange = %v, want empty object", params["dateRange"])
		}
	})

	t.Run("cancelOrders with no arguments transmits empty params", func(t *testing.T) {
		exec := &fakeExecutor{result: `{"status":"SUCCESS"}`}
		c := NewClient(exec)
		if _, err := c.CancelOrders(ctx, CancelOrdersRequest{}); err != nil {
			t.Fatalf("CancelOrders: %v", err)
		}
		params := marshalParams(t, exec.params)
		if len(params) != 0 {
			t.Errorf("params = %v, want empty object", params)
		}
	})
}

func TestUnsetFieldsAbsent(t *testing.T) {
	exec := &fakeExecutor{result: `[]`}
	c := NewClient(exec)

	req := ListMarketBookRequest{MarketIDs: []string{"1.23456789"}}
	if _, err := c.ListMarketBook(context.Background(), req); err != nil {
		t.Fatalf("ListMarketBook: %v", err)
	}

	params := marshalParams(t, exec.params)
	if len(params) != 1 {
		t.Fatalf("params = %v, want only marketIds", params)
	}
	want := []any{"1.23456789"}
	if !reflect.DeepEqual(params["marketIds"], want) {
		t.Errorf("marketIds = %v, want %v", params["marketIds"], want)
	}
}

func TestExplicitFieldsTransmitted(t *testing.T) {
	exec := &fakeExecutor{result: `[]`}
	c := NewClient(exec)

	virtualise := true
	req := ListMarketBookRequest{
		MarketIDs: []string{"1.1", "1.2"},
		PriceProjection: &PriceProjection{
			PriceData:  []PriceData{PriceDataExBestOffers, PriceDataExTraded},
			Virtualise: &virtualise,
		},
		OrderProjection: OrderProjectionExecutable,
		CurrencyCode:    "GBP",
	}
	if _, err := c.ListMarketBook(context.Background(), req); err != nil {
		t.Fatalf("ListMarketBook: %v", err)
	}

	params := marshalParams(t, exec.params)
	if params["orderProjection"] != "EXECUTABLE" {
		t.Errorf("orderProjection = %v, want EXECUTABLE", params["orderProjection"])
	}
	if params["currencyCode"] != "GBP" {
		t.Errorf("currencyCode = %v, want GBP", params["currencyCode"])
	}
	pp, ok := params["priceProjection"].(map[string]any)
	if !ok {
		t.Fatalf("priceProjection missing: %v", params)
	}
	wantData := []any{"EX_BEST_OFFERS", "EX_TRADED"}
	if !reflect.DeepEqual(pp["priceData"], wantData) {
		t.Errorf("priceData = %v, want %v", pp["priceData"], wantData)
	}
	if pp["virtualise"] != true {
		t.Errorf("virtualise = %v, want true", pp["virtualise"])
	}
}

func TestPlaceOrdersParams(t *testing.T) {
	exec := &fakeExecutor{result: `{"status":"SUCCESS","marketId":"1.23","instructionReports":[]}`}
	c := NewClient(exec)

	req := PlaceOrdersRequest{
		MarketID: "1.23",
		Instructions: []PlaceInstruction{{
			OrderType:   OrderTypeLimit,
			SelectionID: 11111,
			Side:        SideBack,
			LimitOrder: &LimitOrder{
				Size:            2,
				Price:           3.5,
				PersistenceType: PersistenceTypeLapse,
			},
		}},
		CustomerRef: "ref-1",
	}
	report, err := c.PlaceOrders(context.Background(), req)
	if err != nil {
		t.Fatalf("PlaceOrders: %v", err)
	}
	if report.Status != ExecutionReportStatusSuccess {
		t.Errorf("status = %q, want SUCCESS", report.Status)
	}

	params := marshalParams(t, exec.params)
	if params["marketId"] != "1.23" {
		t.Errorf("marketId = %v, want 1.23", params["marketId"])
	}
	if params["customerRef"] != "ref-1" {
		t.Errorf("customerRef = %v, want ref-1", params["customerRef"])
	}
	if _, present := params["marketVersion"]; present {
		t.Error("marketVersion transmitted despite being unset")
	}
	if _, present := params["async"]; present {
		t.Error("async transmitted despite being unset")
	}

	instructions, ok := params["instructions"].([]any)
	if !ok || len(instructions) != 1 {
		t.Fatalf("instructions = %v, want one entry", params["instructions"])
	}
	inst := instructions[0].(map[string]any)
	if inst["orderType"] != "LIMIT" || inst["side"] != "BACK" {
		t.Errorf("instruction = %v, want LIMIT/BACK", inst)
	}
	if _, present := inst["handicap"]; present {
		t.Error("handicap transmitted despite being unset")
	}
	limit := inst["limitOrder"].(map[string]any)
	if limit["size"] != float64(2) || limit["price"] != 3.5 || limit["persistenceType"] != "LAPSE" {
		t.Errorf("limitOrder = %v", limit)
	}
}

func TestRequestNotMutatedByDefaults(t *testing.T) {
	exec := &fakeExecutor{result: `[]`}
	c := NewClient(exec)

	req := ListMarketCatalogueRequest{}
	if _, err := c.ListMarketCatalogue(context.Background(), req); err != nil {
		t.Fatalf("ListMarketCatalogue: %v", err)
	}
	if req.MaxResults != 0 || req.Filter != nil {
		t.Errorf("caller request mutated: %+v", req)
	}
}

func TestListShapingAttachesElapsed(t *testing.T) {
	exec := &fakeExecutor{
		result:  `[{"eventType":{"id":"1","name":"Soccer"},"marketCount":3},{"eventType":{"id":"2","name":"Tennis"},"marketCount":5}]`,
		elapsed: 120 * time.Millisecond,
	}
	c := NewClient(exec)

	results, err := c.ListEventTypes(context.Background(), ListEventTypesRequest{})
	if err != nil {
		t.Fatalf("ListEventTypes: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].EventType.Name != "Soccer" || results[1].MarketCount != 5 {
		t.Errorf("unexpected decode: %+v", results)
	}
	for i, r := range results {
		if r.Elapsed != 120*time.Millisecond {
			t.Errorf("results[%d].Elapsed = %v, want 120ms", i, r.Elapsed)
		}
	}
}

func TestReportShapingAttachesElapsed(t *testing.T) {
	exec := &fakeExecutor{
		result:  `{"customerRef":"r","status":"PROCESSED_WITH_ERRORS","errorCode":"PROCESSED_WITH_ERRORS","marketId":"1.2","instructionReports":[{"status":"FAILURE","errorCode":"INVALID_BET_SIZE","instruction":{"orderType":"LIMIT","selectionId":7,"side":"LAY"}}]}`,
		elapsed: 45 * time.Millisecond,
	}
	c := NewClient(exec)

	report, err := c.PlaceOrders(context.Background(), PlaceOrdersRequest{MarketID: "1.2"})
	if err != nil {
		t.Fatalf("PlaceOrders: %v", err)
	}
	if report.Elapsed != 45*time.Millisecond {
		t.Errorf("Elapsed = %v, want 45ms", report.Elapsed)
	}
	if report.Status != ExecutionReportStatusProcessedWithErrors {
		t.Errorf("status = %q", report.Status)
	}
	if len(report.InstructionReports) != 1 {
		t.Fatalf("instructionReports = %d, want 1", len(report.InstructionReports))
	}
	ir := report.InstructionReports[0]
	if ir.Status != InstructionReportStatusFailure || ir.ErrorCode != InstructionReportErrorCodeInvalidBetSize {
		t.Errorf("instruction report = %+v", ir)
	}
	if ir.Instruction.Side != SideLay || ir.Instruction.SelectionID != 7 {
		t.Errorf("echoed instruction = %+v", ir.Instruction)
	}
}

func TestInvokeReturnsRawResult(t *testing.T) {
	raw := `[{"eventType":{"id":"1","name":"Soccer"},"marketCount":3}]`
	exec := &fakeExecutor{result: raw, elapsed: 9 * time.Millisecond}
	c := NewClient(exec)

	got, elapsed, err := c.Invoke(context.Background(), "listEventTypes", map[string]any{"filter": map[string]any{}})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if exec.method != "SportsAPING/v1.0/listEventTypes" {
		t.Errorf("method = %q", exec.method)
	}
	if string(got) != raw {
		t.Errorf("raw result modified:\ngot  %s\nwant %s", got, raw)
	}
	if elapsed != 9*time.Millisecond {
		t.Errorf("elapsed = %v, want 9ms", elapsed)
	}
}

func TestExecutorErrorsPropagateUnchanged(t *testing.T) {
	apiErr := &betfair.APIError{
		Method:    "SportsAPING/v1.0/listMarketBook",
		ErrorCode: "INVALID_SESSION_INFORMATION",
	}
	exec := &fakeExecutor{err: apiErr}
	c := NewClient(exec)

	_, err := c.ListMarketBook(context.Background(), ListMarketBookRequest{MarketIDs: []string{"1.1"}})
	if !errors.Is(err, betfair.ErrInvalidSession) {
		t.Errorf("errors.Is(ErrInvalidSession) = false, err = %v", err)
	}
	var got *betfair.APIError
	if !errors.As(err, &got) || got != apiErr {
		t.Errorf("executor error not propagated unchanged: %v", err)
	}
}

func TestDecodeErrorNamesOperation(t *testing.T) {
	exec := &fakeExecutor{result: `{"not":"a list"}`}
	c := NewClient(exec)

	_, err := c.ListEventTypes(context.Background(), ListEventTypesRequest{})
	if err == nil {
		t.Fatal("expected decode error")
	}
	if want := "listEventTypes"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not name %q", err, want)
	}
}
