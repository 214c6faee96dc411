package betting

import "time"

// Typed results. Result sets decode one struct per JSON element; report
// operations decode a single struct. Every top-level result embeds CallMeta
// so callers can read the round-trip duration off the value they got back.

// EventType is a sport or category, e.g. Soccer.
type EventType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EventTypeResult is one listEventTypes row.
type EventTypeResult struct {
	CallMeta
	EventType   EventType `json:"eventType"`
	MarketCount int       `json:"marketCount"`
}

// Competition is a tournament or league.
type Competition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CompetitionResult is one listCompetitions row.
type CompetitionResult struct {
	CallMeta
	Competition       Competition `json:"competition"`
	MarketCount       int         `json:"marketCount"`
	CompetitionRegion string      `json:"competitionRegion"`
}

// TimeRangeResult is one listTimeRanges bucket.
type TimeRangeResult struct {
	CallMeta
	TimeRange   TimeRange `json:"timeRange"`
	MarketCount int       `json:"marketCount"`
}

// Event is a single fixture, e.g. one match.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CountryCode string    `json:"countryCode,omitempty"`
	Timezone    string    `json:"timezone,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	OpenDate    time.Time `json:"openDate"`
}

// EventResult is one listEvents row.
type EventResult struct {
	CallMeta
	Event       Event `json:"event"`
	MarketCount int   `json:"marketCount"`
}

// MarketTypeResult is one listMarketTypes row.
type MarketTypeResult struct {
	CallMeta
	MarketType  string `json:"marketType"`
	MarketCount int    `json:"marketCount"`
}

// CountryResult is one listCountries row.
type CountryResult struct {
	CallMeta
	CountryCode string `json:"countryCode"`
	MarketCount int    `json:"marketCount"`
}

// VenueResult is one listVenues row.
type VenueResult struct {
	CallMeta
	Venue       string `json:"venue"`
	MarketCount int    `json:"marketCount"`
}

// MarketCatalogue describes a market's static data. Facets beyond id, name
// and total matched are present only when the corresponding
// MarketProjection was requested.
type MarketCatalogue struct {
	CallMeta
	MarketID        string             `json:"marketId"`
	MarketName      string             `json:"marketName"`
	MarketStartTime *time.Time         `json:"marketStartTime,omitempty"`
	Description     *MarketDescription `json:"description,omitempty"`
	TotalMatched    float64            `json:"totalMatched"`
	Runners         []RunnerCatalog    `json:"runners,omitempty"`
	EventType       *EventType         `json:"eventType,omitempty"`
	Competition     *Competition       `json:"competition,omitempty"`
	Event           *Event             `json:"event,omitempty"`
}

// MarketDescription is the static definition of a market.
type MarketDescription struct {
	PersistenceEnabled     bool                    `json:"persistenceEnabled"`
	BSPMarket              bool                    `json:"bspMarket"`
	MarketTime             time.Time               `json:"marketTime"`
	SuspendTime            time.Time               `json:"suspendTime"`
	SettleTime             *time.Time              `json:"settleTime,omitempty"`
	BettingType            MarketBettingType       `json:"bettingType"`
	TurnInPlayEnabled      bool                    `json:"turnInPlayEnabled"`
	MarketType             string                  `json:"marketType"`
	Regulator              string                  `json:"regulator"`
	MarketBaseRate         float64                 `json:"marketBaseRate"`
	DiscountAllowed        bool                    `json:"discountAllowed"`
	Wallet                 string                  `json:"wallet,omitempty"`
	Rules                  string                  `json:"rules,omitempty"`
	RulesHasDate           bool                    `json:"rulesHasDate,omitempty"`
	EachWayDivisor         float64                 `json:"eachWayDivisor,omitempty"`
	Clarifications         string                  `json:"clarifications,omitempty"`
	LineRangeInfo          *LineRangeInfo          `json:"lineRangeInfo,omitempty"`
	RaceType               string                  `json:"raceType,omitempty"`
	PriceLadderDescription *PriceLadderDescription `json:"priceLadderDescription,omitempty"`
}

// LineRangeInfo describes the line boundaries of a LINE market.
type LineRangeInfo struct {
	MaxUnitValue float64 `json:"maxUnitValue"`
	MinUnitValue float64 `json:"minUnitValue"`
	Interval     float64 `json:"interval"`
	MarketUnit   string  `json:"marketUnit"`
}

// PriceLadderDescription names the market's ladder structure.
type PriceLadderDescription struct {
	Type PriceLadderType `json:"type"`
}

// RunnerCatalog is a runner's static data within a catalogue entry.
type RunnerCatalog struct {
	SelectionID  int64             `json:"selectionId"`
	RunnerName   string            `json:"runnerName"`
	Handicap     float64           `json:"handicap"`
	SortPriority int               `json:"sortPriority"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// MarketBook is the dynamic state of a market: status, matched volume and
// per-runner prices.
type MarketBook struct {
	CallMeta
	MarketID              string              `json:"marketId"`
	IsMarketDataDelayed   bool                `json:"isMarketDataDelayed"`
	Status                MarketStatus        `json:"status,omitempty"`
	BetDelay              int                 `json:"betDelay,omitempty"`
	BSPReconciled         bool                `json:"bspReconciled,omitempty"`
	Complete              bool                `json:"complete,omitempty"`
	Inplay                bool                `json:"inplay,omitempty"`
	NumberOfWinners       int                 `json:"numberOfWinners,omitempty"`
	NumberOfRunners       int                 `json:"numberOfRunners,omitempty"`
	NumberOfActiveRunners int                 `json:"numberOfActiveRunners,omitempty"`
	LastMatchTime         *time.Time          `json:"lastMatchTime,omitempty"`
	TotalMatched          float64             `json:"totalMatched,omitempty"`
	TotalAvailable        float64             `json:"totalAvailable,omitempty"`
	CrossMatching         bool                `json:"crossMatching,omitempty"`
	RunnersVoidable       bool                `json:"runnersVoidable,omitempty"`
	Version               int64               `json:"version,omitempty"`
	Runners               []Runner            `json:"runners,omitempty"`
	KeyLineDescription    *KeyLineDescription `json:"keyLineDescription,omitempty"`
}

// Runner is the dynamic state of one selection in a market book.
type Runner struct {
	SelectionID       int64              `json:"selectionId"`
	Handicap          float64            `json:"handicap"`
	Status            RunnerStatus       `json:"status"`
	AdjustmentFactor  float64            `json:"adjustmentFactor,omitempty"`
	LastPriceTraded   float64            `json:"lastPriceTraded,omitempty"`
	TotalMatched      float64            `json:"totalMatched,omitempty"`
	RemovalDate       *time.Time         `json:"removalDate,omitempty"`
	SP                *StartingPrices    `json:"sp,omitempty"`
	EX                *ExchangePrices    `json:"ex,omitempty"`
	Orders            []Order            `json:"orders,omitempty"`
	Matches           []Match            `json:"matches,omitempty"`
	MatchesByStrategy map[string]Matches `json:"matchesByStrategy,omitempty"`
}

// StartingPrices is the BSP state of a runner.
type StartingPrices struct {
	NearPrice         float64     `json:"nearPrice,omitempty"`
	FarPrice          float64     `json:"farPrice,omitempty"`
	BackStakeTaken    []PriceSize `json:"backStakeTaken,omitempty"`
	LayLiabilityTaken []PriceSize `json:"layLiabilityTaken,omitempty"`
	ActualSP          float64     `json:"actualSP,omitempty"`
}

// ExchangePrices is the requested slice of a runner's price ladder.
type ExchangePrices struct {
	AvailableToBack []PriceSize `json:"availableToBack,omitempty"`
	AvailableToLay  []PriceSize `json:"availableToLay,omitempty"`
	TradedVolume    []PriceSize `json:"tradedVolume,omitempty"`
}

// PriceSize is one rung of a price ladder.
type PriceSize struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// Order is one of the caller's unmatched or matched orders attached to a
// runner when orderProjection was requested.
type Order struct {
	BetID               string          `json:"betId"`
	OrderType           OrderType       `json:"orderType"`
	Status              OrderStatus     `json:"status"`
	PersistenceType     PersistenceType `json:"persistenceType"`
	Side                Side            `json:"side"`
	Price               float64         `json:"price"`
	Size                float64         `json:"size"`
	BSPLiability        float64         `json:"bspLiability,omitempty"`
	PlacedDate          *time.Time      `json:"placedDate,omitempty"`
	AvgPriceMatched     float64         `json:"avgPriceMatched,omitempty"`
	SizeMatched         float64         `json:"sizeMatched,omitempty"`
	SizeRemaining       float64         `json:"sizeRemaining,omitempty"`
	SizeLapsed          float64         `json:"sizeLapsed,omitempty"`
	SizeCancelled       float64         `json:"sizeCancelled,omitempty"`
	SizeVoided          float64         `json:"sizeVoided,omitempty"`
	CustomerOrderRef    string          `json:"customerOrderRef,omitempty"`
	CustomerStrategyRef string          `json:"customerStrategyRef,omitempty"`
}

// Match is an individual or rolled-up matched amount on a runner.
type Match struct {
	BetID     string     `json:"betId,omitempty"`
	MatchID   string     `json:"matchId,omitempty"`
	Side      Side       `json:"side"`
	Price     float64    `json:"price"`
	Size      float64    `json:"size"`
	MatchDate *time.Time `json:"matchDate,omitempty"`
}

// Matches partitions a runner's matched amounts by side, used when matched
// amounts are broken out per customer strategy reference.
type Matches struct {
	MatchedBacks []Match `json:"matchedBacks,omitempty"`
	MatchedLays  []Match `json:"matchedLays,omitempty"`
}

// KeyLineDescription is the key line of a LINE or RANGE market.
type KeyLineDescription struct {
	KeyLine []KeyLineSelection `json:"keyLine"`
}

// KeyLineSelection is one runner on the key line.
type KeyLineSelection struct {
	SelectionID int64   `json:"selectionId"`
	Handicap    float64 `json:"handicap"`
}

// CurrentOrderSummaryReport pages through the caller's open orders.
type CurrentOrderSummaryReport struct {
	CallMeta
	CurrentOrders []CurrentOrder `json:"currentOrders"`
	MoreAvailable bool           `json:"moreAvailable"`
}

// CurrentOrder is one open or recently completed order.
type CurrentOrder struct {
	BetID                  string                  `json:"betId"`
	MarketID               string                  `json:"marketId"`
	SelectionID            int64                   `json:"selectionId"`
	Handicap               float64                 `json:"handicap"`
	PriceSize              PriceSize               `json:"priceSize"`
	BSPLiability           float64                 `json:"bspLiability"`
	Side                   Side                    `json:"side"`
	Status                 OrderStatus             `json:"status"`
	PersistenceType        PersistenceType         `json:"persistenceType"`
	OrderType              OrderType               `json:"orderType"`
	PlacedDate             *time.Time              `json:"placedDate,omitempty"`
	MatchedDate            *time.Time              `json:"matchedDate,omitempty"`
	AveragePriceMatched    float64                 `json:"averagePriceMatched,omitempty"`
	SizeMatched            float64                 `json:"sizeMatched,omitempty"`
	SizeRemaining          float64                 `json:"sizeRemaining,omitempty"`
	SizeLapsed             float64                 `json:"sizeLapsed,omitempty"`
	SizeCancelled          float64                 `json:"sizeCancelled,omitempty"`
	SizeVoided             float64                 `json:"sizeVoided,omitempty"`
	RegulatorAuthCode      string                  `json:"regulatorAuthCode,omitempty"`
	RegulatorCode          string                  `json:"regulatorCode,omitempty"`
	CustomerOrderRef       string                  `json:"customerOrderRef,omitempty"`
	CustomerStrategyRef    string                  `json:"customerStrategyRef,omitempty"`
	CurrentItemDescription *CurrentItemDescription `json:"currentItemDescription,omitempty"`
}

// CurrentItemDescription carries the market version an order was placed at.
type CurrentItemDescription struct {
	MarketVersion MarketVersion `json:"marketVersion"`
}

// ClearedOrderSummaryReport pages through settled, voided, lapsed or
// cancelled bets.
type ClearedOrderSummaryReport struct {
	CallMeta
	ClearedOrders []ClearedOrder `json:"clearedOrders"`
	MoreAvailable bool           `json:"moreAvailable"`
}

// ClearedOrder is one cleared bet, or one aggregate row when the report was
// grouped.
type ClearedOrder struct {
	EventTypeID         string           `json:"eventTypeId,omitempty"`
	EventID             string           `json:"eventId,omitempty"`
	MarketID            string           `json:"marketId,omitempty"`
	SelectionID         int64            `json:"selectionId,omitempty"`
	Handicap            float64          `json:"handicap,omitempty"`
	BetID               string           `json:"betId,omitempty"`
	PlacedDate          *time.Time       `json:"placedDate,omitempty"`
	PersistenceType     PersistenceType  `json:"persistenceType,omitempty"`
	OrderType           OrderType        `json:"orderType,omitempty"`
	Side                Side             `json:"side,omitempty"`
	ItemDescription     *ItemDescription `json:"itemDescription,omitempty"`
	BetOutcome          string           `json:"betOutcome,omitempty"`
	PriceRequested      float64          `json:"priceRequested,omitempty"`
	SettledDate         *time.Time       `json:"settledDate,omitempty"`
	LastMatchedDate     *time.Time       `json:"lastMatchedDate,omitempty"`
	BetCount            int              `json:"betCount,omitempty"`
	Commission          float64          `json:"commission,omitempty"`
	PriceMatched        float64          `json:"priceMatched,omitempty"`
	PriceReduced        bool             `json:"priceReduced,omitempty"`
	SizeSettled         float64          `json:"sizeSettled,omitempty"`
	Profit              float64          `json:"profit,omitempty"`
	SizeCancelled       float64          `json:"sizeCancelled,omitempty"`
	CustomerOrderRef    string           `json:"customerOrderRef,omitempty"`
	CustomerStrategyRef string           `json:"customerStrategyRef,omitempty"`
}

// ItemDescription is the human-readable context of a cleared bet.
type ItemDescription struct {
	EventTypeDesc   string     `json:"eventTypeDesc,omitempty"`
	EventDesc       string     `json:"eventDesc,omitempty"`
	MarketDesc      string     `json:"marketDesc,omitempty"`
	MarketType      string     `json:"marketType,omitempty"`
	MarketStartTime *time.Time `json:"marketStartTime,omitempty"`
	RunnerDesc      string     `json:"runnerDesc,omitempty"`
	NumberOfWinners int        `json:"numberOfWinners,omitempty"`
	EachWayDivisor  float64    `json:"eachWayDivisor,omitempty"`
}

// MarketProfitAndLoss is the caller's exposure on one market.
type MarketProfitAndLoss struct {
	CallMeta
	MarketID          string                `json:"marketId"`
	CommissionApplied float64               `json:"commissionApplied,omitempty"`
	ProfitAndLosses   []RunnerProfitAndLoss `json:"profitAndLosses"`
}

// RunnerProfitAndLoss is the exposure against one runner.
type RunnerProfitAndLoss struct {
	SelectionID int64   `json:"selectionId"`
	IfWin       float64 `json:"ifWin,omitempty"`
	IfLose      float64 `json:"ifLose,omitempty"`
	IfPlace     float64 `json:"ifPlace,omitempty"`
}

// PlaceExecutionReport is the outcome of a placeOrders call.
type PlaceExecutionReport struct {
	CallMeta
	CustomerRef        string                   `json:"customerRef,omitempty"`
	Status             ExecutionReportStatus    `json:"status"`
	ErrorCode          ExecutionReportErrorCode `json:"errorCode,omitempty"`
	MarketID           string                   `json:"marketId"`
	InstructionReports []PlaceInstructionReport `json:"instructionReports"`
}

// PlaceInstructionReport is the outcome of one place instruction.
type PlaceInstructionReport struct {
	Status              InstructionReportStatus    `json:"status"`
	ErrorCode           InstructionReportErrorCode `json:"errorCode,omitempty"`
	OrderStatus         OrderStatus                `json:"orderStatus,omitempty"`
	Instruction         PlaceInstruction           `json:"instruction"`
	BetID               string                     `json:"betId,omitempty"`
	PlacedDate          *time.Time                 `json:"placedDate,omitempty"`
	AveragePriceMatched float64                    `json:"averagePriceMatched,omitempty"`
	SizeMatched         float64                    `json:"sizeMatched,omitempty"`
}

// CancelExecutionReport is the outcome of a cancelOrders call.
type CancelExecutionReport struct {
	CallMeta
	CustomerRef        string                    `json:"customerRef,omitempty"`
	Status             ExecutionReportStatus     `json:"status"`
	ErrorCode          ExecutionReportErrorCode  `json:"errorCode,omitempty"`
	MarketID           string                    `json:"marketId,omitempty"`
	InstructionReports []CancelInstructionReport `json:"instructionReports"`
}

// CancelInstructionReport is the outcome of one cancel instruction.
type CancelInstructionReport struct {
	Status        InstructionReportStatus    `json:"status"`
	ErrorCode     InstructionReportErrorCode `json:"errorCode,omitempty"`
	Instruction   *CancelInstruction         `json:"instruction,omitempty"`
	SizeCancelled float64                    `json:"sizeCancelled"`
	CancelledDate *time.Time                 `json:"cancelledDate,omitempty"`
}

// UpdateExecutionReport is the outcome of an updateOrders call.
type UpdateExecutionReport struct {
	CallMeta
	CustomerRef        string                    `json:"customerRef,omitempty"`
	Status             ExecutionReportStatus     `json:"status"`
	ErrorCode          ExecutionReportErrorCode  `json:"errorCode,omitempty"`
	MarketID           string                    `json:"marketId"`
	InstructionReports []UpdateInstructionReport `json:"instructionReports"`
}

// UpdateInstructionReport is the outcome of one update instruction.
type UpdateInstructionReport struct {
	Status      InstructionReportStatus    `json:"status"`
	ErrorCode   InstructionReportErrorCode `json:"errorCode,omitempty"`
	Instruction UpdateInstruction          `json:"instruction"`
}

// ReplaceExecutionReport is the outcome of a replaceOrders call.
type ReplaceExecutionReport struct {
	CallMeta
	CustomerRef        string                     `json:"customerRef,omitempty"`
	Status             ExecutionReportStatus      `json:"status"`
	ErrorCode          ExecutionReportErrorCode   `json:"errorCode,omitempty"`
	MarketID           string                     `json:"marketId"`
	InstructionReports []ReplaceInstructionReport `json:"instructionReports"`
}

// ReplaceInstructionReport pairs the cancel and re-place halves of one
// replace instruction.
type ReplaceInstructionReport struct {
	Status                  InstructionReportStatus    `json:"status"`
	ErrorCode               InstructionReportErrorCode `json:"errorCode,omitempty"`
	CancelInstructionReport *CancelInstructionReport   `json:"cancelInstructionReport,omitempty"`
	PlaceInstructionReport  *PlaceInstructionReport    `json:"placeInstructionReport,omitempty"`
}
