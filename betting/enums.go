package betting

// The exchange's closed vocabularies. Members are transmitted verbatim as
// request parameter values and come back verbatim in responses, so the
// string value of every constant matches the remote contract exactly.

// MarketProjection selects optional facets to include when describing a
// market in listMarketCatalogue.
type MarketProjection string

const (
	MarketProjectionCompetition       MarketProjection = "COMPETITION"
	MarketProjectionEvent             MarketProjection = "EVENT"
	MarketProjectionEventType         MarketProjection = "EVENT_TYPE"
	MarketProjectionMarketStartTime   MarketProjection = "MARKET_START_TIME"
	MarketProjectionMarketDescription MarketProjection = "MARKET_DESCRIPTION"
	MarketProjectionRunnerDescription MarketProjection = "RUNNER_DESCRIPTION"
	MarketProjectionRunnerMetadata    MarketProjection = "RUNNER_METADATA"
)

// PriceData selects which price ladder components to return in a market book.
type PriceData string

const (
	PriceDataSPAvailable  PriceData = "SP_AVAILABLE"
	PriceDataSPTraded     PriceData = "SP_TRADED"
	PriceDataExBestOffers PriceData = "EX_BEST_OFFERS"
	PriceDataExAllOffers  PriceData = "EX_ALL_OFFERS"
	PriceDataExTraded     PriceData = "EX_TRADED"
)

// MatchProjection controls how matched amounts are rolled up.
type MatchProjection string

const (
	MatchProjectionNoRollup           MatchProjection = "NO_ROLLUP"
	MatchProjectionRolledUpByPrice    MatchProjection = "ROLLED_UP_BY_PRICE"
	MatchProjectionRolledUpByAvgPrice MatchProjection = "ROLLED_UP_BY_AVG_PRICE"
)

// OrderProjection restricts which order lifecycle subset is returned.
type OrderProjection string

const (
	OrderProjectionAll               OrderProjection = "ALL"
	OrderProjectionExecutable        OrderProjection = "EXECUTABLE"
	OrderProjectionExecutionComplete OrderProjection = "EXECUTION_COMPLETE"
)

// MarketStatus is the lifecycle state of a market.
type MarketStatus string

const (
	MarketStatusInactive  MarketStatus = "INACTIVE"
	MarketStatusOpen      MarketStatus = "OPEN"
	MarketStatusSuspended MarketStatus = "SUSPENDED"
	MarketStatusClosed    MarketStatus = "CLOSED"
)

// RunnerStatus is the lifecycle state of a runner within a market.
type RunnerStatus string

const (
	RunnerStatusActive        RunnerStatus = "ACTIVE"
	RunnerStatusWinner        RunnerStatus = "WINNER"
	RunnerStatusLoser         RunnerStatus = "LOSER"
	RunnerStatusPlaced        RunnerStatus = "PLACED"
	RunnerStatusRemovedVacant RunnerStatus = "REMOVED_VACANT"
	RunnerStatusRemoved       RunnerStatus = "REMOVED"
	RunnerStatusHidden        RunnerStatus = "HIDDEN"
)

// TimeGranularity buckets listTimeRanges results.
type TimeGranularity string

const (
	TimeGranularityDays    TimeGranularity = "DAYS"
	TimeGranularityHours   TimeGranularity = "HOURS"
	TimeGranularityMinutes TimeGranularity = "MINUTES"
)

// Side distinguishes backing an outcome from laying it.
type Side string

const (
	SideBack Side = "BACK"
	SideLay  Side = "LAY"
)

// OrderStatus is the execution state of a submitted order.
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "PENDING"
	OrderStatusExecutionComplete OrderStatus = "EXECUTION_COMPLETE"
	OrderStatusExecutable        OrderStatus = "EXECUTABLE"
	OrderStatusExpired           OrderStatus = "EXPIRED"
)

// OrderBy chooses the ordering dimension for order listings.
type OrderBy string

const (
	OrderByBet         OrderBy = "BY_BET"
	OrderByMarket      OrderBy = "BY_MARKET"
	OrderByMatchTime   OrderBy = "BY_MATCH_TIME"
	OrderByPlaceTime   OrderBy = "BY_PLACE_TIME"
	OrderBySettledTime OrderBy = "BY_SETTLED_TIME"
	OrderByVoidTime    OrderBy = "BY_VOID_TIME"
)

// SortDir orders result sets in time.
type SortDir string

const (
	SortDirEarliestToLatest SortDir = "EARLIEST_TO_LATEST"
	SortDirLatestToEarliest SortDir = "LATEST_TO_EARLIEST"
)

// OrderType is the placement kind of a bet.
type OrderType string

const (
	OrderTypeLimit         OrderType = "LIMIT"
	OrderTypeLimitOnClose  OrderType = "LIMIT_ON_CLOSE"
	OrderTypeMarketOnClose OrderType = "MARKET_ON_CLOSE"
)

// MarketSort orders listMarketCatalogue results.
type MarketSort string

const (
	MarketSortMinimumTraded    MarketSort = "MINIMUM_TRADED"
	MarketSortMaximumTraded    MarketSort = "MAXIMUM_TRADED"
	MarketSortMinimumAvailable MarketSort = "MINIMUM_AVAILABLE"
	MarketSortMaximumAvailable MarketSort = "MAXIMUM_AVAILABLE"
	MarketSortFirstToStart     MarketSort = "FIRST_TO_START"
	MarketSortLastToStart      MarketSort = "LAST_TO_START"
)

// MarketBettingType classifies how a market's odds are represented.
type MarketBettingType string

const (
	MarketBettingTypeOdds                    MarketBettingType = "ODDS"
	MarketBettingTypeLine                    MarketBettingType = "LINE"
	MarketBettingTypeRange                   MarketBettingType = "RANGE"
	MarketBettingTypeAsianHandicapDoubleLine MarketBettingType = "ASIAN_HANDICAP_DOUBLE_LINE"
	MarketBettingTypeAsianHandicapSingleLine MarketBettingType = "ASIAN_HANDICAP_SINGLE_LINE"
	MarketBettingTypeFixedOdds               MarketBettingType = "FIXED_ODDS"
)

// ExecutionReportStatus is the overall outcome of a bulk order operation.
type ExecutionReportStatus string

const (
	ExecutionReportStatusSuccess             ExecutionReportStatus = "SUCCESS"
	ExecutionReportStatusFailure             ExecutionReportStatus = "FAILURE"
	ExecutionReportStatusProcessedWithErrors ExecutionReportStatus = "PROCESSED_WITH_ERRORS"
	ExecutionReportStatusTimeout             ExecutionReportStatus = "TIMEOUT"
)

// ExecutionReportErrorCode names the rejection reason for a whole bulk order
// operation. These arrive inside successful transport responses; they are
// business outcomes, not raised errors.
type ExecutionReportErrorCode string

const (
	ExecutionReportErrorCodeErrorInMatcher          ExecutionReportErrorCode = "ERROR_IN_MATCHER"
	ExecutionReportErrorCodeProcessedWithErrors     ExecutionReportErrorCode = "PROCESSED_WITH_ERRORS"
	ExecutionReportErrorCodeBetActionError          ExecutionReportErrorCode = "BET_ACTION_ERROR"
	ExecutionReportErrorCodeInvalidAccountState     ExecutionReportErrorCode = "INVALID_ACCOUNT_STATE"
	ExecutionReportErrorCodeInvalidWalletStatus     ExecutionReportErrorCode = "INVALID_WALLET_STATUS"
	ExecutionReportErrorCodeInsufficientFunds       ExecutionReportErrorCode = "INSUFFICIENT_FUNDS"
	ExecutionReportErrorCodeLossLimitExceeded       ExecutionReportErrorCode = "LOSS_LIMIT_EXCEEDED"
	ExecutionReportErrorCodeMarketSuspended         ExecutionReportErrorCode = "MARKET_SUSPENDED"
	ExecutionReportErrorCodeMarketNotOpenForBetting ExecutionReportErrorCode = "MARKET_NOT_OPEN_FOR_BETTING"
	ExecutionReportErrorCodeDuplicateTransaction    ExecutionReportErrorCode = "DUPLICATE_TRANSACTION"
	ExecutionReportErrorCodeInvalidOrder            ExecutionReportErrorCode = "INVALID_ORDER"
	ExecutionReportErrorCodeInvalidMarketID         ExecutionReportErrorCode = "INVALID_MARKET_ID"
	ExecutionReportErrorCodePermissionDenied        ExecutionReportErrorCode = "PERMISSION_DENIED"
	ExecutionReportErrorCodeDuplicateBetIDs         ExecutionReportErrorCode = "DUPLICATE_BETIDS"
	ExecutionReportErrorCodeNoActionRequired        ExecutionReportErrorCode = "NO_ACTION_REQUIRED"
	ExecutionReportErrorCodeServiceUnavailable      ExecutionReportErrorCode = "SERVICE_UNAVAILABLE"
	ExecutionReportErrorCodeRejectedByRegulator     ExecutionReportErrorCode = "REJECTED_BY_REGULATOR"
	ExecutionReportErrorCodeNoChasing               ExecutionReportErrorCode = "NO_CHASING"
	ExecutionReportErrorCodeRegulatorIsNotAvailable ExecutionReportErrorCode = "REGULATOR_IS_NOT_AVAILABLE"
	ExecutionReportErrorCodeTooManyInstructions     ExecutionReportErrorCode = "TOO_MANY_INSTRUCTIONS"
	ExecutionReportErrorCodeInvalidMarketVersion    ExecutionReportErrorCode = "INVALID_MARKET_VERSION"
	ExecutionReportErrorCodeInvalidProfitRatio      ExecutionReportErrorCode = "INVALID_PROFIT_RATIO"
)

// PersistenceType is what happens to an unmatched bet when its market turns
// in-play.
type PersistenceType string

const (
	PersistenceTypeLapse         PersistenceType = "LAPSE"
	PersistenceTypePersist       PersistenceType = "PERSIST"
	PersistenceTypeMarketOnClose PersistenceType = "MARKET_ON_CLOSE"
)

// InstructionReportStatus is the outcome of one instruction inside a bulk
// order operation.
type InstructionReportStatus string

const (
	InstructionReportStatusSuccess InstructionReportStatus = "SUCCESS"
	InstructionReportStatusFailure InstructionReportStatus = "FAILURE"
	InstructionReportStatusTimeout InstructionReportStatus = "TIMEOUT"
)

// InstructionReportErrorCode names the rejection reason for one instruction.
type InstructionReportErrorCode string

const (
	InstructionReportErrorCodeInvalidBetSize                    InstructionReportErrorCode = "INVALID_BET_SIZE"
	InstructionReportErrorCodeInvalidRunner                     InstructionReportErrorCode = "INVALID_RUNNER"
	InstructionReportErrorCodeBetTakenOrLapsed                  InstructionReportErrorCode = "BET_TAKEN_OR_LAPSED"
	InstructionReportErrorCodeBetInProgress                     InstructionReportErrorCode = "BET_IN_PROGRESS"
	InstructionReportErrorCodeRunnerRemoved                     InstructionReportErrorCode = "RUNNER_REMOVED"
	InstructionReportErrorCodeMarketNotOpenForBetting           InstructionReportErrorCode = "MARKET_NOT_OPEN_FOR_BETTING"
	InstructionReportErrorCodeLossLimitExceeded                 InstructionReportErrorCode = "LOSS_LIMIT_EXCEEDED"
	InstructionReportErrorCodeMarketNotOpenForBSPBetting        InstructionReportErrorCode = "MARKET_NOT_OPEN_FOR_BSP_BETTING"
	InstructionReportErrorCodeInvalidPriceEdit                  InstructionReportErrorCode = "INVALID_PRICE_EDIT"
	InstructionReportErrorCodeInvalidOdds                       InstructionReportErrorCode = "INVALID_ODDS"
	InstructionReportErrorCodeInsufficientFunds                 InstructionReportErrorCode = "INSUFFICIENT_FUNDS"
	InstructionReportErrorCodeInvalidPersistenceType            InstructionReportErrorCode = "INVALID_PERSISTENCE_TYPE"
	InstructionReportErrorCodeErrorInMatcher                    InstructionReportErrorCode = "ERROR_IN_MATCHER"
	InstructionReportErrorCodeInvalidBackLayCombination         InstructionReportErrorCode = "INVALID_BACK_LAY_COMBINATION"
	InstructionReportErrorCodeErrorInOrder                      InstructionReportErrorCode = "ERROR_IN_ORDER"
	InstructionReportErrorCodeInvalidBidType                    InstructionReportErrorCode = "INVALID_BID_TYPE"
	InstructionReportErrorCodeInvalidBetID                      InstructionReportErrorCode = "INVALID_BET_ID"
	InstructionReportErrorCodeCancelledNotPlaced                InstructionReportErrorCode = "CANCELLED_NOT_PLACED"
	InstructionReportErrorCodeRelatedActionFailed               InstructionReportErrorCode = "RELATED_ACTION_FAILED"
	InstructionReportErrorCodeNoActionRequired                  InstructionReportErrorCode = "NO_ACTION_REQUIRED"
	InstructionReportErrorCodeTimeInForceConflict               InstructionReportErrorCode = "TIME_IN_FORCE_CONFLICT"
	InstructionReportErrorCodeUnexpectedPersistenceType         InstructionReportErrorCode = "UNEXPECTED_PERSISTENCE_TYPE"
	InstructionReportErrorCodeInvalidOrderType                  InstructionReportErrorCode = "INVALID_ORDER_TYPE"
	InstructionReportErrorCodeUnexpectedMinFillSize             InstructionReportErrorCode = "UNEXPECTED_MIN_FILL_SIZE"
	InstructionReportErrorCodeInvalidCustomerOrderRef           InstructionReportErrorCode = "INVALID_CUSTOMER_ORDER_REF"
	InstructionReportErrorCodeInvalidMinFillSize                InstructionReportErrorCode = "INVALID_MIN_FILL_SIZE"
	InstructionReportErrorCodeBetLapsedPriceImprovementTooLarge InstructionReportErrorCode = "BET_LAPSED_PRICE_IMPROVEMENT_TOO_LARGE"
)

// GroupBy is the aggregation dimension for cleared-order reports.
type GroupBy string

const (
	GroupByEventType GroupBy = "EVENT_TYPE"
	GroupByEvent     GroupBy = "EVENT"
	GroupByMarket    GroupBy = "MARKET"
	GroupBySide      GroupBy = "SIDE"
	GroupByBet       GroupBy = "BET"
)

// BetStatus is the settlement state filter for cleared-order reports.
type BetStatus string

const (
	BetStatusSettled   BetStatus = "SETTLED"
	BetStatusVoided    BetStatus = "VOIDED"
	BetStatusLapsed    BetStatus = "LAPSED"
	BetStatusCancelled BetStatus = "CANCELLED"
)

// TimeInForce restricts how a limit order may execute.
type TimeInForce string

const (
	TimeInForceFillOrKill TimeInForce = "FILL_OR_KILL"
)

// BetTargetType lets a limit order be sized by target payout or profit
// instead of stake.
type BetTargetType string

const (
	BetTargetTypeBackersProfit BetTargetType = "BACKERS_PROFIT"
	BetTargetTypePayout        BetTargetType = "PAYOUT"
)

// PriceLadderType is the structure of a market's price ladder.
type PriceLadderType string

const (
	PriceLadderTypeClassic   PriceLadderType = "CLASSIC"
	PriceLadderTypeFinest    PriceLadderType = "FINEST"
	PriceLadderTypeLineRange PriceLadderType = "LINE_RANGE"
)
