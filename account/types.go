package account

import "time"

// Wallet names the exchange wallet an operation reads. The Australian
// wallet was merged into the UK one; the vocabulary survives for API
// compatibility.
type Wallet string

const (
	WalletUK Wallet = "UK"
)

// IncludeItem filters which statement entries are returned.
type IncludeItem string

const (
	IncludeItemAll                 IncludeItem = "ALL"
	IncludeItemDepositsWithdrawals IncludeItem = "DEPOSITS_WITHDRAWALS"
	IncludeItemExchange            IncludeItem = "EXCHANGE"
	IncludeItemPokerRoom           IncludeItem = "POKER_ROOM"
)

// ItemClass classifies a statement entry. Everything the exchange knows how
// to describe arrives as UNKNOWN with the detail in the legacy fields.
type ItemClass string

const (
	ItemClassUnknown ItemClass = "UNKNOWN"
)

// TimeRange bounds a statement query. Either end may be open.
type TimeRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// AccountFunds is the funds snapshot of one wallet.
type AccountFunds struct {
	CallMeta
	AvailableToBetBalance float64 `json:"availableToBetBalance"`
	Exposure              float64 `json:"exposure"`
	RetainedCommission    float64 `json:"retainedCommission"`
	ExposureLimit         float64 `json:"exposureLimit"`
	DiscountRate          float64 `json:"discountRate"`
	PointsBalance         int     `json:"pointsBalance"`
	Wallet                string  `json:"wallet,omitempty"`
}

// AccountDetails is the static profile of the authenticated account.
type AccountDetails struct {
	CallMeta
	CurrencyCode  string  `json:"currencyCode"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	LocaleCode    string  `json:"localeCode"`
	Region        string  `json:"region"`
	Timezone      string  `json:"timezone"`
	DiscountRate  float64 `json:"discountRate"`
	PointsBalance int     `json:"pointsBalance"`
	CountryCode   string  `json:"countryCode"`
}

// AccountStatementReport pages through account statement entries.
type AccountStatementReport struct {
	CallMeta
	AccountStatement []StatementItem `json:"accountStatement"`
	MoreAvailable    bool            `json:"moreAvailable"`
}

// StatementItem is one ledger entry. The typed fields cover the modern
// shape; older entry kinds surface through LegacyData only.
type StatementItem struct {
	RefID         string               `json:"refId,omitempty"`
	ItemDate      time.Time            `json:"itemDate"`
	Amount        float64              `json:"amount,omitempty"`
	Balance       float64              `json:"balance,omitempty"`
	ItemClass     ItemClass            `json:"itemClass,omitempty"`
	ItemClassData map[string]string    `json:"itemClassData,omitempty"`
	LegacyData    *StatementLegacyData `json:"legacyData,omitempty"`
}

// StatementLegacyData is the pre-APING description of a statement entry.
type StatementLegacyData struct {
	AvgPrice        float64    `json:"avgPrice,omitempty"`
	BetSize         float64    `json:"betSize,omitempty"`
	BetType         string     `json:"betType,omitempty"`
	BetCategoryType string     `json:"betCategoryType,omitempty"`
	CommissionRate  string     `json:"commissionRate,omitempty"`
	EventID         int64      `json:"eventId,omitempty"`
	EventTypeID     int64      `json:"eventTypeId,omitempty"`
	FullMarketName  string     `json:"fullMarketName,omitempty"`
	GrossBetAmount  float64    `json:"grossBetAmount,omitempty"`
	MarketName      string     `json:"marketName,omitempty"`
	MarketType      string     `json:"marketType,omitempty"`
	PlacedDate      *time.Time `json:"placedDate,omitempty"`
	SelectionID     int64      `json:"selectionId,omitempty"`
	SelectionName   string     `json:"selectionName,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	TransactionType string     `json:"transactionType,omitempty"`
	TransactionID   int64      `json:"transactionId,omitempty"`
	WinLose         string     `json:"winLose,omitempty"`
}

// CurrencyRate is one exchange rate from the account's base currency.
type CurrencyRate struct {
	CallMeta
	CurrencyCode string  `json:"currencyCode"`
	Rate         float64 `json:"rate"`
}
