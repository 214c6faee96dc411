// Package config defines the top-level configuration for betctl and
// provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by BETFAIR_* environment variables.
type Config struct {
	Exchange Exchange       `toml:"exchange"`
	Login    LoginConfig    `toml:"login"`
	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
	S3       S3Config       `toml:"s3"`
	Budget   BudgetConfig   `toml:"budget"`
	Server   ServerConfig   `toml:"server"`
	Notify   NotifyConfig   `toml:"notify"`
	Job      JobConfig      `toml:"job"`
	Mode     string         `toml:"mode"`
	LogLevel string         `toml:"log_level"`
}

// Exchange holds the application key, endpoint overrides and client-side
// throttling for the exchange API.
type Exchange struct {
	AppKey            string   `toml:"app_key"`
	BettingURL        string   `toml:"betting_url"`
	AccountURL        string   `toml:"account_url"`
	IdentityURL       string   `toml:"identity_url"`
	IdentityCertURL   string   `toml:"identity_cert_url"`
	Locale            string   `toml:"locale"`
	Timeout           duration `toml:"timeout"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	Burst             int      `toml:"burst"`
}

// LoginConfig holds exchange credentials. Password may be given in plaintext
// or as an encrypted vault file plus passphrase; plaintext wins when both
// are set. Method selects certificate or interactive login.
type LoginConfig struct {
	Username              string   `toml:"username"`
	Password              string   `toml:"password"`
	EncryptedPasswordPath string   `toml:"encrypted_password_path"`
	VaultPassphrase       string   `toml:"vault_passphrase"`
	Method                string   `toml:"method"`
	CertFile              string   `toml:"cert_file"`
	KeyFile               string   `toml:"key_file"`
	P12File               string   `toml:"p12_file"`
	P12Password           string   `toml:"p12_password"`
	KeepAliveInterval     duration `toml:"keepalive_interval"`
}

// PostgresConfig holds PostgreSQL connection parameters for the audit and
// settlement stores.
type PostgresConfig struct {
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr         string   `toml:"addr"`
	Password     string   `toml:"password"`
	DB           int      `toml:"db"`
	PoolSize     int      `toml:"pool_size"`
	MaxRetries   int      `toml:"max_retries"`
	TLSEnabled   bool     `toml:"tls_enabled"`
	CatalogueTTL duration `toml:"catalogue_ttl"`
}

// S3Config holds S3-compatible object storage parameters for the settlement
// archive.
type S3Config struct {
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// BudgetConfig bounds charged order transactions. The exchange bills
// transactions above the hourly allowance, so the budget refuses order calls
// once the window is spent.
type BudgetConfig struct {
	HourlyLimit int `toml:"hourly_limit"`
}

// ServerConfig holds ops HTTP server parameters. An empty APIKey disables
// request authentication.
type ServerConfig struct {
	Enabled bool   `toml:"enabled"`
	Port    int    `toml:"port"`
	APIKey  string `toml:"api_key"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// JobConfig parameterises the one-shot modes: which markets the catalogue and
// book jobs cover, the settlement window, and the order the place and cancel
// jobs act on.
type JobConfig struct {
	EventTypeIDs   []string `toml:"event_type_ids"`
	CompetitionIDs []string `toml:"competition_ids"`
	MarketIDs      []string `toml:"market_ids"`
	MaxMarkets     int      `toml:"max_markets"`

	// Settlement window. Explicit RFC3339 bounds win; otherwise the settled
	// job covers the last SettledDays days.
	SettledFrom string `toml:"settled_from"`
	SettledTo   string `toml:"settled_to"`
	SettledDays int    `toml:"settled_days"`

	// Order parameters for the place and cancel jobs. An empty BetID cancels
	// everything on MarketID; both empty cancels all open orders.
	MarketID    string  `toml:"market_id"`
	SelectionID int64   `toml:"selection_id"`
	Side        string  `toml:"side"`
	Price       float64 `toml:"price"`
	Size        float64 `toml:"size"`
	Persistence string  `toml:"persistence"`
	CustomerRef string  `toml:"customer_ref"`
	BetID       string  `toml:"bet_id"`
}

// duration is a wrapper around time.Duration that supports TOML string decoding
// (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
// These match the values in config.example.toml.
func Defaults() Config {
	return Config{
		Exchange: Exchange{
			BettingURL:        "https://api.betfair.com/exchange/betting/json-rpc/v1",
			AccountURL:        "https://api.betfair.com/exchange/account/json-rpc/v1",
			IdentityURL:       "https://identitysso.betfair.com/api/",
			IdentityCertURL:   "https://identitysso-cert.betfair.com/api/",
			Timeout:           duration{30 * time.Second},
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Login: LoginConfig{
			Method:            "cert",
			KeepAliveInterval: duration{time.Hour},
		},
		Postgres: PostgresConfig{
			Host:          "localhost",
			Port:          5432,
			Database:      "betfair",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Addr:         "localhost:6379",
			DB:           0,
			PoolSize:     20,
			MaxRetries:   3,
			TLSEnabled:   false,
			CatalogueTTL: duration{5 * time.Minute},
		},
		S3: S3Config{
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "betctl-data",
			UseSSL:         false,
			ForcePathStyle: true,
		},
		Budget: BudgetConfig{
			HourlyLimit: 1000,
		},
		Server: ServerConfig{
			Enabled: true,
			Port:    8000,
		},
		Notify: NotifyConfig{
			Events: []string{"order_placed", "order_cancelled", "settlement", "error"},
		},
		Job: JobConfig{
			MaxMarkets:  25,
			SettledDays: 7,
			Side:        "BACK",
			Persistence: "LAPSE",
		},
		Mode:     "markets",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"login":   true,
	"markets": true,
	"book":    true,
	"orders":  true,
	"place":   true,
	"cancel":  true,
	"settled": true,
	"account": true,
	"serve":   true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLoginMethods enumerates the accepted values for LoginConfig.Method.
var validLoginMethods = map[string]bool{
	"cert":        true,
	"interactive": true,
}

// NeedsPostgres reports whether mode persists audit or settlement rows.
func NeedsPostgres(mode string) bool {
	switch mode {
	case "place", "cancel", "settled", "serve":
		return true
	}
	return false
}

// NeedsRedis reports whether mode reads or writes the catalogue cache, the
// transaction budget or the archive lock.
func NeedsRedis(mode string) bool {
	switch mode {
	case "markets", "place", "cancel", "settled", "serve":
		return true
	}
	return false
}

// NeedsS3 reports whether mode appends to the settlement archive.
func NeedsS3(mode string) bool {
	return mode == "settled"
}

// Validate checks Config for obviously invalid or missing values and returns a
// combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	// Mode
	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: login, markets, book, orders, place, cancel, settled, account, serve)", c.Mode))
	}

	// LogLevel
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Exchange
	if c.Exchange.AppKey == "" {
		errs = append(errs, "exchange: app_key must not be empty")
	}
	if c.Exchange.RequestsPerSecond < 0 {
		errs = append(errs, "exchange: requests_per_second must be >= 0")
	}
	if c.Exchange.Burst < 0 {
		errs = append(errs, "exchange: burst must be >= 0")
	}

	// Login — every mode talks to the exchange, so credentials are always
	// required; the password may come from the vault instead of plaintext.
	if c.Login.Username == "" {
		errs = append(errs, "login: username must not be empty")
	}
	if c.Login.Password == "" && c.Login.EncryptedPasswordPath == "" {
		errs = append(errs, "login: either password or encrypted_password_path must be set")
	}
	if c.Login.EncryptedPasswordPath != "" && c.Login.VaultPassphrase == "" {
		errs = append(errs, "login: vault_passphrase is required when encrypted_password_path is set")
	}
	if !validLoginMethods[strings.ToLower(c.Login.Method)] {
		errs = append(errs, fmt.Sprintf("login: unknown method %q (valid: cert, interactive)", c.Login.Method))
	}
	if strings.ToLower(c.Login.Method) == "cert" {
		pemPair := c.Login.CertFile != "" && c.Login.KeyFile != ""
		if !pemPair && c.Login.P12File == "" {
			errs = append(errs, "login: cert method needs cert_file+key_file or p12_file")
		}
	}
	if c.Login.KeepAliveInterval.Duration <= 0 {
		errs = append(errs, "login: keepalive_interval must be > 0")
	}

	// Postgres
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		if c.Postgres.Host == "" {
			errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
		}
		if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
			errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
		}
		if c.Postgres.Database == "" {
			errs = append(errs, "postgres: database must not be empty")
		}
	}
	if c.Postgres.PoolMaxConns < 1 {
		errs = append(errs, "postgres: pool_max_conns must be >= 1")
	}
	if c.Postgres.PoolMinConns < 0 {
		errs = append(errs, "postgres: pool_min_conns must be >= 0")
	}
	if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
		errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
	}

	// Redis
	if c.Redis.Addr == "" {
		errs = append(errs, "redis: addr must not be empty")
	}
	if c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}
	if c.Redis.CatalogueTTL.Duration <= 0 {
		errs = append(errs, "redis: catalogue_ttl must be > 0")
	}

	// S3
	if c.S3.Endpoint == "" {
		errs = append(errs, "s3: endpoint must not be empty")
	}
	if c.S3.Bucket == "" {
		errs = append(errs, "s3: bucket must not be empty")
	}

	// Budget
	if c.Budget.HourlyLimit < 0 {
		errs = append(errs, "budget: hourly_limit must be >= 0")
	}

	// Job
	switch strings.ToUpper(c.Job.Side) {
	case "BACK", "LAY":
	default:
		errs = append(errs, fmt.Sprintf("job: side must be BACK or LAY, got %q", c.Job.Side))
	}
	switch strings.ToUpper(c.Job.Persistence) {
	case "LAPSE", "PERSIST", "MARKET_ON_CLOSE":
	default:
		errs = append(errs, fmt.Sprintf("job: persistence must be LAPSE, PERSIST or MARKET_ON_CLOSE, got %q", c.Job.Persistence))
	}
	if c.Job.MaxMarkets < 1 {
		errs = append(errs, "job: max_markets must be >= 1")
	}
	if c.Job.Price < 0 {
		errs = append(errs, "job: price must be >= 0")
	}
	if c.Job.Size < 0 {
		errs = append(errs, "job: size must be >= 0")
	}
	if c.Job.SettledDays < 1 {
		errs = append(errs, "job: settled_days must be >= 1")
	}
	if c.Job.SettledFrom != "" {
		if _, err := time.Parse(time.RFC3339, c.Job.SettledFrom); err != nil {
			errs = append(errs, fmt.Sprintf("job: settled_from must be RFC3339: %v", err))
		}
	}
	if c.Job.SettledTo != "" {
		if _, err := time.Parse(time.RFC3339, c.Job.SettledTo); err != nil {
			errs = append(errs, fmt.Sprintf("job: settled_to must be RFC3339: %v", err))
		}
	}

	// Server
	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
