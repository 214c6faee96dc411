package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies BETFAIR_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known BETFAIR_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Exchange ──
	setStr(&cfg.Exchange.AppKey, "BETFAIR_APP_KEY")
	setStr(&cfg.Exchange.BettingURL, "BETFAIR_BETTING_URL")
	setStr(&cfg.Exchange.AccountURL, "BETFAIR_ACCOUNT_URL")
	setStr(&cfg.Exchange.IdentityURL, "BETFAIR_IDENTITY_URL")
	setStr(&cfg.Exchange.IdentityCertURL, "BETFAIR_IDENTITY_CERT_URL")
	setStr(&cfg.Exchange.Locale, "BETFAIR_LOCALE")
	setDuration(&cfg.Exchange.Timeout, "BETFAIR_TIMEOUT")
	setFloat64(&cfg.Exchange.RequestsPerSecond, "BETFAIR_REQUESTS_PER_SECOND")
	setInt(&cfg.Exchange.Burst, "BETFAIR_BURST")

	// ── Login ──
	setStr(&cfg.Login.Username, "BETFAIR_USERNAME")
	setStr(&cfg.Login.Password, "BETFAIR_PASSWORD")
	setStr(&cfg.Login.EncryptedPasswordPath, "BETFAIR_ENCRYPTED_PASSWORD_PATH")
	setStr(&cfg.Login.VaultPassphrase, "BETFAIR_VAULT_PASSPHRASE")
	setStr(&cfg.Login.Method, "BETFAIR_LOGIN_METHOD")
	setStr(&cfg.Login.CertFile, "BETFAIR_CERT_FILE")
	setStr(&cfg.Login.KeyFile, "BETFAIR_KEY_FILE")
	setStr(&cfg.Login.P12File, "BETFAIR_P12_FILE")
	setStr(&cfg.Login.P12Password, "BETFAIR_P12_PASSWORD")
	setDuration(&cfg.Login.KeepAliveInterval, "BETFAIR_KEEPALIVE_INTERVAL")

	// ── Postgres ──
	setStr(&cfg.Postgres.DSN, "BETFAIR_POSTGRES_DSN")
	setStr(&cfg.Postgres.DSN, "DATABASE_URL") // compatibility alias
	setStr(&cfg.Postgres.Host, "BETFAIR_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "BETFAIR_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "BETFAIR_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "BETFAIR_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "BETFAIR_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "BETFAIR_POSTGRES_SSLMODE")
	setStr(&cfg.Postgres.SSLMode, "BETFAIR_POSTGRES_SSL_MODE") // compatibility alias
	setInt(&cfg.Postgres.PoolMaxConns, "BETFAIR_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "BETFAIR_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "BETFAIR_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "BETFAIR_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "BETFAIR_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "BETFAIR_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "BETFAIR_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "BETFAIR_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "BETFAIR_REDIS_TLS_ENABLED")
	setDuration(&cfg.Redis.CatalogueTTL, "BETFAIR_REDIS_CATALOGUE_TTL")

	// ── S3 ──
	setStr(&cfg.S3.Endpoint, "BETFAIR_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "BETFAIR_S3_REGION")
	setStr(&cfg.S3.Bucket, "BETFAIR_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "BETFAIR_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "BETFAIR_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "BETFAIR_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "BETFAIR_S3_FORCE_PATH_STYLE")

	// ── Budget ──
	setInt(&cfg.Budget.HourlyLimit, "BETFAIR_BUDGET_HOURLY_LIMIT")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "BETFAIR_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "BETFAIR_SERVER_PORT")
	setStr(&cfg.Server.APIKey, "BETFAIR_SERVER_API_KEY")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "BETFAIR_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "BETFAIR_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "BETFAIR_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "BETFAIR_NOTIFY_EVENTS")

	// ── Job ──
	setStringSlice(&cfg.Job.EventTypeIDs, "BETFAIR_JOB_EVENT_TYPE_IDS")
	setStringSlice(&cfg.Job.CompetitionIDs, "BETFAIR_JOB_COMPETITION_IDS")
	setStringSlice(&cfg.Job.MarketIDs, "BETFAIR_JOB_MARKET_IDS")
	setInt(&cfg.Job.MaxMarkets, "BETFAIR_JOB_MAX_MARKETS")
	setStr(&cfg.Job.SettledFrom, "BETFAIR_JOB_SETTLED_FROM")
	setStr(&cfg.Job.SettledTo, "BETFAIR_JOB_SETTLED_TO")
	setInt(&cfg.Job.SettledDays, "BETFAIR_JOB_SETTLED_DAYS")
	setStr(&cfg.Job.MarketID, "BETFAIR_JOB_MARKET_ID")
	setInt64(&cfg.Job.SelectionID, "BETFAIR_JOB_SELECTION_ID")
	setStr(&cfg.Job.Side, "BETFAIR_JOB_SIDE")
	setFloat64(&cfg.Job.Price, "BETFAIR_JOB_PRICE")
	setFloat64(&cfg.Job.Size, "BETFAIR_JOB_SIZE")
	setStr(&cfg.Job.Persistence, "BETFAIR_JOB_PERSISTENCE")
	setStr(&cfg.Job.CustomerRef, "BETFAIR_JOB_CUSTOMER_REF")
	setStr(&cfg.Job.BetID, "BETFAIR_JOB_BET_ID")

	// ── Top-level ──
	setStr(&cfg.Mode, "BETFAIR_MODE")
	setStr(&cfg.LogLevel, "BETFAIR_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
