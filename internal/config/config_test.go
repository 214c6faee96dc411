package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfigFile(t, `
mode = "orders"
log_level = "debug"

[exchange]
app_key = "file-app-key"
requests_per_second = 4.0

[login]
username = "file-user"
password = "file-pass"
method = "interactive"
keepalive_interval = "30m"

[redis]
catalogue_ttl = "90s"
`)

	t.Setenv("BETFAIR_APP_KEY", "env-app-key")
	t.Setenv("BETFAIR_MODE", "account")
	t.Setenv("BETFAIR_KEEPALIVE_INTERVAL", "15m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// env beats file
	if cfg.Exchange.AppKey != "env-app-key" {
		t.Errorf("AppKey = %q, want env override", cfg.Exchange.AppKey)
	}
	if cfg.Mode != "account" {
		t.Errorf("Mode = %q, want env override", cfg.Mode)
	}
	if cfg.Login.KeepAliveInterval.Duration != 15*time.Minute {
		t.Errorf("KeepAliveInterval = %v, want 15m", cfg.Login.KeepAliveInterval.Duration)
	}

	// file beats defaults
	if cfg.Exchange.RequestsPerSecond != 4.0 {
		t.Errorf("RequestsPerSecond = %v, want 4.0 from file", cfg.Exchange.RequestsPerSecond)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug from file", cfg.LogLevel)
	}
	if cfg.Redis.CatalogueTTL.Duration != 90*time.Second {
		t.Errorf("CatalogueTTL = %v, want 90s from file", cfg.Redis.CatalogueTTL.Duration)
	}

	// untouched fields keep defaults
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want default 5432", cfg.Postgres.Port)
	}
	if cfg.Exchange.BettingURL == "" {
		t.Error("BettingURL default missing")
	}
	if cfg.Budget.HourlyLimit != 1000 {
		t.Errorf("Budget.HourlyLimit = %d, want default 1000", cfg.Budget.HourlyLimit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func validConfig() Config {
	cfg := Defaults()
	cfg.Exchange.AppKey = "app-key"
	cfg.Login.Username = "user"
	cfg.Login.Password = "pass"
	cfg.Login.Method = "interactive"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown mode", func(c *Config) { c.Mode = "turbo" }, "unknown mode"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "unknown log_level"},
		{"missing app key", func(c *Config) { c.Exchange.AppKey = "" }, "app_key"},
		{"missing username", func(c *Config) { c.Login.Username = "" }, "username"},
		{"no password source", func(c *Config) { c.Login.Password = "" }, "password or encrypted_password_path"},
		{"vault without passphrase", func(c *Config) {
			c.Login.Password = ""
			c.Login.EncryptedPasswordPath = "/secrets/pw.vault"
		}, "vault_passphrase"},
		{"cert method without certs", func(c *Config) { c.Login.Method = "cert" }, "cert_file+key_file or p12_file"},
		{"cert method with p12", func(c *Config) {
			c.Login.Method = "cert"
			c.Login.P12File = "/secrets/client.p12"
		}, ""},
		{"zero keepalive", func(c *Config) { c.Login.KeepAliveInterval.Duration = 0 }, "keepalive_interval"},
		{"bad postgres port", func(c *Config) { c.Postgres.Port = 70000 }, "postgres: port"},
		{"pool min above max", func(c *Config) { c.Postgres.PoolMinConns = 20 }, "pool_min_conns"},
		{"empty redis addr", func(c *Config) { c.Redis.Addr = "" }, "redis: addr"},
		{"negative budget", func(c *Config) { c.Budget.HourlyLimit = -1 }, "hourly_limit"},
		{"bad server port", func(c *Config) { c.Server.Port = 0 }, "server: port"},
		{"bad job side", func(c *Config) { c.Job.Side = "BUY" }, "job: side"},
		{"lowercase job side ok", func(c *Config) { c.Job.Side = "lay" }, ""},
		{"bad persistence", func(c *Config) { c.Job.Persistence = "KEEP" }, "job: persistence"},
		{"zero max markets", func(c *Config) { c.Job.MaxMarkets = 0 }, "max_markets"},
		{"negative price", func(c *Config) { c.Job.Price = -2 }, "job: price"},
		{"zero settled days", func(c *Config) { c.Job.SettledDays = 0 }, "settled_days"},
		{"bad settled from", func(c *Config) { c.Job.SettledFrom = "yesterday" }, "settled_from"},
		{"good settled window", func(c *Config) {
			c.Job.SettledFrom = "2026-08-01T00:00:00Z"
			c.Job.SettledTo = "2026-08-08T00:00:00Z"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Exchange.AppKey = ""
	cfg.Login.Username = ""
	cfg.Redis.Addr = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"app_key", "username", "redis: addr"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestModeGates(t *testing.T) {
	tests := []struct {
		mode                string
		postgres, redis, s3 bool
	}{
		{"login", false, false, false},
		{"markets", false, true, false},
		{"book", false, false, false},
		{"orders", false, false, false},
		{"place", true, true, false},
		{"cancel", true, true, false},
		{"settled", true, true, true},
		{"account", false, false, false},
		{"serve", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if got := NeedsPostgres(tt.mode); got != tt.postgres {
				t.Errorf("NeedsPostgres = %v, want %v", got, tt.postgres)
			}
			if got := NeedsRedis(tt.mode); got != tt.redis {
				t.Errorf("NeedsRedis = %v, want %v", got, tt.redis)
			}
			if got := NeedsS3(tt.mode); got != tt.s3 {
				t.Errorf("NeedsS3 = %v, want %v", got, tt.s3)
			}
		})
	}
}

func TestRedactedConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Exchange.AppKey = "secret-app-key"
	cfg.Login.Password = "secret-pass"
	cfg.Login.VaultPassphrase = "secret-phrase"
	cfg.Postgres.Password = "db-pass"
	cfg.Notify.TelegramToken = "bot-token"

	red := RedactedConfig(&cfg)

	for name, got := range map[string]string{
		"app key":          red.Exchange.AppKey,
		"password":         red.Login.Password,
		"vault passphrase": red.Login.VaultPassphrase,
		"postgres pass":    red.Postgres.Password,
		"telegram token":   red.Notify.TelegramToken,
	} {
		if got != "***" {
			t.Errorf("%s = %q, want redacted", name, got)
		}
	}

	// original untouched
	if cfg.Login.Password != "secret-pass" {
		t.Error("original mutated by redaction")
	}

	// empty fields stay empty rather than gaining a placeholder
	if red.Redis.Password != "" {
		t.Errorf("empty redis password became %q", red.Redis.Password)
	}

	red.Notify.Events[0] = "mutated"
	if cfg.Notify.Events[0] == "mutated" {
		t.Error("redacted copy shares Events slice with original")
	}
}
