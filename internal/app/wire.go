package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/nunnsy/betfair"
	"github.com/nunnsy/betfair/account"
	"github.com/nunnsy/betfair/betting"
	s3blob "github.com/nunnsy/betfair/internal/blob/s3"
	"github.com/nunnsy/betfair/internal/cache/redis"
	"github.com/nunnsy/betfair/internal/config"
	"github.com/nunnsy/betfair/internal/domain"
	"github.com/nunnsy/betfair/internal/metrics"
	"github.com/nunnsy/betfair/internal/notify"
	"github.com/nunnsy/betfair/internal/store/postgres"
)

// Dependencies bundles everything the modes need: the exchange clients, the
// stores and caches behind them, cold storage and notifications. It is
// constructed by Wire and torn down by the returned cleanup function. Fields
// the configured mode does not require stay nil.
type Dependencies struct {
	// Exchange clients. Exchange owns the session; Betting and Account are
	// the typed operation surfaces on top of it.
	Exchange *betfair.Client
	Betting  *betting.Client
	Account  *account.Client

	// Stores
	Audits      domain.OrderAuditStore
	Settlements domain.SettlementStore

	// Caches and coordination
	Catalogue domain.CatalogueCache
	Budget    domain.TxBudget
	Locks     domain.LockManager

	// Blob storage
	BlobWriter domain.BlobWriter
	BlobReader domain.BlobReader
	Archiver   domain.SettlementArchiver

	// Notifications. Nil when no channel is configured; a nil Notifier
	// drops everything, so modes call through it unconditionally.
	Notifier *notify.Notifier
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	logger := slog.Default()

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- Exchange client ---
	var cert *tls.Certificate
	if cfg.Login.Method == "cert" {
		var err error
		if cfg.Login.P12File != "" {
			cert, err = betfair.LoadCertificateP12(cfg.Login.P12File, cfg.Login.P12Password)
		} else {
			cert, err = betfair.LoadCertificate(cfg.Login.CertFile, cfg.Login.KeyFile)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("wire: client certificate: %w", err)
		}
	}

	client, err := betfair.NewClient(betfair.ClientConfig{
		AppKey:      cfg.Exchange.AppKey,
		Certificate: cert,
		Endpoints: betfair.Endpoints{
			Betting:      cfg.Exchange.BettingURL,
			Account:      cfg.Exchange.AccountURL,
			Identity:     cfg.Exchange.IdentityURL,
			IdentityCert: cfg.Exchange.IdentityCertURL,
		},
		Timeout:           cfg.Exchange.Timeout.Duration,
		RequestsPerSecond: cfg.Exchange.RequestsPerSecond,
		Burst:             cfg.Exchange.Burst,
		Recorder:          metrics.CallRecorder{},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wire: exchange client: %w", err)
	}
	deps.Exchange = client
	deps.Betting = betting.NewClient(client)
	deps.Account = account.NewClient(client)

	// --- PostgreSQL (only for modes that persist audit or settlement rows) ---
	if config.NeedsPostgres(cfg.Mode) {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}

		pool := pgClient.Pool()
		deps.Audits = postgres.NewOrderAuditStore(pool)
		deps.Settlements = postgres.NewSettlementStore(pool)
	}

	// --- Redis (catalogue cache, transaction budget, archive lock) ---
	if config.NeedsRedis(cfg.Mode) {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		deps.Catalogue = redis.NewCatalogueCache(redisClient, cfg.Redis.CatalogueTTL.Duration)
		deps.Budget = redis.NewTxBudget(redisClient, cfg.Budget.HourlyLimit, time.Hour)
		deps.Locks = redis.NewLockManager(redisClient)
	}

	// --- S3 blob storage (settlement archive) ---
	if config.NeedsS3(cfg.Mode) {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}

		deps.BlobWriter = s3blob.NewWriter(s3Client)
		deps.BlobReader = s3blob.NewReader(s3Client)
		deps.Archiver = s3blob.NewArchiver(deps.BlobWriter, deps.BlobReader)
	}

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	if len(senders) > 0 {
		deps.Notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)
	}

	return deps, cleanup, nil
}
