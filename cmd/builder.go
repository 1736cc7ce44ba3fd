package cmd

import (
	"context"
	"fmt"

	userapp "flexible-project/application/user"
	"flexible-project/config"
	"flexible-project/domain/filter"
	userdomain "flexible-project/domain/user"
	"flexible-project/infrastructure/idgen"
	"flexible-project/infrastructure/metrics"
	"flexible-project/infrastructure/persistence/cache"
	"flexible-project/infrastructure/persistence/memory"
	"flexible-project/infrastructure/persistence/mongodb"
	"flexible-project/infrastructure/persistence/mysql"
	"flexible-project/infrastructure/persistence/retry"
	"flexible-project/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg         *config.Config
	repo        userdomain.Repository
	ids         userdomain.IDGenerator
	idPrefix    string
	skipLogInit bool
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithRepository replaces the configured storage backend
func (b *AppBuilder) WithRepository(repo userdomain.Repository) *AppBuilder {
	b.repo = repo
	return b
}

// WithIDGenerator replaces the default UUID generator
func (b *AppBuilder) WithIDGenerator(ids userdomain.IDGenerator) *AppBuilder {
	b.ids = ids
	return b
}

// WithIDPrefix prefixes generated identifiers, e.g. "usr_"
func (b *AppBuilder) WithIDPrefix(prefix string) *AppBuilder {
	b.idPrefix = prefix
	return b
}

// WithoutLoggerInit keeps the current global logger (tests install an
// observer before building).
func (b *AppBuilder) WithoutLoggerInit() *AppBuilder {
	b.skipLogInit = true
	return b
}

// Build wires config, logger, storage and use cases. Resources opened on
// the way are released if a later step fails.
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if !b.skipLogInit {
		if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("storage", b.cfg.Storage.Type))

	filter.SetRegexTimeout(b.cfg.Filter.RegexTimeout)

	app := &App{config: b.cfg, registry: prometheus.NewRegistry()}
	if b.cfg.Metrics.Enabled {
		app.metrics = metrics.New(app.registry, b.cfg.Metrics.Namespace)
	}

	repo := b.repo
	backend := "custom"
	if repo == nil {
		var err error
		if repo, err = b.initStorage(ctx, app); err != nil {
			_ = app.Close(ctx)
			return nil, err
		}
		backend = b.cfg.Storage.Type
	}
	repo = metrics.InstrumentUserRepository(repo, backend, app.metrics)

	if b.cfg.Cache.Enabled {
		if backend == config.StorageMemory {
			logger.Warn("User cache enabled in front of in-memory storage; lookups gain a network hop and nothing else")
		}
		cacheCfg := b.cfg.Cache
		client, err := cache.NewClient(ctx, cacheCfg.Addr, cacheCfg.Password, cacheCfg.DB, cacheCfg.PoolSize)
		if err != nil {
			_ = app.Close(ctx)
			return nil, err
		}
		app.addResource("redis",
			func(ctx context.Context) error { return client.Ping(ctx).Err() },
			func(context.Context) error { return client.Close() })
		repo = cache.NewUserRepository(repo, client, cacheCfg.TTL, app.metrics)
		logger.Info("User cache enabled", zap.String("addr", cacheCfg.Addr), zap.Duration("ttl", cacheCfg.TTL))
	}

	ids := b.ids
	if ids == nil {
		ids = idgen.NewUUIDGenerator(b.idPrefix)
	}

	app.Users = userapp.NewApplicationService(repo, ids,
		userapp.WithStrictUniqueness(b.cfg.Uniqueness.Strict))
	return app, nil
}

func (b *AppBuilder) initStorage(ctx context.Context, app *App) (userdomain.Repository, error) {
	retryConfig := retry.FromAppConfig(b.cfg.Storage.Retry)

	switch b.cfg.Storage.Type {
	case config.StorageMySQL:
		logger.Info("Using MySQL/GORM persistence layer")
		db, err := mysql.FromAppConfig(b.cfg.Storage.MySQL).Connect()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
		}
		app.addResource("mysql",
			func(ctx context.Context) error { return mysql.Ping(ctx, db) },
			func(context.Context) error { return mysql.Close(db) })
		if err := mysql.Ping(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to ping MySQL: %w", err)
		}
		return mysql.NewUserRepository(db, retryConfig), nil

	case config.StorageMongoDB:
		logger.Info("Using MongoDB persistence layer")
		m, err := mongodb.Connect(ctx, b.cfg.Storage.MongoDB)
		if err != nil {
			return nil, err
		}
		app.addResource("mongodb", m.HealthCheck, m.Close)
		return mongodb.NewUserRepository(mongodb.NewUserCollection(m.Users), retryConfig), nil

	default:
		logger.Info("Using in-memory persistence layer")
		return memory.NewUserRepository(), nil
	}
}
