package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/data/db"
	"github.com/yungbote/jobtrack-backend/internal/http"
	"github.com/yungbote/jobtrack-backend/internal/observability"
	"github.com/yungbote/jobtrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Clients  Clients

	dbService       *db.Service
	shutdownTracing func(context.Context) error
	cancel          context.CancelFunc
}

func New(ctx context.Context, cfg Config, version string) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tracingCfg := cfg.Tracing
	tracingCfg.Version = version
	shutdownTracing, err := observability.InitTracing(ctx, log, tracingCfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	dbService, err := db.NewService(log, cfg.DB)
	if err != nil {
		_ = shutdownTracing(ctx)
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		_ = dbService.Close()
		_ = shutdownTracing(ctx)
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := dbService.DB()
	sqlDB, err := theDB.DB()
	if err != nil {
		_ = dbService.Close()
		_ = shutdownTracing(ctx)
		log.Sync()
		return nil, fmt.Errorf("database handle: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = dbService.Close()
		_ = shutdownTracing(ctx)
		log.Sync()
		return nil, err
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients, metrics)
	handlerset := wireHandlers(log, serviceset, sqlDB)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:             log,
		DB:              theDB,
		Router:          router,
		Cfg:             cfg,
		Metrics:         metrics,
		Repos:           reposet,
		Services:        serviceset,
		Clients:         clients,
		dbService:       dbService,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Start launches the background loops: metric collectors and the expired token sweep.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.Metrics.StartDBCollector(ctx, a.Log, a.DB)
	if a.Clients.Redis != nil {
		a.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis)
	}
	if a.Cfg.TokenSweep > 0 {
		go a.sweepExpiredTokens(ctx, a.Cfg.TokenSweep)
	}
}

func (a *App) sweepExpiredTokens(ctx context.Context, every time.Duration) {
	log := a.Log.With("worker", "TokenSweeper")
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.Repos.UserToken.FullDeleteExpired(dbctx.Context{Ctx: ctx}, time.Now())
			if err != nil {
				log.Warn("expired token sweep failed", "error", err)
				continue
			}
			if n > 0 {
				log.Info("expired tokens removed", "count", n)
			}
		}
	}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	srv := http.NewServer(a.Router, a.Cfg.Addr())
	a.Log.Info("Server listening", "addr", srv.Addr())
	return srv.Run(ctx, a.Cfg.ShutdownGrace)
}

// Migrate runs schema migrations without starting anything else.
func Migrate(cfg Config) error {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	dbService, err := db.NewService(log, cfg.DB)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() { _ = dbService.Close() }()
	return dbService.AutoMigrateAll()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.shutdownTracing(ctx); err != nil && a.Log != nil {
			a.Log.Warn("tracing shutdown failed", "error", err)
		}
		cancel()
	}
	a.Clients.Close()
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil && a.Log != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
