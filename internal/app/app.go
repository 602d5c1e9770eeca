package app

import (
	"context"
	"errors"
	"fmt"

	dbpkg "github.com/yungbote/mindwell-backend/internal/data/db"
	apphttp "github.com/yungbote/mindwell-backend/internal/http"
	"github.com/yungbote/mindwell-backend/internal/observability"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *dbpkg.Service
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	Server   *apphttp.Server

	metrics      *observability.Metrics
	otelShutdown func(context.Context) error
}

// OpenDatabase connects, migrates and, unless disabled, seeds the reflection question bank.
func OpenDatabase(ctx context.Context, log *logger.Logger, cfg Config) (*dbpkg.Service, error) {
	svc, err := dbpkg.NewService(log, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	if cfg.SeedQuestionsOnStart {
		if err := dbpkg.SeedQuestions(ctx, svc.DB()); err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("seed questions: %w", err)
		}
	}
	return svc, nil
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	if err := cfg.ValidateServe(); err != nil {
		return nil, err
	}
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.ServiceVersion,
		Endpoint:    cfg.OtelEndpoint,
		Headers:     cfg.OtelHeaders,
		Insecure:    cfg.OtelInsecure,
		SampleRatio: cfg.OtelSampleRatio,
	})
	metrics := observability.Init(log, cfg.MetricsEnabled)

	database, err := OpenDatabase(ctx, log, cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}
	sqlDB, err := database.DB().DB()
	if err != nil {
		_ = database.Close()
		_ = otelShutdown(ctx)
		return nil, fmt.Errorf("database handle: %w", err)
	}

	clientset, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = database.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}

	reposet := wireRepos(database.DB(), log)
	serviceset, err := wireServices(database.DB(), log, cfg, reposet, clientset)
	if err != nil {
		clientset.Close()
		_ = database.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}
	handlerset := wireHandlers(log, sqlDB, serviceset)
	middleware, err := wireMiddleware(log, serviceset)
	if err != nil {
		clientset.Close()
		_ = database.Close()
		_ = otelShutdown(ctx)
		return nil, fmt.Errorf("register validators: %w", err)
	}

	server := apphttp.NewServer(log, apphttp.RouterConfig{
		Log:               log,
		ServiceName:       cfg.ServiceName,
		CORSOrigins:       cfg.CORSOrigins,
		Metrics:           metrics,
		TracingEnabled:    cfg.OtelEnabled,
		ChatLimiter:       clientset.ChatLimiter,
		AuthMiddleware:    middleware.Auth,
		HealthHandler:     handlerset.Health,
		AuthHandler:       handlerset.Auth,
		UserHandler:       handlerset.User,
		MoodHandler:       handlerset.Mood,
		ChatHandler:       handlerset.Chat,
		ReflectionHandler: handlerset.Reflection,
		PlannerHandler:    handlerset.Planner,
		HelpHandler:       handlerset.Help,
		SurveyHandler:     handlerset.Survey,
		ReportHandler:     handlerset.Report,
	})

	return &App{
		Log:          log,
		DB:           database,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clientset,
		Server:       server,
		metrics:      metrics,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves the API until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	if a.metrics != nil {
		a.metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
		a.metrics.StartDBCollector(ctx, a.Log, a.DB.DB())
		if a.Cfg.RedisAddr != "" {
			a.metrics.StartRedisCollector(ctx, a.Log, a.Cfg.RedisAddr)
		}
	}
	return a.Server.Run(ctx, a.Cfg.Address())
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Clients.Close()
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	a.Log.Sync()
}
