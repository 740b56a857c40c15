package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "cv-builder/internal/adapter/http"
	repo "cv-builder/internal/adapter/repository"
	"cv-builder/internal/config"
	"cv-builder/internal/infrastructure/migration"
	"cv-builder/internal/logger"
	"cv-builder/internal/usecase"
	infra "cv-builder/pkg/infrastructure"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cvRepo usecase.CVRepo
	if cfg.Database.URL != "" {
		pool, err := infra.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}
		cvRepo = repo.NewPostgresRepo(pool)
	} else {
		logger.Warn().Msg("DATABASE_URL not set, storing CVs in memory")
		cvRepo = repo.NewMemoryRepo()
	}

	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis not available, running without cache")
		} else {
			defer rdb.Close()
			cvRepo = repo.NewCachedRepo(cvRepo, rdb, cfg.CacheTTL())
		}
	}

	var archive usecase.Archive
	if cfg.Archive.Endpoint != "" {
		a, err := infra.NewMinIOArchive(ctx, cfg.Archive)
		if err != nil {
			logger.Warn().Err(err).Msg("export archive not available")
		} else {
			archive = a
		}
	}

	renderer := infra.NewChromedpRenderer(cfg.Renderer.ChromePath, cfg.RenderTimeout())
	cvs := usecase.NewCVService(cvRepo)
	exporter := usecase.NewExporter(renderer, archive, cfg.Renderer.Attempts, cfg.RenderBackoff())
	sessions := usecase.NewSessions(cvs, exporter, cfg.SessionIdle())
	go sessions.Run(ctx, time.Minute)

	h := httpadapter.NewHandler(cvs, exporter, sessions)
	app := httpadapter.NewApp(h, httpadapter.Options{
		Production:  cfg.IsProduction(),
		BodyLimitMB: cfg.Server.BodyLimitMB,
	})

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("env", cfg.Server.Environment).Msg("server starting")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
