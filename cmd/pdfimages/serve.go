package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/GravityPDF/gravity-pdf-images/internal/config"
	"github.com/GravityPDF/gravity-pdf-images/internal/db"
	"github.com/GravityPDF/gravity-pdf-images/internal/handler"
	"github.com/GravityPDF/gravity-pdf-images/internal/janitor"
	"github.com/GravityPDF/gravity-pdf-images/internal/metrics"
	"github.com/GravityPDF/gravity-pdf-images/internal/middleware"
	"github.com/GravityPDF/gravity-pdf-images/internal/pipeline"
	"github.com/GravityPDF/gravity-pdf-images/internal/queue"
	"github.com/GravityPDF/gravity-pdf-images/internal/render"
	"github.com/GravityPDF/gravity-pdf-images/internal/resize"
	"github.com/GravityPDF/gravity-pdf-images/internal/settings"
	"github.com/GravityPDF/gravity-pdf-images/internal/storage"
	"github.com/GravityPDF/gravity-pdf-images/internal/watcher"
	"github.com/GravityPDF/gravity-pdf-images/internal/worker"
)

func serve(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	database, err := db.InitDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer database.Close()

	pdfs, err := settings.LoadFile(cfg.SettingsFile)
	if err != nil {
		return err
	}
	trusted, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return err
	}
	if err := storage.EnsureDir(cfg.UploadDir); err != nil {
		return fmt.Errorf("ensure upload dir: %w", err)
	}

	resolver := storage.NewResolver(cfg.UploadDir, cfg.UploadURL)
	resizer := resize.New(pipeline.NewFileCodec(), resolver, cfg.ImageConstraint, logger)
	jobs := queue.NewStore(database)
	rec := metrics.New()

	// jobs left processing by a previous run would never finish
	if n, err := jobs.Requeue(ctx); err != nil {
		return fmt.Errorf("requeue interrupted jobs: %w", err)
	} else if n > 0 {
		logger.Info().Int64("jobs", n).Msg("requeued interrupted jobs")
	}

	w := worker.NewWorker(jobs, resizer.HandleJob, rec, cfg.WorkerPollInterval, logger)
	w.Start(ctx)
	defer w.Stop()

	j := janitor.New(janitor.Config{
		Queue:     jobs,
		UploadDir: cfg.UploadDir,
		Interval:  cfg.JanitorInterval,
		Retention: cfg.JobRetention,
		Logger:    logger,
	})
	j.Start(ctx)
	defer j.Stop()

	if cfg.WatchUploads {
		uw, err := watcher.NewWatcher(cfg.UploadDir, jobs, w.TriggerSignal, logger)
		if err != nil {
			return err
		}
		if err := uw.Start(ctx); err != nil {
			return err
		}
		defer uw.Stop()
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimitPerMinute,
			TrustedProxyCIDRs: trusted,
			Logger:            logger,
		})
		defer limiter.Stop()
	}

	h := handler.New(handler.Options{
		DB:             database,
		Queue:          jobs,
		Resizer:        resizer,
		Metrics:        rec,
		Settings:       pdfs,
		Deps:           render.Deps{Resolver: resolver},
		PlaceholderURL: cfg.PlaceholderURL,
		UploadDir:      cfg.UploadDir,
		OnQueued:       w.TriggerSignal,
		Logger:         logger,
	})
	if cfg.APIToken == "" {
		logger.Warn().Msg("API_TOKEN is not set, the API accepts unauthenticated requests")
	}

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler.NewRouter(h, handler.RouterOptions{APIToken: cfg.APIToken, Limiter: limiter}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
