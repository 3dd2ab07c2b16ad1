package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/synergysphere/synergysphere/db"
	"github.com/synergysphere/synergysphere/internal/auth"
	"github.com/synergysphere/synergysphere/internal/config"
	"github.com/synergysphere/synergysphere/internal/handlers"
	"github.com/synergysphere/synergysphere/internal/metrics"
	"github.com/synergysphere/synergysphere/internal/middleware"
	"github.com/synergysphere/synergysphere/internal/realtime"
	"github.com/synergysphere/synergysphere/internal/router"
	"github.com/synergysphere/synergysphere/internal/scheduler"
	"github.com/synergysphere/synergysphere/internal/services"
	"github.com/synergysphere/synergysphere/internal/store"
)

func newServeCmd(log zerolog.Logger) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "migrate the schema before serving")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger, migrate bool) error {
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.ConnectDatabase(cfg.Database, log)
	if err != nil {
		return err
	}

	if migrate {
		if err := db.MigrateDatabase(conn); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	st := store.New(conn)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	hub := realtime.NewHub(cfg.AllowedOrigins, log, m)
	webhooks := services.NewWebhookNotifier(cfg.Notifications.WebhookTimeout, log, m)
	dispatcher := services.NewDispatcher(st, hub, webhooks, m, log)
	svc := services.New(st, dispatcher, log)

	issuer, err := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return err
	}

	h := handlers.New(svc, issuer, hub, st, handlers.CookieOptions{
		Domain: cfg.JWT.CookieDomain,
		Secure: cfg.Env != config.EnvLocal,
	})

	r, err := router.NewRouter(h, middleware.AuthMiddleware(issuer, st), router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		Gatherer:       reg,
		Metrics:        m,
		Logger:         log,
	})
	if err != nil {
		return err
	}

	sched := scheduler.New(log)
	sched.Add(scheduler.RetentionJob(
		svc.Notifications,
		cfg.Notifications.Retention,
		cfg.Notifications.RetentionInterval,
		m,
		log,
	))

	server := &http.Server{
		Addr:    net.JoinHostPort("", cfg.Port),
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("setting up http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		sched.Stop()
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	sched.Stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown http server")
		return err
	}
	dispatcher.Wait()

	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("shut down http server")
	return nil
}
