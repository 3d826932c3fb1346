package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nymble-website/config"
	"nymble-website/internal/contactform"
	v1 "nymble-website/internal/delivery/http/v1"
	"nymble-website/internal/domain"
	"nymble-website/internal/repository/memory"
	"nymble-website/internal/usecase"
	"nymble-website/pkg/content"
	"nymble-website/pkg/logger"
	"nymble-website/pkg/redis"
	"nymble-website/pkg/transport"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and the contact form API",
		Long: `Serves every marketing page, the no-JavaScript contact form and the
/v1 JSON API. Configuration comes from the environment and an optional .env file.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("port", "", "listen port (overrides PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting NymbleAI website", "port", cfg.Port, "mode", cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Optional Redis for shared rate limit counters
	checks := map[string]usecase.HealthCheck{}
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, rate limiting uses in-memory buckets", "error", err)
		}
	} else {
		defer redis.Close()
	}
	if cfg.UpstashRedisURL != "" {
		checks["redis"] = redis.HealthCheck
	}

	// 4. Site copy
	site, err := loadSite(cfg)
	if err != nil {
		return err
	}

	// 5. Contact form sessions
	leads := transport.NewLogged(
		transport.NewSimulated(cfg.SubmitDelay).FailAlways(cfg.SimulateFailure),
		logger.Log,
	)
	opts := []contactform.Option{contactform.WithTimeout(cfg.SubmitTimeout)}
	if cfg.RevalidateOnChange {
		opts = append(opts, contactform.WithRevalidateOnChange())
	}
	sessions := memory.NewFormSessionRepository(cfg.FormSessionTTL, func() domain.FormController {
		return contactform.New(leads, opts...)
	})

	// 6. Setup UseCases
	contactUC := usecase.NewContactUsecase(sessions)
	healthUC := usecase.NewHealthUsecase(checks)

	// 7. Setup Router
	router, err := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Site:      site,
		Config:    cfg,
	})
	if err != nil {
		return err
	}

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return usecase.RunSessionSweeper(gctx, sessions, cfg.FormSweepInterval)
	})
	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Server forced to shutdown", "error", err)
			return err
		}
		return nil
	})

	err = g.Wait()
	logger.Log.Info("Server exiting")
	return err
}

// loadSite reads the site copy and applies config overrides
func loadSite(cfg *config.Config) (*content.Site, error) {
	site, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, err
	}
	if cfg.ContactEmail != "" {
		site.Meta.ContactEmail = cfg.ContactEmail
	}
	return site, nil
}
