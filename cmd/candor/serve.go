package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecgard/candor/internal/api"
	"github.com/alecgard/candor/internal/auth"
	"github.com/alecgard/candor/internal/config"
	"github.com/alecgard/candor/internal/crypto"
	"github.com/alecgard/candor/internal/feedback"
	"github.com/alecgard/candor/internal/metrics"
	"github.com/alecgard/candor/internal/ratelimit"
	"github.com/alecgard/candor/internal/seed"
	"github.com/alecgard/candor/internal/team"
	"github.com/alecgard/candor/internal/user"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Candor API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	setupLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	slog.Info("connected to database")

	if cfg.Database.AutoMigrate {
		if err := applyMigrations(cfg, false); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	userStore := user.NewStore(pool)
	teamStore := team.NewStore(pool)

	if cfg.Database.SeedDemo {
		if _, err := seed.Demo(ctx, userStore, teamStore); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	cipher, err := crypto.NewFieldCipher(cfg.Security.EncryptionKey)
	if err != nil {
		return fmt.Errorf("security.encryption_key: %w", err)
	}
	if cipher == nil {
		slog.Warn("feedback text is stored unencrypted; set security.encryption_key to enable")
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	feedbackStore := feedback.NewStore(pool, cipher)

	trusted, err := ratelimit.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return fmt.Errorf("rate_limit.trusted_proxies: %w", err)
	}
	limiter := ratelimit.New(cfg.RateLimit.LoginAttempts, cfg.RateLimit.Window)
	go sweepLimiter(ctx, limiter, cfg.RateLimit.Window)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.RegisterPool(metrics.ReadPool(pool))
	}

	router := api.NewRouter(api.RouterDeps{
		Authenticator:  user.NewAuthenticator(userStore, tokens),
		Users:          userStore,
		Tokens:         tokens,
		Feedback:       feedback.NewService(feedbackStore, userStore),
		Team:           team.NewService(userStore),
		DB:             pool,
		LoginLimiter:   limiter,
		ClientKey:      ratelimit.ProxyAware(trusted),
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sweepLimiter drops idle login buckets once per window until ctx ends.
func sweepLimiter(ctx context.Context, l *ratelimit.Limiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Sweep(); n > 0 {
				slog.Debug("swept idle login buckets", "removed", n)
			}
		}
	}
}
