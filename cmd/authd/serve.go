package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/stdr"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	authcore "github.com/hablas-app/authcore"
	"github.com/hablas-app/authcore/httpapi"
	"github.com/hablas-app/authcore/middleware"
)

var rootCmd = &cobra.Command{
	Use:   "authd",
	Short: "Session authentication service",
	Long:  "authd serves the login API and gates every other request behind an authenticated session.",
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	stdr.SetVerbosity(cfg.LogVerbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("authd")

	validator, err := newStaticValidator(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.AdminRole)
	if err != nil {
		return fmt.Errorf("config: ADMIN_ROLE: %w", err)
	}

	builder := authcore.New().
		WithConfig(authcore.Config{
			Token: authcore.TokenConfig{
				Secret:        []byte(cfg.JWTSecret),
				SessionTTL:    cfg.sessionTTL(),
				RememberMeTTL: cfg.rememberMeTTL(),
				Issuer:        cfg.JWTIssuer,
			},
			RateLimit: authcore.RateLimitConfig{
				MaxAttempts:   cfg.LoginMaxAttempts,
				LockoutWindow: cfg.lockoutWindow(),
			},
			Cookie: authcore.CookieConfig{
				Name:   cfg.CookieName,
				Secure: cfg.CookieSecure,
			},
		}).
		WithCredentialValidator(validator).
		WithLogger(logger)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		defer redisClient.Close()
		builder = builder.WithRedis(redisClient)
	}

	engine, err := builder.Build()
	if err != nil {
		return err
	}

	handler := httpapi.New(engine, logger.WithName("api"))
	gate := middleware.Gate(engine, middleware.DefaultPolicy())

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           gate(handler.Routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "redis", cfg.RedisAddr != "")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	logger.Info("stopped")
	return nil
}
