package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vet-clinic-appointments/internal/adapters/auth/jwtauth"
	"vet-clinic-appointments/internal/adapters/storage/postgres"
	"vet-clinic-appointments/internal/config"
	"vet-clinic-appointments/internal/platform/logger"
	"vet-clinic-appointments/internal/router"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vet-clinic-appointments",
		Short: "Veterinary clinic appointment scheduler API",
	}
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.New(logger.Options{
				Level:  cfg.LogLevel,
				Format: logger.ParseFormat(cfg.LogFormat),
				App:    "vet-clinic-appointments",
			})

			opts := router.Options{
				AdminSignupCode: cfg.AdminSignupCode,
				Logger:          log,
				CORSOrigins:     cfg.CORSOrigins,
			}

			if cfg.DBDSN != "" {
				db, err := postgres.Open(cfg.DBDSN)
				if err != nil {
					return err
				}
				defer db.Close()
				opts.DB = db
			} else {
				log.Warn().Msg("no DB_DSN configured, using in-memory storage")
			}

			if cfg.JWTSecret != "" {
				opts.TokenIssuer = jwtauth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL())
				opts.AuthVerifier = jwtauth.NewVerifier(cfg.JWTSecret)
			} else {
				log.Warn().Msg("no JWT_SECRET configured, auth runs in dev mode (X-Debug-* headers)")
			}

			srv := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      router.NewRouter(opts),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				log.Info().Str("signal", sig.String()).Msg("shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
}
