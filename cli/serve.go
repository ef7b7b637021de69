package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/writewithwrabit/wordstreak/auth"
	"github.com/writewithwrabit/wordstreak/notify"
	"github.com/writewithwrabit/wordstreak/resolvers"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Check the streak on startup and serve it over HTTP",
		Long: `Runs the daily check once, then serves:

  GET  /streak        current streak and status line
  POST /streak/check  manual check, returns the notice
  GET  /health        liveness

A failed startup check is logged and the server starts anyway; the day is
evaluated on the next manual check.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, logger, notify.NewLogger(logger))
			if err != nil {
				return err
			}
			defer a.Close()

			if res, err := a.tracker.Check(ctx); err != nil {
				logger.Error("startup check failed", "err", err)
			} else {
				logger.Info("startup check", "streak", res.State.Streak, "outcome", string(res.Outcome))
			}

			routerOpts := resolvers.RouterOptions{AllowedOrigins: cfg.CORSOrigins}
			if cfg.FirebaseCreds != "" {
				verifier, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseCreds)
				if err != nil {
					return err
				}
				routerOpts.Verifier = verifier
			}

			srv := &http.Server{
				Addr:              net.JoinHostPort("", cfg.Port),
				Handler:           resolvers.New(a.tracker, logger).Router(routerOpts),
				ReadHeaderTimeout: 5 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
