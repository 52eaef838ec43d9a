// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gamefeed/gamefeed/app/api"
	"github.com/gamefeed/gamefeed/app/provider"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Server is a command to run the gamefeed API server.
type Server struct {
	Listen  string `long:"listen" env:"LISTEN" default:":8080" description:"address to listen on"`
	Version string

	Provider struct {
		URL        string        `long:"url" env:"URL" required:"true" description:"base URL of the WP REST API, e.g. https://example.com/wp-json/wp/v2"`
		UserAgent  string        `long:"user-agent" env:"USER_AGENT" default:"gamefeed" description:"user agent for upstream requests"`
		Timeout    time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"timeout for upstream requests"`
		PageSize   int           `long:"page-size" env:"PAGE_SIZE" default:"10" description:"default page size"`
		MaxRetries int           `long:"max-retries" env:"MAX_RETRIES" default:"3" description:"reserved, requests are not retried"`
	} `group:"provider" namespace:"provider" env-namespace:"PROVIDER"`

	Cache struct {
		TTL     time.Duration `long:"ttl" env:"TTL" default:"5m" description:"how long cached responses stay fresh"`
		MaxKeys int           `long:"max-keys" env:"MAX_KEYS" default:"1000" description:"max cached queries"`
	} `group:"cache" namespace:"cache" env-namespace:"CACHE"`
}

// Execute runs the command.
func (s Server) Execute(_ []string) error {
	lg := slog.Default()

	cl, err := provider.NewClient(lg.With(slog.String("prefix", "wordpress")), provider.Config{
		BaseURL:    s.Provider.URL,
		UserAgent:  s.Provider.UserAgent,
		Timeout:    s.Provider.Timeout,
		PageSize:   s.Provider.PageSize,
		MaxRetries: s.Provider.MaxRetries,
	})
	if err != nil {
		return fmt.Errorf("make wordpress client: %w", err)
	}

	svc := provider.NewService(
		lg.With(slog.String("prefix", "provider")),
		cl,
		s.Cache.TTL,
		s.Cache.MaxKeys,
	)

	rest := &api.Rest{
		Logger:   lg.With(slog.String("prefix", "api")),
		Service:  svc,
		PageSize: s.Provider.PageSize,
		Version:  s.Version,
	}

	srv := &http.Server{
		Addr:              s.Listen,
		Handler:           rest.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case sig := <-sig:
			slog.Warn("caught signal, stopping", slog.String("signal", sig.String()))
			stop()
			return ctx.Err()
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	ewg.Go(func() error {
		lg.Info("starting server", slog.String("addr", s.Listen))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})
	ewg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	})

	if err := ewg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	lg.Info("server stopped")
	return nil
}
