package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bugjanitor/go-janitor-backend/config"
	"github.com/bugjanitor/go-janitor-backend/internal/bootstrap"
	"github.com/bugjanitor/go-janitor-backend/internal/deadlines"
	"github.com/bugjanitor/go-janitor-backend/internal/logging"
	"github.com/bugjanitor/go-janitor-backend/internal/mcp/prompts"
)

const serviceName = "go-janitor-backend"

func main() {
	if err := run(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		port    string
		store   string
		envFile string
	)
	flagSet := pflag.NewFlagSet("api", pflag.ContinueOnError)
	flagSet.StringVar(&port, "port", "", "HTTP port (overrides PORT)")
	flagSet.StringVar(&store, "store", "", "document store: memory, redis or postgres (overrides STORE_DRIVER)")
	flagSet.StringVar(&envFile, "env-file", ".env", "environment file to load before reading variables")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if store != "" {
		cfg.Store.Driver = store
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.SetDefault(logging.New(cfg.App.LogLevel, cfg.App.LogFormat, os.Stderr))
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := docs.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	svcs, err := bootstrap.NewServices(ctx, docs)
	if err != nil {
		return err
	}
	catalog, err := prompts.Default()
	if err != nil {
		return err
	}

	watcher := deadlines.NewScheduler(svcs.Tasks, cfg.Worker.DeadlineSchedule)
	if err := watcher.Start(); err != nil {
		return err
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Server:      cfg.Server,
		Store:       docs,
		Services:    svcs,
		Prompts:     catalog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting",
			"service", serviceName,
			"port", cfg.Server.Port,
			"store", cfg.Store.Driver,
			"environment", cfg.App.Environment,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	watcher.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
