package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/bugjanitor/go-janitor-backend/config"
	"github.com/bugjanitor/go-janitor-backend/internal/bootstrap"
	"github.com/bugjanitor/go-janitor-backend/internal/deadlines"
	"github.com/bugjanitor/go-janitor-backend/internal/logging"
)

const usage = "usage: worker deadlines [--store memory|redis|postgres] [--env-file .env]"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "deadlines":
		err = runDeadlines(os.Args[2:])
	default:
		err = fmt.Errorf("unknown command: %s\n%s", os.Args[1], usage)
	}
	if err != nil && !errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// runDeadlines prints one overdue/upcoming report as JSON on stdout.
func runDeadlines(args []string) error {
	var store, envFile string
	flagSet := pflag.NewFlagSet("deadlines", pflag.ContinueOnError)
	flagSet.StringVar(&store, "store", "", "document store (overrides STORE_DRIVER)")
	flagSet.StringVar(&envFile, "env-file", ".env", "environment file to load")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if store != "" {
		cfg.Store.Driver = store
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	slog.SetDefault(logging.New(cfg.App.LogLevel, cfg.App.LogFormat, os.Stderr))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	docs, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer docs.Close()

	svcs, err := bootstrap.NewServices(ctx, docs)
	if err != nil {
		return err
	}

	report, err := deadlines.BuildReport(ctx, svcs.Tasks, time.Now())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
