package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/carver/wishforge/internal/adapters/catalog"
	"github.com/carver/wishforge/internal/adapters/output"
	"github.com/carver/wishforge/internal/adapters/source"
	app "github.com/carver/wishforge/internal/app"
	"github.com/carver/wishforge/internal/config"
	"github.com/carver/wishforge/internal/domain/match"
	"github.com/carver/wishforge/pkg/logger"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env). Credentials and
	// tier policy are validated here; nothing runs on a bad config.
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	policy, err := cfg.Policy()
	if err != nil {
		os.Stderr.WriteString("invalid tier policy: " + err.Error() + "\n")
		os.Exit(1)
	}

	cat, err := catalog.New(cfg.BungieAPIKey,
		catalog.WithCachePath(cfg.CachePath),
		catalog.WithRequestsPerSecond(cfg.RequestsPerSecond),
	)
	if err != nil {
		os.Stderr.WriteString("failed to open catalog cache: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer cat.Close()

	var src app.Source
	if cfg.WorkbookPath != "" {
		src = source.NewWorkbook(cfg.WorkbookPath)
	} else {
		src = source.NewSheets(cfg.SheetsAPIKey, cfg.SpreadsheetID, cfg.SheetGIDs)
	}

	svc := app.New(
		app.WithSource(src),
		app.WithCatalog(cat),
		app.WithSink(output.NewWriter(cfg.OutputPath)),
		app.WithPolicy(policy),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithOutputPath(cfg.OutputPath),
		app.WithMatchOptions(
			match.WithWeaponThreshold(cfg.WeaponThreshold),
			match.WithPerkThreshold(cfg.PerkThreshold),
		),
	)

	if err := svc.Run(ctx); err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		os.Exit(1)
	}
}
