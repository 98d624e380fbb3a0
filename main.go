package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"

	"github.com/thushan/ollaview/internal/adapter/discovery"
	"github.com/thushan/ollaview/internal/adapter/stats"
	"github.com/thushan/ollaview/internal/app"
	"github.com/thushan/ollaview/internal/config"
	"github.com/thushan/ollaview/internal/logger"
	"github.com/thushan/ollaview/internal/util"
	"github.com/thushan/ollaview/internal/version"
	"github.com/thushan/ollaview/pkg/format"
)

func main() {
	startTime := time.Now()
	interactive := util.IsInteractive()

	if !util.IsTerminal() || !util.ShouldUseColors() {
		pterm.DisableColor()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	vlog := log.New(os.Stderr, "", 0)
	version.PrintVersionInfo(cfg.Logging.Level == logger.LogLevelDebug, vlog)

	// setup: logging, the viewer owns the terminal so it only gets the file
	logInstance, styledLogger, cleanup, err := logger.NewWithTheme(buildLoggerConfig(cfg, !interactive))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	slog.SetDefault(logInstance)

	styledLogger.Info("Initialising", "version", version.Version, "pid", os.Getpid(), "interactive", interactive)

	// setup: graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := discovery.NewTagsClient(cfg.Service, styledLogger.With("component", "discovery"))
	collector := stats.NewRefreshCollector()
	styledLogger.InfoWithEndpoint("Listing models from", client.Endpoint())

	application := app.New(cfg, styledLogger, client, collector)
	runErr := application.Run(ctx)

	reportRefreshStats(styledLogger, collector, startTime)

	if runErr != nil {
		logger.FatalWithLogger(logInstance, "ollaview finished with an error", "error", runErr)
	}

	styledLogger.Info("ollaview has shutdown")
}

func reportRefreshStats(logger *logger.StyledLogger, collector *stats.RefreshCollector, startTime time.Time) {
	s := collector.GetStats()

	logger.Info("Refresh Stats",
		"attempts", s.Attempts,
		"successes", s.Successes,
		"empty_results", s.EmptyResults,
		"failures", s.Failures,
		"last_model_count", s.LastModelCount,
		"avg_latency", format.Latency(time.Duration(s.AverageLatencyMs)*time.Millisecond),
	)

	if s.Failures > 0 {
		var failureArgs []any
		for kind, count := range s.FailuresByKind {
			failureArgs = append(failureArgs, kind, count)
		}
		logger.Warn("Refresh Failures", failureArgs...)
	}

	logger.Info("Runtime Stats", "uptime", format.Duration(time.Since(startTime)))
}

func buildLoggerConfig(cfg *config.Config, terminal bool) *logger.Config {
	return &logger.Config{
		Level:          cfg.Logging.Level,
		FileOutput:     true,
		TerminalOutput: terminal,
		LogDir:         cfg.Logging.Dir,
		MaxSize:        cfg.Logging.MaxSize,
		MaxBackups:     cfg.Logging.MaxBackups,
		MaxAge:         cfg.Logging.MaxAge,
		Theme:          cfg.Theme,
	}
}
