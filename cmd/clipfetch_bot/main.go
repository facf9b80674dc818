package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"golang.org/x/sync/errgroup"

	"github.com/clipfetch/clipfetch_bot/internal/bot"
	"github.com/clipfetch/clipfetch_bot/internal/cleanup"
	"github.com/clipfetch/clipfetch_bot/internal/config"
	"github.com/clipfetch/clipfetch_bot/internal/extract"
	"github.com/clipfetch/clipfetch_bot/internal/extract/cliytdlp"
	"github.com/clipfetch/clipfetch_bot/internal/extract/goytdlp"
	"github.com/clipfetch/clipfetch_bot/internal/http/rest"
	"github.com/clipfetch/clipfetch_bot/internal/job"
	"github.com/clipfetch/clipfetch_bot/internal/logctx"
	"github.com/clipfetch/clipfetch_bot/internal/telemetry"
)

const serviceName = "clipfetch_bot"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info("clipfetch bot starting...", "version", version, "log_level", cfg.LogLevel)

	if err := run(logctx.WithLogger(ctx, logger), cfg); err != nil {
		slog.Error("fatal error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logctx.LoggerFromContext(ctx)

	// =========================================================================
	// Start Telemetry
	tel, err := telemetry.New(ctx, telemetry.Config{
		Enabled:        cfg.TelemetryEnabled,
		ServiceName:    serviceName,
		ServiceVersion: version,
	})
	if err != nil {
		return fmt.Errorf("failed to setup telemetry: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "err", err)
		}
	}()

	if cfg.TelemetryEnabled {
		if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(15 * time.Second)); err != nil {
			logger.Warn("failed to start runtime instrumentation", "err", err)
		}
	}

	// =========================================================================
	// Prepare Workspace
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create download dir: %w", err)
	}

	cookies := extract.CookieJar{
		YouTube:   cfg.YoutubeCookiesFile,
		Instagram: cfg.InstagramCookiesFile,
	}

	warnAboutMissingCookieFiles(ctx, cookies)

	// =========================================================================
	// Start Extractor
	extractor, err := buildExtractor(cfg)
	if err != nil {
		return fmt.Errorf("failed to build extractor: %w", err)
	}

	// =========================================================================
	// Start Telegram Bot
	tgBot, err := bot.New(cfg.BotToken, cfg.UploadTimeout)
	if err != nil {
		return fmt.Errorf("failed to start telegram bot: %w", err)
	}

	logger.Info("authorized on telegram", "username", tgBot.Username())

	if err := tgBot.RegisterCommands(); err != nil {
		logger.Warn("failed to register command menu", "err", err)
	}

	runner := job.NewRunner(extractor, tgBot, tel, cfg.DownloadDir, cfg.MaxFileSizeBytes(), cookies)
	handler := bot.NewHandler(tgBot, runner)

	// =========================================================================
	// Start Ops Service
	server := setupServer(ctx, tel, cfg)

	// =========================================================================
	// Start Cleanup
	go cleanup.Run(ctx, cfg.DownloadDir, cfg.KeepArtifactsFor, cfg.CleanupInterval)

	logger.Info("waiting for download commands...",
		"extractor", cfg.Extractor,
		"download_dir", cfg.DownloadDir,
		"max_file_size_mb", cfg.MaxFileSizeMB,
		"retention", cfg.KeepArtifactsFor.String(),
	)

	// =========================================================================
	// Start Main Loops
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("Initializing ops endpoint", "host", cfg.Web.BindAddress)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to gracefully shutdown the server", "err", err)

			if err := server.Close(); err != nil {
				return fmt.Errorf("could not stop server gracefully: %w", err)
			}
		}

		return nil
	})

	group.Go(func() error {
		return handler.Run(groupCtx)
	})

	return group.Wait()
}

// This is an abstract factory for the extraction backend.
func buildExtractor(cfg *config.Config) (extract.Extractor, error) {
	switch cfg.Extractor {
	case "lib":
		return goytdlp.New(), nil
	case "cli":
		return cliytdlp.New(cfg.YTDLPPath), nil
	}

	return nil, fmt.Errorf("invalid extractor: %s", cfg.Extractor)
}

func warnAboutMissingCookieFiles(ctx context.Context, cookies extract.CookieJar) {
	logger := logctx.LoggerFromContext(ctx)

	for site, path := range map[string]string{"youtube": cookies.YouTube, "instagram": cookies.Instagram} {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err != nil {
			logger.Warn("cookie file not found, age-restricted and private videos may fail", "site", site, "path", path)
		}
	}
}

// setupServer prepares the operational http server.
func setupServer(ctx context.Context, tel *telemetry.Telemetry, cfg *config.Config) *http.Server {
	r := chi.NewRouter()
	r.Mount("/", rest.NewOpsHandler(tel).Routes())

	return &http.Server{
		Addr:         cfg.Web.BindAddress,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		Handler:      otelhttp.NewHandler(r, "ops"),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
}
