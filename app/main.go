package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/status-watch/app/api"
	"github.com/lysyi3m/status-watch/app/cfg"
	"github.com/lysyi3m/status-watch/app/database"
	"github.com/lysyi3m/status-watch/app/feed"
	"github.com/lysyi3m/status-watch/app/ledger"
	"github.com/lysyi3m/status-watch/app/metrics"
	"github.com/lysyi3m/status-watch/app/report"
	"github.com/lysyi3m/status-watch/app/tasks"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appConfig == nil {
		// help was shown
		return
	}

	setupLogger(appConfig.Debug)

	if err := run(appConfig); err != nil {
		slog.Error("Monitor failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func run(appConfig *cfg.Cfg) error {
	feedConfig, err := loadFeedConfig(appConfig)
	if err != nil {
		return err
	}

	seen, err := ledger.New(appConfig.LedgerCapacity)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}

	reporters := report.Multi{report.NewPrinter(os.Stdout)}

	var repo database.NotificationRepository
	if appConfig.HistoryEnabled() {
		db, err := database.NewConnection(appConfig.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()

		version, dirty, err := database.RunMigrations(db)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		slog.Info("Notification history enabled", "path", appConfig.DBPath, "schema_version", version, "dirty", dirty)

		repo = database.NewNotificationRepository(db)
		reporters = append(reporters, repo)
	}

	m := metrics.New()

	fetcher := feed.NewFetcher(&http.Client{}, feedConfig.URL, appConfig.UserAgent, feedConfig.Timeout())
	task := tasks.NewPollFeedTask(feedConfig, fetcher, feed.NewParser(), feed.NewFilterer(), seen, reporters, m)
	scheduler := tasks.NewScheduler(task, feedConfig.Interval())

	fmt.Println("Starting status monitor (RSS/Atom feed)")
	fmt.Printf("Polling every %s with HTTP caching...\n", feedConfig.Interval())
	slog.Info("Monitoring feed",
		"feed", feedConfig.Name,
		"url", feedConfig.URL,
		"timeout", feedConfig.Timeout(),
		"filters", len(feedConfig.Filters),
		"ledger_capacity", appConfig.LedgerCapacity,
		"version", appConfig.Version)

	scheduler.Start()

	var httpServer *http.Server
	serverErrChan := make(chan error, 1)
	if appConfig.APIEnabled() {
		handler := api.NewHandler(feedConfig, task, repo, appConfig.BaseURL, appConfig.Version)
		httpServer = &http.Server{
			Addr:         appConfig.Listen,
			Handler:      api.NewServer(handler, m.Registry, appConfig.APIAccessKey),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		go func() {
			slog.Info("Starting HTTP server", "addr", appConfig.Listen)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serveErr := waitForShutdown(sigChan, serverErrChan)

	scheduler.Stop()

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}

	if serveErr != nil {
		return serveErr
	}

	fmt.Println("\nMonitor stopped by user")
	return nil
}

// waitForShutdown blocks until an interrupt arrives, returning nil, or until
// the HTTP server fails, returning its error.
func waitForShutdown(sigChan <-chan os.Signal, serverErrChan <-chan error) error {
	select {
	case sig := <-sigChan:
		slog.Debug("Received signal", "signal", sig.String())
		return nil
	case err := <-serverErrChan:
		return err
	}
}

// loadFeedConfig builds the feed definition from flags, or from the YAML
// file when one is given, with flag values filling settings the file omits.
func loadFeedConfig(appConfig *cfg.Cfg) (*feed.Config, error) {
	fallback, err := feed.NewConfig(feedName(appConfig.URL), appConfig.URL,
		int(appConfig.Interval/time.Second), int(appConfig.Timeout/time.Second))
	if err != nil {
		return nil, err
	}

	if appConfig.FeedConfig == "" {
		return fallback, nil
	}

	feedConfig, err := feed.LoadConfig(appConfig.FeedConfig, fallback)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed config: %w", err)
	}
	return feedConfig, nil
}

func feedName(feedURL string) string {
	parsed, err := url.Parse(feedURL)
	if err != nil {
		return "feed"
	}
	return cmp.Or(parsed.Hostname(), "feed")
}
