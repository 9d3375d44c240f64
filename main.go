// Command hubview is a terminal browser for GitHub user profiles: an
// incrementally loaded user directory with free-text search and per-user
// detail views showing profile stats and repositories.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rivo/tview"
	"github.com/spf13/pflag"

	"github.com/avaldes/hubview/config"
	"github.com/avaldes/hubview/github"
	"github.com/avaldes/hubview/ui"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	apiURL := pflag.String("api-url", cfg.APIURL, "GitHub API base URL")
	token := pflag.String("token", cfg.Token, "GitHub API token (defaults to GITHUB_TOKEN)")
	pageSize := pflag.Int("page-size", cfg.PageSize, "users per page (1-100)")
	logFile := pflag.String("log", cfg.LogFile, "append debug logs to this file")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("hubview %s\n", version)
		return nil
	}

	cfg.APIURL = *apiURL
	cfg.Token = *token
	cfg.PageSize = *pageSize
	cfg.LogFile = *logFile
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client := github.NewClient(cfg.APIURL, cfg.Token, cfg.HTTPTimeout, log)

	app := tview.NewApplication()
	browser := ui.NewBrowser(app, client, cfg, log)
	app.SetRoot(browser.Root(), true)
	browser.Start()

	defer browser.Close()
	if err := app.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// newLogger returns a logger writing to path, or a discarding logger when
// path is empty. The TUI owns the terminal, so nothing may log to stderr
// while the application runs.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return log, func() { f.Close() }, nil
}
