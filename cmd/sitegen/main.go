package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/axvr/axvr.uk/internal/config"
	"github.com/axvr/axvr.uk/internal/logfields"
	"github.com/axvr/axvr.uk/internal/site"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output  string `short:"o" help:"Override the configured output directory"`
		Workers int    `short:"j" help:"Override the configured worker count"`
	} `cmd:"" help:"Build the site from the page descriptor tree"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Serve struct {
		Addr string `short:"a" help:"Listen address" default:"localhost:8080"`
	} `cmd:"" help:"Serve the built site over HTTP"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "build":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if CLI.Build.Output != "" {
			cfg.Output = CLI.Build.Output
		}
		if CLI.Build.Workers > 0 {
			cfg.Workers = CLI.Build.Workers
		}
		if err := runBuild(cfg); err != nil {
			slog.Error("Build failed", logfields.Error(err))
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", logfields.Error(err))
			os.Exit(1)
		}
		slog.Info("Configuration written", logfields.Path(CLI.Config))
	case "serve":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if err := runServe(cfg, CLI.Serve.Addr); err != nil {
			slog.Error("Serve failed", logfields.Error(err))
			os.Exit(1)
		}
	}
}

func runBuild(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := site.NewBuilder(cfg).Build(ctx)
	if report != nil {
		slog.Info("Build report",
			logfields.BuildID(report.BuildID),
			slog.Int("pages", report.Pages),
			slog.Int("failed", report.Failed),
			slog.Int("warnings", len(report.Warnings)),
			slog.Duration("duration", report.Duration))
	}
	return err
}

// runServe serves the built site. A static file server is all this needs;
// rebuilding on change is out of scope.
func runServe(cfg *config.Config, addr string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:    addr,
		Handler: http.FileServer(http.Dir(cfg.Output)),
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Serving site", slog.String("addr", addr), logfields.Path(cfg.Output))
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
		return srv.Close()
	}
}
