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

	"github.com/lysyi3m/podparse/app/api"
	"github.com/lysyi3m/podparse/app/cfg"
	"github.com/lysyi3m/podparse/app/convert"
	"github.com/lysyi3m/podparse/app/tasks"
	"go.uber.org/multierr"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(2)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch appCfg.Command {
	case cfg.CommandConvert:
		err = runConvert(ctx, appCfg)
	case cfg.CommandServe:
		err = runServe(ctx, appCfg)
	}

	if err != nil {
		stop()
		os.Exit(1)
	}
}

func runConvert(ctx context.Context, appCfg *cfg.Cfg) error {
	format, err := convert.ParseFormat(appCfg.Format)
	if err != nil {
		slog.Error("Invalid output format", "error", err)
		return err
	}
	converter := convert.NewConverter(format, appCfg.Indent, appCfg.MetaOnly, appCfg.OutputDir)

	slog.Debug("Converting feeds", "files", len(appCfg.Files), "workers", appCfg.WorkerCount, "format", format)

	scheduler := tasks.NewScheduler(ctx, appCfg.WorkerCount, len(appCfg.Files))
	scheduler.Start()
	for _, path := range appCfg.Files {
		if err := scheduler.EnqueueTask(tasks.NewConvertFeedTask(path, converter)); err != nil {
			slog.Warn("Failed to enqueue ConvertFeedTask", "feed", path, "error", err)
		}
	}

	if err := scheduler.Stop(); err != nil {
		failed := multierr.Errors(err)
		slog.Error("Conversion finished with failures", "failed", len(failed), "total", len(appCfg.Files))
		return err
	}

	slog.Info("Conversion finished", "total", len(appCfg.Files), "output_dir", appCfg.OutputDir)
	return nil
}

func runServe(ctx context.Context, appCfg *cfg.Cfg) error {
	handler := api.NewHandler(appCfg.MaxBodySize, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "version", appCfg.Version, "max_body_size", appCfg.MaxBodySize)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case serveErr = <-serverErrChan:
		slog.Error("Server error", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	return serveErr
}
