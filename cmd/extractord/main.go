package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qwazr/extractor-sub000/config"
	"github.com/qwazr/extractor-sub000/server"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Parse(configPath)

	if err != nil {
		return err
	}

	slog.Info("registered extractors", "names", cfg.Registry.Names())

	handler := server.New(cfg)

	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: handler.Router(),
	}

	errs := make(chan error, 1)

	go func() {
		slog.Info("listening", "address", cfg.Address)

		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err

	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(ctx)
}
