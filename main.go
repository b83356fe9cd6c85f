package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice-access/api"
	"backoffice-access/config"
	"backoffice-access/core/catalog"
	"backoffice-access/core/links"
	"backoffice-access/core/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger := utils.NewLoggerWithLevel(os.Stdout, cfg.LogLevel)
	reg, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatalf("catalog: %v", err)
	}

	srv, err := api.NewServer(cfg, logger, api.ServerDeps{Catalog: reg, Saver: links.NewLogSaver(logger)})
	if err != nil {
		logger.Fatalf("server init: %v", err)
	}
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Errorf("graceful shutdown: %v", err)
	}
}
