package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tcp-cache/internal/logs"
	"tcp-cache/internal/metrics"
	"tcp-cache/internal/server"
	"tcp-cache/internal/store"
	"tcp-cache/internal/ttl"
)

func main() {
	addr := flag.String("addr", ":5050", "TCP address to listen on")
	sweep := flag.Duration("sweep-interval", time.Second, "how often expired keys are swept")
	levelName := flag.String("log-level", "info", "minimum log level (debug, info, warn, error)")
	flag.Parse()

	level, err := logs.ParseLevel(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	// Logger
	logger := logs.NewLogger(1000, level)
	logger.SetOutput(os.Stderr)

	// Metrics
	metricsRegistry := metrics.NewRegistry()

	// Store — the single shared instance, passed by reference into the
	// cleaner and every session.
	cacheStore := store.NewStore(metricsRegistry)

	// TTL cleaner
	ctx, cancel := context.WithCancel(context.Background())
	cleaner := ttl.NewCleaner(cacheStore, *sweep, logger, metricsRegistry)
	go cleaner.Start(ctx)

	// Server
	srv := server.New(*addr, cacheStore, logger, metricsRegistry)

	// Graceful shutdown on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutting down")
		srv.Shutdown()
		cancel()
	}()

	if err := srv.Listen(); err != nil {
		log.Fatal(err)
	}

	snap := metricsRegistry.Snapshot()
	logger.Infof("bye: %d keys resident, %d commands served",
		cacheStore.Len(), snap[string(metrics.CommandsTotal)])
}
