// Package main runs the HTTP API server: chart, panchanga, dasha, KP, varga,
// muhurta and matchmaking endpoints plus a websocket transit stream, backed by
// PostgreSQL for saved charts and ClickHouse for panchanga history.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jyotish-engine/internal/api"
	"jyotish-engine/internal/ephemeris"
	"jyotish-engine/internal/ephemeris/analytic"
	"jyotish-engine/internal/geocode"
	"jyotish-engine/internal/observability"
	"jyotish-engine/internal/storage"
	chstore "jyotish-engine/internal/storage/clickhouse"
	"jyotish-engine/internal/storage/memory"
	"jyotish-engine/internal/storage/migrations"
	pgstore "jyotish-engine/internal/storage/postgres"
)

// allStores holds the storage implementations behind the API.
type allStores struct {
	chartStore     storage.ChartStore
	panchangaStore storage.PanchangaStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("API_ADDR", ":8080"), "API HTTP address")
	metricsAddr := flag.String("metrics-addr", envOr("METRICS_ADDR", ":9090"), "Prometheus metrics HTTP address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	ephemerisURL := flag.String("ephemeris-url", os.Getenv("EPHEMERIS_URL"), "Remote ephemeris service endpoint (empty for built-in analytic)")
	geocodeURL := flag.String("geocode-url", os.Getenv("GEOCODE_URL"), "Geocoding service endpoint (empty for built-in city table)")
	transitInterval := flag.Duration("transit-interval", 10*time.Second, "Websocket transit push interval")

	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	var provider ephemeris.Provider = analytic.New()
	if *ephemerisURL != "" {
		provider = ephemeris.NewHTTPClient(*ephemerisURL)
		logger.Printf("Using remote ephemeris at %s", *ephemerisURL)
	}

	var resolver geocode.Resolver = geocode.NewStatic()
	if *geocodeURL != "" {
		resolver = geocode.NewHTTPResolver(*geocodeURL)
		logger.Printf("Using geocoding service at %s", *geocodeURL)
	}

	server := api.NewServer(api.Options{
		Provider:        provider,
		Resolver:        resolver,
		ChartStore:      stores.chartStore,
		PanchangaStore:  stores.panchangaStore,
		TransitInterval: *transitInterval,
		Logger:          log.New(os.Stdout, "[api] ", log.LstdFlags),
	})

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.Router(),
	}

	started := time.Now()
	go startMetricsServer(logger, *metricsAddr, started)
	go observability.TrackUptime(ctx)

	done := make(chan struct{})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-done:
		}
	}()

	logger.Printf("Listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server error: %v", err)
	}
	close(done)

	logger.Println("Shutdown complete")
}

// createStores creates the chart and panchanga stores, running migrations for
// the database-backed mode.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			chartStore:     memory.NewChartStore(),
			panchangaStore: memory.NewPanchangaStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}

	chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
	}

	stores := &allStores{
		chartStore:     pgstore.NewChartStore(pool),
		panchangaStore: chstore.NewPanchangaStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// startMetricsServer serves health, metrics and status on a separate port.
func startMetricsServer(logger *log.Logger, addr string, started time.Time) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", observability.Handler())

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "running",
			"uptime": time.Since(started).String(),
		})
	})

	logger.Printf("Starting metrics server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Printf("Metrics server error: %v", err)
	}
}

// envOr returns the environment value or a fallback default.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
