package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-catalog/internal/assets"
	"movie-catalog/internal/catalog"
	"movie-catalog/internal/database"
	"movie-catalog/internal/handlers"
	"movie-catalog/internal/logging"
	"movie-catalog/internal/memory"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/middleware"
	"movie-catalog/internal/resolver"
	"movie-catalog/internal/scan"
	"movie-catalog/internal/startup"
	"movie-catalog/internal/tmdb"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	// Size the heap for the container before anything allocates
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Verify the lookup service is reachable. This is the one fatal
	// dependency: without it nothing can be resolved.
	client := tmdb.New(config.APIKey, config.Language)
	startup.LogLookupServiceCheck()
	pingStart := time.Now()
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = client.Ping(pingCtx)
	pingCancel()
	if err != nil {
		startup.LogFatal("Lookup service unavailable: %v", err)
	}
	startup.LogLookupServiceReady(time.Since(pingStart))

	// Open the store and restore persisted entries, if persistence is on
	cat := catalog.New()
	var store *database.Database
	if config.PersistenceEnabled {
		storeStart := time.Now()
		store, err = database.New(context.Background(), config.DatabasePath)
		if err != nil {
			startup.LogFatal("Failed to open catalog store: %v", err)
		}
		defer store.Close()

		restored, err := store.LoadAll()
		if err != nil {
			startup.LogFatal("Failed to restore catalog: %v", err)
		}
		for _, entry := range restored {
			cat.Insert(entry)
		}
		startup.LogStoreInit(time.Since(storeStart), len(restored))

		// Every insert is written through to the store, outside the
		// catalog lock.
		cat.Subscribe(func(event catalog.Event) {
			if err := store.SaveEntry(event.Entry); err != nil {
				logging.Error("Failed to persist %q: %v", event.Entry.Title(), err)
			}
		})
	}

	// Build the scan pipeline
	res := resolver.New(client)
	fetcher := assets.New(client)
	scanConfig := scan.DefaultConfig()
	coordinator := scan.New(res, fetcher, cat, scanConfig)

	if config.MetricsEnabled {
		metrics.InitializeMetrics()
	}

	// Initialize handlers
	h := handlers.New(cat, coordinator, store, config)

	// Setup router
	router := setupRouter(h)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(router)

	// Apply metrics middleware
	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Metrics are served on their own port so they stay off the public
	// listener.
	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", h.MetricsHandler())
		metricsSrv = &http.Server{
			Addr:        ":" + config.MetricsPort,
			Handler:     metricsMux,
			ReadTimeout: 15 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Kick off the initial scan in the background
	scanCtx, scanCancel := context.WithCancel(context.Background())
	if config.ScanOnStart {
		startup.LogScanStarted(config.MediaDir, scanConfig.Workers)
		if err := coordinator.StartScan(scanCtx, config.MediaDir); err != nil {
			logging.Error("Initial scan failed to start: %v", err)
		}
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, scanCancel)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Catalog API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/movies", h.ListMovies).Methods("GET")
	api.HandleFunc("/movies", h.AddMovie).Methods("POST")
	api.HandleFunc("/movies/{id}", h.GetMovie).Methods("GET")
	api.HandleFunc("/movies/{id}", h.DeleteMovie).Methods("DELETE")
	api.HandleFunc("/movies/{id}/poster", h.GetPoster).Methods("GET")
	api.HandleFunc("/movies/{id}/backdrop", h.GetBackdrop).Methods("GET")
	api.HandleFunc("/scan", h.TriggerScan).Methods("POST")
	api.HandleFunc("/scan/progress", h.ScanProgress).Methods("GET")

	return r
}

func handleShutdown(srv, metricsSrv *http.Server, scanCancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	scanCancel()
	startup.LogShutdownStepComplete("Scan coordinator stopped")

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
