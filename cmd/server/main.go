// cmd/server/main.go
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	http_api "jobboard/internal/api/http"
	"jobboard/internal/config"
	"jobboard/internal/expiry"
	"jobboard/internal/infra/mongo"
	"jobboard/internal/tracing"
	"jobboard/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// corsMiddleware wraps an http.Handler with CORS headers so the single-page
// frontend can call the API from another origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")

		// Handle pre-flight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	// 1. Initialize logger and tracer
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	tracerShutdown, err := tracing.InitTracer("jobboard")
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tracerShutdown(context.Background()); err != nil {
			log.Printf("failed to shutdown tracer: %v", err)
		}
	}()

	log.Println("Starting jobboard server...")

	// 2. Load configuration (fatal without a store connection string)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 3. Create root context for lifecycle management
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Setup graceful shutdown
	setupGracefulShutdown(cancel)

	// 5. Connect to MongoDB (fail fast, no retry loop)
	client, err := mongo.NewClient(cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("failed to disconnect mongo client: %v", err)
		}
	}()
	log.Println("Connected to MongoDB.")

	// 6. Instantiate repository and run index migration
	jobRepo := mongo.NewJobRepository(client.Database(cfg.MongoDatabase), logger)
	migrateCtx, migrateCancel := context.WithTimeout(rootCtx, cfg.MongoTimeout)
	defer migrateCancel()
	if err := jobRepo.Migrate(migrateCtx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// 7. Instantiate service and expiry sweeper
	policy := usecase.Policy{
		Retention:      cfg.Retention,
		RequiredFields: cfg.RequiredFields,
	}
	jobService := usecase.NewJobService(jobRepo, policy, logger)

	if cfg.Retention > 0 {
		sweeper, err := expiry.NewSweeper(jobRepo, cfg.SweepSchedule, logger)
		if err != nil {
			log.Fatalf("Failed to create expiry sweeper: %v", err)
		}
		go func() {
			_ = sweeper.Start(rootCtx)
		}()
	}

	// 8. Register routes and metrics endpoint
	jobHandler := http_api.NewJobHandler(jobService, logger)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	jobHandler.RegisterRoutes(mux)

	// 9. Start HTTP API server with CORS middleware
	log.Printf("Starting HTTP API server on %s", cfg.HttpListenAddr)
	server := &http.Server{
		Addr:    cfg.HttpListenAddr,
		Handler: corsMiddleware(mux),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// 10. Block until shutdown
	<-rootCtx.Done()
	log.Println("Shutting down application gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("HTTP server shutdown failed: %v", err)
	}

	log.Println("Application shut down.")
}

func setupGracefulShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v. Initiating graceful shutdown...", sig)
		cancel()
	}()
}
