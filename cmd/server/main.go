package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"schedule-comparison-service/internal/adapters/cache"
	"schedule-comparison-service/internal/adapters/repositories"
	"schedule-comparison-service/internal/adapters/source"
	"schedule-comparison-service/internal/api"
	"schedule-comparison-service/internal/config"
	"schedule-comparison-service/internal/platform/db"
	"schedule-comparison-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (files, SQL, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := openDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	store, err := repositories.Setup(ctx, cfg.DBDriver, conn)
	if err != nil {
		log.Fatal(err)
	}

	engine := services.NewEngine(services.EngineOptions{
		WeekStart:  cfg.WeekStart,
		DepotStart: cfg.DepotStart,
	})
	reloader := &services.Reloader{Engine: engine, Recorder: store.Runs}

	switch cfg.ScheduleSource {
	case config.SourceDB:
		reloader.Visits = store.Visits
	default:
		if reloader.Original, err = source.Open(cfg.OriginalSchedule, cfg.OriginalFormat); err != nil {
			log.Fatal(err)
		}
		if reloader.Optimized, err = source.Open(cfg.OptimizedSchedule, cfg.OptimizedFormat); err != nil {
			log.Fatal(err)
		}
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		reloader.Publisher = cache.NewRedisSnapshotPublisher(client)
		log.Printf("Publishing snapshots to redis addr=%s key=%s", cfg.RedisAddr, cache.DefaultSnapshotKey)
	}

	// A failed initial load is not fatal: the API reports not_loaded until a
	// POST /api/reload succeeds.
	if _, err := reloader.Reload(ctx); err != nil {
		log.Printf("initial load failed, serving without data: err=%v", err)
	}

	router := api.NewRouter(api.RouterDeps{
		Engine:      engine,
		Reloader:    reloader,
		Runs:        store.Runs,
		CORSOrigins: cfg.CORSOrigins,
	})

	log.Printf("Server listening addr=:%s source=%s db=%s", cfg.Port, cfg.ScheduleSource, cfg.DBDriver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: err=%v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func openDB(cfg config.Config) (*sql.DB, error) {
	if cfg.DBDriver == config.DriverPostgres {
		return db.Open(cfg.DatabaseURL)
	}
	return db.OpenSQLite(cfg.DBPath)
}
