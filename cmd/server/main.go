package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"gitea.jw6.us/james/oxstream/internal/audit"
	"gitea.jw6.us/james/oxstream/internal/config"
	"gitea.jw6.us/james/oxstream/internal/deliver"
	"gitea.jw6.us/james/oxstream/internal/dispatch"
	httpserver "gitea.jw6.us/james/oxstream/internal/http"
	"gitea.jw6.us/james/oxstream/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("Starting oxstream server...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("failed to create db pool: %v", err)
	}
	defer pool.Close()

	stor := store.New(pool)

	var auditor *audit.Logger
	if cfg.AuditLogEnabled {
		auditor, err = audit.New(cfg.AuditLogFile)
		if err != nil {
			log.Fatalf("failed to open audit log: %v", err)
		}
		defer auditor.Close()
	}

	client := deliver.NewClient(cfg.ActivityServiceURL)
	queue := dispatch.NewQueue()
	dispatcher := dispatch.New(cfg, stor.Users, client, queue, auditor)

	r := httpserver.NewRouter(cfg, stor, dispatcher)

	// No WriteTimeout: dispatch blocks on activity delivery, which carries
	// no bound of its own.
	srv := &http.Server{
		Addr:        cfg.ListenAddr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
