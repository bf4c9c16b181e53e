package server

import (
	"context"
	"fmt"
	"log"

	"github.com/mergington/activities/internal/activities"
	platformotel "github.com/mergington/activities/internal/platform/otel"
	"github.com/mergington/activities/internal/server"
	"github.com/mergington/activities/internal/storage"
	"github.com/mergington/activities/internal/storage/memory"
	"github.com/mergington/activities/internal/storage/sqlite"
)

// Run assembles the registry and serves HTTP until the context ends.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := platformotel.Setup(ctx, "activities")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	var registry storage.Registry
	if cfg.DBPath != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open registry db: %w", err)
		}
		defer store.Close()
		if err := store.Seed(ctx, activities.SeedCatalog()); err != nil {
			return fmt.Errorf("seed registry: %w", err)
		}
		registry = store
		log.Printf("registry backed by sqlite at %s", cfg.DBPath)
	} else {
		registry = memory.New(activities.SeedCatalog())
		log.Printf("registry held in process memory")
	}

	srv, err := server.NewServer(server.Config{
		HTTPAddr:  cfg.HTTPAddr,
		Registry:  registry,
		StaticDir: cfg.StaticDir,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve activities: %w", err)
	}
	return nil
}
