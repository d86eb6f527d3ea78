package main

import (
	"context"
	"log"

	"docqa-be/internal/bootstrap"
	"docqa-be/internal/config"
	"docqa-be/internal/search"
	"docqa-be/internal/server"
	"docqa-be/internal/tracer"
	"docqa-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to run migrations: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	if err := container.SyncConsumerService.Consume(context.Background()); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 5. Reconcile the search index with the session store. The index is
	// advisory, so a dead Elasticsearch only costs search until restart.
	go func() {
		ctx := context.Background()
		if err := search.EnsureSessionIndex(ctx, container.SearchClient, cfg.Search.SessionIndex); err != nil {
			log.Printf("Search index setup failed (search degraded): %v", err)
			return
		}
		if err := container.SessionIndexer.SyncAll(ctx); err != nil {
			log.Printf("Search index reconcile failed (search degraded): %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
