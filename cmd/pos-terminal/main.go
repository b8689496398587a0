package main

import (
	"context"
	"log"

	"github.com/Renal37/restaurant-pos/internal/database"
	router "github.com/Renal37/restaurant-pos/internal/http"
	"github.com/Renal37/restaurant-pos/internal/localstore"
	"github.com/Renal37/restaurant-pos/internal/logger"
	"github.com/Renal37/restaurant-pos/internal/services"
	"github.com/Renal37/restaurant-pos/internal/utils"
)

func main() {
	ctx := context.Background()
	config := NewConfig()

	if err := logger.Initialize(config.logLevel, config.env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}

	db, err := database.New(ctx, config.dsn)

	if err != nil {
		log.Fatalf("Database wasn't initialized due to %s", err)
	}

	// Миграции выполняются только при доступной базе; офлайн-старт их пропускает,
	// они применятся при следующем запуске с сетью.
	online := db.Probe(ctx) == nil
	if online {
		if err := db.RunMigrations(); err != nil {
			log.Fatalf("Migrations weren't run due to %s", err)
		}
	}

	store := localstore.New(config.queueFile)

	if count, err := store.Size(); err == nil && count > 0 {
		log.Printf("Local queue holds %d pending orders awaiting sync\n", count)
	}

	monitor := services.NewConnectivityMonitor(db, config.probeInterval, online)
	inventoryService := services.NewInventoryService(db)
	writerService := services.NewOrderWriterService(db, inventoryService)
	syncService := services.NewSyncService(writerService, store, monitor)

	monitor.Subscribe(syncService.HandleConnectivityChange)
	go monitor.Run(ctx)

	utils.HandleTerminationProcess(func() {
		db.Close()
	})

	log.Printf("Running POS terminal on %s (online: %v)\n", config.endpoint, online)

	router.New(
		router.Config{Endpoint: config.endpoint},
		services.NewAuthService(db),
		services.NewJWTService(config.authSecretKey),
		syncService,
	).Run()
}
