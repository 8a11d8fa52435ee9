package main

import (
	"context"
	"log"

	"github.com/lifelink-health/donation-backend/config"
	"github.com/lifelink-health/donation-backend/internal/bootstrap"
	"github.com/lifelink-health/donation-backend/internal/db"
	cronjob "github.com/lifelink-health/donation-backend/internal/slots/cron"
	"github.com/lifelink-health/donation-backend/internal/storage/postgres"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	sqlDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("db (sql): %v", err)
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		// The cache is optional; the directory works without it.
		log.Printf("redis unavailable, running without cache: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	r, slotSvc := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config: cfg,
		Pool:   pool.Pool,
		SQLDB:  sqlDB,
		Redis:  rdb,
	})

	scheduler := cronjob.NewScheduler(slotSvc)
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
