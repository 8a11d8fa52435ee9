package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lifelink-health/donation-backend/config"
	"github.com/lifelink-health/donation-backend/internal/db"
	cronjob "github.com/lifelink-health/donation-backend/internal/slots/cron"
	slotsrepo "github.com/lifelink-health/donation-backend/internal/slots/repository"
	slotssvc "github.com/lifelink-health/donation-backend/internal/slots/service"
)

// Standalone slot closer for deployments that keep background jobs out of
// the API process.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	slotSvc := slotssvc.NewSlotService(slotsrepo.NewSlotRepository(pool.Pool))

	scheduler := cronjob.NewScheduler(slotSvc)
	scheduler.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down slot closer")
	scheduler.Stop()
}
