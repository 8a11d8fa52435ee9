package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lifelink-health/donation-backend/internal/slots/service"
)

// Scheduler retires donation slots whose window has passed. It is the only
// writer of CLOSED status outside the capacity logic.
type Scheduler struct {
	slots *service.SlotService
	cron  *cron.Cron
}

func NewScheduler(slots *service.SlotService) *Scheduler {
	return &Scheduler{slots: slots}
}

// Start initializes cron tasks.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// Every 5 minutes
	_, err := c.AddFunc("0 */5 * * * *", func() {
		s.closeExpired()
	})

	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (closing expired slots every 5 minutes)")
	c.Start()
	s.cron = c
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) closeExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.slots.CloseExpired(ctx)
	if err != nil {
		log.Printf("Slot closer failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Slot closer retired %d expired slot(s)", n)
	}
}
