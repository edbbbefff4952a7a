package maintenance

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler fires due recurring tasks on an interval. Firing is sequential
// and re-run safe; concurrent firings from multiple processes are not
// atomic but converge because open issues block duplicates.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	every   time.Duration
}

func NewScheduler(service *Service, every time.Duration) *Scheduler {
	if every <= 0 {
		every = time.Hour
	}
	return &Scheduler{
		cron:    cron.New(),
		service: service,
		every:   every,
	}
}

func (s *Scheduler) Start() {
	log.Println("Starting recurring maintenance scheduler...")

	spec := fmt.Sprintf("@every %s", s.every)
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		log.Printf("recurring_scheduler add_failed error=%q", err.Error())
		return
	}

	// First sweep immediately so a restart never delays overdue templates.
	go s.sweep()

	s.cron.Start()
	log.Println("Recurring maintenance scheduler started")
}

func (s *Scheduler) Stop() {
	log.Println("Stopping recurring maintenance scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Recurring maintenance scheduler stopped")
}

func (s *Scheduler) sweep() {
	fired, err := s.service.FireDue(context.Background(), "")
	if err != nil {
		log.Printf("recurring_sweep failed error=%q", err.Error())
		return
	}
	if fired > 0 {
		log.Printf("recurring_sweep fired=%d", fired)
	}
}
