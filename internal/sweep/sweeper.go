// Package sweep runs the periodic maintenance jobs: streak expiry,
// challenge rotation and toast cleanup. Every job dispatches through the
// store's own mutation entry points, so sweeps and user actions serialize
// on the same lock.
package sweep

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vtrpza/todo/internal/store"
)

type Sweeper struct {
	cron   *cron.Cron
	store  *store.Store
	logger *log.Logger
}

type Intervals struct {
	Streak    time.Duration
	Challenge time.Duration
	Toast     time.Duration
}

func New(st *store.Store, loc *time.Location, iv Intervals, logger *log.Logger) (*Sweeper, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Sweeper{
		cron:   cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		store:  st,
		logger: logger,
	}

	jobs := []struct {
		name  string
		every time.Duration
		run   func()
	}{
		{"streak", iv.Streak, func() { s.store.SweepStreak() }},
		{"challenges", iv.Challenge, s.sweepChallenges},
		{"toasts", iv.Toast, func() { s.store.SweepToasts() }},
	}
	for _, j := range jobs {
		if j.every <= 0 {
			return nil, fmt.Errorf("sweep: %s interval must be positive", j.name)
		}
		spec := fmt.Sprintf("@every %ds", int(j.every.Seconds()))
		if _, err := s.cron.AddFunc(spec, j.run); err != nil {
			return nil, fmt.Errorf("sweep: schedule %s: %w", j.name, err)
		}
	}
	return s, nil
}

func (s *Sweeper) sweepChallenges() {
	removed, generated := s.store.SweepChallenges()
	if removed > 0 || generated {
		s.logger.Printf("sweep: challenges removed=%d generated=%t", removed, generated)
	}
}

// Start runs every sweep once immediately, then on schedule. The immediate
// pass mirrors the checks the app performs on startup.
func (s *Sweeper) Start() {
	s.store.SweepStreak()
	s.sweepChallenges()
	s.store.SweepToasts()
	s.cron.Start()
}

// Stop waits for any running job to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
