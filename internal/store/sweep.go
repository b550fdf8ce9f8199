package store

import (
	"github.com/vtrpza/todo/internal/game"
)

// SweepStreak resets the streak once the reset window (48h by default)
// has passed since the last completion. Returns whether a reset happened.
func (s *Store) SweepStreak() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !game.StreakExpired(s.state.Gamification, s.now(), s.streakReset) {
		return false
	}
	next := s.state.Clone()
	next.Gamification = game.ResetStreak(next.Gamification)
	s.commitLocked(next)
	s.logger.Printf("store: streak reset after %s of inactivity", s.streakReset)
	return true
}

// SweepChallenges drops expired challenges and, when none remain, rolls a
// replacement so there is always something to chase. Returns the number of
// removed challenges and whether a new one was generated.
func (s *Store) SweepChallenges() (removed int, generated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	next := s.state.Clone()

	kept := next.Gamification.DailyChallenges[:0]
	for _, c := range next.Gamification.DailyChallenges {
		if c.Expired(now) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	next.Gamification.DailyChallenges = kept

	if len(kept) == 0 {
		next.Gamification.DailyChallenges = append(next.Gamification.DailyChallenges, s.engine.NewDailyChallenge())
		generated = true
	}
	if removed == 0 && !generated {
		return 0, false
	}
	s.commitLocked(next)
	return removed, generated
}

// SweepToasts removes toasts whose duration has elapsed, recovering from
// cancelled or skipped timers. Returns the number removed.
func (s *Store) SweepToasts() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	next := s.state.Clone()
	kept := next.Toasts[:0]
	removed := 0
	for _, t := range next.Toasts {
		if t.Elapsed(now) {
			removed++
			if timer, ok := s.timers[t.ID]; ok {
				timer.Stop()
				delete(s.timers, t.ID)
			}
			continue
		}
		kept = append(kept, t)
	}
	if removed == 0 {
		return 0
	}
	next.Toasts = kept
	s.commitLocked(next)
	return removed
}
