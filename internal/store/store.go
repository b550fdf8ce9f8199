// Package store owns the application state. Every mutation goes through a
// Store method: the method computes a full next-state value under the lock,
// commits it, then writes the whole state through to the blob store.
package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/vtrpza/todo/internal/blob"
	"github.com/vtrpza/todo/internal/game"
	"github.com/vtrpza/todo/internal/model"
)

type Store struct {
	mu     sync.Mutex
	state  model.AppState
	blob   blob.Store
	engine *game.Engine
	clock  game.Clock
	logger *log.Logger

	defaultToastMS int
	streakReset    time.Duration

	timers map[string]*time.Timer // toast self-removal
}

type Options struct {
	Blob   blob.Store
	Engine *game.Engine
	Clock  game.Clock
	Logger *log.Logger

	DefaultToastDurationMS int
	StreakResetAfter       time.Duration
}

// New loads the persisted state (or the empty initial state when the blob
// is absent or unreadable) and makes sure at least one daily challenge
// exists.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}
	if opts.DefaultToastDurationMS == 0 {
		opts.DefaultToastDurationMS = 3000
	}
	if opts.StreakResetAfter == 0 {
		opts.StreakResetAfter = 48 * time.Hour
	}

	s := &Store{
		blob:           opts.Blob,
		engine:         opts.Engine,
		clock:          opts.Clock,
		logger:         opts.Logger,
		defaultToastMS: opts.DefaultToastDurationMS,
		streakReset:    opts.StreakResetAfter,
		timers:         map[string]*time.Timer{},
	}

	s.state = model.NewAppState()
	if b, ok, err := s.blob.Load(ctx); err != nil {
		return nil, err
	} else if ok {
		var loaded model.AppState
		if err := json.Unmarshal(b, &loaded); err != nil {
			// Corrupt state is discarded, not surfaced: the app must
			// always come up.
			s.logger.Printf("store: discarding unreadable state: %v", err)
		} else {
			loaded.Normalize()
			s.state = loaded
		}
	}

	if len(s.state.Gamification.DailyChallenges) == 0 {
		c := s.engine.NewDailyChallenge()
		s.state.Gamification.DailyChallenges = append(s.state.Gamification.DailyChallenges, c)
	}
	s.persistLocked()
	return s, nil
}

// Close stops pending toast timers. The blob store is closed by the caller
// that opened it.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// State returns a deep copy of the aggregate root.
func (s *Store) State() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) now() time.Time { return s.clock.Now() }

// commitLocked swaps in the fully-built next state and persists it.
// Persistence failures are logged, never propagated: the in-memory state
// is authoritative for a single-user local app.
func (s *Store) commitLocked(next model.AppState) {
	s.state = next
	s.persistLocked()
}

func (s *Store) persistLocked() {
	b, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Printf("store: marshal state: %v", err)
		return
	}
	if err := s.blob.Save(context.Background(), b); err != nil {
		s.logger.Printf("store: persist state: %v", err)
	}
}
