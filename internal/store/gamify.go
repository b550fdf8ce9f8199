package store

import (
	"fmt"

	"github.com/vtrpza/todo/internal/game"
	"github.com/vtrpza/todo/internal/model"
)

// ToggleTask flips a task's completion. Completing a task runs the full
// gamification pass; uncompleting only clears the completion mark — points,
// streak, challenge progress and achievements are never rolled back.
// A missing id is a silent no-op.
func (s *Store) ToggleTask(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	idx := findTask(next.Tasks, id)
	if idx < 0 {
		return model.Task{}, false
	}

	t := &next.Tasks[idx]
	completing := !t.Completed
	t.Completed = completing
	if completing {
		now := s.now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}

	if completing {
		g, res := s.engine.ApplyCompletion(next.Gamification, *t)
		next.Gamification = g

		s.pushToastLocked(&next, fmt.Sprintf("Tarefa %q concluída! +%d pontos", t.Title, res.PointsAwarded), model.ToastSuccess, s.defaultToastMS)
		if res.LeveledUp {
			s.pushToastLocked(&next, fmt.Sprintf("Você subiu para o nível %d! 🎉", res.NewLevel), model.ToastInfo, 4000)
		}
		if res.StreakMilestone {
			s.pushToastLocked(&next, fmt.Sprintf("Sequência de %d dias! Incrível! 🔥", res.Streak), model.ToastInfo, 4000)
		}
	} else {
		s.pushToastLocked(&next, fmt.Sprintf("Tarefa %q desmarcada", t.Title), model.ToastInfo, s.defaultToastMS)
	}

	out := *t
	s.commitLocked(next)
	return out, true
}

// GenerateDailyChallenge rolls a new challenge and appends it. Existing
// challenges are kept; expiry is handled by the sweep.
func (s *Store) GenerateDailyChallenge() model.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	c := s.engine.NewDailyChallenge()
	next.Gamification.DailyChallenges = append(next.Gamification.DailyChallenges, c)
	s.commitLocked(next)
	return c
}

// CompleteChallenge manually claims a challenge. Missing or already
// completed ids are silent no-ops, so the reward pays out at most once.
func (s *Store) CompleteChallenge(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	idx := -1
	for i := range next.Gamification.DailyChallenges {
		if next.Gamification.DailyChallenges[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || next.Gamification.DailyChallenges[idx].Completed {
		return false
	}

	c := &next.Gamification.DailyChallenges[idx]
	c.Completed = true
	next.Gamification.Points += c.PointsReward
	next.Gamification.Level = model.LevelForPoints(next.Gamification.Points)
	next.Gamification.Achievements = game.EvaluateAchievements(next.Gamification, s.now())

	s.pushToastLocked(&next, fmt.Sprintf("Desafio %q concluído! +%d pontos", c.Title, c.PointsReward), model.ToastSuccess, 4000)
	s.commitLocked(next)
	return true
}

// ResetStreak zeroes the streak counter. Exposed for the sweep and for
// explicit resets.
func (s *Store) ResetStreak() {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.Gamification = game.ResetStreak(next.Gamification)
	s.commitLocked(next)
}
