package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/vtrpza/todo/internal/config"
	"github.com/vtrpza/todo/internal/model"
)

// Engine holds the gamification rules. It is pure with respect to
// GamificationState: callers pass the current state in and commit the
// returned state, so a failed operation can never leave partial updates.
type Engine struct {
	Clock     Clock
	Rand      *rand.Rand
	Rewards   config.Rewards
	Templates []config.ChallengeTemplate
}

func NewEngine(clock Clock, rng *rand.Rand, cfg *config.Config) *Engine {
	return &Engine{
		Clock:     clock,
		Rand:      rng,
		Rewards:   cfg.Rewards,
		Templates: cfg.Challenges.Templates,
	}
}

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

// CompletionResult reports what a task completion changed, so the caller
// can emit the matching notifications in order.
type CompletionResult struct {
	PointsAwarded       int // task reward only, challenge bonuses excluded
	LeveledUp           bool
	NewLevel            int
	StreakAdvanced      bool
	Streak              int
	StreakMilestone     bool
	CompletedChallenges []model.Challenge
}

// TaskReward computes the rounded point value of completing a task:
// base points (reduced for subtasks) scaled by the priority multiplier,
// rounded half-up.
func (e *Engine) TaskReward(t model.Task) int {
	base := float64(e.Rewards.BasePoints)
	if t.IsSubtask {
		base = float64(e.Rewards.SubtaskPoints)
	}
	switch t.Priority {
	case model.PriorityHigh:
		base *= e.Rewards.HighMultiplier
	case model.PriorityLow:
		base *= e.Rewards.LowMultiplier
	}
	return int(math.Round(base))
}

// ApplyCompletion mutates a copy of g for a task transitioning to
// completed: points, streak, level, challenge progress and achievements.
// Uncompleting a task deliberately has no counterpart here; rewards are
// never clawed back.
func (e *Engine) ApplyCompletion(g model.GamificationState, t model.Task) (model.GamificationState, CompletionResult) {
	now := e.now()
	prevLevel := model.LevelForPoints(g.Points)
	prevStreak := g.Streak

	reward := e.TaskReward(t)

	// Streak advances at most once per calendar day.
	if g.LastTaskCompletedAt == nil || !SameCalendarDay(*g.LastTaskCompletedAt, now) {
		g.Streak++
		if g.StreakStartDate == nil {
			start := now
			g.StreakStartDate = &start
		}
	}

	g.Points += reward
	last := now
	g.LastTaskCompletedAt = &last
	g.TotalTasksCompleted++

	var completed []model.Challenge
	challenges := make([]model.Challenge, len(g.DailyChallenges))
	copy(challenges, g.DailyChallenges)
	for i, c := range challenges {
		if c.Completed {
			continue
		}
		switch {
		case c.Type == model.ChallengeTaskCompletion:
			c.Progress++
		case c.Type == model.ChallengeCategoryFocus && c.Category == t.Category:
			c.Progress++
		default:
			continue
		}
		if c.Progress >= c.Requirement {
			c.Completed = true
			g.Points += c.PointsReward
			completed = append(completed, c)
		}
		challenges[i] = c
	}
	g.DailyChallenges = challenges

	g.Level = model.LevelForPoints(g.Points)
	g.Achievements = EvaluateAchievements(g, now)

	return g, CompletionResult{
		PointsAwarded:       reward,
		LeveledUp:           g.Level > prevLevel,
		NewLevel:            g.Level,
		StreakAdvanced:      g.Streak > prevStreak,
		Streak:              g.Streak,
		StreakMilestone:     g.Streak > prevStreak && streakMilestone(g.Streak),
		CompletedChallenges: completed,
	}
}

// streakMilestone matches streaks worth celebrating: 3, 7, then every 10.
func streakMilestone(streak int) bool {
	return streak == 3 || streak == 7 || (streak > 0 && streak%10 == 0)
}

// StreakExpired reports whether the reset window has passed since the last
// completion. The sweep is the only path that ever lowers a streak.
func StreakExpired(g model.GamificationState, now time.Time, resetAfter time.Duration) bool {
	if g.LastTaskCompletedAt == nil {
		return false
	}
	return now.Sub(*g.LastTaskCompletedAt) > resetAfter
}

// ResetStreak clears the streak counter and its start date.
func ResetStreak(g model.GamificationState) model.GamificationState {
	g.Streak = 0
	g.StreakStartDate = nil
	return g
}
