package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtrpza/todo/internal/config"
	"github.com/vtrpza/todo/internal/model"
)

func newTestEngine(start time.Time) (*Engine, *FakeClock) {
	clock := NewFakeClock(start)
	return NewEngine(clock, rand.New(rand.NewSource(1)), config.Default()), clock
}

func freshState() model.GamificationState {
	return model.GamificationState{
		Points:          0,
		Level:           1,
		Streak:          0,
		DailyChallenges: []model.Challenge{},
		Achievements:    []model.Achievement{},
	}
}

func TestTaskReward_Priorities(t *testing.T) {
	e, _ := newTestEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	assert.Equal(t, 10, e.TaskReward(model.Task{Priority: model.PriorityMedium}))
	assert.Equal(t, 15, e.TaskReward(model.Task{Priority: model.PriorityHigh}))
	assert.Equal(t, 8, e.TaskReward(model.Task{Priority: model.PriorityLow}))
}

func TestTaskReward_SubtaskRoundsHalfUp(t *testing.T) {
	e, _ := newTestEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	// 5 * 1.5 = 7.5 rounds up to 8; 5 * 0.8 = 4.
	assert.Equal(t, 5, e.TaskReward(model.Task{IsSubtask: true, Priority: model.PriorityMedium}))
	assert.Equal(t, 8, e.TaskReward(model.Task{IsSubtask: true, Priority: model.PriorityHigh}))
	assert.Equal(t, 4, e.TaskReward(model.Task{IsSubtask: true, Priority: model.PriorityLow}))
}

func TestApplyCompletion_AwardsPointsAndCounts(t *testing.T) {
	e, _ := newTestEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	g, res := e.ApplyCompletion(freshState(), model.Task{Title: "relatório", Priority: model.PriorityHigh})

	assert.Equal(t, 15, res.PointsAwarded)
	assert.Equal(t, 15, g.Points)
	assert.Equal(t, 1, g.TotalTasksCompleted)
	assert.Equal(t, 1, g.Level)
	require.NotNil(t, g.LastTaskCompletedAt)
}

func TestApplyCompletion_StreakAdvancesOncePerDay(t *testing.T) {
	e, clock := newTestEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	g, res := e.ApplyCompletion(freshState(), model.Task{Priority: model.PriorityMedium})
	assert.True(t, res.StreakAdvanced)
	assert.Equal(t, 1, g.Streak)
	require.NotNil(t, g.StreakStartDate)

	// Same calendar day: streak holds.
	clock.Advance(5 * time.Hour)
	g, res = e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})
	assert.False(t, res.StreakAdvanced)
	assert.Equal(t, 1, g.Streak)

	// Next day: streak advances again.
	clock.Advance(20 * time.Hour)
	g, res = e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})
	assert.True(t, res.StreakAdvanced)
	assert.Equal(t, 2, g.Streak)
}

func TestApplyCompletion_StreakStartDateIsPreserved(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	e, clock := newTestEngine(start)

	g, _ := e.ApplyCompletion(freshState(), model.Task{Priority: model.PriorityMedium})
	require.NotNil(t, g.StreakStartDate)
	first := *g.StreakStartDate

	clock.Advance(24 * time.Hour)
	g, _ = e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})
	require.NotNil(t, g.StreakStartDate)
	assert.Equal(t, first, *g.StreakStartDate)
}

func TestApplyCompletion_LevelUpFlag(t *testing.T) {
	e, _ := newTestEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	g := freshState()
	g.Points = 95
	g.Level = model.LevelForPoints(g.Points)

	g, res := e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})

	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, 105, g.Points)
	assert.Equal(t, 2, g.Level)
}

func TestApplyCompletion_ChallengePaysOnce(t *testing.T) {
	e, clock := newTestEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	g := freshState()
	g.DailyChallenges = []model.Challenge{{
		ID:           "c1",
		Type:         model.ChallengeTaskCompletion,
		Requirement:  2,
		PointsReward: 25,
		ExpiresAt:    EndOfDay(clock.Now()),
	}}

	g, res := e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})
	assert.Empty(t, res.CompletedChallenges)
	assert.Equal(t, 1, g.DailyChallenges[0].Progress)
	assert.Equal(t, 10, g.Points)

	g, res = e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})
	require.Len(t, res.CompletedChallenges, 1)
	assert.True(t, g.DailyChallenges[0].Completed)
	assert.Equal(t, 45, g.Points) // 10 + 10 + 25 bonus

	// Completed challenges no longer accumulate progress or pay again.
	g, res = e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})
	assert.Empty(t, res.CompletedChallenges)
	assert.Equal(t, 2, g.DailyChallenges[0].Progress)
	assert.Equal(t, 55, g.Points)
}

func TestApplyCompletion_CategoryFocusMatchesCategoryOnly(t *testing.T) {
	e, clock := newTestEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	g := freshState()
	g.DailyChallenges = []model.Challenge{{
		ID:           "c1",
		Type:         model.ChallengeCategoryFocus,
		Category:     model.CategoryStudy,
		Requirement:  1,
		PointsReward: 20,
		ExpiresAt:    EndOfDay(clock.Now()),
	}}

	g, res := e.ApplyCompletion(g, model.Task{Category: model.CategoryWork, Priority: model.PriorityMedium})
	assert.Empty(t, res.CompletedChallenges)
	assert.Equal(t, 0, g.DailyChallenges[0].Progress)

	g, res = e.ApplyCompletion(g, model.Task{Category: model.CategoryStudy, Priority: model.PriorityMedium})
	require.Len(t, res.CompletedChallenges, 1)
	assert.Equal(t, 40, g.Points) // 10 + 10 + 20 bonus
}

func TestApplyCompletion_LevelReflectsChallengeBonus(t *testing.T) {
	e, clock := newTestEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	g := freshState()
	g.Points = 85
	g.Level = model.LevelForPoints(g.Points)
	g.DailyChallenges = []model.Challenge{{
		ID:           "c1",
		Type:         model.ChallengeTaskCompletion,
		Requirement:  1,
		PointsReward: 10,
		ExpiresAt:    EndOfDay(clock.Now()),
	}}

	// 85 + 10 task + 10 bonus = 105: the bonus is what crosses the level.
	g, res := e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, g.Level)
	assert.Equal(t, 105, g.Points)
}

func TestStreakMilestones(t *testing.T) {
	e, clock := newTestEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	g := freshState()
	milestones := []int{}
	for day := 1; day <= 30; day++ {
		var res CompletionResult
		g, res = e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})
		if res.StreakMilestone {
			milestones = append(milestones, res.Streak)
		}
		clock.Advance(24 * time.Hour)
	}
	assert.Equal(t, []int{3, 7, 10, 20, 30}, milestones)
}

func TestStreakMilestone_NotRepeatedSameDay(t *testing.T) {
	e, clock := newTestEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	g := freshState()
	for day := 0; day < 3; day++ {
		g, _ = e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})
		if day < 2 {
			clock.Advance(24 * time.Hour)
		}
	}
	assert.Equal(t, 3, g.Streak)

	// A second completion on milestone day must not celebrate again.
	_, res := e.ApplyCompletion(g, model.Task{Priority: model.PriorityMedium})
	assert.False(t, res.StreakAdvanced)
	assert.False(t, res.StreakMilestone)
}

func TestStreakExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	g := freshState()
	assert.False(t, StreakExpired(g, now, 48*time.Hour), "no completions yet")

	last := now.Add(-47 * time.Hour)
	g.LastTaskCompletedAt = &last
	assert.False(t, StreakExpired(g, now, 48*time.Hour))

	last = now.Add(-49 * time.Hour)
	g.LastTaskCompletedAt = &last
	assert.True(t, StreakExpired(g, now, 48*time.Hour))
}

func TestResetStreak(t *testing.T) {
	g := freshState()
	g.Streak = 9
	start := time.Now()
	g.StreakStartDate = &start

	g = ResetStreak(g)
	assert.Equal(t, 0, g.Streak)
	assert.Nil(t, g.StreakStartDate)
}

func TestEndOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 14, 30, 0, 0, loc)
	end := EndOfDay(now)

	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.Equal(t, now.Day(), end.Day())
	assert.Equal(t, loc, end.Location())
}

func TestSameCalendarDay(t *testing.T) {
	a := time.Date(2026, 3, 10, 0, 0, 1, 0, time.Local)
	b := time.Date(2026, 3, 10, 23, 59, 59, 0, time.Local)
	c := time.Date(2026, 3, 11, 0, 0, 1, 0, time.Local)

	assert.True(t, SameCalendarDay(a, b))
	assert.False(t, SameCalendarDay(b, c))
}
