package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtrpza/todo/internal/model"
)

func TestToggleTask_CompletionAwardsPoints(t *testing.T) {
	s, _ := newTestStore(t, testClock())
	task := s.AddTask("tarefa", TaskInput{Priority: model.PriorityHigh})

	toggled, ok := s.ToggleTask(task.ID)
	require.True(t, ok)
	assert.True(t, toggled.Completed)
	require.NotNil(t, toggled.CompletedAt)

	g := s.State().Gamification
	assert.Equal(t, 15, g.Points)
	assert.Equal(t, 1, g.TotalTasksCompleted)
	assert.Equal(t, 1, g.Streak)

	assert.Contains(t, toastMessages(s), `Tarefa "tarefa" concluída! +15 pontos`)
}

func TestToggleTask_UncompleteKeepsRewards(t *testing.T) {
	s, _ := newTestStore(t, testClock())
	task := s.AddTask("tarefa", TaskInput{})

	_, ok := s.ToggleTask(task.ID)
	require.True(t, ok)
	require.Equal(t, 10, s.State().Gamification.Points)

	toggled, ok := s.ToggleTask(task.ID)
	require.True(t, ok)
	assert.False(t, toggled.Completed)
	assert.Nil(t, toggled.CompletedAt)

	// Points, counters and streak are never clawed back.
	g := s.State().Gamification
	assert.Equal(t, 10, g.Points)
	assert.Equal(t, 1, g.TotalTasksCompleted)
	assert.Equal(t, 1, g.Streak)

	assert.Contains(t, toastMessages(s), `Tarefa "tarefa" desmarcada`)
}

func TestToggleTask_AchievementsSurviveUncomplete(t *testing.T) {
	s, _ := newTestStore(t, testClock())
	task := s.AddTask("tarefa", TaskInput{})

	_, ok := s.ToggleTask(task.ID)
	require.True(t, ok)

	var firstTask model.Achievement
	for _, a := range s.State().Gamification.Achievements {
		if a.ID == "first_task" {
			firstTask = a
		}
	}
	require.True(t, firstTask.Unlocked)

	_, ok = s.ToggleTask(task.ID)
	require.True(t, ok)

	for _, a := range s.State().Gamification.Achievements {
		if a.ID == "first_task" {
			assert.True(t, a.Unlocked)
			assert.Equal(t, firstTask.UnlockedAt, a.UnlockedAt)
		}
	}
}

func TestToggleTask_LevelUpToast(t *testing.T) {
	clock := testClock()
	seed := neutralState(clock.Now())
	seed.Gamification.Points = 95
	s, _ := newSeededStore(t, clock, &seed)

	task := s.AddTask("tarefa", TaskInput{})
	_, ok := s.ToggleTask(task.ID)
	require.True(t, ok)

	assert.Equal(t, 2, s.State().Gamification.Level)
	assert.Contains(t, toastMessages(s), "Você subiu para o nível 2! 🎉")
}

func TestToggleTask_NoLevelUpToastWithoutCrossing(t *testing.T) {
	s, _ := newTestStore(t, testClock())
	task := s.AddTask("tarefa", TaskInput{})

	_, ok := s.ToggleTask(task.ID)
	require.True(t, ok)

	for _, msg := range toastMessages(s) {
		assert.NotContains(t, msg, "subiu para o nível")
	}
}

func TestToggleTask_StreakMilestoneToast(t *testing.T) {
	clock := testClock()
	seed := neutralState(clock.Now())
	seed.Gamification.Streak = 2
	last := clock.Now().Add(-24 * time.Hour)
	seed.Gamification.LastTaskCompletedAt = &last
	start := last.Add(-24 * time.Hour)
	seed.Gamification.StreakStartDate = &start
	s, _ := newSeededStore(t, clock, &seed)

	task := s.AddTask("tarefa", TaskInput{})
	_, ok := s.ToggleTask(task.ID)
	require.True(t, ok)

	assert.Equal(t, 3, s.State().Gamification.Streak)
	assert.Contains(t, toastMessages(s), "Sequência de 3 dias! Incrível! 🔥")
}

func TestToggleTask_MissingIsNoOp(t *testing.T) {
	s, _ := newTestStore(t, testClock())

	_, ok := s.ToggleTask("nope")
	assert.False(t, ok)
	assert.Equal(t, 0, s.State().Gamification.Points)
}

func TestGenerateDailyChallenge_Appends(t *testing.T) {
	s, _ := newTestStore(t, testClock())
	before := len(s.State().Gamification.DailyChallenges)

	c := s.GenerateDailyChallenge()
	assert.NotEmpty(t, c.ID)

	challenges := s.State().Gamification.DailyChallenges
	require.Len(t, challenges, before+1)
	assert.Equal(t, c.ID, challenges[len(challenges)-1].ID)
}

func TestCompleteChallenge_PaysOnce(t *testing.T) {
	s, _ := newTestStore(t, testClock())
	c := s.GenerateDailyChallenge()

	require.True(t, s.CompleteChallenge(c.ID))
	points := s.State().Gamification.Points
	assert.Equal(t, c.PointsReward, points)

	// Claiming again pays nothing.
	assert.False(t, s.CompleteChallenge(c.ID))
	assert.Equal(t, points, s.State().Gamification.Points)

	assert.False(t, s.CompleteChallenge("nope"))
}

func TestCompleteChallenge_RecomputesLevel(t *testing.T) {
	clock := testClock()
	seed := neutralState(clock.Now())
	seed.Gamification.Points = 90
	seed.Gamification.DailyChallenges = append(seed.Gamification.DailyChallenges, model.Challenge{
		ID:           "bonus",
		Title:        "Concluir tarefas",
		Type:         model.ChallengeTaskCompletion,
		Requirement:  3,
		PointsReward: 20,
		CreatedAt:    clock.Now(),
		ExpiresAt:    clock.Now().Add(10 * time.Hour),
	})
	s, _ := newSeededStore(t, clock, &seed)

	require.True(t, s.CompleteChallenge("bonus"))

	g := s.State().Gamification
	assert.Equal(t, 110, g.Points)
	assert.Equal(t, 2, g.Level)
	assert.Contains(t, toastMessages(s), `Desafio "Concluir tarefas" concluído! +20 pontos`)
}

func TestResetStreak(t *testing.T) {
	clock := testClock()
	seed := neutralState(clock.Now())
	seed.Gamification.Streak = 5
	start := clock.Now()
	seed.Gamification.StreakStartDate = &start
	s, _ := newSeededStore(t, clock, &seed)

	s.ResetStreak()

	g := s.State().Gamification
	assert.Equal(t, 0, g.Streak)
	assert.Nil(t, g.StreakStartDate)
}
