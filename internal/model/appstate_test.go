package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppState(t *testing.T) {
	s := NewAppState()

	assert.Equal(t, SchemaVersion, s.SchemaVersion)
	assert.Empty(t, s.Tasks)
	assert.Equal(t, 0, s.Gamification.Points)
	assert.Equal(t, 1, s.Gamification.Level)
	assert.Equal(t, ThemeSystem, s.Settings.Theme)
	assert.NotNil(t, s.Tasks)
	assert.NotNil(t, s.Toasts)
}

func TestLevelForPoints(t *testing.T) {
	assert.Equal(t, 1, LevelForPoints(0))
	assert.Equal(t, 1, LevelForPoints(99))
	assert.Equal(t, 2, LevelForPoints(100))
	assert.Equal(t, 3, LevelForPoints(250))
	assert.Equal(t, 11, LevelForPoints(1000))
}

func TestClone_IsDeep(t *testing.T) {
	now := time.Now()
	parent := "p1"
	s := NewAppState()
	s.Tasks = []Task{
		{ID: "p1", Title: "mãe"},
		{ID: "c1", Title: "filha", Parent: &parent, IsSubtask: true, DueDate: &now},
	}
	s.Gamification.LastTaskCompletedAt = &now
	s.Gamification.Achievements = []Achievement{{ID: "first_task", Unlocked: true, UnlockedAt: &now}}
	s.Gamification.DailyChallenges = []Challenge{{ID: "c"}}
	s.Toasts = []Toast{{ID: "t1", Message: "oi"}}

	clone := s.Clone()
	clone.Tasks[0].Title = "mutated"
	*clone.Tasks[1].Parent = "other"
	*clone.Gamification.LastTaskCompletedAt = now.Add(time.Hour)
	*clone.Gamification.Achievements[0].UnlockedAt = now.Add(time.Hour)
	clone.Gamification.DailyChallenges[0].ID = "mutated"
	clone.Toasts[0].Message = "mutated"

	assert.Equal(t, "mãe", s.Tasks[0].Title)
	assert.Equal(t, "p1", *s.Tasks[1].Parent)
	assert.Equal(t, now, *s.Gamification.LastTaskCompletedAt)
	assert.Equal(t, now, *s.Gamification.Achievements[0].UnlockedAt)
	assert.Equal(t, "c", s.Gamification.DailyChallenges[0].ID)
	assert.Equal(t, "oi", s.Toasts[0].Message)
}

func TestNormalize_RepairsNilCollectionsAndDerivesLevel(t *testing.T) {
	var s AppState
	require.NoError(t, json.Unmarshal([]byte(`{"gamification":{"points":350,"level":1}}`), &s))

	s.Normalize()

	assert.NotNil(t, s.Tasks)
	assert.NotNil(t, s.Toasts)
	assert.NotNil(t, s.Gamification.DailyChallenges)
	assert.NotNil(t, s.Gamification.Achievements)
	assert.Equal(t, 4, s.Gamification.Level)
	assert.Equal(t, ThemeSystem, s.Settings.Theme)
	assert.Equal(t, SchemaVersion, s.SchemaVersion)
}

func TestToastElapsed(t *testing.T) {
	now := time.Now()
	timed := Toast{CreatedAt: now, Duration: 1000}
	sticky := Toast{CreatedAt: now, Duration: 0}

	assert.False(t, timed.Elapsed(now.Add(500*time.Millisecond)))
	assert.True(t, timed.Elapsed(now.Add(2*time.Second)))
	assert.False(t, sticky.Elapsed(now.Add(time.Hour)))
}

func TestCategoryLabels(t *testing.T) {
	assert.Equal(t, "Trabalho", CategoryWork.Label())
	assert.Equal(t, "Saúde", CategoryHealth.Label())
	assert.Equal(t, "Outros", CategoryOther.Label())
	assert.Equal(t, "Outros", Category("unknown").Label())
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, CategoryStudy.Valid())
	assert.False(t, Category("misc").Valid())
	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority("urgent").Valid())
	assert.True(t, ThemeDark.Valid())
	assert.False(t, Theme("neon").Valid())
}
