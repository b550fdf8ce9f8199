package model

import (
	"time"
)

type ChallengeType string

const (
	ChallengeTaskCompletion ChallengeType = "task_completion"
	// ChallengeStreak is accepted when loading persisted state but is
	// never produced by the generator.
	ChallengeStreak        ChallengeType = "streak"
	ChallengeCategoryFocus ChallengeType = "category_focus"
)

// Challenge is a daily bonus objective. It expires at the end of the
// calendar day it was created on and pays its reward at most once.
type Challenge struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Completed    bool          `json:"completed"`
	CreatedAt    time.Time     `json:"createdAt"`
	ExpiresAt    time.Time     `json:"expiresAt"`
	PointsReward int           `json:"pointsReward"`
	Type         ChallengeType `json:"type"`
	Requirement  int           `json:"requirement"`
	Progress     int           `json:"progress"`
	Category     Category      `json:"category,omitempty"` // category_focus only
}

func (c Challenge) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

type AchievementType string

const (
	AchievementStreak    AchievementType = "streak"
	AchievementTaskCount AchievementType = "task_count"
	AchievementLevel     AchievementType = "level"
)

// Achievement is a permanent unlock. Unlocked never reverts to false and
// UnlockedAt is never recomputed once set.
type Achievement struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Unlocked    bool            `json:"unlocked"`
	UnlockedAt  *time.Time      `json:"unlockedAt,omitempty"`
	Icon        string          `json:"icon"`
	Type        AchievementType `json:"type"`
	Requirement int             `json:"requirement"`
}

// GamificationState tracks points, streaks, challenges and achievements.
// Level is always derived from Points; LevelForPoints is the single source
// of the formula.
type GamificationState struct {
	Points              int           `json:"points"`
	Level               int           `json:"level"`
	Streak              int           `json:"streak"`
	LastTaskCompletedAt *time.Time    `json:"lastTaskCompletedAt,omitempty"`
	StreakStartDate     *time.Time    `json:"streakStartDate,omitempty"`
	DailyChallenges     []Challenge   `json:"dailyChallenges"`
	Achievements        []Achievement `json:"achievements"`
	TotalTasksCompleted int           `json:"totalTasksCompleted"`
}

// LevelForPoints implements the level curve: one level per 100 points,
// starting at level 1.
func LevelForPoints(points int) int {
	return points/100 + 1
}

func (g GamificationState) clone() GamificationState {
	out := g
	if g.LastTaskCompletedAt != nil {
		v := *g.LastTaskCompletedAt
		out.LastTaskCompletedAt = &v
	}
	if g.StreakStartDate != nil {
		v := *g.StreakStartDate
		out.StreakStartDate = &v
	}
	out.DailyChallenges = append([]Challenge(nil), g.DailyChallenges...)
	out.Achievements = make([]Achievement, len(g.Achievements))
	for i, a := range g.Achievements {
		if a.UnlockedAt != nil {
			v := *a.UnlockedAt
			a.UnlockedAt = &v
		}
		out.Achievements[i] = a
	}
	return out
}
