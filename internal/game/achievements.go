package game

import (
	"time"

	"github.com/vtrpza/todo/internal/model"
)

type achievementDef struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Type        model.AchievementType
	Requirement int
}

// The fixed achievement catalog. Thresholds live here, not in persisted
// state, so a stored blob cannot redefine them.
var achievementCatalog = []achievementDef{
	{ID: "first_task", Name: "Primeira Tarefa", Description: "Complete sua primeira tarefa", Icon: "🎯", Type: model.AchievementTaskCount, Requirement: 1},
	{ID: "task_master_10", Name: "Mestre das Tarefas I", Description: "Complete 10 tarefas", Icon: "🏆", Type: model.AchievementTaskCount, Requirement: 10},
	{ID: "task_master_50", Name: "Mestre das Tarefas II", Description: "Complete 50 tarefas", Icon: "🌟", Type: model.AchievementTaskCount, Requirement: 50},
	{ID: "streak_3", Name: "Consistência", Description: "Mantenha um streak de 3 dias", Icon: "🔥", Type: model.AchievementStreak, Requirement: 3},
	{ID: "streak_7", Name: "Semana Perfeita", Description: "Mantenha um streak de 7 dias", Icon: "📅", Type: model.AchievementStreak, Requirement: 7},
	{ID: "level_5", Name: "Novato Avançado", Description: "Alcance o nível 5", Icon: "⭐", Type: model.AchievementLevel, Requirement: 5},
	{ID: "level_10", Name: "Produtividade Profissional", Description: "Alcance o nível 10", Icon: "🌠", Type: model.AchievementLevel, Requirement: 10},
}

func (d achievementDef) met(g model.GamificationState) bool {
	switch d.Type {
	case model.AchievementTaskCount:
		return g.TotalTasksCompleted >= d.Requirement
	case model.AchievementStreak:
		return g.Streak >= d.Requirement
	case model.AchievementLevel:
		return g.Level >= d.Requirement
	}
	return false
}

// EvaluateAchievements recomputes the catalog against the current stats.
// Already-unlocked entries are preserved verbatim, UnlockedAt included, so
// unlocks stay monotonic even if the underlying stat later drops.
func EvaluateAchievements(g model.GamificationState, now time.Time) []model.Achievement {
	existing := make(map[string]model.Achievement, len(g.Achievements))
	for _, a := range g.Achievements {
		existing[a.ID] = a
	}

	out := make([]model.Achievement, 0, len(achievementCatalog))
	for _, def := range achievementCatalog {
		if prev, ok := existing[def.ID]; ok && prev.Unlocked {
			out = append(out, prev)
			continue
		}
		a := model.Achievement{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Type:        def.Type,
			Requirement: def.Requirement,
		}
		if def.met(g) {
			a.Unlocked = true
			t := now
			a.UnlockedAt = &t
		}
		out = append(out, a)
	}
	return out
}
