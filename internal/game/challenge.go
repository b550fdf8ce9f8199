package game

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vtrpza/todo/internal/model"
)

// NewDailyChallenge rolls a challenge from the template pool: uniform
// template pick, requirement and reward drawn from the template ranges,
// expiry at 23:59:59 of the current calendar day.
func (e *Engine) NewDailyChallenge() model.Challenge {
	now := e.now()
	tmpl := e.Templates[e.Rand.Intn(len(e.Templates))]

	requirement := randBetween(e.Rand.Intn, tmpl.RequirementMin, tmpl.RequirementMax)
	reward := randBetween(e.Rand.Intn, tmpl.RewardMin, tmpl.RewardMax)

	c := model.Challenge{
		ID:           uuid.NewString(),
		Title:        tmpl.Title,
		Type:         model.ChallengeType(tmpl.Type),
		Completed:    false,
		CreatedAt:    now,
		ExpiresAt:    EndOfDay(now),
		PointsReward: reward,
		Requirement:  requirement,
		Progress:     0,
	}

	if c.Type == model.ChallengeCategoryFocus {
		cats := model.Categories()
		c.Category = cats[e.Rand.Intn(len(cats))]
	}

	c.Description = renderDescription(tmpl.Description, requirement, c.Category)
	return c
}

func renderDescription(tmpl string, requirement int, category model.Category) string {
	out := strings.ReplaceAll(tmpl, "[requirement]", strconv.Itoa(requirement))
	label := ""
	if category != "" {
		label = `"` + category.Label() + `"`
	}
	return strings.ReplaceAll(out, "[category]", label)
}

func randBetween(intn func(int) int, min, max int) int {
	if max <= min {
		return min
	}
	return min + intn(max-min+1)
}
