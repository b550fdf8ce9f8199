package store

import (
	"slices"
	"sort"

	"github.com/vtrpza/todo/internal/game"
	"github.com/vtrpza/todo/internal/model"
)

// TaskFilter narrows the top-level task listing. Subtasks are always
// excluded; fetch them per parent with Subtasks.
type TaskFilter struct {
	Categories []model.Category
	Priorities []model.Priority
	Completed  *bool
}

// FilteredTasks returns matching top-level tasks, newest first.
func (s *Store) FilteredTasks(f TaskFilter) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Task{}
	for _, t := range s.state.Tasks {
		if t.Parent != nil {
			continue
		}
		if len(f.Categories) > 0 && !slices.Contains(f.Categories, t.Category) {
			continue
		}
		if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, t.Priority) {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Subtasks lists the direct children of a task.
func (s *Store) Subtasks(parentID string) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Task{}
	for _, t := range s.state.Tasks {
		if t.Parent != nil && *t.Parent == parentID {
			out = append(out, t)
		}
	}
	return out
}

// Task returns a single task by id.
func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findTask(s.state.Tasks, id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.state.Tasks[idx], true
}

// Stats is the read model behind the stats panel.
type Stats struct {
	Points              int                    `json:"points"`
	Level               int                    `json:"level"`
	Streak              int                    `json:"streak"`
	TotalTasksCompleted int                    `json:"totalTasksCompleted"`
	TasksCompletedToday int                    `json:"tasksCompletedToday"`
	TotalTasks          int                    `json:"totalTasks"`
	PendingTasks        int                    `json:"pendingTasks"`
	ByCategory          map[model.Category]int `json:"byCategory"`
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	st := Stats{
		Points:              s.state.Gamification.Points,
		Level:               s.state.Gamification.Level,
		Streak:              s.state.Gamification.Streak,
		TotalTasksCompleted: s.state.Gamification.TotalTasksCompleted,
		ByCategory:          map[model.Category]int{},
	}
	for _, t := range s.state.Tasks {
		st.TotalTasks++
		if !t.Completed {
			st.PendingTasks++
		}
		if t.Parent == nil {
			st.ByCategory[t.Category]++
		}
		if t.CompletedAt != nil && game.SameCalendarDay(*t.CompletedAt, now) {
			st.TasksCompletedToday++
		}
	}
	return st
}
