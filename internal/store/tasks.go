package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vtrpza/todo/internal/model"
)

// TaskInput carries the optional fields of a new task. Zero values fall
// back to category "other" and medium priority.
type TaskInput struct {
	Category      model.Category
	Priority      model.Priority
	EstimatedTime *int
	DueDate       *time.Time
}

// AddTask appends a new top-level task. Title validation beyond non-empty
// is the caller's responsibility.
func (s *Store) AddTask(title string, in TaskInput) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !in.Category.Valid() {
		in.Category = model.CategoryOther
	}
	if !in.Priority.Valid() {
		in.Priority = model.PriorityMedium
	}

	t := model.Task{
		ID:            uuid.NewString(),
		Title:         title,
		Completed:     false,
		CreatedAt:     s.now(),
		Category:      in.Category,
		Priority:      in.Priority,
		EstimatedTime: in.EstimatedTime,
		DueDate:       in.DueDate,
	}

	next := s.state.Clone()
	next.Tasks = append(next.Tasks, t)
	s.pushToastLocked(&next, fmt.Sprintf("Tarefa %q adicionada", title), model.ToastSuccess, s.defaultToastMS)
	s.commitLocked(next)
	return t
}

// DeleteTask removes a task and every direct subtask. A missing id is a
// silent no-op.
func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	idx := findTask(next.Tasks, id)
	if idx < 0 {
		return false
	}
	title := next.Tasks[idx].Title

	kept := next.Tasks[:0]
	subtasks := 0
	for _, t := range next.Tasks {
		if t.ID == id {
			continue
		}
		if t.Parent != nil && *t.Parent == id {
			subtasks++
			continue
		}
		kept = append(kept, t)
	}
	next.Tasks = kept

	msg := fmt.Sprintf("Tarefa %q removida", title)
	if subtasks == 1 {
		msg = fmt.Sprintf("Tarefa %q e 1 subtarefa removidas", title)
	} else if subtasks > 1 {
		msg = fmt.Sprintf("Tarefa %q e %d subtarefas removidas", title, subtasks)
	}
	s.pushToastLocked(&next, msg, model.ToastWarning, s.defaultToastMS)
	s.commitLocked(next)
	return true
}

// AddSubtasks creates one subtask per title under the given parent,
// inheriting the parent's category and priority as they are right now.
// A missing parent is a silent no-op.
func (s *Store) AddSubtasks(parentID string, titles []string) ([]model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	idx := findTask(next.Tasks, parentID)
	if idx < 0 {
		return nil, false
	}
	parent := next.Tasks[idx]

	created := make([]model.Task, 0, len(titles))
	for _, title := range titles {
		pid := parentID
		created = append(created, model.Task{
			ID:        uuid.NewString(),
			Title:     title,
			Completed: false,
			CreatedAt: s.now(),
			Parent:    &pid,
			IsSubtask: true,
			Category:  parent.Category,
			Priority:  parent.Priority,
		})
	}
	next.Tasks = append(next.Tasks, created...)

	s.pushToastLocked(&next, fmt.Sprintf("%d subtarefas adicionadas", len(created)), model.ToastSuccess, s.defaultToastMS)
	s.commitLocked(next)
	return created, true
}

// UpdateTaskCategory patches a single field; silent no-op on a missing id
// or invalid category.
func (s *Store) UpdateTaskCategory(id string, category model.Category) bool {
	if !category.Valid() {
		return false
	}
	return s.patchTask(id, func(t *model.Task) { t.Category = category })
}

func (s *Store) UpdateTaskPriority(id string, priority model.Priority) bool {
	if !priority.Valid() {
		return false
	}
	return s.patchTask(id, func(t *model.Task) { t.Priority = priority })
}

func (s *Store) UpdateTaskDueDate(id string, due *time.Time) bool {
	return s.patchTask(id, func(t *model.Task) { t.DueDate = due })
}

func (s *Store) UpdateTaskEstimatedTime(id string, minutes int) bool {
	if minutes <= 0 {
		return false
	}
	return s.patchTask(id, func(t *model.Task) { t.EstimatedTime = &minutes })
}

func (s *Store) patchTask(id string, patch func(*model.Task)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	idx := findTask(next.Tasks, id)
	if idx < 0 {
		return false
	}
	patch(&next.Tasks[idx])
	s.commitLocked(next)
	return true
}

func findTask(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
