package model

import (
	"time"
)

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
	CategoryHealth   Category = "health"
	CategoryLeisure  Category = "leisure"
	CategoryOther    Category = "other"
)

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryWork,
		CategoryPersonal,
		CategoryStudy,
		CategoryHealth,
		CategoryLeisure,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryStudy, CategoryHealth, CategoryLeisure, CategoryOther:
		return true
	}
	return false
}

// Label returns the user-facing pt-BR name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryWork:
		return "Trabalho"
	case CategoryPersonal:
		return "Pessoal"
	case CategoryStudy:
		return "Estudo"
	case CategoryHealth:
		return "Saúde"
	case CategoryLeisure:
		return "Lazer"
	default:
		return "Outros"
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single todo item. A subtask carries a Parent reference to its
// owning task; subtasks cannot themselves have subtasks.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Parent is nil for top-level tasks. It is a weak reference: deleting
	// the parent cascades to its subtasks, one level deep.
	Parent    *string `json:"parent,omitempty"`
	IsSubtask bool    `json:"isSubtask,omitempty"`

	Category      Category   `json:"category"`
	Priority      Priority   `json:"priority"`
	EstimatedTime *int       `json:"estimatedTime,omitempty"` // minutes
	DueDate       *time.Time `json:"dueDate,omitempty"`
}

func (t Task) clone() Task {
	out := t
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		out.CompletedAt = &v
	}
	if t.Parent != nil {
		v := *t.Parent
		out.Parent = &v
	}
	if t.EstimatedTime != nil {
		v := *t.EstimatedTime
		out.EstimatedTime = &v
	}
	if t.DueDate != nil {
		v := *t.DueDate
		out.DueDate = &v
	}
	return out
}
