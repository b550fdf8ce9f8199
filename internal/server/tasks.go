package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/vtrpza/todo/internal/model"
	"github.com/vtrpza/todo/internal/store"
)

type taskCreateRequest struct {
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Priority      string     `json:"priority"`
	EstimatedTime *int       `json:"estimatedTime,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
}

type taskPatchRequest struct {
	Category      *string    `json:"category,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	EstimatedTime *int       `json:"estimatedTime,omitempty"`
}

type subtasksRequest struct {
	Titles []string `json:"titles"`
}

// /api/tasks  (collection)
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		filter := store.TaskFilter{
			Categories: splitCategories(q.Get("category")),
			Priorities: splitPriorities(q.Get("priority")),
			Completed:  parseBoolPtr(q.Get("completed")),
		}
		writeJSON(w, http.StatusOK, h.store.FilteredTasks(filter))

	case http.MethodPost:
		var in taskCreateRequest
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		if strings.TrimSpace(in.Title) == "" {
			writeErr(w, http.StatusBadRequest, "title is required")
			return
		}
		t := h.store.AddTask(in.Title, store.TaskInput{
			Category:      model.Category(in.Category),
			Priority:      model.Priority(in.Priority),
			EstimatedTime: in.EstimatedTime,
			DueDate:       in.DueDate,
		})
		writeJSON(w, http.StatusCreated, t)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// /api/tasks/{id}[/toggle|/subtasks|/subtasks/generate]
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tasks/"), "/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		writeErr(w, http.StatusNotFound, "task id required")
		return
	}

	switch {
	case len(parts) == 1:
		h.taskByID(w, r, id)
	case len(parts) == 2 && parts[1] == "toggle" && r.Method == http.MethodPost:
		h.toggleTask(w, id)
	case len(parts) == 2 && parts[1] == "subtasks" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Subtasks(id))
	case len(parts) == 2 && parts[1] == "subtasks" && r.Method == http.MethodPost:
		h.addSubtasks(w, r, id)
	case len(parts) == 3 && parts[1] == "subtasks" && parts[2] == "generate" && r.Method == http.MethodPost:
		h.generateSubtasks(w, r, id)
	default:
		writeErr(w, http.StatusNotFound, "unknown task route")
	}
}

func (h *Handler) taskByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		t, ok := h.store.Task(id)
		if !ok {
			writeErr(w, http.StatusNotFound, "task not found")
			return
		}
		writeJSON(w, http.StatusOK, t)

	case http.MethodDelete:
		// The store treats a missing id as a no-op; the API is explicit.
		if !h.store.DeleteTask(id) {
			writeErr(w, http.StatusNotFound, "task not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true})

	case http.MethodPatch:
		var in taskPatchRequest
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		touched := false
		if in.Category != nil {
			touched = h.store.UpdateTaskCategory(id, model.Category(*in.Category)) || touched
		}
		if in.Priority != nil {
			touched = h.store.UpdateTaskPriority(id, model.Priority(*in.Priority)) || touched
		}
		if in.DueDate != nil {
			touched = h.store.UpdateTaskDueDate(id, in.DueDate) || touched
		}
		if in.EstimatedTime != nil {
			touched = h.store.UpdateTaskEstimatedTime(id, *in.EstimatedTime) || touched
		}
		t, ok := h.store.Task(id)
		if !ok {
			writeErr(w, http.StatusNotFound, "task not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"task": t, "updated": touched})

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) toggleTask(w http.ResponseWriter, id string) {
	t, ok := h.store.ToggleTask(id)
	if !ok {
		writeErr(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) addSubtasks(w http.ResponseWriter, r *http.Request, id string) {
	var in subtasksRequest
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	titles := make([]string, 0, len(in.Titles))
	for _, t := range in.Titles {
		if strings.TrimSpace(t) != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) == 0 {
		writeErr(w, http.StatusBadRequest, "titles are required")
		return
	}
	created, ok := h.store.AddSubtasks(id, titles)
	if !ok {
		writeErr(w, http.StatusNotFound, "parent task not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func splitCategories(s string) []model.Category {
	out := []model.Category{}
	for _, p := range strings.Split(s, ",") {
		c := model.Category(strings.TrimSpace(p))
		if c.Valid() {
			out = append(out, c)
		}
	}
	return out
}

func splitPriorities(s string) []model.Priority {
	out := []model.Priority{}
	for _, part := range strings.Split(s, ",") {
		p := model.Priority(strings.TrimSpace(part))
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

func parseBoolPtr(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		b := true
		return &b
	case "0", "false", "no":
		b := false
		return &b
	}
	return nil
}
