package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/vtrpza/todo/internal/assist"
	"github.com/vtrpza/todo/internal/model"
	"github.com/vtrpza/todo/internal/store"
)

type estimateRequest struct {
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}

type priorityRequest struct {
	Title   string     `json:"title"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// /api/assist/estimate — returns the fallback {30, low} on any failure,
// including a disabled client; the core never surfaces assist errors.
func (h *Handler) AssistEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in estimateRequest
	if err := decodeJSON(r, &in); err != nil || strings.TrimSpace(in.Title) == "" {
		writeErr(w, http.StatusBadRequest, "title is required")
		return
	}
	if h.assist == nil {
		writeEstimate(w, assist.FallbackEstimate, true)
		return
	}

	ctx, done := h.latest.Begin(r.Context(), "estimate")
	defer done()

	category := model.Category(in.Category)
	if !category.Valid() {
		category = ""
	}
	est, err := h.assist.EstimateTaskTime(ctx, in.Title, category)
	if err != nil {
		h.logger.Printf("assist: estimate failed: %v", err)
		writeEstimate(w, assist.FallbackEstimate, true)
		return
	}
	writeEstimate(w, est, false)
}

func writeEstimate(w http.ResponseWriter, est assist.Estimate, fallback bool) {
	writeJSON(w, http.StatusOK, map[string]any{
		"estimatedTimeMinutes": est.EstimatedTimeMinutes,
		"confidence":           est.Confidence,
		"fallback":             fallback,
	})
}

// /api/assist/priority — unrecognized or failed responses default to medium.
func (h *Handler) AssistPriority(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in priorityRequest
	if err := decodeJSON(r, &in); err != nil || strings.TrimSpace(in.Title) == "" {
		writeErr(w, http.StatusBadRequest, "title is required")
		return
	}

	priority := "medium"
	fallback := true
	if h.assist != nil {
		ctx, done := h.latest.Begin(r.Context(), "priority")
		defer done()

		pending := false
		existing := []string{}
		for _, t := range h.store.FilteredTasks(store.TaskFilter{Completed: &pending}) {
			existing = append(existing, t.Title)
		}
		if p, err := h.assist.SuggestPriority(ctx, in.Title, existing, in.DueDate); err != nil {
			h.logger.Printf("assist: priority failed: %v", err)
		} else {
			priority = string(p)
			fallback = false
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"priority": priority, "fallback": fallback})
}

// /api/assist/motivation
func (h *Handler) AssistMotivation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	stats := h.store.Stats()
	message := assist.FallbackMotivation
	fallback := true
	if h.assist != nil {
		msg, err := h.assist.MotivationalMessage(r.Context(), assist.ProgressSnapshot{
			Points:              stats.Points,
			Level:               stats.Level,
			Streak:              stats.Streak,
			TasksCompletedToday: stats.TasksCompletedToday,
		})
		if err != nil {
			h.logger.Printf("assist: motivation failed: %v", err)
		} else {
			message = msg
			fallback = false
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": message, "fallback": fallback})
}

// generateSubtasks backs POST /api/tasks/{id}/subtasks/generate. Assist
// failure is signalled explicitly instead of injecting an error string as
// subtask content.
func (h *Handler) generateSubtasks(w http.ResponseWriter, r *http.Request, id string) {
	parent, ok := h.store.Task(id)
	if !ok {
		writeErr(w, http.StatusNotFound, "task not found")
		return
	}
	if h.assist == nil {
		writeErr(w, http.StatusServiceUnavailable, "assist is disabled")
		return
	}

	ctx, done := h.latest.Begin(r.Context(), "subtasks")
	defer done()

	titles, err := h.assist.GenerateSubtasks(ctx, parent.Title)
	if err != nil {
		h.logger.Printf("assist: subtasks failed: %v", err)
		if ctx.Err() == context.Canceled {
			writeErr(w, http.StatusConflict, "superseded by a newer request")
			return
		}
		writeErr(w, http.StatusBadGateway, "subtask generation failed")
		return
	}
	created, ok := h.store.AddSubtasks(id, titles)
	if !ok {
		writeErr(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
