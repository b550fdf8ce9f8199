package server

import (
	"net/http"
	"strings"

	"github.com/vtrpza/todo/internal/model"
)

// /api/challenges
func (h *Handler) ChallengesRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.store.State().Gamification.DailyChallenges)
}

// /api/challenges/generate
func (h *Handler) GenerateChallenge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusCreated, h.store.GenerateDailyChallenge())
}

// /api/challenges/{id}/complete
func (h *Handler) ChallengesSub(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/challenges/"), "/")
	parts := strings.Split(rest, "/")

	if len(parts) == 1 && parts[0] == "generate" {
		h.GenerateChallenge(w, r)
		return
	}
	if len(parts) == 2 && parts[1] == "complete" && r.Method == http.MethodPost {
		if !h.store.CompleteChallenge(parts[0]) {
			writeErr(w, http.StatusNotFound, "challenge not found or already completed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"completed": true})
		return
	}
	writeErr(w, http.StatusNotFound, "unknown challenge route")
}

// /api/state — the full aggregate snapshot the UI renders from.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.store.State())
}

// /api/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.store.Stats())
}

type toastRequest struct {
	Message  string `json:"message"`
	Type     string `json:"type"`
	Duration *int   `json:"duration,omitempty"`
}

// /api/toasts
func (h *Handler) ToastsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.State().Toasts)

	case http.MethodPost:
		var in toastRequest
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		if strings.TrimSpace(in.Message) == "" {
			writeErr(w, http.StatusBadRequest, "message is required")
			return
		}
		typ := model.ToastType(in.Type)
		switch typ {
		case model.ToastSuccess, model.ToastError, model.ToastInfo, model.ToastWarning:
		default:
			typ = model.ToastInfo
		}
		duration := h.defaultToastMS
		if in.Duration != nil {
			duration = *in.Duration
		}
		writeJSON(w, http.StatusCreated, h.store.ShowToast(in.Message, typ, duration))

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// /api/toasts/{id}
func (h *Handler) ToastsSub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/toasts/"), "/")
	// Dismissal is idempotent; an unknown id still answers 200.
	h.store.DismissToast(id)
	writeJSON(w, http.StatusOK, map[string]any{"dismissed": true})
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// /api/settings/theme
func (h *Handler) Theme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in themeRequest
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	if !h.store.UpdateTheme(model.Theme(in.Theme)) {
		writeErr(w, http.StatusBadRequest, "unknown theme")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"theme": in.Theme})
}
