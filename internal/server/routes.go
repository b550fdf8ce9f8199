// Package server wires the task/gamification core into a JSON API. The
// browser front-end consuming it lives outside this repository.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/vtrpza/todo/internal/assist"
	"github.com/vtrpza/todo/internal/config"
	"github.com/vtrpza/todo/internal/httpmw"
	"github.com/vtrpza/todo/internal/store"
)

type Handler struct {
	store  *store.Store
	assist assist.Client
	latest *assist.Latest
	logger *log.Logger

	defaultToastMS int
}

type Options struct {
	Store  *store.Store
	Assist assist.Client // nil disables assist; every endpoint falls back
	Config *config.Config
	Logger *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	h := &Handler{
		store:          opts.Store,
		assist:         opts.Assist,
		latest:         assist.NewLatest(),
		logger:         opts.Logger,
		defaultToastMS: opts.Config.Toasts.DefaultDurationMS,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "todo",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		// The store always has a loaded state once constructed.
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "todo",
			"tasks":   len(h.store.State().Tasks),
		})
	})

	mux.HandleFunc("/api/state", h.State)
	mux.HandleFunc("/api/stats", h.Stats)

	mux.HandleFunc("/api/tasks", h.TasksRoot)
	mux.HandleFunc("/api/tasks/", h.TasksSub)

	mux.HandleFunc("/api/challenges", h.ChallengesRoot)
	mux.HandleFunc("/api/challenges/", h.ChallengesSub)

	mux.HandleFunc("/api/toasts", h.ToastsRoot)
	mux.HandleFunc("/api/toasts/", h.ToastsSub)

	mux.HandleFunc("/api/settings/theme", h.Theme)

	mux.HandleFunc("/api/assist/estimate", h.AssistEstimate)
	mux.HandleFunc("/api/assist/priority", h.AssistPriority)
	mux.HandleFunc("/api/assist/motivation", h.AssistMotivation)

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}
