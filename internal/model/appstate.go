package model

import (
	"time"
)

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// Toast is an ephemeral notification. Duration 0 means the toast stays
// until explicitly dismissed.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      ToastType `json:"type"`
	Duration  int       `json:"duration"` // milliseconds
	CreatedAt time.Time `json:"createdAt"`
}

func (t Toast) Elapsed(now time.Time) bool {
	if t.Duration <= 0 {
		return false
	}
	return t.CreatedAt.Add(time.Duration(t.Duration) * time.Millisecond).Before(now)
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

type Settings struct {
	Theme Theme `json:"theme"`
}

// SchemaVersion marks the persisted AppState layout. Bump on breaking
// changes so old blobs can be migrated instead of discarded.
const SchemaVersion = 1

// AppState is the aggregate root. It is owned by the store; every other
// component receives copies and returns full next-state values.
type AppState struct {
	SchemaVersion int               `json:"schemaVersion"`
	Tasks         []Task            `json:"tasks"`
	Gamification  GamificationState `json:"gamification"`
	Settings      Settings          `json:"settings"`
	Toasts        []Toast           `json:"toasts"`
}

// NewAppState returns the documented empty initial state.
func NewAppState() AppState {
	return AppState{
		SchemaVersion: SchemaVersion,
		Tasks:         []Task{},
		Gamification: GamificationState{
			Points:          0,
			Level:           1,
			Streak:          0,
			DailyChallenges: []Challenge{},
			Achievements:    []Achievement{},
		},
		Settings: Settings{Theme: ThemeSystem},
		Toasts:   []Toast{},
	}
}

// Clone returns a deep copy so callers can never alias the store's state.
func (s AppState) Clone() AppState {
	out := s
	out.Tasks = make([]Task, len(s.Tasks))
	for i, t := range s.Tasks {
		out.Tasks[i] = t.clone()
	}
	out.Gamification = s.Gamification.clone()
	out.Toasts = append([]Toast(nil), s.Toasts...)
	return out
}

// Normalize repairs nil collections after JSON decoding and re-derives
// Level so a hand-edited blob cannot make it drift from Points.
func (s *AppState) Normalize() {
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Gamification.DailyChallenges == nil {
		s.Gamification.DailyChallenges = []Challenge{}
	}
	if s.Gamification.Achievements == nil {
		s.Gamification.Achievements = []Achievement{}
	}
	if s.Toasts == nil {
		s.Toasts = []Toast{}
	}
	if !s.Settings.Theme.Valid() {
		s.Settings.Theme = ThemeSystem
	}
	s.Gamification.Level = LevelForPoints(s.Gamification.Points)
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SchemaVersion
	}
}
