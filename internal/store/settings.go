package store

import (
	"github.com/vtrpza/todo/internal/model"
)

// UpdateTheme persists the theme preference. Unknown values are rejected.
func (s *Store) UpdateTheme(theme model.Theme) bool {
	if !theme.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.Settings.Theme = theme
	s.commitLocked(next)
	return true
}
