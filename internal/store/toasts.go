package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/vtrpza/todo/internal/model"
)

// ShowToast appends a notification. duration <= 0 means the toast stays
// until dismissed; otherwise its removal is scheduled, with the periodic
// sweep as a backstop for skipped timers.
func (s *Store) ShowToast(message string, typ model.ToastType, duration int) model.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	t := s.pushToastLocked(&next, message, typ, duration)
	s.commitLocked(next)
	return t
}

// DismissToast removes a toast immediately. Dismissing twice, or an
// unknown id, is a no-op.
func (s *Store) DismissToast(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}

	next := s.state.Clone()
	kept := next.Toasts[:0]
	removed := false
	for _, t := range next.Toasts {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return
	}
	next.Toasts = kept
	s.commitLocked(next)
}

// pushToastLocked appends a toast to the next-state under construction and
// schedules its auto-dismissal. Callers hold the store lock and commit the
// state themselves.
func (s *Store) pushToastLocked(next *model.AppState, message string, typ model.ToastType, duration int) model.Toast {
	t := model.Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      typ,
		Duration:  duration,
		CreatedAt: s.now(),
	}
	next.Toasts = append(next.Toasts, t)

	if duration > 0 {
		id := t.ID
		s.timers[id] = time.AfterFunc(time.Duration(duration)*time.Millisecond, func() {
			s.DismissToast(id)
		})
	}
	return t
}
