package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtrpza/todo/internal/model"
)

func TestShowToast_AppendsInOrder(t *testing.T) {
	clock := testClock()
	s, _ := newTestStore(t, clock)

	first := s.ShowToast("primeiro", model.ToastInfo, 0)
	second := s.ShowToast("segundo", model.ToastError, 0)

	toasts := s.State().Toasts
	require.Len(t, toasts, 2)
	assert.Equal(t, first.ID, toasts[0].ID)
	assert.Equal(t, second.ID, toasts[1].ID)
	assert.Equal(t, model.ToastError, toasts[1].Type)
	assert.Equal(t, clock.Now(), toasts[1].CreatedAt)
}

func TestDismissToast_Idempotent(t *testing.T) {
	s, _ := newTestStore(t, testClock())

	toast := s.ShowToast("aviso", model.ToastWarning, 0)
	require.Len(t, s.State().Toasts, 1)

	s.DismissToast(toast.ID)
	assert.Empty(t, s.State().Toasts)

	// Dismissing again, or an unknown id, changes nothing.
	s.DismissToast(toast.ID)
	s.DismissToast("nope")
	assert.Empty(t, s.State().Toasts)
}

func TestShowToast_TimedAutoDismiss(t *testing.T) {
	s, _ := newTestStore(t, testClock())

	s.ShowToast("rápido", model.ToastInfo, 20)
	require.Len(t, s.State().Toasts, 1)

	assert.Eventually(t, func() bool {
		return len(s.State().Toasts) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
