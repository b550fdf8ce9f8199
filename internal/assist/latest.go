package assist

import (
	"context"
	"sync"
)

// Latest cancels the previous in-flight request for a key when a new one
// begins. It closes the race where a stale estimate for an abandoned title
// would land after the input already changed.
type Latest struct {
	mu      sync.Mutex
	seq     map[string]uint64
	cancels map[string]context.CancelFunc
}

func NewLatest() *Latest {
	return &Latest{
		seq:     map[string]uint64{},
		cancels: map[string]context.CancelFunc{},
	}
}

// Begin derives a cancellable context for key, cancelling whatever request
// previously held that key. The returned done func must be called when the
// request finishes.
func (l *Latest) Begin(parent context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	if prev, ok := l.cancels[key]; ok {
		prev()
	}
	l.seq[key]++
	mine := l.seq[key]
	l.cancels[key] = cancel
	l.mu.Unlock()

	return ctx, func() {
		l.mu.Lock()
		// A newer request may already own the key; leave its entry alone.
		if l.seq[key] == mine {
			delete(l.cancels, key)
		}
		l.mu.Unlock()
		cancel()
	}
}
