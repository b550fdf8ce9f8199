// Package blob provides the durable key-value blob store backing the
// persisted AppState. The whole state is one serialized value under a
// fixed key; there is no partial-update path.
package blob

import (
	"context"
)

// Key is the fixed name the serialized AppState lives under.
const Key = "todoApp"

type Store interface {
	// Load returns the stored blob. ok is false when nothing has been
	// saved yet; that is not an error.
	Load(ctx context.Context) (data []byte, ok bool, err error)
	// Save replaces the stored blob in full.
	Save(ctx context.Context, data []byte) error
	Close() error
}
