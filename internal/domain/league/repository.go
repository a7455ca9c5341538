package league

import (
	"context"
	"time"
)

// Repository stores league snapshots addressed by path.
type Repository interface {
	Save(ctx context.Context, path string, l *League) error
	Load(ctx context.Context, path string) (*League, error)
}

// SaveTimeReader is implemented by repositories that know when a snapshot was
// last written. ok is false when nothing is stored at path.
type SaveTimeReader interface {
	SavedAt(ctx context.Context, path string) (at time.Time, ok bool, err error)
}
