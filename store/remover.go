package store

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/gammadia/cargo-cleans/store/internal"
)

// Remover deletes an artifact root and everything below it.
type Remover interface {
	Remove(ctx context.Context, p string) error
}

type fsRemover struct {
	attempts int
}

// fsRemover implements Remover
var _ Remover = (*fsRemover)(nil)

// NewRemover returns a Remover deleting from the local filesystem, trying up to
// attempts times when a removal fails for a reason other than a missing path or permissions.
func NewRemover(attempts int) Remover {
	return &fsRemover{attempts: max(attempts, 1)}
}

func (r *fsRemover) Remove(ctx context.Context, p string) error {
	// os.RemoveAll succeeds on missing paths; a vanished artifact root must be reported.
	if _, err := os.Lstat(p); err != nil {
		return err
	}

	return internal.Retry(ctx, r.attempts, func() error {
		err := os.RemoveAll(p)
		if errors.Is(err, fs.ErrPermission) {
			return internal.Permanent(err)
		}
		return err
	})
}
