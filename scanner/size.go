package scanner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// SizeOf returns the total length of every regular file below p, following
// symbolic links. Directories that cannot be listed count as empty.
func (w *Walker) SizeOf(ctx context.Context, p string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	info, err := w.stat(ctx, p)
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	if err == nil && info.Mode().IsRegular() {
		return uint64(info.Size()), nil
	}

	entries, err := w.readDir(ctx, p)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, nil
	}

	sizes := make([]uint64, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		child := filepath.Join(p, entry.Name())
		if entry.Type().IsRegular() {
			g.Go(func() error {
				info, err := w.entryInfo(ctx, entry)
				if err != nil {
					return fmt.Errorf("failed to read size of '%s': %w", child, err)
				}
				sizes[i] = uint64(info.Size())
				return nil
			})
			continue
		}

		g.Go(func() (err error) {
			sizes[i], err = w.SizeOf(ctx, child)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return lo.Sum(sizes), nil
}
