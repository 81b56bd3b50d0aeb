package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Walker finds artifact roots below a directory and measures them.
// Every directory and every measured entry gets its own goroutine; the
// filesystem calls they make are bounded by a shared semaphore.
type Walker struct {
	config Config
	logger *slog.Logger
	sem    *semaphore.Weighted
}

func New(config Config) (*Walker, error) {
	if err := Validate(config); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Walker{
		config: config,
		logger: logger,
		sem:    semaphore.NewWeighted(int64(config.MaxConcurrency)),
	}, nil
}

// Walk visits root and every directory below it, sending one Artifact to sink
// per artifact root. It returns once every branch of the walk has completed,
// or with the first error that was not tolerated.
func (w *Walker) Walk(ctx context.Context, root string, sink Sink) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	w.logger.Debug("Walk started", "root", root)
	if err := w.visit(ctx, root, sink); err != nil {
		return err
	}
	w.logger.Debug("Walk completed", "root", root)
	return nil
}

func (w *Walker) visit(ctx context.Context, dir string, sink Sink) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch filepath.Base(dir) {
	case VCSDir:
		return nil

	case TargetDir:
		ok, err := w.hasManifest(ctx, dir)
		if err != nil {
			return err
		}
		if ok {
			return w.emit(ctx, dir, sink)
		}
		w.logger.Debug("Directory has no manifest beside it, descending", "path", dir)
	}

	entries, err := w.readDir(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.logger.Debug("Skipping unreadable directory", "path", dir, "error", err)
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		// Type bits come from the directory listing, so symlinks are not followed.
		if !entry.IsDir() {
			continue
		}
		child := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			return w.visit(ctx, child, sink)
		})
	}
	return g.Wait()
}

func (w *Walker) hasManifest(ctx context.Context, dir string) (bool, error) {
	_, err := w.stat(ctx, filepath.Join(filepath.Dir(dir), ManifestFile))
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return err == nil, nil
}

func (w *Walker) emit(ctx context.Context, dir string, sink Sink) error {
	info, err := w.stat(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to stat artifact root '%s': %w", dir, err)
	}

	size, err := w.SizeOf(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to measure artifact root '%s': %w", dir, err)
	}

	artifact := Artifact{
		Path:         dir,
		LastModified: info.ModTime(),
		Size:         size,
	}
	w.logger.Debug("Found artifact root", "path", dir, "size", size)

	if err := sink.Add(ctx, artifact); err != nil {
		return fmt.Errorf("failed to record artifact root '%s': %w", dir, err)
	}
	return nil
}

func (w *Walker) readDir(ctx context.Context, dir string) ([]fs.DirEntry, error) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer w.sem.Release(1)

	return os.ReadDir(dir)
}

func (w *Walker) stat(ctx context.Context, p string) (fs.FileInfo, error) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer w.sem.Release(1)

	return os.Stat(p)
}

func (w *Walker) entryInfo(ctx context.Context, entry fs.DirEntry) (fs.FileInfo, error) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer w.sem.Release(1)

	return entry.Info()
}
