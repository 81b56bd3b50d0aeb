package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gammadia/cargo-cleans/scanner"
	"github.com/samber/lo"
)

var ErrStopped = errors.New("store is stopped")

// Store classifies artifacts as they are found and owns the resulting partition.
// Its state is only ever touched by the store goroutine: every operation is a
// closure sent through the calls channel, so operations are linearizable.
type Store struct {
	policy  Policy
	remover Remover
	logger  *slog.Logger
	now     func() time.Time

	ignored  []scanner.Artifact
	selected []scanner.Artifact

	calls    chan func()
	stop     chan any
	stopped  chan any
	stopOnce sync.Once
}

// Store implements scanner.Sink
var _ scanner.Sink = (*Store)(nil)

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock replaces the clock used to age artifacts.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithRemover(remover Remover) Option {
	return func(s *Store) { s.remover = remover }
}

func New(policy Policy, options ...Option) *Store {
	s := &Store{
		policy:  policy,
		remover: NewRemover(1),
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,

		calls:   make(chan func()),
		stop:    make(chan any),
		stopped: make(chan any),
	}
	for _, option := range options {
		option(s)
	}

	go s.run()
	return s
}

func (s *Store) run() {
	defer close(s.stopped)

	for {
		select {
		case f := <-s.calls:
			f()
		case <-s.stop:
			return
		}
	}
}

// Shutdown stops the store goroutine. Operations called afterwards return ErrStopped.
// This function is safe to call multiple times.
func (s *Store) Shutdown() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.stopped
}

// call runs f on the store goroutine and waits for it to return.
func (s *Store) call(ctx context.Context, f func()) error {
	done := make(chan any)
	select {
	case s.calls <- func() {
		defer close(done)
		f()
	}:
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	<-done
	return nil
}

// Add classifies artifact and appends it to either the ignored or the selected set.
func (s *Store) Add(ctx context.Context, artifact scanner.Artifact) error {
	return s.call(ctx, func() {
		if s.policy.Keep(artifact, s.now()) {
			s.logger.Debug("Keeping artifact root", "path", artifact.Path, "size", artifact.Size)
			s.ignored = append(s.ignored, artifact)
		} else {
			s.logger.Debug("Selecting artifact root", "path", artifact.Path, "size", artifact.Size)
			s.selected = append(s.selected, artifact)
		}
	})
}

// Partition is a copy of the store content, each set sorted by path.
type Partition struct {
	Policy   Policy             `yaml:"policy"`
	Ignored  []scanner.Artifact `yaml:"ignored"`
	Selected []scanner.Artifact `yaml:"selected"`
	Freeable uint64             `yaml:"freeable"`
}

func (p Partition) Total() int {
	return len(p.Ignored) + len(p.Selected)
}

// Snapshot returns the current partition.
func (s *Store) Snapshot(ctx context.Context) (partition Partition, err error) {
	err = s.call(ctx, func() {
		partition = s.partition()
	})
	return
}

func (s *Store) partition() Partition {
	selected := sortedByPath(s.selected)
	return Partition{
		Policy:   s.policy,
		Ignored:  sortedByPath(s.ignored),
		Selected: selected,
		Freeable: lo.SumBy(selected, func(a scanner.Artifact) uint64 { return a.Size }),
	}
}

// Clean removes every selected artifact root, in the order they are reported.
// It stops at the first failure; directories removed before it stay removed.
// onRemoved, if not nil, runs on the store goroutine and must not call the store.
func (s *Store) Clean(ctx context.Context, onRemoved func(scanner.Artifact)) (err error) {
	if callErr := s.call(ctx, func() {
		err = s.clean(ctx, onRemoved)
	}); callErr != nil {
		return callErr
	}
	return
}

func (s *Store) clean(ctx context.Context, onRemoved func(scanner.Artifact)) error {
	for _, artifact := range sortedByPath(s.selected) {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.remover.Remove(ctx, artifact.Path); err != nil {
			s.logger.Error("Failed to remove artifact root", "path", artifact.Path, "error", err)
			return fmt.Errorf("failed to remove '%s': %w", artifact.Path, err)
		}
		s.logger.Info("Removed artifact root", "path", artifact.Path, "size", artifact.Size)

		if onRemoved != nil {
			onRemoved(artifact)
		}
	}
	return nil
}

func sortedByPath(artifacts []scanner.Artifact) []scanner.Artifact {
	sorted := slices.Clone(artifacts)
	slices.SortFunc(sorted, func(a, b scanner.Artifact) int {
		return strings.Compare(a.Path, b.Path)
	})
	return sorted
}
