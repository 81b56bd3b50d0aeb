package scanner

import (
	"context"
	"path/filepath"
	"time"
)

const (
	// TargetDir is the name of the build output directory cargo creates next to a manifest.
	TargetDir = "target"
	// ManifestFile must exist in the parent of a TargetDir for it to be an artifact root.
	ManifestFile = "Cargo.toml"
	// VCSDir is never descended into.
	VCSDir = ".git"
)

// Artifact is a build output directory found during a walk.
type Artifact struct {
	Path         string    `yaml:"path"`
	LastModified time.Time `yaml:"last-modified"`
	Size         uint64    `yaml:"size"`
}

// Project returns the name of the directory owning the artifact root.
func (a Artifact) Project() string {
	return filepath.Base(filepath.Dir(a.Path))
}

// Sink receives every artifact found by a walk. It is called from many goroutines.
type Sink interface {
	Add(ctx context.Context, artifact Artifact) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, artifact Artifact) error

func (f SinkFunc) Add(ctx context.Context, artifact Artifact) error {
	return f(ctx, artifact)
}
