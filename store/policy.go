package store

import (
	"math"
	"time"

	"github.com/gammadia/cargo-cleans/scanner"
)

const bytesPerMB = 1024 * 1024

// Policy decides which artifact roots are kept.
type Policy struct {
	// KeepDays keeps artifact roots modified less than this many days ago.
	KeepDays uint32 `yaml:"keep-days"`
	// KeepSize keeps artifact roots whose size is at most this many bytes.
	KeepSize uint64 `yaml:"keep-size"`
}

// NewPolicy builds a Policy from a size threshold expressed in megabytes.
func NewPolicy(keepDays uint32, keepSizeMB uint64) Policy {
	keepSize := uint64(math.MaxUint64)
	if keepSizeMB <= math.MaxUint64/bytesPerMB {
		keepSize = keepSizeMB * bytesPerMB
	}
	return Policy{KeepDays: keepDays, KeepSize: keepSize}
}

// Keep reports whether artifact must be left alone at the given time.
func (p Policy) Keep(artifact scanner.Artifact, now time.Time) bool {
	return artifact.Size <= p.KeepSize || AgeDays(artifact.LastModified, now) < uint64(p.KeepDays)
}

// AgeDays counts the whole 24 hour periods elapsed since t.
// A t in the future is 0 days old.
func AgeDays(t time.Time, now time.Time) uint64 {
	elapsed := now.Sub(t)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / (24 * time.Hour))
}
