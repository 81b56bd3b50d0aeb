package namegen

import (
	"log/slog"

	vendor "github.com/anandvarma/namegen"
)

var gen = vendor.New()

// ScanID is a human friendly identifier for one run, attached to every log line of that run.
type ScanID string

func NewScanID() ScanID {
	return ScanID(gen.Get())
}

func (id ScanID) String() string {
	return string(id)
}

func (id ScanID) LogValue() slog.Value {
	return slog.StringValue(string(id))
}
