package scanner

import (
	"fmt"
	"log/slog"
	"runtime"
)

type Config struct {
	Logger *slog.Logger `json:"-"`
	// MaxConcurrency bounds the number of filesystem calls in flight.
	MaxConcurrency int `json:"max-concurrency"`
}

func DefaultMaxConcurrency() int {
	return 4 * runtime.NumCPU()
}

func Validate(config Config) error {
	if config.MaxConcurrency <= 0 {
		return fmt.Errorf("max-concurrency must be greater than 0")
	}
	return nil
}
