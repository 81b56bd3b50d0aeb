package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gammadia/cargo-cleans/cleans/flags"
	"github.com/spf13/viper"
)

// Base is a bare logger without attributes
var Base = slog.New(slog.DiscardHandler)

// logger is the command logger with default attributes
var logger = Base

// Init configures the loggers from v. Logs go to w so that they never mix with the report.
func Init(v *viper.Viper, w io.Writer) error {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(v.GetString(flags.LogLevel))); err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	options := slog.HandlerOptions{
		AddSource: v.GetBool(flags.LogSource),
		Level:     logLevel,
	}

	switch format := v.GetString(flags.LogFormat); format {
	case "json":
		Base = slog.New(slog.NewJSONHandler(w, &options))
	case "text":
		Base = slog.New(slog.NewTextHandler(w, &options))
	default:
		return fmt.Errorf("unknown log format '%s'", format)
	}

	logger = Base.With("component", "cleans")
	return nil
}

// Proxies for slog.Logger methods

func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

func DebugContext(ctx context.Context, msg string, args ...any) {
	logger.DebugContext(ctx, msg, args...)
}

func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

func With(args ...any) *slog.Logger {
	return logger.With(args...)
}
