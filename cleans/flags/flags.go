package flags

import (
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gammadia/cargo-cleans/scanner"
)

const EnvPrefix = "cargo_cleans"

const (
	DeleteAttempts = "delete-attempts"
	DryRun         = "dry-run"
	Format         = "format"
	Jobs           = "jobs"
	KeepDays       = "keep-days"
	KeepSize       = "keep-size"
	Output         = "output"
	PrintCommands  = "print-commands"
	RootDir        = "root-dir"
	Yes            = "yes"

	LogFormat = "log-format"
	LogLevel  = "log-level"
	LogSource = "log-source"
)

// Register defines the scan and cleanup flags.
func Register(flags *flag.FlagSet) {
	flags.StringP(RootDir, "r", ".", "the directory that will be cleaned")
	flags.BoolP(Yes, "y", false, "don't ask for confirmation")
	flags.Uint32P(KeepDays, "d", 0, "don't clean projects with target dirs modified in the last `DAYS` days")
	flags.Uint64P(KeepSize, "s", 0, "don't clean projects with target dirs sizes below `SIZE_MB` megabytes")
	flags.Bool(DryRun, false, "just collect the cleanable project dirs but don't attempt to clean anything")
	flags.IntP(Jobs, "j", scanner.DefaultMaxConcurrency(), "maximum number of concurrent filesystem operations")
	flags.StringP(Output, "o", "text", "report format (text, yaml)")
	flags.String(Format, "", "go template rendered for each project directory instead of the report")
	flags.Bool(PrintCommands, false, "with --dry-run, print the commands that would clean the selected directories")
	flags.Int(DeleteAttempts, 3, "how many times to try removing a directory")
}

// RegisterLogging defines the logging flags.
func RegisterLogging(flags *flag.FlagSet) {
	flags.String(LogFormat, "text", "log format (json, text)")
	flags.String(LogLevel, "WARN", "minimum log level")
	flags.Bool(LogSource, false, "add source code location to logs")
}

// Bind makes every flag readable from v, with CARGO_CLEANS_* environment variables as fallback.
func Bind(v *viper.Viper, sets ...*flag.FlagSet) error {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, set := range sets {
		if err := v.BindPFlags(set); err != nil {
			return err
		}
	}
	return nil
}
