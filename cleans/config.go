package main

import (
	"fmt"

	"github.com/gammadia/cargo-cleans/cleans/flags"
	"github.com/gammadia/cargo-cleans/store"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var outputFormats = []string{"text", "yaml"}

type config struct {
	RootDir        string
	Yes            bool
	DryRun         bool
	PrintCommands  bool
	Policy         store.Policy
	Jobs           int
	DeleteAttempts int
	Output         string
	Format         string
}

func loadConfig(v *viper.Viper) (config, error) {
	c := config{
		RootDir:        v.GetString(flags.RootDir),
		Yes:            v.GetBool(flags.Yes),
		DryRun:         v.GetBool(flags.DryRun),
		PrintCommands:  v.GetBool(flags.PrintCommands),
		Policy:         store.NewPolicy(v.GetUint32(flags.KeepDays), v.GetUint64(flags.KeepSize)),
		Jobs:           v.GetInt(flags.Jobs),
		DeleteAttempts: v.GetInt(flags.DeleteAttempts),
		Output:         v.GetString(flags.Output),
		Format:         v.GetString(flags.Format),
	}
	return c, validate(c)
}

func validate(c config) error {
	if c.RootDir == "" {
		return fmt.Errorf("root-dir must not be empty")
	}
	if c.Jobs <= 0 {
		return fmt.Errorf("jobs must be greater than 0")
	}
	if c.DeleteAttempts <= 0 {
		return fmt.Errorf("delete-attempts must be greater than 0")
	}
	if !lo.Contains(outputFormats, c.Output) {
		return fmt.Errorf("unknown output format '%s'", c.Output)
	}
	if c.Format != "" && c.Output != "text" {
		return fmt.Errorf("format cannot be combined with output '%s'", c.Output)
	}
	if c.PrintCommands && !c.DryRun {
		return fmt.Errorf("print-commands requires dry-run")
	}
	return nil
}
