package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gammadia/cargo-cleans/cleans/flags"
	"github.com/gammadia/cargo-cleans/cleans/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Versioning information set at build time
var version, commit = "dev", "n/a"

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "cargo-cleans",
		Short:   "Clean up all targets of the current path",
		Args:    cobra.NoArgs,
		Version: formatVersion(version, commit),

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(v, cmd.ErrOrStderr())
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(v)
			if err != nil {
				return err
			}
			return run(cmd, c)
		},
	}

	flags.Register(cmd.Flags())
	flags.RegisterLogging(cmd.PersistentFlags())
	lo.Must0(flags.Bind(v, cmd.Flags(), cmd.PersistentFlags()))

	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// cargoArgs drops the subcommand name cargo inserts when running `cargo cleans`.
func cargoArgs(args []string) []string {
	if len(args) > 0 && args[0] == "cleans" {
		return args[1:]
	}
	return args
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(cargoArgs(os.Args[1:]))
	cmd.SetOut(os.Stdout)
	if err := cmd.ExecuteContext(ctx); err != nil {
		lo.Must(fmt.Fprintln(os.Stderr, color.HiRedString(fmt.Sprint(err))))
		os.Exit(1)
	}
}
