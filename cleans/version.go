package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version number of cargo-cleans",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Printf("cargo-cleans version %s\n", formatVersion(version, commit))
			return nil
		},
	}
}

func formatVersion(ver, commitHash string) string {
	hash := commitHash[:min(len(commitHash), 7)]
	if hash == "" || hash == "n/a" {
		return ver
	}
	return fmt.Sprintf("%s (%s)", ver, hash)
}
