package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/gammadia/cargo-cleans/cleans/log"
	"github.com/gammadia/cargo-cleans/cleans/ui"
	"github.com/gammadia/cargo-cleans/namegen"
	"github.com/gammadia/cargo-cleans/scanner"
	"github.com/gammadia/cargo-cleans/store"
	"github.com/spf13/cobra"
)

func run(cmd *cobra.Command, c config) error {
	ctx := cmd.Context()
	logger := log.With("scan", namegen.NewScanID())

	root, err := resolveRoot(c.RootDir)
	if err != nil {
		return err
	}

	walker, err := scanner.New(scanner.Config{
		Logger:         logger.With("component", "scanner"),
		MaxConcurrency: c.Jobs,
	})
	if err != nil {
		return err
	}

	s := store.New(c.Policy,
		store.WithLogger(logger.With("component", "store")),
		store.WithRemover(store.NewRemover(c.DeleteAttempts)),
	)
	defer s.Shutdown()

	logger.Info("Scan started", "root", root, "keep-days", c.Policy.KeepDays, "keep-size", c.Policy.KeepSize)
	if err := scan(ctx, cmd, walker, s, root); err != nil {
		return err
	}

	if err := printReport(ctx, cmd, s, c); err != nil {
		return err
	}

	if c.DryRun {
		cmd.Println(color.HiYellowString("Dry run. Not doing any cleanup"))
		if c.PrintCommands {
			return printCommands(ctx, cmd, s)
		}
		return nil
	}

	if !c.Yes {
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Clean the project directories shown above?")
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Cleanup cancelled")
			return nil
		}
	}

	cmd.Println("Starting cleanup...")
	if err := clean(ctx, cmd, s); err != nil {
		return err
	}
	cmd.Println(color.HiGreenString("Done!"))
	return nil
}

func resolveRoot(dir string) (string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path %s: %w", dir, err)
	}
	if _, err := os.Stat(root); err != nil {
		return "", fmt.Errorf("not found root path %s: %w", dir, err)
	}
	return root, nil
}

func scan(ctx context.Context, cmd *cobra.Command, walker *scanner.Walker, s *store.Store, root string) error {
	spinner := ui.NewSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Scanning %s", root))

	var found atomic.Int64
	sink := scanner.SinkFunc(func(ctx context.Context, artifact scanner.Artifact) error {
		if err := s.Add(ctx, artifact); err != nil {
			return err
		}
		spinner.UpdateMessage(fmt.Sprintf("Scanning %s (%d found)", root, found.Add(1)))
		return nil
	})

	if err := walker.Walk(ctx, root, sink); err != nil {
		spinner.Fail()
		return fmt.Errorf("failed to scan '%s': %w", root, err)
	}

	spinner.Success(fmt.Sprintf("Scanned %s (%d found)", root, found.Load()))
	return nil
}

func clean(ctx context.Context, cmd *cobra.Command, s *store.Store) error {
	p, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Cleaning (0/%d)", len(p.Selected)))
	removed := 0
	if err := s.Clean(ctx, func(scanner.Artifact) {
		removed++
		spinner.UpdateMessage(fmt.Sprintf("Cleaning (%d/%d)", removed, len(p.Selected)))
	}); err != nil {
		spinner.Fail()
		return err
	}

	spinner.Success()
	return nil
}
