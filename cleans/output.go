package main

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/alessio/shellescape"
	"github.com/dustin/go-humanize"
	"github.com/gammadia/cargo-cleans/scanner"
	"github.com/gammadia/cargo-cleans/store"
	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// formatRecord is the value a --format template is executed with.
type formatRecord struct {
	scanner.Artifact
	Selected bool
}

func printReport(ctx context.Context, cmd *cobra.Command, s *store.Store, c config) error {
	if c.Format == "" && c.Output == "text" {
		return s.Report(ctx, cmd.OutOrStdout())
	}

	p, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	if c.Format != "" {
		return renderFormat(cmd, c.Format, p)
	}
	return yaml.NewEncoder(cmd.OutOrStdout()).Encode(p)
}

func newFormatTemplate(format string) (*template.Template, error) {
	tmpl, err := template.New("format").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{"bytes": humanize.IBytes}).
		Parse(format)
	if err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}
	return tmpl, nil
}

func renderFormat(cmd *cobra.Command, format string, p store.Partition) error {
	tmpl, err := newFormatTemplate(format)
	if err != nil {
		return err
	}

	var records []formatRecord
	for _, a := range p.Ignored {
		records = append(records, formatRecord{a, false})
	}
	for _, a := range p.Selected {
		records = append(records, formatRecord{a, true})
	}

	var buf bytes.Buffer
	for _, record := range records {
		if err := tmpl.Execute(&buf, record); err != nil {
			return fmt.Errorf("failed to render '%s': %w", record.Path, err)
		}
		buf.WriteString("\n")
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

func printCommands(ctx context.Context, cmd *cobra.Command, s *store.Store) error {
	p, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	for _, a := range p.Selected {
		cmd.Println("rm -rf " + shellescape.Quote(a.Path))
	}
	return nil
}
