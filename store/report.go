package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gammadia/cargo-cleans/scanner"
	"github.com/rivo/uniseg"
	"github.com/samber/lo"
)

const timestampLayout = "2006-01-02 15:04"

var headerColor = color.New(color.Bold)

// Report writes the ignored then the selected artifact roots to w, followed by a summary line.
// It does not modify the store.
func (s *Store) Report(ctx context.Context, w io.Writer) (err error) {
	if callErr := s.call(ctx, func() {
		_, err = io.WriteString(w, RenderReport(s.partition()))
	}); callErr != nil {
		return callErr
	}
	return
}

// RenderReport formats a partition as printed by Report.
func RenderReport(p Partition) string {
	var b strings.Builder

	if len(p.Ignored) > 0 {
		b.WriteString(headerColor.Sprint("Ignoring the following project directories:"))
		b.WriteString("\n")
		renderArtifacts(&b, p.Ignored)
	}
	if len(p.Selected) > 0 {
		b.WriteString(headerColor.Sprint("Selected the following project directories for cleaning:"))
		b.WriteString("\n")
		renderArtifacts(&b, p.Selected)
	}

	fmt.Fprintf(&b, "Selected %d/%d projects, total freeable size: %s\n",
		len(p.Selected), p.Total(), color.HiGreenString(humanize.IBytes(p.Freeable)))
	return b.String()
}

func renderArtifacts(b *strings.Builder, artifacts []scanner.Artifact) {
	width := lo.Max(lo.Map(artifacts, func(a scanner.Artifact, _ int) int {
		return uniseg.GraphemeClusterCount(a.Project())
	}))

	for _, a := range artifacts {
		project := a.Project()
		padding := strings.Repeat(" ", width-uniseg.GraphemeClusterCount(project))
		fmt.Fprintf(b, "  %s%s : %s\n", color.HiCyanString(project), padding, a.Path)
		fmt.Fprintf(b, "      %s, %s\n", a.LastModified.Local().Format(timestampLayout), humanize.IBytes(a.Size))
	}
}
