package store

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gammadia/cargo-cleans/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestReportSelectedScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewPolicy(0, 0))
	modified := daysAgo(10)
	require.NoError(t, s.Add(ctx, scanner.Artifact{Path: "/work/proj/target", Size: 2 * 1024 * 1024, LastModified: modified}))

	var out bytes.Buffer
	require.NoError(t, s.Report(ctx, &out))

	expected := "Selected the following project directories for cleaning:\n" +
		"  proj : /work/proj/target\n" +
		"      " + modified.Local().Format("2006-01-02 15:04") + ", 2.0 MiB\n" +
		"Selected 1/1 projects, total freeable size: 2.0 MiB\n"
	assert.Equal(t, expected, out.String())
}

func TestReportIgnoredScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewPolicy(0, 5))
	require.NoError(t, s.Add(ctx, scanner.Artifact{Path: "/work/proj/target", Size: 2 * 1024 * 1024, LastModified: daysAgo(10)}))

	var out bytes.Buffer
	require.NoError(t, s.Report(ctx, &out))

	assert.Contains(t, out.String(), "Ignoring the following project directories:\n  proj : /work/proj/target\n")
	assert.NotContains(t, out.String(), "Selected the following")
	assert.Contains(t, out.String(), "Selected 0/1 projects, total freeable size: 0 B\n")
}

func TestReportEmpty(t *testing.T) {
	s := newTestStore(t, Policy{})

	var out bytes.Buffer
	require.NoError(t, s.Report(context.Background(), &out))
	assert.Equal(t, "Selected 0/0 projects, total freeable size: 0 B\n", out.String())
}

func TestReportIsSortedAndAligned(t *testing.T) {
	modified := time.Date(2024, 1, 2, 3, 4, 0, 0, time.Local)
	out := RenderReport(Partition{
		Selected: []scanner.Artifact{
			{Path: "/a/crate/target", Size: 1024, LastModified: modified},
			{Path: "/b/é/target", Size: 2048, LastModified: modified},
		},
		Freeable: 3072,
	})

	expected := "Selected the following project directories for cleaning:\n" +
		"  crate : /a/crate/target\n" +
		"      2024-01-02 03:04, 1.0 KiB\n" +
		"  é     : /b/é/target\n" +
		"      2024-01-02 03:04, 2.0 KiB\n" +
		"Selected 2/2 projects, total freeable size: 3.0 KiB\n"
	assert.Equal(t, expected, out)
}

func TestReportDoesNotChangeState(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, Policy{KeepSize: 10})
	require.NoError(t, s.Add(ctx, scanner.Artifact{Path: "/z/target", Size: 20, LastModified: daysAgo(1)}))
	require.NoError(t, s.Add(ctx, scanner.Artifact{Path: "/y/target", Size: 1, LastModified: daysAgo(1)}))

	var first, second bytes.Buffer
	require.NoError(t, s.Report(ctx, &first))
	require.NoError(t, s.Report(ctx, &second))
	assert.Equal(t, first.String(), second.String())
}
