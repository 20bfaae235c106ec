// Package app runs one report: evaluate achievements, print, optionally post,
// and record the run.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/conorfennell/ankisocial/internal/achievement"
	"github.com/conorfennell/ankisocial/internal/marker"
	"github.com/conorfennell/ankisocial/internal/report"
)

// Poster publishes a status to a social network.
type Poster interface {
	Post(ctx context.Context, status string) error
}

// Options wires one run.
type Options struct {
	Source report.Source
	Engine *achievement.Engine
	// Poster is nil when posting is not configured.
	Poster     Poster
	MarkerPath string
	Days       int
	Now        time.Time
	In         io.Reader
	Out        io.Writer
}

// Run prints the report and records Now as the last run. The marker is
// written even when posting fails or is declined; a failed post is reported
// but does not fail the run.
func Run(ctx context.Context, opts Options) error {
	lastRun, ok, err := marker.Read(opts.MarkerPath)
	if err != nil {
		slog.Warn("Ignoring unreadable last-run marker", "path", opts.MarkerPath, "error", err)
	}
	if !ok {
		lastRun = opts.Now
	}
	slog.Debug("Evaluating achievements", "now", opts.Now, "last_run", lastRun)

	stats, err := report.Gather(ctx, opts.Source, opts.Now, opts.Days)
	if err != nil {
		return fmt.Errorf("failed to gather statistics: %w", err)
	}
	summary, err := opts.Engine.Evaluate(ctx, opts.Now, lastRun)
	if err != nil {
		return fmt.Errorf("failed to evaluate achievements: %w", err)
	}
	if err := report.Write(opts.Out, stats, summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	maybePost(ctx, opts, summary.Unlocked.Sorted())

	return marker.Write(opts.MarkerPath, opts.Now)
}

func maybePost(ctx context.Context, opts Options, unlocked []string) {
	if len(unlocked) == 0 {
		return
	}
	if opts.Poster == nil {
		slog.Debug("Posting disabled: mastodon url or token not configured")
		return
	}

	status := Status(unlocked)
	fmt.Fprintf(opts.Out, "\nAbout to post:\n\n%s\n\n", status)
	if !Confirm(opts.In, opts.Out, "Post this?") {
		slog.Info("Post skipped by user")
		return
	}

	if err := opts.Poster.Post(ctx, status); err != nil {
		slog.Error("Failed to post achievements", "error", err)
		fmt.Fprintf(opts.Out, "Posting failed: %v\n", err)
		return
	}
	slog.Info("Posted achievements", "count", len(unlocked))
}

// Status renders the announcement for a set of achievements.
func Status(unlocked []string) string {
	var b strings.Builder
	b.WriteString("New Anki achievements unlocked:\n")
	for _, a := range unlocked {
		b.WriteString("🏆 ")
		b.WriteString(a)
		b.WriteString("\n")
	}
	b.WriteString("#anki")
	return b.String()
}

// Confirm asks a yes/no question and defaults to no.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
