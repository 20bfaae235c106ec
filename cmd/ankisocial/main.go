package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/conorfennell/ankisocial/internal/achievement"
	"github.com/conorfennell/ankisocial/internal/app"
	"github.com/conorfennell/ankisocial/internal/config"
	"github.com/conorfennell/ankisocial/internal/locate"
	"github.com/conorfennell/ankisocial/internal/marker"
	"github.com/conorfennell/ankisocial/internal/social"
	"github.com/conorfennell/ankisocial/internal/storage"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one report and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// 1. Parse flags and load configuration
	fs := config.Flags("ankisocial")
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	setupLogging(stderr, cfg.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 2. Find and open the collection
	path := cfg.DB
	if path == "" {
		path, err = locate.Find()
		if errors.Is(err, locate.ErrNotFound) {
			fmt.Fprintln(stderr, "No Anki collection found")
			return 1
		}
		if err != nil {
			slog.Error("Failed to search for collection", "error", err)
			return 1
		}
	}

	db, err := storage.Open(path)
	if err != nil {
		slog.Error("Failed to open collection", "path", path, "error", err)
		return 1
	}
	defer db.Close()
	slog.Debug("Collection opened", "path", path)

	markerPath := cfg.Marker
	if markerPath == "" {
		if markerPath, err = marker.DefaultPath(); err != nil {
			slog.Error("Failed to resolve marker path", "error", err)
			return 1
		}
	}

	// 3. Build the scores and the optional poster
	scores, err := app.BuildScores(cfg.Scores, db)
	if err != nil {
		slog.Error("Failed to build scores", "error", err)
		return 1
	}

	opts := app.Options{
		Source:     db,
		Engine:     achievement.New(scores...),
		MarkerPath: markerPath,
		Days:       cfg.Days,
		Now:        time.Now(),
		In:         stdin,
		Out:        stdout,
	}
	if cfg.Mastodon.Enabled() {
		opts.Poster = social.New(ctx, cfg.Mastodon.URL, cfg.Mastodon.Token)
	}

	// 4. Report
	if err := app.Run(ctx, opts); err != nil {
		slog.Error("Run failed", "error", err)
		return 1
	}
	return 0
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
