// Package main provides the comparator CLI: it reads two archives written by
// the archiver and reports, for every playlist present in both, which videos
// were added, removed, or changed availability in between.
//
// Usage:
//
//	comparator [flags] <old_archive> <new_archive> <output>
//
// Both archives are fully loaded and validated before any comparison work,
// and the report is written atomically, so a failed run never leaves a
// partial report at <output>.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/fred1268/go-clap/clap"
	"github.com/rs/zerolog"

	"playlist-archiver/internal/compare"
	"playlist-archiver/internal/diff"
	"playlist-archiver/internal/errs"
	"playlist-archiver/internal/platform/config"
	"playlist-archiver/internal/platform/logger"
	"playlist-archiver/internal/platform/metrics"
	"playlist-archiver/internal/prompt"
	"playlist-archiver/internal/report"
	"playlist-archiver/internal/store"
)

const usage = "Usage: comparator [--yes] [--unified] [--max-diff-bytes N] [--metrics-file path] [--env-file path] <old_archive> <new_archive> <output>"

// Config holds the parsed command line.
type Config struct {
	Yes          bool     `clap:"--yes,-y"`
	Unified      bool     `clap:"--unified,-u"`
	MaxDiffBytes int      `clap:"--max-diff-bytes"`
	MetricsFile  string   `clap:"--metrics-file"`
	EnvFile      string   `clap:"--env-file"`
	Args         []string `clap:"trailing"`
}

func (c Config) oldPath() string { return c.Args[0] }
func (c Config) newPath() string { return c.Args[1] }
func (c Config) outPath() string { return c.Args[2] }

func parseFlags(args []string) (Config, error) {
	cfg := Config{MaxDiffBytes: 2_000_000}
	if _, err := clap.Parse(args, &cfg); err != nil {
		return Config{}, err
	}
	if len(cfg.Args) != 3 {
		return Config{}, fmt.Errorf("expected 3 arguments, got %d", len(cfg.Args))
	}
	if cfg.MaxDiffBytes < 0 {
		return Config{}, fmt.Errorf("--max-diff-bytes must be >= 0")
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the comparator and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args)
	if err != nil {
		fail(stderr, err)
		fmt.Fprintln(stderr, usage)
		return 1
	}

	var envFiles []string
	if cfg.EnvFile != "" {
		envFiles = append(envFiles, cfg.EnvFile)
	}
	if err := config.Load(envFiles...); err != nil {
		fail(stderr, fmt.Errorf("load env: %w", err))
		return 1
	}
	log := logger.New(
		config.GetEnv(config.KeyLogLevel, "info"),
		config.GetEnv(config.KeyLogFormat, "text"),
		stderr,
	)
	if cfg.MetricsFile == "" {
		cfg.MetricsFile = config.GetEnv(config.KeyMetricsFile, "")
	}

	m := metrics.New()
	if err := compareArchives(ctx, cfg, prompt.NewGuard(stdin, stdout, cfg.Yes), m, log); err != nil {
		if errors.Is(err, errs.ErrDeclined) {
			fmt.Fprintln(stderr, "The program will now exit...")
			return 1
		}
		fail(stderr, err)
		return 1
	}
	if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
		log.Warn().Err(err).Str("path", cfg.MetricsFile).Msg("metrics not written")
	}

	color.New(color.FgGreen).Fprintf(stdout, "Report written to %s\n", cfg.outPath())
	return 0
}

func compareArchives(ctx context.Context, cfg Config, guard prompt.Guard, m *metrics.Metrics, log zerolog.Logger) error {
	// Both inputs must be valid before anything is compared or written.
	prev, err := store.Load(cfg.oldPath())
	if err != nil {
		return err
	}
	curr, err := store.Load(cfg.newPath())
	if err != nil {
		return err
	}
	if store.SameFile(cfg.outPath(), cfg.oldPath()) || store.SameFile(cfg.outPath(), cfg.newPath()) {
		return fmt.Errorf("%s: %w", cfg.outPath(), errs.ErrSameFile)
	}
	if err := guard.Check(cfg.outPath()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	diffs := compare.Archives(prev, curr)
	added, removed, changed := compare.Totals(diffs)
	log.Info().
		Int("mutual_playlists", len(diffs)).
		Int("added", added).
		Int("removed", removed).
		Int("changed", changed).
		Msg("archives compared")
	m.AddPlaylistsCompared(len(diffs))
	m.RecordChanges(added, removed, changed)

	opt := report.Options{
		Unified: cfg.Unified,
		Diff:    diff.Options{MaxBytes: cfg.MaxDiffBytes},
	}
	return store.WriteAtomic(cfg.outPath(), func(w io.Writer) error {
		return report.Write(w, prev, curr, diffs, opt)
	})
}

func fail(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "ERROR: ")
	fmt.Fprintln(w, err)
}
