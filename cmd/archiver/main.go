// Package main provides the archiver CLI: it reads playlist links, one per
// line, fetches every playlist through the YouTube Data API and writes a
// timestamped archive the comparator can diff later.
//
// Usage:
//
//	archiver [flags] <links_file> <archive_out>
//
// The API key is read from YOUTUBE_API_KEY (environment or .env file).
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/fred1268/go-clap/clap"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"playlist-archiver/internal/archiver"
	"playlist-archiver/internal/errs"
	"playlist-archiver/internal/platform/config"
	"playlist-archiver/internal/platform/logger"
	"playlist-archiver/internal/platform/metrics"
	"playlist-archiver/internal/prompt"
	"playlist-archiver/internal/store"
	"playlist-archiver/internal/youtube"
)

const usage = `Usage: archiver [--yes] [--metrics-file path] [--env-file path] <links_file> <archive_out>

<links_file> holds one playlist link per line, either
  https://www.youtube.com/playlist?list=<playlist_id>
or a video opened from a playlist
  https://www.youtube.com/watch?v=<video_id>&list=<playlist_id>`

const defaultFetchTimeout = 300 // seconds

// Config holds the parsed command line.
type Config struct {
	Yes         bool     `clap:"--yes,-y"`
	MetricsFile string   `clap:"--metrics-file"`
	EnvFile     string   `clap:"--env-file"`
	Args        []string `clap:"trailing"`
}

func (c Config) linksPath() string { return c.Args[0] }
func (c Config) outPath() string   { return c.Args[1] }

func parseFlags(args []string) (Config, error) {
	var cfg Config
	if _, err := clap.Parse(args, &cfg); err != nil {
		return Config{}, err
	}
	if len(cfg.Args) != 2 {
		return Config{}, fmt.Errorf("expected 2 arguments, got %d", len(cfg.Args))
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the archiver and returns the process exit code.
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
	st, err := archivePlaylists(ctx, cfg, prompt.NewGuard(stdin, stdout, cfg.Yes), m, log)
	if mErr := m.WriteTextfile(cfg.MetricsFile); mErr != nil {
		log.Warn().Err(mErr).Str("path", cfg.MetricsFile).Msg("metrics not written")
	}
	if err != nil {
		if errors.Is(err, errs.ErrDeclined) {
			fmt.Fprintln(stderr, "The program will now exit...")
			return 1
		}
		fail(stderr, err)
		return 1
	}

	color.New(color.FgGreen).Fprintf(stdout, "Archived %d playlist(s), %d video(s) to %s\n", st.Playlists, st.Videos, cfg.outPath())
	if skipped := st.Invalid + st.Failed; skipped > 0 {
		color.New(color.FgYellow).Fprintf(stdout, "Skipped %d link(s), see log for details\n", skipped)
	}
	return 0
}

func archivePlaylists(ctx context.Context, cfg Config, guard prompt.Guard, m *metrics.Metrics, log zerolog.Logger) (archiver.Stats, error) {
	var st archiver.Stats
	if store.SameFile(cfg.linksPath(), cfg.outPath()) {
		return st, fmt.Errorf("%s: %w", cfg.outPath(), errs.ErrSameFile)
	}
	apiKey := config.GetEnv(config.KeyAPIKey, "")
	if apiKey == "" {
		return st, fmt.Errorf("%s is not set", config.KeyAPIKey)
	}
	b, err := store.ReadFile(cfg.linksPath())
	if err != nil {
		return st, err
	}
	links, err := youtube.ReadLinks(bytes.NewReader(b))
	if err != nil {
		return st, err
	}
	if err := guard.Check(cfg.outPath()); err != nil {
		return st, err
	}

	timeout := time.Duration(config.GetEnvInt(config.KeyFetchTimeout, defaultFetchTimeout)) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var opts []option.ClientOption
	if ep := config.GetEnv(config.KeyAPIEndpoint, ""); ep != "" {
		opts = append(opts, option.WithEndpoint(ep))
	}
	fetcher, err := youtube.NewAPIFetcher(ctx, apiKey, opts...)
	if err != nil {
		return st, err
	}

	a, st, err := archiver.New(fetcher, log, m).Run(ctx, links, time.Now())
	if err != nil {
		return st, err
	}
	if err := store.Save(cfg.outPath(), a); err != nil {
		return st, err
	}
	log.Info().
		Int("playlists", st.Playlists).
		Int("videos", st.Videos).
		Int("invalid_links", st.Invalid).
		Int("failed", st.Failed).
		Str("path", cfg.outPath()).
		Msg("archive written")
	return st, nil
}

func fail(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "ERROR: ")
	fmt.Fprintln(w, err)
}
