package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"playlist-archiver/internal/archive"
	"playlist-archiver/internal/store"
)

func TestParseFlagsBasic(t *testing.T) {
	cfg, err := parseFlags([]string{"--yes", "-u", "--metrics-file", "m.prom", "old.json", "new.json", "report.txt"})
	if err != nil {
		t.Fatalf("parseFlags error: %v", err)
	}
	if !cfg.Yes || !cfg.Unified {
		t.Fatalf("flags not set: %+v", cfg)
	}
	if cfg.MetricsFile != "m.prom" {
		t.Fatalf("MetricsFile got %q", cfg.MetricsFile)
	}
	if cfg.MaxDiffBytes != 2_000_000 {
		t.Fatalf("MaxDiffBytes default got %d", cfg.MaxDiffBytes)
	}
	if cfg.oldPath() != "old.json" || cfg.newPath() != "new.json" || cfg.outPath() != "report.txt" {
		t.Fatalf("positional args got %v", cfg.Args)
	}
}

func TestParseFlagsWrongArgCount(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"old.json", "new.json"},
		{"a", "b", "c", "d"},
	} {
		if _, err := parseFlags(args); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func writeArchive(t *testing.T, dir, name, ts string, playlists map[string][]archive.Video, order ...string) string {
	t.Helper()
	a := &archive.Archive{Time: ts}
	for _, id := range order {
		p := archive.NewPlaylist(id)
		for _, v := range playlists[id] {
			p.AddVideo(v)
		}
		a.AddPlaylist(p)
	}
	path := filepath.Join(dir, name)
	if err := store.Save(path, a); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunAddedAndRemoved(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeArchive(t, dir, "old.json", "2023-01-15 Sun 14:30:00", map[string][]archive.Video{
		"P1": {archive.NewVideo("v1", "Song A", "ChanA")},
	}, "P1")
	newPath := writeArchive(t, dir, "new.json", "2023-01-16 Mon 14:30:00", map[string][]archive.Video{
		"P1": {archive.NewVideo("v2", "Song B", "ChanB")},
	}, "P1")
	out := filepath.Join(dir, "report.txt")
	metricsPath := filepath.Join(dir, "cmp.prom")

	code, stdout, stderr := runCLI(t, "--metrics-file", metricsPath, oldPath, newPath, out)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "Report written to") {
		t.Errorf("stdout: %q", stdout)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	rep := string(b)
	for _, want := range []string{
		"Time apart: 1 day, 0 hours, 0 minutes, 0 seconds",
		"Mutual playlists: 1",
		"Added (1 video):\n    \"Song B\" by \"ChanB\" (youtube.com/watch?v=v2)",
		"Removed (1 video):\n    \"Song A\" by \"ChanA\" (youtube.com/watch?v=v1)",
	} {
		if !strings.Contains(rep, want) {
			t.Errorf("report missing %q:\n%s", want, rep)
		}
	}
	mb, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if !strings.Contains(string(mb), `playlist_archiver_video_changes_total{kind="added"} 1`) {
		t.Errorf("metrics:\n%s", mb)
	}
}

func TestRunNoMutualPlaylists(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeArchive(t, dir, "old.json", "2023-01-15 Sun 14:30:00", nil, "A")
	newPath := writeArchive(t, dir, "new.json", "2023-01-15 Sun 14:30:00", nil, "B")
	out := filepath.Join(dir, "report.txt")

	code, _, stderr := runCLI(t, oldPath, newPath, out)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	b, _ := os.ReadFile(out)
	if !strings.Contains(string(b), "Mutual playlists: 0") || strings.Contains(string(b), "Playlist ") {
		t.Fatalf("report:\n%s", b)
	}
}

func TestRunInvalidInputWritesNothing(t *testing.T) {
	dir := t.TempDir()
	good := writeArchive(t, dir, "good.json", "2023-01-15 Sun 14:30:00", nil, "A")
	malformed := filepath.Join(dir, "malformed.json")
	if err := os.WriteFile(malformed, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	wrongShape := filepath.Join(dir, "wrong.json")
	if err := os.WriteFile(wrongShape, []byte(`{"time":"2023-01-15 Sun 14:30:00"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name    string
		oldPath string
		want    string
	}{
		{"missing", filepath.Join(dir, "absent.json"), "absent.json"},
		{"malformed", malformed, "malformed.json"},
		{"schema", wrongShape, "wrong.json"},
	}
	for _, c := range cases {
		out := filepath.Join(dir, c.name+".txt")
		code, _, stderr := runCLI(t, c.oldPath, good, out)
		if code != 1 {
			t.Errorf("%s: exit %d", c.name, code)
		}
		if !strings.Contains(stderr, c.want) {
			t.Errorf("%s: stderr should name the file:\n%s", c.name, stderr)
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Errorf("%s: report should not exist", c.name)
		}
	}
}

func TestRunOutputIsInput(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeArchive(t, dir, "old.json", "2023-01-15 Sun 14:30:00", nil, "A")
	newPath := writeArchive(t, dir, "new.json", "2023-01-15 Sun 14:30:00", nil, "A")
	before, _ := os.ReadFile(newPath)

	code, _, _ := runCLI(t, "--yes", oldPath, newPath, newPath)
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	after, _ := os.ReadFile(newPath)
	if !bytes.Equal(before, after) {
		t.Fatal("input archive was modified")
	}
}

func TestRunExistingOutput(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeArchive(t, dir, "old.json", "2023-01-15 Sun 14:30:00", nil, "A")
	newPath := writeArchive(t, dir, "new.json", "2023-01-15 Sun 14:30:00", nil, "A")
	out := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(out, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	// stdin is not a terminal, so without --yes nothing is overwritten.
	if code, _, stderr := runCLI(t, oldPath, newPath, out); code != 1 || !strings.Contains(stderr, "--yes") {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	if b, _ := os.ReadFile(out); string(b) != "previous" {
		t.Fatalf("output overwritten without confirmation: %q", b)
	}

	if code, _, stderr := runCLI(t, "-y", oldPath, newPath, out); code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	if b, _ := os.ReadFile(out); !strings.HasPrefix(string(b), "Old archive: ") {
		t.Fatalf("output not replaced: %q", b)
	}
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runCLI(t, "only-one.json")
	if code != 1 || !strings.Contains(stderr, "Usage:") {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
}
