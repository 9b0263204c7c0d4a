// Package archiver captures a set of playlists into an archive snapshot.
package archiver

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"playlist-archiver/internal/archive"
	"playlist-archiver/internal/platform/metrics"
	"playlist-archiver/internal/youtube"
)

// ErrNothingArchived is returned when no link produced a playlist.
var ErrNothingArchived = errors.New("none of the links could be archived")

// Stats summarises one run.
type Stats struct {
	Links      int
	Invalid    int
	Failed     int
	Duplicates int
	Playlists  int
	Videos     int
}

// Archiver fetches playlists and assembles them into an archive.
type Archiver struct {
	fetcher youtube.Fetcher
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// New returns an Archiver. With a nil m, counters go to a throwaway registry.
func New(f youtube.Fetcher, log zerolog.Logger, m *metrics.Metrics) *Archiver {
	if m == nil {
		m = metrics.New()
	}
	return &Archiver{fetcher: f, log: log, metrics: m}
}

// Run resolves every link to a playlist id and fetches it. Invalid links and
// failed fetches are logged and skipped; a playlist listed twice is fetched
// once. Playlists appear in the archive in link order.
func (a *Archiver) Run(ctx context.Context, links []string, now time.Time) (*archive.Archive, Stats, error) {
	start := time.Now()
	defer func() { a.metrics.SetRunDuration(time.Since(start).Seconds()) }()

	st := Stats{Links: len(links)}
	out := archive.New(now)
	seen := make(map[string]struct{}, len(links))

	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		id, err := youtube.PlaylistID(link)
		if err != nil {
			st.Invalid++
			a.metrics.IncLinksSkipped()
			a.log.Warn().Str("link", link).Msg("not a playlist link, skipping")
			continue
		}
		if _, dup := seen[id]; dup {
			st.Duplicates++
			a.log.Debug().Str("playlist_id", id).Msg("duplicate link, already fetched")
			continue
		}
		seen[id] = struct{}{}

		p, err := a.fetcher.FetchPlaylist(ctx, id)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, st, ctxErr
			}
			st.Failed++
			a.metrics.IncFetchErrors()
			a.log.Error().Err(err).Str("playlist_id", id).Msg("fetch failed, skipping")
			continue
		}
		out.AddPlaylist(p)
		st.Playlists++
		st.Videos += p.Videos.Len()
		a.metrics.IncPlaylistsFetched()
		a.metrics.AddVideosArchived(p.Videos.Len())
		a.log.Info().Str("playlist_id", id).Int("videos", p.Videos.Len()).Msg("playlist archived")
	}

	if st.Playlists == 0 {
		return nil, st, ErrNothingArchived
	}
	return out, st, nil
}
