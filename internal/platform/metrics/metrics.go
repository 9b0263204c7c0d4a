package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus counters for one archiver or comparator run. The
// CLIs are short-lived, so values are flushed to a node_exporter textfile
// instead of being scraped.
type Metrics struct {
	registry              *prometheus.Registry
	playlistsFetchedTotal prometheus.Counter
	videosArchivedTotal   prometheus.Counter
	linksSkippedTotal     prometheus.Counter
	fetchErrorsTotal      prometheus.Counter
	runDuration           prometheus.Gauge
	playlistsCompared     prometheus.Counter
	videoChangesTotal     *prometheus.CounterVec
}

// New creates and registers metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	playlistsFetchedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playlist_archiver_playlists_fetched_total",
		Help: "Total number of playlists fetched and archived",
	})
	videosArchivedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playlist_archiver_videos_archived_total",
		Help: "Total number of videos written to the archive",
	})
	linksSkippedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playlist_archiver_links_skipped_total",
		Help: "Total number of input links that were not valid playlist URLs",
	})
	fetchErrorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playlist_archiver_fetch_errors_total",
		Help: "Total number of playlists that could not be fetched",
	})
	runDuration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "playlist_archiver_run_duration_seconds",
		Help: "Wall time of the last archiver run",
	})
	playlistsCompared := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playlist_archiver_playlists_compared_total",
		Help: "Total number of mutual playlists compared",
	})
	videoChangesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "playlist_archiver_video_changes_total",
		Help: "Total number of video differences found, by kind",
	}, []string{"kind"})

	registry.MustRegister(
		playlistsFetchedTotal,
		videosArchivedTotal,
		linksSkippedTotal,
		fetchErrorsTotal,
		runDuration,
		playlistsCompared,
		videoChangesTotal,
	)

	return &Metrics{
		registry:              registry,
		playlistsFetchedTotal: playlistsFetchedTotal,
		videosArchivedTotal:   videosArchivedTotal,
		linksSkippedTotal:     linksSkippedTotal,
		fetchErrorsTotal:      fetchErrorsTotal,
		runDuration:           runDuration,
		playlistsCompared:     playlistsCompared,
		videoChangesTotal:     videoChangesTotal,
	}
}

// IncPlaylistsFetched increments the fetched playlists counter.
func (m *Metrics) IncPlaylistsFetched() {
	m.playlistsFetchedTotal.Inc()
}

// AddVideosArchived adds n to the archived videos counter.
func (m *Metrics) AddVideosArchived(n int) {
	m.videosArchivedTotal.Add(float64(n))
}

// IncLinksSkipped increments the skipped links counter.
func (m *Metrics) IncLinksSkipped() {
	m.linksSkippedTotal.Inc()
}

// IncFetchErrors increments the fetch errors counter.
func (m *Metrics) IncFetchErrors() {
	m.fetchErrorsTotal.Inc()
}

// SetRunDuration records the run wall time in seconds.
func (m *Metrics) SetRunDuration(seconds float64) {
	m.runDuration.Set(seconds)
}

// AddPlaylistsCompared adds n to the compared playlists counter.
func (m *Metrics) AddPlaylistsCompared(n int) {
	m.playlistsCompared.Add(float64(n))
}

// RecordChanges adds the outcome of a comparison to the per-kind counters.
func (m *Metrics) RecordChanges(added, removed, changed int) {
	m.videoChangesTotal.WithLabelValues("added").Add(float64(added))
	m.videoChangesTotal.WithLabelValues("removed").Add(float64(removed))
	m.videoChangesTotal.WithLabelValues("changed").Add(float64(changed))
}

// WriteTextfile writes all metrics to path in the text exposition format.
// An empty path disables the export.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
