// Package compare classifies the differences between two captures of the
// same playlist.
//
// Every video id in either capture lands in at most one bucket:
//
//   - Added: present now, absent before
//   - Removed: present before, absent now
//   - Changed: present in both, and exactly one side is unavailable
//     (privatised/deleted on one capture, visible on the other)
//
// Title or channel edits that do not cross the availability boundary are not
// reported. Removed and Changed follow the old capture's order; Added follows
// the new capture's order.
package compare

import (
	"playlist-archiver/internal/archive"
)

// Change is a video whose availability flipped between captures. Old is
// always the earlier record, whichever way the flip went.
type Change struct {
	Old archive.Video
	New archive.Video
}

// Result is the diff of one playlist.
type Result struct {
	Added   []archive.Video
	Removed []archive.Video
	Changed []Change
}

// Empty reports whether nothing was added, removed or changed.
func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// PlaylistDiff is the Result for one playlist present in both archives.
type PlaylistDiff struct {
	ID   string
	Link string
	Result
}

// Videos diffs two captures of a playlist's videos. Neither set is modified.
func Videos(prev, curr *archive.VideoSet) Result {
	res := Result{
		Added:   make([]archive.Video, 0),
		Removed: make([]archive.Video, 0),
		Changed: make([]Change, 0),
	}

	unmatched := make(map[string]struct{}, curr.Len())
	for _, id := range curr.Keys() {
		unmatched[id] = struct{}{}
	}

	prev.Each(func(id string, ov archive.Video) {
		nv, ok := curr.Get(id)
		if !ok {
			res.Removed = append(res.Removed, ov)
			return
		}
		delete(unmatched, id)
		if ov.IsUnavailable() != nv.IsUnavailable() {
			res.Changed = append(res.Changed, Change{Old: ov, New: nv})
		}
	})

	curr.Each(func(id string, nv archive.Video) {
		if _, ok := unmatched[id]; ok {
			res.Added = append(res.Added, nv)
		}
	})
	return res
}

// Archives diffs every playlist present in both archives, in the old
// archive's playlist order. Playlists that exist on one side only are
// skipped without a trace.
func Archives(prev, curr *archive.Archive) []PlaylistDiff {
	out := make([]PlaylistDiff, 0)
	prev.Playlists.Each(func(id string, op *archive.Playlist) {
		np, ok := curr.Playlists.Get(id)
		if !ok {
			return
		}
		out = append(out, PlaylistDiff{
			ID:     id,
			Link:   op.Link,
			Result: Videos(&op.Videos, &np.Videos),
		})
	})
	return out
}

// Totals sums the bucket sizes over diffs.
func Totals(diffs []PlaylistDiff) (added, removed, changed int) {
	for _, d := range diffs {
		added += len(d.Added)
		removed += len(d.Removed)
		changed += len(d.Changed)
	}
	return added, removed, changed
}
