// Package report turns playlist diffs into the plain-text comparison report.
package report

import (
	"bufio"
	"fmt"
	"io"

	"playlist-archiver/internal/archive"
	"playlist-archiver/internal/compare"
	"playlist-archiver/internal/diff"
)

const indent = "    "

// Options controls optional report sections.
type Options struct {
	// Unified appends a unified diff of each changed playlist's listing.
	Unified bool
	// Diff configures the unified listing diff.
	Diff diff.Options
}

// Write renders the report for diffs, which must come from
// compare.Archives(prev, curr).
func Write(w io.Writer, prev, curr *archive.Archive, diffs []compare.PlaylistDiff, opt Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Old archive: %s\n", prev.Time)
	fmt.Fprintf(bw, "New archive: %s\n", curr.Time)
	if apart, err := archive.TimeApart(prev.Time, curr.Time); err == nil {
		fmt.Fprintf(bw, "Time apart: %s\n", apart)
	}
	fmt.Fprintf(bw, "Mutual playlists: %d\n", len(diffs))

	for _, d := range diffs {
		bw.WriteString("\n")
		if d.Empty() {
			fmt.Fprintf(bw, "Playlist %s (%s): 0 changes\n", d.ID, d.Link)
			continue
		}
		fmt.Fprintf(bw, "Playlist %s (%s):\n", d.ID, d.Link)

		section(bw, "Added", len(d.Added), func() {
			for _, v := range d.Added {
				fmt.Fprintf(bw, "%s%s (%s)\n", indent, Entry(v), v.Link)
			}
		})
		section(bw, "Removed", len(d.Removed), func() {
			for _, v := range d.Removed {
				fmt.Fprintf(bw, "%s%s (%s)\n", indent, Entry(v), v.Link)
			}
		})
		section(bw, "Changed", len(d.Changed), func() {
			for _, c := range d.Changed {
				fmt.Fprintf(bw, "%s%s\n", indent, Transition(c))
			}
		})

		if opt.Unified {
			writeListingDiff(bw, prev, curr, d.ID, opt.Diff)
		}
	}
	return bw.Flush()
}

// Entry renders one video: an available video as "<name>" by "<channel>",
// an unavailable one as its bare name since the channel is unknown.
func Entry(v archive.Video) string {
	if v.IsUnavailable() {
		return v.Name
	}
	return fmt.Sprintf(`"%s" by "%s"`, v.Name, v.Channel)
}

// Transition renders a Change as "<old> --> <new>".
func Transition(c compare.Change) string {
	return Entry(c.Old) + " --> " + Entry(c.New)
}

func section(w *bufio.Writer, label string, n int, body func()) {
	fmt.Fprintf(w, "%s (%d %s):\n", label, n, videos(n))
	if n == 0 {
		fmt.Fprintf(w, "%sNone\n", indent)
		return
	}
	body()
}

func writeListingDiff(w *bufio.Writer, prev, curr *archive.Archive, id string, opt diff.Options) {
	op, ok := prev.Playlists.Get(id)
	if !ok {
		return
	}
	np, ok := curr.Playlists.Get(id)
	if !ok {
		return
	}
	body, _ := diff.Listing("old/"+id, "new/"+id, diff.VideoLines(&op.Videos), diff.VideoLines(&np.Videos), opt)
	if body == "" {
		return
	}
	w.WriteString("Listing diff:\n")
	w.WriteString(body)
}

func videos(n int) string {
	if n == 1 {
		return "video"
	}
	return "videos"
}
