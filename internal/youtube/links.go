// Package youtube turns playlist links into archived playlists using the
// YouTube Data API v3.
package youtube

import (
	"fmt"
	"io"
	"regexp"

	"playlist-archiver/internal/errs"
	"playlist-archiver/internal/textutil"
)

// Accepts playlist pages and watch pages opened from a playlist. Anything
// after the list id (index, ab_channel, ...) is ignored.
var playlistURL = regexp.MustCompile(`https://(?:www\.)?youtube\.com/(?:watch\?v=[a-zA-Z0-9_\-]+&|playlist\?)list=([a-zA-Z0-9_\-]+)`)

// PlaylistID extracts the playlist id from a YouTube link.
func PlaylistID(link string) (string, error) {
	m := playlistURL.FindStringSubmatch(link)
	if m == nil {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidPlaylistURL, link)
	}
	return m[1], nil
}

// ReadLinks reads one link per line from r. Blank lines are skipped and
// surrounding whitespace is trimmed.
func ReadLinks(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return textutil.NonBlankLines(b), nil
}
