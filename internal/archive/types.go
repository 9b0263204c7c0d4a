// Package archive defines the on-disk snapshot of a set of YouTube playlists
// and the value types the comparator works with.
//
// The JSON shape is fixed:
//
//	{
//	  "time": "2023-01-15 Sun 14:30:00",
//	  "playlists": {
//	    "<playlist_id>": {
//	      "id": "<playlist_id>",
//	      "link": "https://www.youtube.com/playlist?list=<playlist_id>",
//	      "videos": {
//	        "<video_id>": {"id": ..., "name": ..., "channel": ..., "link": ...}
//	      }
//	    }
//	  }
//	}
//
// Object key order is preserved in both directions so that reports follow the
// order in which playlists and videos were captured.
package archive

import (
	"encoding/json"
	"time"
)

const (
	// VideoLinkPrefix is prepended to a video id to form Video.Link.
	VideoLinkPrefix = "youtube.com/watch?v="
	// PlaylistLinkPrefix is prepended to a playlist id to form Playlist.Link.
	PlaylistLinkPrefix = "https://www.youtube.com/playlist?list="
	// UnknownChannel is recorded as the channel of a video whose uploader the
	// API did not return, which happens for deleted and privatised videos.
	UnknownChannel = "Unknown Channel"
)

// Video is one archived playlist entry. Two videos are the same video when
// their IDs match; Name and Channel are capture-time metadata only.
//
// Unavailable is derived from Channel when the record is built or decoded and
// is never written to disk. A channel that is really called "Unknown Channel"
// is therefore reported as unavailable too.
type Video struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Channel     string `json:"channel"`
	Link        string `json:"link"`
	Unavailable bool   `json:"-"`
}

// NewVideo builds a Video and derives its link and availability.
func NewVideo(id, name, channel string) Video {
	return Video{
		ID:          id,
		Name:        name,
		Channel:     channel,
		Link:        VideoLinkPrefix + id,
		Unavailable: channel == UnknownChannel,
	}
}

// IsUnavailable reports whether the video was deleted or privatised when it
// was captured.
func (v Video) IsUnavailable() bool { return v.Unavailable }

// Equal reports whether v and o are the same video.
func (v Video) Equal(o Video) bool { return v.ID == o.ID }

// UnmarshalJSON decodes a video record and computes Unavailable.
func (v *Video) UnmarshalJSON(data []byte) error {
	type plain Video
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = Video(p)
	v.Unavailable = p.Channel == UnknownChannel
	return nil
}

// VideoSet maps video ids to videos in capture order.
type VideoSet struct {
	ordered[Video]
}

// Add inserts or replaces v under its own id.
func (s *VideoSet) Add(v Video) { s.set(v.ID, v) }

// Playlist is the captured state of one playlist.
type Playlist struct {
	ID     string   `json:"id"`
	Link   string   `json:"link"`
	Videos VideoSet `json:"videos"`
}

// NewPlaylist returns an empty playlist with its link derived from id.
func NewPlaylist(id string) *Playlist {
	return &Playlist{ID: id, Link: PlaylistLinkPrefix + id}
}

// AddVideo appends v to the playlist. A repeated id keeps its first position.
func (p *Playlist) AddVideo(v Video) { p.Videos.Add(v) }

// PlaylistSet maps playlist ids to playlists in capture order.
type PlaylistSet struct {
	ordered[*Playlist]
}

// Add inserts or replaces p under its own id.
func (s *PlaylistSet) Add(p *Playlist) { s.set(p.ID, p) }

// Archive is a timestamped snapshot of one or more playlists.
type Archive struct {
	Time      string      `json:"time"`
	Playlists PlaylistSet `json:"playlists"`
}

// New returns an empty archive stamped with now.
func New(now time.Time) *Archive {
	return &Archive{Time: FormatTime(now)}
}

// AddPlaylist records p in the archive.
func (a *Archive) AddPlaylist(p *Playlist) { a.Playlists.Add(p) }
