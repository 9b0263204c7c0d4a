package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"playlist-archiver/internal/archive"
	"playlist-archiver/internal/errs"
)

const (
	pageSize  = 50
	itemParts = "snippet"
)

// Fetcher retrieves the current contents of a playlist.
type Fetcher interface {
	FetchPlaylist(ctx context.Context, playlistID string) (*archive.Playlist, error)
}

// APIFetcher fetches playlists through the YouTube Data API.
type APIFetcher struct {
	svc *yt.Service
}

// NewAPIFetcher builds a fetcher authenticated with apiKey. Extra options are
// appended, which lets callers point the client at another endpoint.
func NewAPIFetcher(ctx context.Context, apiKey string, opts ...option.ClientOption) (*APIFetcher, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	return &APIFetcher{svc: svc}, nil
}

// FetchPlaylist pages through every item of the playlist. Items without an
// uploader (deleted or private videos) are recorded under
// archive.UnknownChannel.
func (f *APIFetcher) FetchPlaylist(ctx context.Context, playlistID string) (*archive.Playlist, error) {
	p := archive.NewPlaylist(playlistID)
	call := f.svc.PlaylistItems.List([]string{itemParts}).
		PlaylistId(playlistID).
		MaxResults(pageSize).
		Fields("nextPageToken", "items(snippet(title,videoOwnerChannelTitle,resourceId/videoId))")

	err := call.Pages(ctx, func(resp *yt.PlaylistItemListResponse) error {
		for _, item := range resp.Items {
			if item == nil || item.Snippet == nil || item.Snippet.ResourceId == nil {
				continue
			}
			s := item.Snippet
			channel := s.VideoOwnerChannelTitle
			if channel == "" {
				channel = archive.UnknownChannel
			}
			p.AddVideo(archive.NewVideo(s.ResourceId.VideoId, s.Title, channel))
		}
		return nil
	})
	if err != nil {
		return nil, classify(playlistID, err)
	}
	return p, nil
}

func classify(playlistID string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", errs.ErrAPIKeyExpired, gerr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", errs.ErrPlaylistNotFound, playlistID)
		}
	}
	return fmt.Errorf("fetch playlist %s: %w", playlistID, err)
}
