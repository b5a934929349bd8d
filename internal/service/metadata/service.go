package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playlistrooms/server/internal/metrics"
	"github.com/playlistrooms/server/pkg/ytmetadata"
)

var (
	ErrInvalidVideoURL     = errors.New("invalid youtube url")
	ErrInvalidPlaylistURL  = errors.New("invalid youtube playlist url")
	ErrPlaylistUnavailable = errors.New("failed to fetch playlist data")
)

type iResolver interface {
	Video(ctx context.Context, videoId string) ytmetadata.VideoMetadata
	Playlist(ctx context.Context, playlistId string) (*ytmetadata.PlaylistMetadata, error)
}

type service struct {
	resolver iResolver
	logger   *slog.Logger
}

func NewService(resolver iResolver, logger *slog.Logger) *service {
	return &service{
		resolver: resolver,
		logger:   logger,
	}
}

type ResolveVideoResponse struct {
	ytmetadata.VideoMetadata
	URL string `json:"url"`
}

// ResolveVideo turns a source URL into a metadata record. The only error is
// an unrecognized URL; a record comes back even when every extraction
// strategy failed, with placeholder fields.
func (s service) ResolveVideo(ctx context.Context, url string) (ResolveVideoResponse, error) {
	videoId, ok := ytmetadata.ExtractVideoId(url)
	if !ok {
		return ResolveVideoResponse{}, ErrInvalidVideoURL
	}

	md := s.resolver.Video(ctx, videoId)

	outcome := "resolved"
	if md == ytmetadata.FallbackVideo(videoId) {
		outcome = "degraded"
	}
	metrics.VideoResolutions.WithLabelValues(outcome).Inc()

	s.logger.DebugContext(ctx, "resolved video", "video_id", videoId, "outcome", outcome)

	return ResolveVideoResponse{
		VideoMetadata: md,
		URL:           url,
	}, nil
}

type ResolvePlaylistParams struct {
	URL        string
	PlaylistId string
}

// ResolvePlaylist resolves a playlist by explicit id, or by extracting one
// from the URL when no id was supplied.
func (s service) ResolvePlaylist(ctx context.Context, params *ResolvePlaylistParams) (*ytmetadata.PlaylistMetadata, error) {
	playlistId := params.PlaylistId
	if playlistId == "" {
		var ok bool
		playlistId, ok = ytmetadata.ExtractPlaylistId(params.URL)
		if !ok {
			return nil, ErrInvalidPlaylistURL
		}
	}

	playlist, err := s.resolver.Playlist(ctx, playlistId)
	if err != nil {
		metrics.PlaylistResolutions.WithLabelValues("failed").Inc()
		s.logger.WarnContext(ctx, "failed to resolve playlist", "playlist_id", playlistId, "error", err)

		return nil, fmt.Errorf("%w: %v", ErrPlaylistUnavailable, err)
	}

	metrics.PlaylistResolutions.WithLabelValues("resolved").Inc()
	s.logger.DebugContext(ctx, "resolved playlist",
		"playlist_id", playlistId,
		"videos", len(playlist.Videos),
	)

	return playlist, nil
}
