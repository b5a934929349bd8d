// Package ytmetadata resolves YouTube video and playlist ids into display
// metadata by scraping the public pages. Everything here is best-effort
// against an unversioned document format: extraction runs an ordered chain
// of strategies and degrades to placeholder values instead of failing.
package ytmetadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

var ErrNoVideosFound = errors.New("no videos found in playlist")

const (
	watchURLFormat     = "https://www.youtube.com/watch?v=%s"
	playlistURLFormat  = "https://www.youtube.com/playlist?list=%s"
	thumbnailURLFormat = "https://img.youtube.com/vi/%s/mqdefault.jpg"

	unknownChannel = "Unknown Channel"
	titleSuffix    = " - YouTube"

	defaultVideoTimeout    = 5 * time.Second
	defaultPlaylistTimeout = 10 * time.Second
	defaultPlaylistLimit   = 50
)

type VideoMetadata struct {
	VideoId      string `json:"video_id"`
	Title        string `json:"title"`
	Uploader     string `json:"uploader"`
	ThumbnailURL string `json:"thumbnail"`
}

type PlaylistMetadata struct {
	PlaylistId string          `json:"playlist_id"`
	Title      string          `json:"title"`
	Videos     []VideoMetadata `json:"videos"`
}

type Config struct {
	VideoTimeout    time.Duration
	PlaylistTimeout time.Duration
	PlaylistLimit   int
}

type Client struct {
	httpClient      *http.Client
	videoTimeout    time.Duration
	playlistTimeout time.Duration
	playlistLimit   int
	logger          *slog.Logger

	// overridden in tests
	watchURL    string
	playlistURL string
}

func NewClient(cfg *Config, logger *slog.Logger) *Client {
	c := Client{
		httpClient:      &http.Client{},
		videoTimeout:    cfg.VideoTimeout,
		playlistTimeout: cfg.PlaylistTimeout,
		playlistLimit:   cfg.PlaylistLimit,
		logger:          logger,
		watchURL:        watchURLFormat,
		playlistURL:     playlistURLFormat,
	}

	if c.videoTimeout <= 0 {
		c.videoTimeout = defaultVideoTimeout
	}
	if c.playlistTimeout <= 0 {
		c.playlistTimeout = defaultPlaylistTimeout
	}
	if c.playlistLimit <= 0 {
		c.playlistLimit = defaultPlaylistLimit
	}

	return &c
}

// ThumbnailURL derives the thumbnail location from the video id alone, so a
// record has a usable thumbnail no matter how extraction went.
func ThumbnailURL(videoId string) string {
	return fmt.Sprintf(thumbnailURLFormat, videoId)
}

// FallbackVideo is the fully degraded record for a video id.
func FallbackVideo(videoId string) VideoMetadata {
	return VideoMetadata{
		VideoId:      videoId,
		Title:        "Video " + videoId,
		Uploader:     unknownChannel,
		ThumbnailURL: ThumbnailURL(videoId),
	}
}

func (c *Client) fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return body, nil
}
