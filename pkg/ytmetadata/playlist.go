package ytmetadata

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"golang.org/x/net/html"

	"github.com/playlistrooms/server/pkg/jsontree"
)

// initialDataPatterns locate the embedded ytInitialData blob. The page has
// carried it under several assignment forms over time.
var initialDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)var ytInitialData = ({.*?});`),
	regexp.MustCompile(`(?s)window\["ytInitialData"\] = ({.*?});`),
	regexp.MustCompile(`(?s)ytInitialData\s*=\s*({.*?});`),
}

// playlistVideoIdPatterns are the regex fallbacks for when the structured
// blob is missing or yields nothing, in decreasing order of specificity.
var playlistVideoIdPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)"videoId":"([^"]{11})".*?"playlistPanelVideoRenderer"`),
	regexp.MustCompile(`(?s)playlistPanelVideoRenderer.*?"videoId":"([^"]{11})"`),
	regexp.MustCompile(`"videoId":"([^"]{11})"`),
	regexp.MustCompile(`data-video-id="([^"]{11})"`),
	regexp.MustCompile(`href="/watch\?v=([^"]{11})"`),
	regexp.MustCompile(`watch\?v=([^"]{11})`),
}

// Playlist resolves a playlist id into its metadata and video list, in page
// order, deduplicated and capped at the configured limit. It returns
// ErrNoVideosFound when no strategy extracts a single video id. Individual
// video resolution failures degrade that entry, never the whole playlist.
func (c *Client) Playlist(ctx context.Context, playlistId string) (*PlaylistMetadata, error) {
	body, err := c.fetch(ctx, fmt.Sprintf(c.playlistURL, playlistId), c.playlistTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist page: %w", err)
	}

	title := "Playlist " + playlistId
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		doc = nil
	}
	if t, ok := extractTitle(body, doc); ok {
		title = t
	}

	videoIds := c.extractPlaylistVideoIds(ctx, body)
	if len(videoIds) == 0 {
		return nil, ErrNoVideosFound
	}

	if len(videoIds) > c.playlistLimit {
		videoIds = videoIds[:c.playlistLimit]
	}

	videos := make([]VideoMetadata, 0, len(videoIds))
	for _, videoId := range videoIds {
		videos = append(videos, c.Video(ctx, videoId))
	}

	return &PlaylistMetadata{
		PlaylistId: playlistId,
		Title:      title,
		Videos:     videos,
	}, nil
}

func (c *Client) extractPlaylistVideoIds(ctx context.Context, body []byte) []string {
	seen := make(map[string]struct{})
	var videoIds []string

	add := func(videoId string) {
		if _, dup := seen[videoId]; dup {
			return
		}
		seen[videoId] = struct{}{}
		videoIds = append(videoIds, videoId)
	}

	for _, pattern := range initialDataPatterns {
		m := pattern.FindSubmatch(body)
		if m == nil {
			continue
		}

		tree, err := jsontree.Parse(m[1])
		if err != nil {
			c.logger.WarnContext(ctx, "failed to parse initial data blob", "error", err)
			continue
		}

		jsontree.Walk(tree, func(key string, val jsontree.Value) bool {
			if key == "playlistPanelVideoRenderer" && val.Kind == jsontree.KindObject {
				if videoId, ok := val.Get("videoId"); ok && videoId.Kind == jsontree.KindString {
					add(videoId.String)
				}
			}
			return true
		})

		if len(videoIds) > 0 {
			c.logger.DebugContext(ctx, "extracted videos from initial data", "count", len(videoIds))
			break
		}
	}

	if len(videoIds) == 0 {
		c.logger.DebugContext(ctx, "falling back to regex extraction")
		for _, pattern := range playlistVideoIdPatterns {
			for _, m := range pattern.FindAllSubmatch(body, -1) {
				add(string(m[1]))
			}
		}
	}

	return videoIds
}
