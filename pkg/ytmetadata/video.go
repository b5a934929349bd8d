package ytmetadata

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// uploaderPatterns are the known embeddings of the channel name in a watch
// page, in decreasing order of confidence. First match wins.
var uploaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"channelName":"([^"]+)"`),
	regexp.MustCompile(`"author":"([^"]+)"`),
	regexp.MustCompile(`"uploader":"([^"]+)"`),
	regexp.MustCompile(`"channel":"([^"]+)"`),
	regexp.MustCompile(`"ownerChannelName":"([^"]+)"`),
	regexp.MustCompile(`"authorName":"([^"]+)"`),
	regexp.MustCompile(`<link itemprop="name" content="([^"]+)"`),
	regexp.MustCompile(`<meta property="og:site_name" content="([^"]+)"`),
	regexp.MustCompile(`(?s)"name":"([^"]+)".*?"@type":"Person"`),
	regexp.MustCompile(`(?s)"name":"([^"]+)".*?"@type":"Organization"`),
}

var titlePattern = regexp.MustCompile(`(?s)<title>(.*?)</title>`)

// Video resolves a single video id into metadata. It never fails outward:
// any fetch or extraction failure degrades the affected fields to their
// placeholder values.
func (c *Client) Video(ctx context.Context, videoId string) VideoMetadata {
	metadata := FallbackVideo(videoId)

	body, err := c.fetch(ctx, fmt.Sprintf(c.watchURL, videoId), c.videoTimeout)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to fetch video page", "video_id", videoId, "error", err)
		return metadata
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		doc = nil
	}

	if title, ok := extractTitle(body, doc); ok {
		metadata.Title = title
	}

	if uploader, ok := extractUploader(body, doc); ok {
		metadata.Uploader = uploader
	} else {
		c.logger.DebugContext(ctx, "uploader not found on video page", "video_id", videoId)
	}

	return metadata
}

func extractTitle(body []byte, doc *html.Node) (string, bool) {
	title := ""
	if doc != nil {
		title = findTitle(doc)
	}

	if title == "" {
		if m := titlePattern.FindSubmatch(body); m != nil {
			title = string(m[1])
		}
	}

	title = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(title), titleSuffix))
	if title == "" {
		return "", false
	}

	return title, true
}

func extractUploader(body []byte, doc *html.Node) (string, bool) {
	for _, pattern := range uploaderPatterns {
		if m := pattern.FindSubmatch(body); m != nil {
			return string(m[1]), true
		}
	}

	// secondary heuristic: the channel hyperlink in the page structure
	if doc != nil {
		if name := findLinkItemPropName(doc); name != "" {
			return name, true
		}
		if name := findChannelAnchorText(doc); name != "" {
			return name, true
		}
	}

	return "", false
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return n.FirstChild.Data
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

func findLinkItemPropName(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "link" {
		isName := false
		content := ""
		for _, attr := range n.Attr {
			switch attr.Key {
			case "itemprop":
				isName = attr.Val == "name"
			case "content":
				content = attr.Val
			}
		}
		if isName {
			return content
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if name := findLinkItemPropName(c); name != "" {
			return name
		}
	}
	return ""
}

func findChannelAnchorText(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key == "href" && strings.HasPrefix(attr.Val, "/channel/") {
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					return text
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if name := findChannelAnchorText(c); name != "" {
			return name
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
