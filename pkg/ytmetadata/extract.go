package ytmetadata

import "regexp"

var videoIdPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

var playlistIdPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/playlist\?list=([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*&list=([^&\n?#]+)`),
}

// ExtractVideoId pulls a video id out of any of the known watch, short-link
// and embed URL shapes. The first matching pattern wins.
func ExtractVideoId(url string) (string, bool) {
	return matchFirst(videoIdPatterns, url)
}

// ExtractPlaylistId pulls a playlist id out of a playlist URL or a watch URL
// carrying a list parameter.
func ExtractPlaylistId(url string) (string, bool) {
	return matchFirst(playlistIdPatterns, url)
}

func matchFirst(patterns []*regexp.Regexp, s string) (string, bool) {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(s); m != nil {
			return m[1], true
		}
	}

	return "", false
}
