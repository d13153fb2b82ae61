package app

import (
	"regexp"
	"strings"
)

var (
	urlPattern  = regexp.MustCompile(`https?://\S+`)
	trackHost   = regexp.MustCompile(`(?i)^https?://(soundcloud\.com|on\.soundcloud\.com)/`)
	imageSuffix = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|webp)$`)
)

func isImageURL(url string) bool {
	return imageSuffix.MatchString(url) ||
		strings.Contains(url, "image=") ||
		strings.Contains(url, "img=") ||
		strings.Contains(url, "photo=")
}

// ExtractAttachments scans a message body for URL-shaped substrings and
// returns the first allow-listed track URL and the first image-looking URL.
// The two slots fill independently; both come back empty when the text has
// no qualifying links.
func ExtractAttachments(text string) (trackURL, imageURL string) {
	for _, url := range urlPattern.FindAllString(text, -1) {
		if trackURL == "" && trackHost.MatchString(url) {
			trackURL = url
		}
		if imageURL == "" && isImageURL(url) {
			imageURL = url
		}
	}
	return trackURL, imageURL
}
