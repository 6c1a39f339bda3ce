package whatsapp

import (
	"regexp"
	"strings"
)

// systemNoticePatterns match messages inserted by WhatsApp itself rather
// than typed by a participant. Matched messages are suppressed entirely.
var systemNoticePatterns = []string{
	`消息和通话已进行端到端加密`, // Chinese encryption notice
	`Messages and calls are end-to-end encrypted`,
	`joined using this group`,
	`left`,
	`changed the subject`,
	`changed this group`,
	`You created group`,
	`security code changed`,
	`added`,
	`removed`,
}

// mediaPatterns match placeholder bodies the export writes in place of
// actual media. The message is kept but flagged, since the media itself is
// not present in the transcript.
var mediaPatterns = []string{
	`<Media omitted>`,
	`<attached:.*?>`,
	`image omitted`,
	`video omitted`,
	`audio omitted`,
	`document omitted`,
	`sticker omitted`,
	`GIF omitted`,
}

var mediaRegexp = regexp.MustCompile(`(?i)` + strings.Join(mediaPatterns, `|`))

// compileNoticeRegexp joins the built-in notice patterns with any extra
// patterns from configuration into a single case-insensitive matcher.
func compileNoticeRegexp(extra []string) (*regexp.Regexp, error) {
	patterns := make([]string, 0, len(systemNoticePatterns)+len(extra))
	patterns = append(patterns, systemNoticePatterns...)
	patterns = append(patterns, extra...)
	return regexp.Compile(`(?i)` + strings.Join(patterns, `|`))
}

// detectMediaType returns a coarse media classification for a flagged body.
func detectMediaType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "image") || strings.Contains(lower, "photo"):
		return "image"
	case strings.Contains(lower, "video"):
		return "video"
	case strings.Contains(lower, "audio") || strings.Contains(lower, "voice"):
		return "audio"
	case strings.Contains(lower, "document") || strings.Contains(lower, "pdf"):
		return "document"
	case strings.Contains(lower, "sticker"):
		return "sticker"
	case strings.Contains(lower, "gif"):
		return "gif"
	default:
		return "media"
	}
}
