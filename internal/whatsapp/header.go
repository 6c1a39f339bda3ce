package whatsapp

import "regexp"

// headerCapture holds the four fields of a matched header line.
type headerCapture struct {
	Date   string
	Time   string
	Sender string
	Text   string
}

// headerPatterns recognize the line that opens a new message. WhatsApp emits
// different header shapes depending on the device region, so matching is a
// dispatch chain: patterns are tried in order and the first match wins.
var headerPatterns = []*regexp.Regexp{
	// [DD/MM/YYYY, H:MM:SS AM] Sender: text (bracketed 12-hour).
	// Some exports put a narrow no-break space before the meridiem, which
	// \s does not cover.
	regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{4})\s*,\s*(\d{1,2}:\d{2}:\d{2}[\s\x{00A0}\x{202F}]*(?i:[AP]M))\]\s*([^:]+):\s*(.+)`),
	// [YYYY/M/D HH:MM:SS] Sender: text (bracketed year-first 24-hour)
	regexp.MustCompile(`^\[(\d{4}/\d{1,2}/\d{1,2})\s+(\d{1,2}:\d{2}:\d{2})\]\s*([^:]+):\s*(.+)`),
	// [DD/MM/YY(YY), HH:MM(:SS)( AM)] Sender: text (bracketed, lenient)
	regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2,4}),\s*(\d{1,2}:\d{2}(?::\d{2})?(?:[\s\x{00A0}\x{202F}]*(?i:[AP]M))?)\]\s*([^:]+):\s*(.+)`),
	// DD/MM/YY(YY), HH:MM(:SS)( AM) - Sender: text (unbracketed dash)
	regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}),\s*(\d{1,2}:\d{2}(?::\d{2})?(?:[\s\x{00A0}\x{202F}]*(?i:[AP]M))?)\s*-\s*([^:]+):\s*(.+)`),
	// YYYY/M/D, HH:MM(:SS) - Sender: text (unbracketed year-first)
	regexp.MustCompile(`^(\d{4}/\d{1,2}/\d{1,2}),\s*(\d{1,2}:\d{2}(?::\d{2})?)\s*-\s*([^:]+):\s*(.+)`),
}

// matchHeader tests a normalized line against the header grammar chain.
// Returns the captured fields and true on match, or false for continuation
// and junk lines.
func matchHeader(line string) (headerCapture, bool) {
	for _, pattern := range headerPatterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return headerCapture{
			Date:   m[1],
			Time:   m[2],
			Sender: m[3],
			Text:   m[4],
		}, true
	}
	return headerCapture{}, false
}
