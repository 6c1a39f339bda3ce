package whatsapp

import "strings"

// invisibleRunes are the Unicode directional and formatting controls that
// WhatsApp exports sprinkle through sender names and message bodies. They
// break regex matching and string equality, so they are stripped before
// anything else looks at a line.
var invisibleRunes = map[rune]bool{
	'​': true, // zero-width space
	'‌': true, // zero-width non-joiner
	'‍': true, // zero-width joiner
	'‎': true, // left-to-right mark
	'‏': true, // right-to-left mark
	'؜': true, // arabic letter mark
	'‪': true, // left-to-right embedding
	'‫': true, // right-to-left embedding
	'‬': true, // pop directional formatting
	'‭': true, // left-to-right override
	'‮': true, // right-to-left override
	'⁦': true, // left-to-right isolate
	'⁧': true, // right-to-left isolate
	'⁨': true, // first strong isolate
	'⁩': true, // pop directional isolate
	'\uFEFF': true, // byte order mark / zero-width no-break space
}

// normalizeText removes invisible directional/formatting marks anywhere in
// the string and trims surrounding whitespace.
func normalizeText(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if invisibleRunes[r] {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}
