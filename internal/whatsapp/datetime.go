package whatsapp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned when a header's date/time tokens do not
// resolve to a timestamp. Callers treat it as a per-line failure, never a
// fatal one.
var ErrInvalidDateFormat = errors.New("invalid date format")

// Date layouts tried in order. Year-first must come before day-first so
// "2022/7/21" is not misread as a day token.
var dateLayouts = []string{
	"2006/1/2", // YYYY/M/D
	"2/1/2006", // DD/MM/YYYY
	"2/1/06",   // DD/MM/YY
	"1/2/2006", // MM/DD/YYYY
	"1/2/06",   // MM/DD/YY
}

var timeLayouts = []string{
	"15:04:05",   // 24-hour with seconds
	"15:04",      // 24-hour
	"3:04:05 PM", // 12-hour with seconds
	"3:04 PM",    // 12-hour
}

// resolveTimestamp converts captured date and time tokens into an absolute
// timestamp in local wall-clock time. The 12-hour layouts follow the usual
// convention: 12 AM is hour 0, 12 PM is hour 12.
func resolveTimestamp(dateStr, timeStr string) (time.Time, error) {
	date := strings.ReplaceAll(normalizeText(dateStr), ",", "")
	// Collapse interior whitespace and uppercase the meridiem so the
	// fixed layouts match "8:00 am" and "8:00  AM" alike.
	clock := strings.ToUpper(strings.Join(strings.Fields(normalizeText(timeStr)), " "))

	for _, dl := range dateLayouts {
		for _, tl := range timeLayouts {
			ts, err := time.ParseInLocation(dl+" "+tl, date+" "+clock, time.Local)
			if err == nil {
				return ts, nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidDateFormat, dateStr, timeStr)
}
