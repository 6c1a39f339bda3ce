package whatsapp

import "time"

// Statistics summarizes an emitted message sequence.
type Statistics struct {
	TotalMessages int       `json:"total_messages"`
	UniqueSenders int       `json:"unique_senders"`
	MediaMessages int       `json:"media_messages"`
	TextMessages  int       `json:"text_messages"`
	FirstMessage  time.Time `json:"first_message"`
	LastMessage   time.Time `json:"last_message"`
	Senders       []string  `json:"senders"`
}

// Statistics computes summary counts and the date range for the result.
// All counts are zero for an empty result.
func (r *Result) Statistics() Statistics {
	stats := Statistics{
		TotalMessages: len(r.Messages),
		UniqueSenders: len(r.Senders),
		Senders:       r.Senders,
	}

	for i, msg := range r.Messages {
		if msg.IsMedia {
			stats.MediaMessages++
		}
		if i == 0 || msg.Timestamp.Before(stats.FirstMessage) {
			stats.FirstMessage = msg.Timestamp
		}
		if i == 0 || msg.Timestamp.After(stats.LastMessage) {
			stats.LastMessage = msg.Timestamp
		}
	}
	stats.TextMessages = stats.TotalMessages - stats.MediaMessages

	return stats
}
