package whatsapp

import "sort"

// senderDirectory collects distinct sender names from an emitted sequence
// and returns them sorted lexicographically. The order is alphabetical by
// contract, not chronological: downstream code treats the first directory
// entry as the primary participant, so this ordering must stay stable.
func senderDirectory(messages []Message) []string {
	seen := make(map[string]bool)
	senders := []string{}
	for _, msg := range messages {
		if !seen[msg.Sender] {
			seen[msg.Sender] = true
			senders = append(senders, msg.Sender)
		}
	}
	sort.Strings(senders)
	return senders
}

// PrimarySender returns the first entry of the sender directory, or ""
// when the result holds no messages.
func (r *Result) PrimarySender() string {
	if len(r.Senders) == 0 {
		return ""
	}
	return r.Senders[0]
}
