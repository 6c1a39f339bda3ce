// Package whatsapp parses WhatsApp chat exports into structured messages.
//
// The export is a plain-text transcript where each message starts with a
// header line ("[date, time] sender: text") and may continue over any
// number of following lines. Parsing is a single synchronous pass: a
// two-state assembler walks the lines, opening a message on each header
// match and appending continuation lines to the open message.
package whatsapp

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
)

// Message is one parsed utterance from the transcript.
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	IsMedia   bool      `json:"is_media"`
	MediaType string    `json:"media_type,omitempty"`
}

// Stats counts what happened during a parse pass.
type Stats struct {
	LinesProcessed    int `json:"lines_processed"`
	HeaderMatches     int `json:"header_matches"`
	NoticesFiltered   int `json:"notices_filtered"`
	TimestampFailures int `json:"timestamp_failures"`
}

// Result is the output of one parse pass. Messages keep transcript order;
// Senders is the alphabetical directory of distinct sender names.
type Result struct {
	Messages []Message `json:"messages"`
	Senders  []string  `json:"senders"`
	Stats    Stats     `json:"stats"`
}

// ParserConfig configures a Parser.
type ParserConfig struct {
	// ExtraNoticePatterns are appended to the built-in system-notice list.
	ExtraNoticePatterns []string
	// Sink receives diagnostic messages. Defaults to log.Printf.
	Sink func(format string, args ...interface{})
}

// DefaultParserConfig returns sensible defaults
func DefaultParserConfig() ParserConfig {
	return ParserConfig{}
}

// Parser converts a raw transcript into a Result. A Parser is stateless
// across calls; each Parse operates on its own local state, so a single
// Parser is safe for concurrent use.
type Parser struct {
	notices *regexp.Regexp
	sink    func(format string, args ...interface{})
}

// NewParser creates a Parser from config. It fails only when an extra
// notice pattern is not a valid regular expression.
func NewParser(cfg ParserConfig) (*Parser, error) {
	notices, err := compileNoticeRegexp(cfg.ExtraNoticePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to compile notice patterns: %w", err)
	}

	sink := cfg.Sink
	if sink == nil {
		sink = log.Printf
	}

	return &Parser{notices: notices, sink: sink}, nil
}

// assembler states. The machine is either between messages or holding one
// open message that continuation lines attach to.
type assemblerState int

const (
	stateIdle assemblerState = iota
	stateBuilding
)

// Parse runs one pass over the transcript. Malformed lines never abort the
// pass: a header whose timestamp fails to resolve is dropped as a trigger
// and parsing continues, so the result is always the best-effort message
// sequence. An empty or whitespace-only transcript yields an empty Result.
func (p *Parser) Parse(transcript string) *Result {
	result := &Result{Messages: []Message{}, Senders: []string{}}

	state := stateIdle
	var current Message

	for _, rawLine := range strings.Split(transcript, "\n") {
		result.Stats.LinesProcessed++

		line := normalizeText(rawLine)
		if line == "" {
			continue
		}

		capture, ok := matchHeader(line)
		if !ok {
			// Continuation line: attaches to the open message, or is
			// discarded when no message is open.
			if state == stateBuilding {
				current.Text += "\n" + line
			}
			continue
		}

		result.Stats.HeaderMatches++

		ts, err := resolveTimestamp(capture.Date, capture.Time)
		if err != nil {
			result.Stats.TimestampFailures++
			p.sink("skipping header line: %v", err)
			continue
		}

		if state == stateBuilding {
			p.flush(&current, result)
		}

		current = newMessage(ts, capture)
		state = stateBuilding
	}

	if state == stateBuilding {
		p.flush(&current, result)
	}

	result.Senders = senderDirectory(result.Messages)
	return result
}

// newMessage builds the open message from a matched header. Sender and text
// are stored normalized; if normalization empties the text the raw capture
// is kept instead so an emitted message never has an empty body.
func newMessage(ts time.Time, capture headerCapture) Message {
	text := normalizeText(capture.Text)
	if text == "" {
		text = capture.Text
	}
	return Message{
		Timestamp: ts,
		Sender:    normalizeText(capture.Sender),
		Text:      text,
	}
}

// flush closes the open message, suppressing system notices and flagging
// media placeholders, then appends it to the result.
func (p *Parser) flush(msg *Message, result *Result) {
	if p.notices.MatchString(msg.Text) {
		result.Stats.NoticesFiltered++
		p.sink("filtered system notice from %s", msg.Sender)
		return
	}

	if mediaRegexp.MatchString(msg.Text) {
		msg.IsMedia = true
		msg.MediaType = detectMediaType(msg.Text)
	}

	result.Messages = append(result.Messages, *msg)
}

var defaultParser = func() *Parser {
	p, err := NewParser(DefaultParserConfig())
	if err != nil {
		// Built-in patterns always compile.
		panic(err)
	}
	return p
}()

// Parse is a convenience wrapper using the default config.
func Parse(transcript string) *Result {
	return defaultParser.Parse(transcript)
}
