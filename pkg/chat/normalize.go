package chat

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type NormalizeOption func(*Conversation)

func WithTitle(title string) NormalizeOption {
	return func(c *Conversation) {
		c.Title = title
	}
}

// Normalize turns adapter output into a canonical Conversation. Adjacent
// messages of identical role are merged into one by concatenating their block
// sequences, empty messages are dropped with a warning, and sequence indexes
// are reassigned densely from 0.
func Normalize(msgs []Message, platform Platform, shareURL string, opts ...NormalizeOption) (*Conversation, error) {
	merged := make([]Message, 0, len(msgs))

	for _, msg := range msgs {
		if msg.Empty() {
			log.Warn().
				Str("platform", string(platform)).
				Str("messageID", msg.PlatformMessageID).
				Msg("dropping empty message")
			continue
		}

		if len(merged) > 0 && merged[len(merged)-1].Role == msg.Role {
			prev := &merged[len(merged)-1]
			blocks := make([]ContentBlock, 0, len(prev.Blocks)+len(msg.Blocks))
			blocks = append(blocks, prev.Blocks...)
			blocks = append(blocks, msg.Blocks...)
			prev.Blocks = blocks
			continue
		}

		merged = append(merged, msg)
	}

	if len(merged) == 0 {
		return nil, &NormalizationError{Detail: "no messages left after merging and dropping"}
	}

	for i := range merged {
		merged[i].SequenceIndex = i
	}

	conv := &Conversation{
		ID:       ConversationIDFromURL(shareURL),
		Platform: platform,
		Messages: merged,
	}
	for _, opt := range opts {
		opt(conv)
	}

	return conv, nil
}

// ConversationIDFromURL derives the conversation id from the trailing path
// segment of the share URL. UUID-shaped segments are kept in their canonical
// lowercase form.
func ConversationIDFromURL(shareURL string) string {
	path := shareURL
	if u, err := url.Parse(shareURL); err == nil && u.Path != "" {
		path = u.Path
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	id := segments[len(segments)-1]
	if id == "" {
		return "conversation"
	}

	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return id
}

// ShortID returns the first 12 characters of a conversation id, used for
// default output filenames.
func ShortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
