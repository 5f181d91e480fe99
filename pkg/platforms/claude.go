package platforms

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-go-golems/prattle/pkg/chat"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ClaudeAdapter extracts a conversation from a claude.ai share page. The page
// is list-shaped: user messages live in divs carrying the !font-user-message
// class, assistant messages in divs whose literal class list contains
// standard-markdown (parent containers only mention it inside CSS selectors,
// which is why font-claude-response divs are excluded).
type ClaudeAdapter struct{}

func (a *ClaudeAdapter) Platform() chat.Platform { return chat.PlatformClaude }

func (a *ClaudeAdapter) Parse(payload []byte) (*Parsed, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, &chat.SchemaMismatchError{Platform: a.Platform(), Detail: "empty payload"}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "parsing claude share page")
	}

	hasHiddenFiles := strings.Contains(strings.ToLower(doc.Text()), "files hidden")

	conv := newMarkdownConverter()
	var msgs []chat.Message

	doc.Find("div").Each(func(_ int, sel *goquery.Selection) {
		var role chat.Role
		switch {
		case hasClass(sel, "!font-user-message"):
			role = chat.RoleUser
		case hasClass(sel, "standard-markdown") && !hasClass(sel, "font-claude-response"):
			role = chat.RoleAssistant
		default:
			return
		}

		blocks := selectionToBlocks(conv, sel)
		if len(blocks) == 0 {
			return
		}
		msgs = append(msgs, chat.Message{
			Role:          role,
			Blocks:        blocks,
			SequenceIndex: len(msgs),
		})
	})

	if len(msgs) == 0 {
		return nil, &chat.EmptyConversationError{Platform: a.Platform()}
	}

	if hasHiddenFiles {
		log.Debug().Msg("claude share page hides attachments, annotating first user message")
		prependAttachmentNote(msgs)
	}

	return &Parsed{Messages: msgs}, nil
}
