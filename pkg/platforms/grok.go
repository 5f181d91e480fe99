package platforms

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-go-golems/prattle/pkg/chat"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// GrokAdapter extracts a conversation from a grok.com share page. Messages are
// message-bubble divs; the role comes from the parent's alignment class,
// items-end for the user and items-start for the assistant.
type GrokAdapter struct{}

func (a *GrokAdapter) Platform() chat.Platform { return chat.PlatformGrok }

func (a *GrokAdapter) Parse(payload []byte) (*Parsed, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, &chat.SchemaMismatchError{Platform: a.Platform(), Detail: "empty payload"}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "parsing grok share page")
	}

	// Media sections are left empty on shared pages when the original
	// conversation contained images or attachments.
	hasHiddenMedia := false
	doc.Find("section").Each(func(_ int, sel *goquery.Selection) {
		if strings.Contains(sel.AttrOr("class", ""), "inline-media-container") &&
			strings.TrimSpace(sel.Text()) == "" {
			hasHiddenMedia = true
		}
	})

	conv := newMarkdownConverter()
	var msgs []chat.Message

	doc.Find("div.message-bubble").Each(func(_ int, sel *goquery.Selection) {
		parent := sel.Parent()
		if parent.Length() == 0 {
			return
		}

		var role chat.Role
		switch {
		case hasClass(parent, "items-end"):
			role = chat.RoleUser
		case hasClass(parent, "items-start"):
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

	if hasHiddenMedia {
		log.Debug().Msg("grok share page hides media, annotating first user message")
		prependAttachmentNote(msgs)
	}

	return &Parsed{Messages: msgs}, nil
}
