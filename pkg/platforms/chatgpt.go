package platforms

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-go-golems/prattle/pkg/chat"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// nextData mirrors the __NEXT_DATA__ script payload embedded in a chatgpt.com
// share page.
type nextData struct {
	Props struct {
		PageProps struct {
			SharedConversationID string `json:"sharedConversationId"`
			ServerResponse       struct {
				Data serverResponseData `json:"data"`
			} `json:"serverResponse"`
		} `json:"pageProps"`
	} `json:"props"`
}

type serverResponseData struct {
	Title              string              `json:"title"`
	CurrentNode        string              `json:"current_node"`
	Mapping            map[string]treeNode `json:"mapping"`
	LinearConversation []treeNode          `json:"linear_conversation"`
}

// treeNode is one node of the branching message graph. It only lives inside
// the adapter; once the current path is resolved, the node graph is discarded.
type treeNode struct {
	ID       string      `json:"id"`
	Parent   string      `json:"parent"`
	Children []string    `json:"children"`
	Message  *gptMessage `json:"message"`
}

type gptMessage struct {
	ID     string `json:"id"`
	Author struct {
		Role string `json:"role"`
	} `json:"author"`
	Content struct {
		ContentType string   `json:"content_type"`
		Parts       []string `json:"parts"`
	} `json:"content"`
}

// ChatGPTAdapter extracts a conversation from a chatgpt.com share page. The
// payload encodes a tree of message nodes linked by parent/children ids, where
// side branches are abandoned edits; only the current root-to-leaf path is
// kept. The adapter accepts either the full share-page HTML (the JSON is then
// pulled from the __NEXT_DATA__ script tag) or the raw JSON itself, and falls
// back to scraping the rendered message divs when the script tag is absent.
type ChatGPTAdapter struct{}

func (a *ChatGPTAdapter) Platform() chat.Platform { return chat.PlatformChatGPT }

func (a *ChatGPTAdapter) Parse(payload []byte) (*Parsed, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, &chat.SchemaMismatchError{Platform: a.Platform(), Detail: "empty payload"}
	}

	if trimmed[0] == '{' {
		return a.parseNextData(trimmed)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "parsing chatgpt share page")
	}

	script := doc.Find("script#__NEXT_DATA__").Text()
	if strings.TrimSpace(script) != "" {
		return a.parseNextData([]byte(script))
	}

	log.Debug().Msg("no __NEXT_DATA__ script found, scraping rendered messages")
	return a.parseRenderedDOM(doc)
}

func (a *ChatGPTAdapter) parseNextData(raw []byte) (*Parsed, error) {
	var data nextData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &chat.SchemaMismatchError{Platform: a.Platform(), Detail: err.Error()}
	}

	srv := data.Props.PageProps.ServerResponse.Data

	var path []treeNode
	switch {
	case len(srv.Mapping) > 0:
		resolved, err := resolveCurrentPath(srv.Mapping, srv.CurrentNode)
		if err != nil {
			return nil, err
		}
		path = resolved
	case len(srv.LinearConversation) > 0:
		path = srv.LinearConversation
	default:
		return nil, &chat.SchemaMismatchError{
			Platform: a.Platform(),
			Detail:   "payload has neither mapping nor linear_conversation",
		}
	}

	var msgs []chat.Message
	for _, node := range path {
		if node.Message == nil {
			continue
		}
		role := chat.NormalizeRole(node.Message.Author.Role)
		if role != chat.RoleUser && role != chat.RoleAssistant && role != chat.RoleSystem {
			continue
		}

		text := strings.TrimSpace(strings.Join(node.Message.Content.Parts, "\n"))
		if text == "" {
			continue
		}

		msgs = append(msgs, chat.Message{
			Role:              role,
			Blocks:            chat.SplitBlocks(text),
			SequenceIndex:     len(msgs),
			PlatformMessageID: node.Message.ID,
		})
	}

	if len(msgs) == 0 {
		return nil, &chat.EmptyConversationError{Platform: a.Platform()}
	}

	return &Parsed{Messages: msgs, Title: srv.Title}, nil
}

// parseRenderedDOM scrapes the message divs of an already rendered page, the
// same shape the original share page presents to a browser.
func (a *ChatGPTAdapter) parseRenderedDOM(doc *goquery.Document) (*Parsed, error) {
	conv := newMarkdownConverter()
	var msgs []chat.Message

	doc.Find("[data-message-author-role]").Each(func(_ int, sel *goquery.Selection) {
		role := chat.NormalizeRole(sel.AttrOr("data-message-author-role", ""))
		if role != chat.RoleUser && role != chat.RoleAssistant {
			return
		}

		content := sel.Find("div.prose").First()
		if content.Length() == 0 {
			content = sel
		}

		blocks := selectionToBlocks(conv, content)
		if len(blocks) == 0 {
			return
		}
		msgs = append(msgs, chat.Message{
			Role:              role,
			Blocks:            blocks,
			SequenceIndex:     len(msgs),
			PlatformMessageID: sel.AttrOr("data-message-id", ""),
		})
	})

	if len(msgs) == 0 {
		return nil, &chat.EmptyConversationError{Platform: a.Platform()}
	}

	return &Parsed{Messages: msgs}, nil
}
