package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/go-go-golems/prattle/pkg/chat"
	"github.com/pkg/errors"
)

// TerminalRenderer renders the conversation as a styled transcript for the
// terminal.
type TerminalRenderer struct {
	Style string
}

func NewTerminalRenderer(style string) *TerminalRenderer {
	if style == "" {
		style = "dark"
	}
	return &TerminalRenderer{Style: style}
}

func (r *TerminalRenderer) Render(conv *chat.Conversation, turns []chat.Turn) (string, error) {
	var sb strings.Builder

	title := conv.Title
	if title == "" {
		title = conv.Platform.DisplayName() + " Conversation"
	}
	sb.WriteString("# " + title + "\n\n")

	for _, t := range turns {
		sb.WriteString(fmt.Sprintf("## Turn %d\n\n", t.Index+1))
		for _, sys := range t.System {
			sb.WriteString("**System:**\n\n" + sys.Text() + "\n\n")
		}
		if t.User != nil {
			sb.WriteString("**User:**\n\n" + t.User.Text() + "\n\n")
		}
		if t.Assistant != nil {
			sb.WriteString("**Assistant:**\n\n" + t.Assistant.Text() + "\n\n")
		}
	}

	styled, err := glamour.Render(sb.String(), r.Style)
	if err != nil {
		return "", errors.Wrap(err, "styling transcript")
	}
	return styled, nil
}
