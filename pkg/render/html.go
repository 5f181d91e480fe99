package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"strconv"
	"strings"

	"github.com/Masterminds/sprig"
	"github.com/go-go-golems/prattle/pkg/chat"
	"github.com/pkg/errors"
)

//go:embed templates/page.tmpl.html
var templatesFS embed.FS

const maxTurnOptions = 10

// HTMLRenderer produces the self-contained human view: a navigation index,
// the formatted conversation body, and the XML export payloads embedded next
// to it so a client-side toggle can switch between the two views. Both views
// are derived from the same turn sequence.
type HTMLRenderer struct {
	Formatter Formatter
	tmpl      *template.Template
}

func NewHTMLRenderer(formatter Formatter) (*HTMLRenderer, error) {
	tmpl, err := template.New("page.tmpl.html").
		Funcs(sprig.HtmlFuncMap()).
		ParseFS(templatesFS, "templates/page.tmpl.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing page template")
	}
	return &HTMLRenderer{Formatter: formatter, tmpl: tmpl}, nil
}

type messageView struct {
	Anchor    string
	RoleLabel string
	RoleClass string
	Number    int
	Content   template.HTML
}

type navItem struct {
	Anchor string
	Title  string
	Label  string
}

type turnOption struct {
	N            int
	MessageCount int
}

type pageData struct {
	Title          string
	PlatformName   string
	SourceURL      string
	MessageCount   int
	UserCount      int
	AssistantCount int
	TurnCount      int
	HasAttachments bool
	Nav            []navItem
	Messages       []messageView
	TurnOptions    []turnOption
	XMLPayloads    template.JS
	DefaultXML     string
}

func (r *HTMLRenderer) Render(conv *chat.Conversation, turns []chat.Turn, sourceURL string) (string, error) {
	users, assistants := chat.CountMessages(turns)

	data := pageData{
		Title:          conv.Title,
		PlatformName:   conv.Platform.DisplayName(),
		SourceURL:      sourceURL,
		MessageCount:   users + assistants,
		UserCount:      users,
		AssistantCount: assistants,
		TurnCount:      len(turns),
	}
	if data.Title == "" {
		data.Title = conv.Platform.DisplayName() + " Conversation"
	}

	number := 0
	appendMessage := func(msg *chat.Message, label, class string) error {
		if msg == nil {
			return nil
		}
		number++
		formatted, err := r.Formatter.Format(msg.Text())
		if err != nil {
			return err
		}
		data.Messages = append(data.Messages, messageView{
			Anchor:    "msg-" + strconv.Itoa(number),
			RoleLabel: label,
			RoleClass: class,
			Number:    number,
			Content:   template.HTML(formatted), //nolint:gosec // formatter output is the trusted body
		})

		lower := strings.ToLower(msg.Text())
		if strings.Contains(lower, "attachment hidden") || strings.Contains(lower, "files hidden") {
			data.HasAttachments = true
		}
		return nil
	}

	for _, t := range turns {
		data.Nav = append(data.Nav, navItem{
			Anchor: "turn-" + strconv.Itoa(t.Index),
			Title:  "Turn " + strconv.Itoa(t.Index+1),
			Label:  turnLabel(t),
		})

		for i := range t.System {
			if err := appendMessage(&t.System[i], "⚙️ System", "system"); err != nil {
				return "", err
			}
		}
		if err := appendMessage(t.User, "👤 User", "user"); err != nil {
			return "", err
		}
		if err := appendMessage(t.Assistant, "🤖 Assistant", "assistant"); err != nil {
			return "", err
		}
	}

	// The turn anchors point at the first message of each turn; rewrite them
	// now that message numbering is known.
	r.anchorTurns(turns, data.Nav)

	payloads := map[string]string{}
	allXML, err := ExportXML(conv, turns)
	if err != nil {
		return "", err
	}
	payloads["all"] = allXML
	data.DefaultXML = allXML

	for n := 1; n <= min(len(turns), maxTurnOptions); n++ {
		sliced, err := chat.SliceLastTurns(turns, n)
		if err != nil {
			return "", err
		}
		xmlForN, err := ExportXML(conv, sliced)
		if err != nil {
			return "", err
		}
		payloads[strconv.Itoa(n)] = xmlForN

		u, a := chat.CountMessages(sliced)
		data.TurnOptions = append(data.TurnOptions, turnOption{N: n, MessageCount: u + a})
	}

	rawPayloads, err := json.Marshal(payloads)
	if err != nil {
		return "", errors.Wrap(err, "encoding XML payloads")
	}
	data.XMLPayloads = template.JS(rawPayloads) //nolint:gosec // JSON-encoded string map

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "rendering page template")
	}
	return buf.String(), nil
}

// anchorTurns makes each nav entry point at its turn's first rendered message.
func (r *HTMLRenderer) anchorTurns(turns []chat.Turn, nav []navItem) {
	number := 0
	for i, t := range turns {
		first := number + 1
		number += len(t.System)
		if t.User != nil {
			number++
		}
		if t.Assistant != nil {
			number++
		}
		nav[i].Anchor = "msg-" + strconv.Itoa(first)
	}
}

// turnLabel derives the short nav label from the turn's user message, falling
// back to the assistant side for assistant-only turns.
func turnLabel(t chat.Turn) string {
	msg := t.User
	if msg == nil {
		msg = t.Assistant
	}
	if msg == nil {
		return ""
	}
	return strings.Join(strings.Fields(msg.Text()), " ")
}
