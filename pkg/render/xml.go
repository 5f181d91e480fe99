package render

import (
	"encoding/xml"

	"github.com/go-go-golems/prattle/pkg/chat"
	"github.com/pkg/errors"
)

// The export grammar: a conversation element wrapping ordered turn elements,
// each holding at most one user and one assistant element whose character data
// is the message's literal markdown form. System metadata is omitted, the
// export is meant for bare context reuse.

type xmlConversation struct {
	XMLName  xml.Name  `xml:"conversation"`
	ID       string    `xml:"id,attr,omitempty"`
	Platform string    `xml:"platform,attr,omitempty"`
	Turns    []xmlTurn `xml:"turn"`
}

type xmlTurn struct {
	Index     int         `xml:"index,attr"`
	User      *xmlMessage `xml:"user"`
	Assistant *xmlMessage `xml:"assistant"`
}

type xmlMessage struct {
	Text string `xml:",chardata"`
}

// ExportXML serializes a turn sequence to the structured-text export form.
// All content is escaped for XML's reserved characters and can be parsed back
// with ParseXML into an equivalent turn sequence.
func ExportXML(conv *chat.Conversation, turns []chat.Turn) (string, error) {
	doc := xmlConversation{
		ID:       conv.ID,
		Platform: string(conv.Platform),
		Turns:    make([]xmlTurn, 0, len(turns)),
	}

	for _, t := range turns {
		xt := xmlTurn{Index: t.Index}
		if t.User != nil {
			xt.User = &xmlMessage{Text: t.User.Text()}
		}
		if t.Assistant != nil {
			xt.Assistant = &xmlMessage{Text: t.Assistant.Text()}
		}
		doc.Turns = append(doc.Turns, xt)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "serializing conversation to XML")
	}
	return xml.Header + string(out) + "\n", nil
}

// ParseXML parses an export document back into a turn sequence. Content
// equality with the original holds for role and ordered content blocks; the
// sequence indexes of the reconstructed messages are synthetic.
func ParseXML(data []byte) ([]chat.Turn, error) {
	var doc xmlConversation
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing conversation XML")
	}

	turns := make([]chat.Turn, 0, len(doc.Turns))
	seq := 0
	for _, xt := range doc.Turns {
		t := chat.Turn{Index: xt.Index}
		if xt.User != nil {
			msg := chat.Message{
				Role:          chat.RoleUser,
				Blocks:        chat.SplitBlocks(xt.User.Text),
				SequenceIndex: seq,
			}
			seq++
			t.User = &msg
		}
		if xt.Assistant != nil {
			msg := chat.Message{
				Role:          chat.RoleAssistant,
				Blocks:        chat.SplitBlocks(xt.Assistant.Text),
				SequenceIndex: seq,
			}
			seq++
			t.Assistant = &msg
		}
		turns = append(turns, t)
	}

	return turns, nil
}
