package platforms

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-go-golems/prattle/pkg/chat"
)

// attachmentNote is prepended to the first user message when the share page
// indicates that files or images were stripped from the shared conversation.
const attachmentNote = "📎 **[Attachment Hidden]** *(Files/images are not included in shared conversations)*"

func newMarkdownConverter() *md.Converter {
	return md.NewConverter("", true, &md.Options{
		CodeBlockStyle: "fenced",
		Fence:          "```",
	})
}

// scrubUI removes buttons and copy controls from a message container before
// conversion, so that "Copy code" labels do not end up in the content.
func scrubUI(sel *goquery.Selection) {
	sel.Find("button").Remove()
	sel.Find("[class*='copy']").Remove()
}

// selectionToBlocks converts a message container to canonical content blocks.
func selectionToBlocks(conv *md.Converter, sel *goquery.Selection) []chat.ContentBlock {
	scrubUI(sel)
	markdown := chat.RepairSplitFences(strings.TrimSpace(conv.Convert(sel)))
	return chat.SplitBlocks(markdown)
}

// prependAttachmentNote adds the hidden-attachment note to the first user
// message of the sequence.
func prependAttachmentNote(msgs []chat.Message) {
	for i := range msgs {
		if msgs[i].Role != chat.RoleUser {
			continue
		}
		blocks := make([]chat.ContentBlock, 0, len(msgs[i].Blocks)+1)
		blocks = append(blocks, chat.TextBlock{Text: attachmentNote})
		blocks = append(blocks, msgs[i].Blocks...)
		msgs[i].Blocks = blocks
		return
	}
}

func hasClass(sel *goquery.Selection, class string) bool {
	for _, c := range strings.Fields(sel.AttrOr("class", "")) {
		if c == class {
			return true
		}
	}
	return false
}
