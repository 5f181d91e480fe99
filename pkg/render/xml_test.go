package render

import (
	"testing"

	"github.com/go-go-golems/prattle/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConversation() (*chat.Conversation, []chat.Turn) {
	msgs := []chat.Message{
		{Role: chat.RoleUser, Blocks: []chat.ContentBlock{
			chat.TextBlock{Text: "What does `a < b && c > d` mean?"},
		}},
		{Role: chat.RoleAssistant, Blocks: []chat.ContentBlock{
			chat.TextBlock{Text: "It combines two comparisons:"},
			chat.CodeBlock{Language: "go", Code: "ok := a < b && c > d\n// \"both hold\""},
		}},
		{Role: chat.RoleUser, Blocks: []chat.ContentBlock{
			chat.TextBlock{Text: "And <this> & \"that\"?"},
		}},
	}
	for i := range msgs {
		msgs[i].SequenceIndex = i
	}
	conv := &chat.Conversation{
		ID:       "abc-123",
		Platform: chat.PlatformChatGPT,
		Title:    "Operators",
		Messages: msgs,
	}
	return conv, chat.Assemble(conv)
}

func requireEquivalentTurns(t *testing.T, want, got []chat.Turn) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if want[i].User == nil {
			assert.Nil(t, got[i].User, "turn %d user", i)
		} else {
			require.NotNil(t, got[i].User, "turn %d user", i)
			assert.Equal(t, want[i].User.Blocks, got[i].User.Blocks, "turn %d user content", i)
		}
		if want[i].Assistant == nil {
			assert.Nil(t, got[i].Assistant, "turn %d assistant", i)
		} else {
			require.NotNil(t, got[i].Assistant, "turn %d assistant", i)
			assert.Equal(t, want[i].Assistant.Blocks, got[i].Assistant.Blocks, "turn %d assistant content", i)
		}
	}
}

func TestExportXMLRoundTrip(t *testing.T) {
	conv, turns := testConversation()

	xmlText, err := ExportXML(conv, turns)
	require.NoError(t, err)

	parsed, err := ParseXML([]byte(xmlText))
	require.NoError(t, err)
	requireEquivalentTurns(t, turns, parsed)
}

func TestExportXMLEscapesReservedCharacters(t *testing.T) {
	conv, turns := testConversation()

	xmlText, err := ExportXML(conv, turns)
	require.NoError(t, err)

	assert.Contains(t, xmlText, "&lt;this&gt;")
	assert.NotContains(t, xmlText, "<this>")
}

func TestExportXMLStructure(t *testing.T) {
	conv, turns := testConversation()

	xmlText, err := ExportXML(conv, turns)
	require.NoError(t, err)

	assert.Contains(t, xmlText, `<conversation id="abc-123" platform="chatgpt">`)
	assert.Contains(t, xmlText, `<turn index="0">`)
	assert.Contains(t, xmlText, "<user>")
	assert.Contains(t, xmlText, "<assistant>")
}

func TestExportXMLOmitsSystemMessages(t *testing.T) {
	msgs := []chat.Message{
		{Role: chat.RoleSystem, Blocks: []chat.ContentBlock{chat.TextBlock{Text: "be terse"}}},
		{Role: chat.RoleUser, Blocks: []chat.ContentBlock{chat.TextBlock{Text: "hi"}}, SequenceIndex: 1},
		{Role: chat.RoleAssistant, Blocks: []chat.ContentBlock{chat.TextBlock{Text: "hello"}}, SequenceIndex: 2},
	}
	conv := &chat.Conversation{ID: "x", Platform: chat.PlatformClaude, Messages: msgs}
	turns := chat.Assemble(conv)

	xmlText, err := ExportXML(conv, turns)
	require.NoError(t, err)
	assert.NotContains(t, xmlText, "be terse")
}

func TestExportXMLHalfTurns(t *testing.T) {
	msgs := []chat.Message{
		{Role: chat.RoleAssistant, Blocks: []chat.ContentBlock{chat.TextBlock{Text: "opening statement"}}},
	}
	conv := &chat.Conversation{ID: "x", Platform: chat.PlatformGrok, Messages: msgs}
	turns := chat.Assemble(conv)

	xmlText, err := ExportXML(conv, turns)
	require.NoError(t, err)

	parsed, err := ParseXML([]byte(xmlText))
	require.NoError(t, err)
	requireEquivalentTurns(t, turns, parsed)
	assert.NotContains(t, xmlText, "<user>")
}

func TestParseXMLRejectsGarbage(t *testing.T) {
	_, err := ParseXML([]byte("not xml at all"))
	require.Error(t, err)
}
