package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textMsg(role Role, text string) Message {
	return Message{Role: role, Blocks: []ContentBlock{TextBlock{Text: text}}}
}

func TestNormalizeMergesAdjacentSameRole(t *testing.T) {
	msgs := []Message{
		textMsg(RoleUser, "question"),
		textMsg(RoleAssistant, "Hello "),
		textMsg(RoleAssistant, "world"),
	}

	conv, err := Normalize(msgs, PlatformClaude, "https://claude.ai/share/abc123")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)

	merged := conv.Messages[1]
	assert.Equal(t, RoleAssistant, merged.Role)
	require.Len(t, merged.Blocks, 2)
	assert.Equal(t, TextBlock{Text: "Hello "}, merged.Blocks[0])
	assert.Equal(t, TextBlock{Text: "world"}, merged.Blocks[1])
}

func TestNormalizeDropsEmptyMessages(t *testing.T) {
	msgs := []Message{
		textMsg(RoleUser, "question"),
		{Role: RoleAssistant},
		textMsg(RoleAssistant, "answer"),
	}

	conv, err := Normalize(msgs, PlatformGrok, "https://grok.com/share/xyz")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, RoleUser, conv.Messages[0].Role)
	assert.Equal(t, RoleAssistant, conv.Messages[1].Role)
}

func TestNormalizeReindexesDensely(t *testing.T) {
	msgs := []Message{
		{Role: RoleUser, Blocks: []ContentBlock{TextBlock{Text: "a"}}, SequenceIndex: 4},
		{Role: RoleAssistant, Blocks: []ContentBlock{TextBlock{Text: "b"}}, SequenceIndex: 9},
	}

	conv, err := Normalize(msgs, PlatformChatGPT, "https://chatgpt.com/share/abc")
	require.NoError(t, err)
	for i, msg := range conv.Messages {
		assert.Equal(t, i, msg.SequenceIndex)
	}
}

func TestNormalizeFailsOnNothingLeft(t *testing.T) {
	msgs := []Message{{Role: RoleUser}, {Role: RoleAssistant}}

	_, err := Normalize(msgs, PlatformClaude, "https://claude.ai/share/abc")
	var normErr *NormalizationError
	require.ErrorAs(t, err, &normErr)
}

func TestNormalizeSetsTitle(t *testing.T) {
	conv, err := Normalize([]Message{textMsg(RoleUser, "hi")}, PlatformChatGPT,
		"https://chatgpt.com/share/abc", WithTitle("Greeting"))
	require.NoError(t, err)
	assert.Equal(t, "Greeting", conv.Title)
}

func TestConversationIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://chatgpt.com/share/67d7a1e2-1234-8000-b000-aaaabbbbcccc", "67d7a1e2-1234-8000-b000-aaaabbbbcccc"},
		{"https://claude.ai/share/abc123", "abc123"},
		{"https://grok.com/share/bGVnYWN5_deadbeef/", "bGVnYWN5_deadbeef"},
		{"", "conversation"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ConversationIDFromURL(tc.url), tc.url)
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "67d7a1e2-123", ShortID("67d7a1e2-1234-8000-b000-aaaabbbbcccc"))
	assert.Equal(t, "abc", ShortID("abc"))
}
