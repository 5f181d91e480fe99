package platforms

import (
	"testing"

	"github.com/go-go-golems/prattle/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const claudeSharePage = `<html><body>
<div class="group">
  <div class="!font-user-message"><p>Write a hello world in Go.</p></div>
</div>
<div class="font-claude-response">
  <div class="standard-markdown">
    <p>Here you go:</p>
    <pre><code class="language-go">package main

func main() {
	println("hello")
}</code></pre>
  </div>
  <button>Copy</button>
</div>
</body></html>`

func TestClaudeExtractsUserAndAssistant(t *testing.T) {
	parsed, err := (&ClaudeAdapter{}).Parse([]byte(claudeSharePage))
	require.NoError(t, err)
	require.Len(t, parsed.Messages, 2)

	user := parsed.Messages[0]
	assert.Equal(t, chat.RoleUser, user.Role)
	assert.Contains(t, user.Text(), "Write a hello world in Go.")

	assistant := parsed.Messages[1]
	assert.Equal(t, chat.RoleAssistant, assistant.Role)

	var code *chat.CodeBlock
	for _, b := range assistant.Blocks {
		if cb, ok := b.(chat.CodeBlock); ok {
			code = &cb
			break
		}
	}
	require.NotNil(t, code, "assistant message should contain a code block")
	assert.Equal(t, "go", code.Language)
	assert.Contains(t, code.Code, `println("hello")`)
}

func TestClaudeStripsUIElements(t *testing.T) {
	parsed, err := (&ClaudeAdapter{}).Parse([]byte(claudeSharePage))
	require.NoError(t, err)
	assert.NotContains(t, parsed.Messages[1].Text(), "Copy")
}

func TestClaudeAnnotatesHiddenFiles(t *testing.T) {
	page := `<html><body>
	<div>2 files hidden</div>
	<div class="!font-user-message"><p>Look at this PDF.</p></div>
	<div class="standard-markdown"><p>I cannot see attachments here.</p></div>
	</body></html>`

	parsed, err := (&ClaudeAdapter{}).Parse([]byte(page))
	require.NoError(t, err)
	require.NotEmpty(t, parsed.Messages)
	assert.Contains(t, parsed.Messages[0].Text(), "[Attachment Hidden]")
}

func TestClaudeNoMessagesIsEmptyConversation(t *testing.T) {
	_, err := (&ClaudeAdapter{}).Parse([]byte(`<html><body><div class="chrome">nothing</div></body></html>`))
	var emptyErr *chat.EmptyConversationError
	require.ErrorAs(t, err, &emptyErr)
}

func TestClaudeEmptyPayloadIsSchemaMismatch(t *testing.T) {
	_, err := (&ClaudeAdapter{}).Parse(nil)
	var schemaErr *chat.SchemaMismatchError
	require.ErrorAs(t, err, &schemaErr)
}
