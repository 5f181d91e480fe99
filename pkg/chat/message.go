package chat

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// NormalizeRole maps platform-specific role spellings onto the canonical set.
// Unknown roles are returned lowercased so adapters can decide whether to skip them.
func NormalizeRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "human":
		return RoleUser
	case "assistant", "ai", "model":
		return RoleAssistant
	case "system":
		return RoleSystem
	default:
		return Role(strings.ToLower(strings.TrimSpace(s)))
	}
}

type Platform string

const (
	PlatformChatGPT Platform = "chatgpt"
	PlatformClaude  Platform = "claude"
	PlatformGrok    Platform = "grok"
)

// DisplayName returns the platform name as shown in rendered documents.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformChatGPT:
		return "ChatGPT"
	case PlatformClaude:
		return "Claude"
	case PlatformGrok:
		return "Grok"
	default:
		return string(p)
	}
}

type BlockType string

const (
	BlockTypeText BlockType = "text"
	BlockTypeCode BlockType = "code"
)

// ContentBlock is one unit of message content. Blocks keep their literal
// markdown form so that renderers and the export serializer can reproduce the
// source text without reformatting it.
type ContentBlock interface {
	BlockType() BlockType
	// Markdown returns the literal markdown form of the block, fence markers
	// and language tag included for code blocks.
	Markdown() string
}

type TextBlock struct {
	Text string
}

func (b TextBlock) BlockType() BlockType { return BlockTypeText }

func (b TextBlock) Markdown() string { return b.Text }

type CodeBlock struct {
	Language string
	Code     string
}

func (b CodeBlock) BlockType() BlockType { return BlockTypeCode }

func (b CodeBlock) Markdown() string {
	return fmt.Sprintf("```%s\n%s\n```", b.Language, b.Code)
}

var _ ContentBlock = TextBlock{}
var _ ContentBlock = CodeBlock{}

// Message is a single utterance in a conversation.
type Message struct {
	Role Role
	// Blocks is the ordered content of the message.
	Blocks []ContentBlock
	// SequenceIndex defines the canonical order within a conversation. It is
	// assigned by the adapter and reassigned densely by the normalizer.
	SequenceIndex int
	// PlatformMessageID is the opaque source identifier, kept for traceability.
	PlatformMessageID string
}

// Text returns the message content as a single markdown string.
func (m Message) Text() string {
	return JoinBlocks(m.Blocks)
}

// Empty reports whether the message carries no content blocks.
func (m Message) Empty() bool {
	return len(m.Blocks) == 0
}

// Conversation is the normalized, platform-agnostic whole. Values are built
// once and never mutated afterwards.
type Conversation struct {
	ID       string
	Platform Platform
	Title    string
	Messages []Message
}

// Turn is one user/assistant exchange. At least one of User/Assistant is set,
// and a turn never holds two messages of the same role.
type Turn struct {
	Index     int
	User      *Message
	Assistant *Message
	// System holds system messages attached to this turn as metadata. They do
	// not count toward pairing and are omitted from the export view.
	System []Message
}
