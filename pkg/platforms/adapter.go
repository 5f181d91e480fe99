package platforms

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-go-golems/prattle/pkg/chat"
)

// Parsed is the adapter output: an ordered message sequence plus whatever
// conversation-level metadata the payload carried.
type Parsed struct {
	Messages []chat.Message
	Title    string
}

// Adapter parses one platform's raw share-page payload into an ordered message
// sequence. Adapters are a closed set, one per supported platform; everything
// downstream of them is platform-agnostic.
type Adapter interface {
	Platform() chat.Platform
	Parse(payload []byte) (*Parsed, error)
}

// ForPlatform returns the adapter for a platform tag.
func ForPlatform(p chat.Platform) (Adapter, error) {
	switch p {
	case chat.PlatformChatGPT:
		return &ChatGPTAdapter{}, nil
	case chat.PlatformClaude:
		return &ClaudeAdapter{}, nil
	case chat.PlatformGrok:
		return &GrokAdapter{}, nil
	default:
		return nil, &chat.InvalidArgumentError{Detail: fmt.Sprintf("unsupported platform %q", p)}
	}
}

// Detect determines the platform from a share URL.
func Detect(shareURL string) (chat.Platform, error) {
	u, err := url.Parse(shareURL)
	if err != nil {
		return "", &chat.InvalidArgumentError{Detail: fmt.Sprintf("cannot parse URL %q", shareURL)}
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	sharePath := strings.Contains(u.Path, "/share/")

	switch {
	case host == "chatgpt.com" && sharePath:
		return chat.PlatformChatGPT, nil
	case host == "claude.ai" && sharePath:
		return chat.PlatformClaude, nil
	case (host == "grok.com" || host == "x.ai") && sharePath:
		return chat.PlatformGrok, nil
	default:
		return "", &chat.InvalidArgumentError{
			Detail: "URL must be from chatgpt.com/share/, claude.ai/share/, or grok.com/share/",
		}
	}
}
