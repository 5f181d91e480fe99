package chat

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Assemble groups a conversation's messages into ordered turns with a single
// pending-turn cursor. A user message opens a new turn, an assistant message
// attaches to the open turn when its assistant side is still free, and system
// messages ride along as metadata without counting toward pairing.
func Assemble(conv *Conversation) []Turn {
	var turns []Turn
	var pending *Turn

	emit := func() {
		if pending == nil {
			return
		}
		if pending.User == nil && pending.Assistant == nil {
			// A turn needs at least one side. System-only remainders have
			// nothing to pair with, so they are dropped.
			log.Debug().Int("systemMessages", len(pending.System)).Msg("dropping system-only pending turn")
			pending = nil
			return
		}
		pending.Index = len(turns)
		turns = append(turns, *pending)
		pending = nil
	}

	for i := range conv.Messages {
		msg := conv.Messages[i]
		switch msg.Role {
		case RoleUser:
			if pending != nil && (pending.User != nil || pending.Assistant != nil) {
				emit()
			}
			if pending == nil {
				pending = &Turn{}
			}
			pending.User = &conv.Messages[i]
		case RoleAssistant:
			if pending != nil && pending.Assistant == nil {
				pending.Assistant = &conv.Messages[i]
				continue
			}
			emit()
			pending = &Turn{Assistant: &conv.Messages[i]}
		case RoleSystem:
			if pending == nil {
				pending = &Turn{}
			}
			pending.System = append(pending.System, msg)
		default:
			log.Warn().Str("role", string(msg.Role)).Msg("skipping message with unknown role")
		}
	}

	emit()
	return turns
}

// SliceLastTurns returns the suffix of length min(n, len(turns)), keeping the
// original relative order and turn indexes.
func SliceLastTurns(turns []Turn, n int) ([]Turn, error) {
	if n <= 0 {
		return nil, &InvalidArgumentError{Detail: fmt.Sprintf("turn count must be positive, got %d", n)}
	}
	if n >= len(turns) {
		return turns, nil
	}
	return turns[len(turns)-n:], nil
}

// CountMessages returns how many user and assistant messages a turn sequence
// holds, for the statistics line of the human view.
func CountMessages(turns []Turn) (users int, assistants int) {
	for _, t := range turns {
		if t.User != nil {
			users++
		}
		if t.Assistant != nil {
			assistants++
		}
	}
	return users, assistants
}
