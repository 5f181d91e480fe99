package cmds

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-go-golems/prattle/pkg/chat"
	"github.com/go-go-golems/prattle/pkg/fetch"
	"github.com/go-go-golems/prattle/pkg/platforms"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// PipelineOptions configure one end-to-end run: raw payload in, turn sequence
// out. Each invocation processes exactly one conversation and holds no state
// afterwards.
type PipelineOptions struct {
	// Source is a share URL, or a local file path together with Platform.
	Source string
	// Platform forces the platform tag when Source is a local file.
	Platform string
	// LastTurns restricts the result to the suffix of turns when positive.
	LastTurns int
	// Fetcher overrides the HTTP fetcher, mostly for tests.
	Fetcher fetch.Fetcher
}

// PipelineResult carries the canonical conversation and its assembled turns.
type PipelineResult struct {
	Conversation *chat.Conversation
	Turns        []chat.Turn
	SourceURL    string
}

// RunPipeline runs payload → adapter → normalizer → turn assembler. Failures
// are wrapped with the name of the failing stage so the terminal diagnostic
// can be traced without re-running.
func RunPipeline(ctx context.Context, opts PipelineOptions) (*PipelineResult, error) {
	var platform chat.Platform
	var payload []byte
	sourceURL := ""

	if isRemote(opts.Source) {
		detected, err := platforms.Detect(opts.Source)
		if err != nil {
			return nil, errors.Wrap(err, "url validation stage")
		}
		platform = detected
		sourceURL = opts.Source

		fetcher := opts.Fetcher
		if fetcher == nil {
			fetcher = fetch.NewHTTPFetcher()
		}
		body, err := fetcher.Fetch(ctx, opts.Source)
		if err != nil {
			return nil, errors.Wrap(err, "fetch stage")
		}
		payload = body
	} else {
		if opts.Platform == "" {
			return nil, &chat.InvalidArgumentError{
				Detail: "--platform is required when reading from a local file",
			}
		}
		platform = chat.Platform(strings.ToLower(opts.Platform))

		body, err := os.ReadFile(opts.Source)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", opts.Source)
		}
		payload = body
	}

	adapter, err := platforms.ForPlatform(platform)
	if err != nil {
		return nil, errors.Wrap(err, "url validation stage")
	}

	parsed, err := adapter.Parse(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "adapter stage (%s)", platform)
	}

	conv, err := chat.Normalize(parsed.Messages, platform, opts.Source, chat.WithTitle(parsed.Title))
	if err != nil {
		return nil, errors.Wrap(err, "normalizer stage")
	}

	turns := chat.Assemble(conv)
	if opts.LastTurns > 0 {
		turns, err = chat.SliceLastTurns(turns, opts.LastTurns)
		if err != nil {
			return nil, errors.Wrap(err, "turn assembler stage")
		}
	}

	users, assistants := chat.CountMessages(turns)
	log.Info().
		Str("platform", string(platform)).
		Str("conversation", conv.ID).
		Int("messages", users+assistants).
		Int("turns", len(turns)).
		Msg("assembled conversation")

	return &PipelineResult{Conversation: conv, Turns: turns, SourceURL: sourceURL}, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// defaultHTMLPath derives the default output name for the human view.
func defaultHTMLPath(conv *chat.Conversation) string {
	return fmt.Sprintf("%s_%s.html", conv.Platform, chat.ShortID(conv.ID))
}

// defaultXMLPath derives the default output name for the export document.
func defaultXMLPath(conv *chat.Conversation) string {
	return fmt.Sprintf("%s.xml", chat.ShortID(conv.ID))
}
