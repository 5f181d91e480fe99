package cmds

import (
	"os"

	"github.com/go-go-golems/prattle/pkg/render"
	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRenderCommand renders a shared conversation into a single self-contained
// HTML page and opens it in the default browser.
func NewRenderCommand() *cobra.Command {
	var (
		output    string
		noOpen    bool
		lastTurns int
		platform  string
	)

	cmd := &cobra.Command{
		Use:   "render <share-url>",
		Short: "Render a shared conversation to a single HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := RunPipeline(cmd.Context(), PipelineOptions{
				Source:    args[0],
				Platform:  platform,
				LastTurns: lastTurns,
			})
			if err != nil {
				return err
			}

			renderer, err := render.NewHTMLRenderer(render.NewGoldmarkFormatter())
			if err != nil {
				return errors.Wrap(err, "renderer stage")
			}
			doc, err := renderer.Render(res.Conversation, res.Turns, res.SourceURL)
			if err != nil {
				return errors.Wrap(err, "renderer stage")
			}

			outPath := output
			if outPath == "" {
				outPath = defaultHTMLPath(res.Conversation)
			}
			if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
				return errors.Wrapf(err, "writing %s", outPath)
			}
			log.Info().Str("path", outPath).Int("bytes", len(doc)).Msg("wrote HTML page")

			if noOpen {
				return nil
			}
			if err := browser.OpenFile(outPath); err != nil {
				log.Warn().Err(err).Str("path", outPath).Msg("could not open browser")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output HTML file path (default: {platform}_{id}.html)")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Don't open the HTML file in a browser")
	cmd.Flags().IntVar(&lastTurns, "last-turns", 0, "Include only the last N turns")
	cmd.Flags().StringVar(&platform, "platform", "", "Platform tag (chatgpt, claude, grok) when reading a local file")

	return cmd
}
