package cmds

import (
	"os"

	"github.com/go-go-golems/prattle/pkg/render"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewExportCommand writes the structured XML export of a shared conversation.
func NewExportCommand() *cobra.Command {
	var (
		output    string
		lastTurns int
		platform  string
	)

	cmd := &cobra.Command{
		Use:   "export <share-url>",
		Short: "Export a shared conversation as XML for LLM context reuse",
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

			doc, err := render.ExportXML(res.Conversation, res.Turns)
			if err != nil {
				return errors.Wrap(err, "export stage")
			}

			outPath := output
			if outPath == "" {
				outPath = defaultXMLPath(res.Conversation)
			}
			if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
				return errors.Wrapf(err, "writing %s", outPath)
			}
			log.Info().Str("path", outPath).Int("bytes", len(doc)).Msg("wrote XML export")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output XML file path (default: {id}.xml)")
	cmd.Flags().IntVar(&lastTurns, "last-turns", 0, "Include only the last N turns")
	cmd.Flags().StringVar(&platform, "platform", "", "Platform tag (chatgpt, claude, grok) when reading a local file")

	return cmd
}
