package cmds

import (
	"fmt"

	"github.com/go-go-golems/prattle/pkg/render"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewPrintCommand prints a shared conversation to the terminal.
func NewPrintCommand() *cobra.Command {
	var (
		lastTurns int
		platform  string
		style     string
	)

	cmd := &cobra.Command{
		Use:   "print <share-url>",
		Short: "Print a shared conversation to the terminal",
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

			renderer := render.NewTerminalRenderer(style)
			out, err := renderer.Render(res.Conversation, res.Turns)
			if err != nil {
				return errors.Wrap(err, "renderer stage")
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&lastTurns, "last-turns", 0, "Include only the last N turns")
	cmd.Flags().StringVar(&platform, "platform", "", "Platform tag (chatgpt, claude, grok) when reading a local file")
	cmd.Flags().StringVar(&style, "style", "dark", "Glamour style (dark, light, notty, ...)")

	return cmd
}
