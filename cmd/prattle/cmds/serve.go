package cmds

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-go-golems/prattle/pkg/render"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewServeCommand renders a shared conversation and serves the HTML page on a
// local port instead of writing it to disk.
func NewServeCommand() *cobra.Command {
	var (
		port      int
		lastTurns int
		platform  string
	)

	cmd := &cobra.Command{
		Use:   "serve <share-url>",
		Short: "Serve the rendered conversation over HTTP",
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

			xmlDoc, err := render.ExportXML(res.Conversation, res.Turns)
			if err != nil {
				return errors.Wrap(err, "export stage")
			}

			r := chi.NewRouter()
			r.Use(middleware.Recoverer)
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = w.Write([]byte(doc))
			})
			r.Get("/conversation.xml", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "application/xml; charset=utf-8")
				_, _ = w.Write([]byte(xmlDoc))
			})

			addr := fmt.Sprintf(":%d", port)
			log.Info().
				Str("addr", addr).
				Str("conversation", res.Conversation.ID).
				Msg("serving conversation")
			server := &http.Server{Addr: addr, Handler: r}
			return server.ListenAndServe()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	cmd.Flags().IntVar(&lastTurns, "last-turns", 0, "Include only the last N turns")
	cmd.Flags().StringVar(&platform, "platform", "", "Platform tag (chatgpt, claude, grok) when reading a local file")

	return cmd
}
