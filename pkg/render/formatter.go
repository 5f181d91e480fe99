package render

import (
	"bytes"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Formatter turns a markdown string into formatted HTML. It is the only
// external capability the renderers consume; everything else is a pure
// function of the turn sequence.
type Formatter interface {
	Format(markdown string) (string, error)
}

// GoldmarkFormatter renders markdown with GFM extensions and inline-styled
// syntax highlighting, so the resulting document is self-contained.
type GoldmarkFormatter struct {
	md goldmark.Markdown
}

func NewGoldmarkFormatter() *GoldmarkFormatter {
	return &GoldmarkFormatter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
					highlighting.WithFormatOptions(
						chromahtml.WithClasses(false),
					),
				),
			),
			goldmark.WithRendererOptions(
				goldmarkhtml.WithHardWraps(),
			),
		),
	}
}

func (f *GoldmarkFormatter) Format(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := f.md.Convert([]byte(markdown), &buf); err != nil {
		return "", errors.Wrap(err, "rendering markdown")
	}
	return buf.String(), nil
}

var _ Formatter = (*GoldmarkFormatter)(nil)
