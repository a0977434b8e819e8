package presenting

import (
	"bytes"
	"html/template"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderNotes converts period notes to HTML. Raw HTML in the source is
// omitted by the renderer, so the result is safe to embed.
func RenderNotes(source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(source, &buf); err != nil {
		return "", errors.Wrap(err, "render notes")
	}
	return template.HTML(buf.String()), nil
}
