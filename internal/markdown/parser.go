package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Renderer converts admin-authored page content (markdown) to HTML for the
// public page routes.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
		),
	)

	return &Renderer{md: md}
}

func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	err := r.md.Convert([]byte(source), &buf)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderWithMeta renders content and decodes any frontmatter block into meta.
func (r *Renderer) RenderWithMeta(source string) (html string, meta map[string]any, err error) {
	context := parser.NewContext()
	var buf bytes.Buffer

	err = r.md.Convert([]byte(source), &buf, parser.WithContext(context))
	if err != nil {
		return "", nil, err
	}

	data := frontmatter.Get(context)
	if data == nil {
		meta = make(map[string]any)
	} else {
		err = data.Decode(&meta)
		if err != nil {
			meta = make(map[string]any)
		}
	}

	return buf.String(), meta, nil
}
