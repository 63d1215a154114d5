package markdown

import (
	"context"
	"io"
	"strings"

	"github.com/qwazr/extractor-sub000/pkg/extractor"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var (
	_ extractor.Extractor = (*Extractor)(nil)
)

var (
	fieldContent = extractor.StringField("content", "text content, one value per block")
	fieldTitle   = extractor.StringField("title", "first level-one heading")
)

type Extractor struct {
	markdown goldmark.Markdown
}

func New() *Extractor {
	return &Extractor{
		markdown: goldmark.New(),
	}
}

func (e *Extractor) Name() string {
	return "markdown"
}

func (e *Extractor) Parameters() []extractor.Field {
	return nil
}

func (e *Extractor) Fields() []extractor.Field {
	return []extractor.Field{fieldContent, fieldTitle}
}

func (e *Extractor) Extensions() []string {
	return []string{"md", "markdown"}
}

func (e *Extractor) MimeTypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

func (e *Extractor) Extract(ctx context.Context, source extractor.Source, options *extractor.ExtractOptions) (*extractor.Result, error) {
	r, err := source.Open()

	if err != nil {
		return nil, err
	}

	defer r.Close()

	data, err := io.ReadAll(r)

	if err != nil {
		return nil, extractor.Fail(e.Name(), err)
	}

	root := e.markdown.Parser().Parse(gmtext.NewReader(data))

	result := extractor.NewResult()
	doc := result.AddDocument()

	var title string

	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if n.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}

		text := blockText(n, data)

		if text == "" {
			return ast.WalkContinue, nil
		}

		if heading, ok := n.(*ast.Heading); ok && heading.Level == 1 && title == "" {
			title = text
		}

		doc.Add(fieldContent.Name, text)

		return ast.WalkSkipChildren, nil
	})

	if err != nil {
		return nil, extractor.Fail(e.Name(), err)
	}

	if title != "" {
		result.Meta().Add(fieldTitle.Name, title)
	}

	return result, nil
}

// blockText collects the text segments of a block node and its inline
// children.
func blockText(n ast.Node, data []byte) string {
	var sb strings.Builder

	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(data))

			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}
