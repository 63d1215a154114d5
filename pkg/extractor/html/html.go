package html

import (
	"context"
	"strings"

	"github.com/qwazr/extractor-sub000/pkg/extractor"

	"golang.org/x/net/html"
)

var (
	_ extractor.Extractor = (*Extractor)(nil)
)

var (
	fieldContent = extractor.StringField("content", "visible text content, one value per text block")
	fieldTitle   = extractor.StringField("title", "document title")
)

type Extractor struct {
}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string {
	return "html"
}

func (e *Extractor) Parameters() []extractor.Field {
	return nil
}

func (e *Extractor) Fields() []extractor.Field {
	return []extractor.Field{fieldContent, fieldTitle}
}

func (e *Extractor) Extensions() []string {
	return []string{"html", "htm", "xhtml"}
}

func (e *Extractor) MimeTypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

func (e *Extractor) Extract(ctx context.Context, source extractor.Source, options *extractor.ExtractOptions) (*extractor.Result, error) {
	r, err := source.Open()

	if err != nil {
		return nil, err
	}

	defer r.Close()

	root, err := html.Parse(r)

	if err != nil {
		return nil, extractor.Fail(e.Name(), err)
	}

	result := extractor.NewResult()
	doc := result.AddDocument()

	var title string

	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return

			case "title":
				if n.FirstChild != nil && title == "" {
					title = strings.TrimSpace(n.FirstChild.Data)
				}

				return
			}
		}

		if n.Type == html.TextNode {
			if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
				doc.Add(fieldContent.Name, text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(root)

	if title != "" {
		result.Meta().Add(fieldTitle.Name, title)
	}

	return result, nil
}
