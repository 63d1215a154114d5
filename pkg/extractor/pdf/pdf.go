package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/qwazr/extractor-sub000/pkg/extractor"

	pdflib "github.com/ledongthuc/pdf"
)

var (
	_ extractor.Extractor = (*Extractor)(nil)
)

var (
	fieldContent = extractor.StringField("content", "text content, one document per page")

	fieldTitle   = extractor.StringField("title", "document title")
	fieldAuthor  = extractor.StringField("author", "document author")
	fieldSubject = extractor.StringField("subject", "document subject")
	fieldPages   = extractor.IntegerField("page_count", "number of pages")
)

type Extractor struct {
}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string {
	return "pdf"
}

func (e *Extractor) Parameters() []extractor.Field {
	return nil
}

func (e *Extractor) Fields() []extractor.Field {
	return []extractor.Field{fieldContent, fieldTitle, fieldAuthor, fieldSubject, fieldPages}
}

func (e *Extractor) Extensions() []string {
	return []string{"pdf"}
}

func (e *Extractor) MimeTypes() []string {
	return []string{"application/pdf"}
}

func (e *Extractor) Extract(ctx context.Context, source extractor.Source, options *extractor.ExtractOptions) (*extractor.Result, error) {
	path, cleanup, err := source.Materialize()

	if err != nil {
		return nil, err
	}

	defer cleanup()

	result, err := e.extractFile(path)

	if err != nil {
		return nil, extractor.Fail(e.Name(), err)
	}

	return result, nil
}

// extractFile guards against panics from the PDF library on malformed
// input, converting them to errors.
func (e *Extractor) extractFile(path string) (result *extractor.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)

	if err != nil {
		return nil, err
	}

	defer f.Close()

	result = extractor.NewResult()

	pages := reader.NumPage()
	result.Meta().Add(fieldPages.Name, pages)

	info := reader.Trailer().Key("Info")

	for _, field := range []extractor.Field{fieldTitle, fieldAuthor, fieldSubject} {
		key := strings.ToUpper(field.Name[:1]) + field.Name[1:]

		if value := info.Key(key); value.Kind() == pdflib.String {
			if text := strings.TrimSpace(value.RawString()); text != "" {
				result.Meta().Add(field.Name, text)
			}
		}
	}

	for i := 1; i <= pages; i++ {
		doc := result.AddDocument()

		page := reader.Page(i)

		if page.V.IsNull() {
			continue
		}

		var sb strings.Builder

		for _, item := range page.Content().Text {
			sb.WriteString(item.S)
			sb.WriteByte(' ')
		}

		if text := strings.TrimSpace(sb.String()); text != "" {
			doc.Add(fieldContent.Name, text)
		}
	}

	return result, nil
}
