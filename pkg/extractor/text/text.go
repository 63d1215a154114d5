package text

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/qwazr/extractor-sub000/pkg/extractor"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var (
	_ extractor.Extractor = (*Extractor)(nil)
)

var (
	fieldContent = extractor.StringField("content", "text content of the document")
	fieldCharset = extractor.StringField("charset", "character set used to decode the content")

	paramCharset = extractor.StringField("charset", "force a character set instead of detecting one")
)

type Extractor struct {
}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string {
	return "text"
}

func (e *Extractor) Parameters() []extractor.Field {
	return []extractor.Field{paramCharset}
}

func (e *Extractor) Fields() []extractor.Field {
	return []extractor.Field{fieldContent, fieldCharset}
}

func (e *Extractor) Extensions() []string {
	return []string{"txt", "log"}
}

func (e *Extractor) MimeTypes() []string {
	return []string{"text/plain"}
}

func (e *Extractor) Extract(ctx context.Context, source extractor.Source, options *extractor.ExtractOptions) (*extractor.Result, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	r, err := source.Open()

	if err != nil {
		return nil, err
	}

	defer r.Close()

	data, err := io.ReadAll(r)

	if err != nil {
		return nil, extractor.Fail(e.Name(), err)
	}

	name := "utf-8"

	if forced, ok := options.Parameter("charset"); ok {
		name = forced
	} else if !utf8.Valid(data) {
		if enc, detected, _ := charset.DetermineEncoding(data, options.MimeType); enc != nil {
			name = detected
		}
	}

	text, err := decode(data, name)

	if err != nil {
		return nil, extractor.Fail(e.Name(), err)
	}

	result := extractor.NewResult()
	result.Meta().Add(fieldCharset.Name, name)

	result.AddDocument().Add(fieldContent.Name, text)

	return result, nil
}

func decode(data []byte, name string) (string, error) {
	if strings.EqualFold(name, "utf-8") {
		return string(data), nil
	}

	enc, err := htmlindex.Get(name)

	if err != nil {
		return "", err
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)

	if err != nil {
		return "", err
	}

	return string(decoded), nil
}
