package odt

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
)

var (
	_ extractor.Extractor = (*Extractor)(nil)
)

var (
	fieldContent = extractor.StringField("content", "text content, one value per paragraph")

	fieldTitle   = extractor.StringField("title", "document title")
	fieldCreator = extractor.StringField("creator", "document creator")
	fieldSubject = extractor.StringField("subject", "document subject")
)

type Extractor struct {
}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string {
	return "odt"
}

func (e *Extractor) Parameters() []extractor.Field {
	return nil
}

func (e *Extractor) Fields() []extractor.Field {
	return []extractor.Field{fieldContent, fieldTitle, fieldCreator, fieldSubject}
}

func (e *Extractor) Extensions() []string {
	return []string{"odt", "ott"}
}

func (e *Extractor) MimeTypes() []string {
	return []string{"application/vnd.oasis.opendocument.text"}
}

func (e *Extractor) Extract(ctx context.Context, source extractor.Source, options *extractor.ExtractOptions) (*extractor.Result, error) {
	path, cleanup, err := source.Materialize()

	if err != nil {
		return nil, err
	}

	defer cleanup()

	archive, err := zip.OpenReader(path)

	if err != nil {
		return nil, extractor.Fail(e.Name(), err)
	}

	defer archive.Close()

	result := extractor.NewResult()

	if meta, err := readMeta(&archive.Reader); err == nil {
		if meta.Title != "" {
			result.Meta().Add(fieldTitle.Name, meta.Title)
		}

		if meta.Creator != "" {
			result.Meta().Add(fieldCreator.Name, meta.Creator)
		}

		if meta.Subject != "" {
			result.Meta().Add(fieldSubject.Name, meta.Subject)
		}
	}

	doc := result.AddDocument()

	paragraphs, err := readParagraphs(&archive.Reader)

	if err != nil {
		return nil, extractor.Fail(e.Name(), err)
	}

	for _, paragraph := range paragraphs {
		doc.Add(fieldContent.Name, paragraph)
	}

	return result, nil
}

type documentMeta struct {
	Title   string `xml:"meta>title"`
	Creator string `xml:"meta>creator"`
	Subject string `xml:"meta>subject"`
}

func readMeta(archive *zip.Reader) (*documentMeta, error) {
	f, err := archive.Open("meta.xml")

	if err != nil {
		return nil, err
	}

	defer f.Close()

	data, err := io.ReadAll(f)

	if err != nil {
		return nil, err
	}

	var meta documentMeta

	if err := xml.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// readParagraphs streams content.xml, collecting the character data of
// each text:p and text:h element.
func readParagraphs(archive *zip.Reader) ([]string, error) {
	f, err := archive.Open("content.xml")

	if err != nil {
		return nil, err
	}

	defer f.Close()

	dec := xml.NewDecoder(f)

	var paragraphs []string
	var current strings.Builder

	depth := 0

	for {
		tok, err := dec.Token()

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" || t.Name.Local == "h" {
				depth++
			}

		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "h" {
				depth--

				if depth == 0 {
					if text := strings.TrimSpace(current.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}

					current.Reset()
				}
			}

		case xml.CharData:
			if depth > 0 {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
