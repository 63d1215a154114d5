package docx

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
	return "docx"
}

func (e *Extractor) Parameters() []extractor.Field {
	return nil
}

func (e *Extractor) Fields() []extractor.Field {
	return []extractor.Field{fieldContent, fieldTitle, fieldCreator, fieldSubject}
}

func (e *Extractor) Extensions() []string {
	return []string{"docx", "dotx"}
}

func (e *Extractor) MimeTypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
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

	if props, err := readCoreProperties(&archive.Reader); err == nil {
		if props.Title != "" {
			result.Meta().Add(fieldTitle.Name, props.Title)
		}

		if props.Creator != "" {
			result.Meta().Add(fieldCreator.Name, props.Creator)
		}

		if props.Subject != "" {
			result.Meta().Add(fieldSubject.Name, props.Subject)
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

type coreProperties struct {
	Title   string `xml:"title"`
	Creator string `xml:"creator"`
	Subject string `xml:"subject"`
}

func readCoreProperties(archive *zip.Reader) (*coreProperties, error) {
	f, err := archive.Open("docProps/core.xml")

	if err != nil {
		return nil, err
	}

	defer f.Close()

	data, err := io.ReadAll(f)

	if err != nil {
		return nil, err
	}

	var props coreProperties

	if err := xml.Unmarshal(data, &props); err != nil {
		return nil, err
	}

	return &props, nil
}

// readParagraphs streams word/document.xml, collecting the text runs
// of each w:p element.
func readParagraphs(archive *zip.Reader) ([]string, error) {
	f, err := archive.Open("word/document.xml")

	if err != nil {
		return nil, err
	}

	defer f.Close()

	dec := xml.NewDecoder(f)

	var paragraphs []string
	var current strings.Builder

	depth := 0
	inText := false

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
			switch t.Name.Local {
			case "p":
				depth++
			case "t":
				inText = true
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				depth--

				if depth == 0 {
					if text := strings.TrimSpace(current.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}

					current.Reset()
				}
			case "t":
				inText = false
			}

		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
