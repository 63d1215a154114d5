package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
)

var (
	_ extractor.Extractor = (*Extractor)(nil)
)

var (
	fieldContent = extractor.StringField("content", "record content, one value per row")

	fieldColumns = extractor.IntegerField("columns", "column count of the first record")
	fieldRows    = extractor.IntegerField("rows", "record count")

	paramSeparator = extractor.StringField("separator", "field separator, comma if absent")
)

type Extractor struct {
}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string {
	return "csv"
}

func (e *Extractor) Parameters() []extractor.Field {
	return []extractor.Field{paramSeparator}
}

func (e *Extractor) Fields() []extractor.Field {
	return []extractor.Field{fieldContent, fieldColumns, fieldRows}
}

func (e *Extractor) Extensions() []string {
	return []string{"csv", "tsv"}
}

func (e *Extractor) MimeTypes() []string {
	return []string{"text/csv", "text/tab-separated-values"}
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

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if sep, ok := options.Parameter("separator"); ok && sep != "" {
		reader.Comma = rune(sep[0])
	} else if options.Extension == "tsv" {
		reader.Comma = '\t'
	}

	result := extractor.NewResult()
	doc := result.AddDocument()

	columns := 0
	rows := 0

	for {
		record, err := reader.Read()

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, extractor.Fail(e.Name(), err)
		}

		if rows == 0 {
			columns = len(record)
		}

		rows++

		doc.Add(fieldContent.Name, strings.Join(record, " "))
	}

	result.Meta().Add(fieldColumns.Name, columns)
	result.Meta().Add(fieldRows.Name, rows)

	return result, nil
}
