package xlsx

import (
	"context"
	"strings"

	"github.com/qwazr/extractor-sub000/pkg/extractor"

	"github.com/xuri/excelize/v2"
)

var (
	_ extractor.Extractor = (*Extractor)(nil)
)

var (
	fieldContent = extractor.StringField("content", "cell content, one document per sheet, one value per row")
	fieldSheet   = extractor.StringField("sheet_name", "name of the sheet")

	fieldTitle   = extractor.StringField("title", "workbook title")
	fieldCreator = extractor.StringField("creator", "workbook creator")
	fieldSubject = extractor.StringField("subject", "workbook subject")
	fieldSheets  = extractor.IntegerField("sheet_count", "number of sheets")
)

type Extractor struct {
}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string {
	return "xlsx"
}

func (e *Extractor) Parameters() []extractor.Field {
	return nil
}

func (e *Extractor) Fields() []extractor.Field {
	return []extractor.Field{fieldContent, fieldSheet, fieldTitle, fieldCreator, fieldSubject, fieldSheets}
}

func (e *Extractor) Extensions() []string {
	return []string{"xlsx", "xlsm", "xltx"}
}

func (e *Extractor) MimeTypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}
}

func (e *Extractor) Extract(ctx context.Context, source extractor.Source, options *extractor.ExtractOptions) (*extractor.Result, error) {
	r, err := source.Open()

	if err != nil {
		return nil, err
	}

	defer r.Close()

	workbook, err := excelize.OpenReader(r)

	if err != nil {
		return nil, extractor.Fail(e.Name(), err)
	}

	defer workbook.Close()

	result := extractor.NewResult()

	if props, err := workbook.GetDocProps(); err == nil {
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

	sheets := workbook.GetSheetList()
	result.Meta().Add(fieldSheets.Name, len(sheets))

	for _, sheet := range sheets {
		doc := result.AddDocument()
		doc.Add(fieldSheet.Name, sheet)

		rows, err := workbook.GetRows(sheet)

		if err != nil {
			return nil, extractor.Fail(e.Name(), err)
		}

		for _, row := range rows {
			if text := strings.TrimSpace(strings.Join(row, " ")); text != "" {
				doc.Add(fieldContent.Name, text)
			}
		}
	}

	return result, nil
}
