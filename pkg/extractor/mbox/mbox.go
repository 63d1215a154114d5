package mbox

import (
	"context"
	"errors"
	"io"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
	"github.com/qwazr/extractor-sub000/pkg/extractor/eml"

	mboxlib "github.com/emersion/go-mbox"
	"github.com/jhillyerd/enmime"
)

var (
	_ extractor.Extractor = (*Extractor)(nil)
)

var (
	fieldContent = extractor.StringField("content", "message body, one document per message")

	fieldMessages = extractor.IntegerField("message_count", "number of messages in the mailbox")
)

type Extractor struct {
}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string {
	return "mbox"
}

func (e *Extractor) Parameters() []extractor.Field {
	return nil
}

func (e *Extractor) Fields() []extractor.Field {
	return []extractor.Field{fieldContent, fieldMessages}
}

func (e *Extractor) Extensions() []string {
	return []string{"mbox"}
}

func (e *Extractor) MimeTypes() []string {
	return []string{"application/mbox"}
}

func (e *Extractor) Extract(ctx context.Context, source extractor.Source, options *extractor.ExtractOptions) (*extractor.Result, error) {
	r, err := source.Open()

	if err != nil {
		return nil, err
	}

	defer r.Close()

	reader := mboxlib.NewReader(r)

	result := extractor.NewResult()

	count := 0

	for {
		message, err := reader.NextMessage()

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, extractor.Fail(e.Name(), err)
		}

		count++

		env, err := enmime.ReadEnvelope(message)

		if err != nil {
			// keep going, one broken message must not lose the mailbox
			result.AddDocument()
			continue
		}

		doc := result.AddDocument()
		eml.Describe(env, doc)

		if text := eml.Body(env); text != "" {
			doc.Add(fieldContent.Name, text)
		}
	}

	result.Meta().Add(fieldMessages.Name, count)

	return result, nil
}
