package eml

import (
	"context"
	"net/mail"
	"regexp"
	"strings"

	"github.com/qwazr/extractor-sub000/pkg/extractor"

	"github.com/jhillyerd/enmime"
)

var (
	_ extractor.Extractor = (*Extractor)(nil)
)

var (
	fieldContent = extractor.StringField("content", "message body as plain text")

	fieldSubject = extractor.StringField("subject", "message subject")
	fieldFrom    = extractor.StringField("from", "sender address")
	fieldTo      = extractor.StringField("to", "recipient addresses")
	fieldCc      = extractor.StringField("cc", "carbon-copy addresses")
	fieldDate    = extractor.DateField("date", "message date")
)

type Extractor struct {
}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string {
	return "eml"
}

func (e *Extractor) Parameters() []extractor.Field {
	return nil
}

func (e *Extractor) Fields() []extractor.Field {
	return []extractor.Field{fieldContent, fieldSubject, fieldFrom, fieldTo, fieldCc, fieldDate}
}

func (e *Extractor) Extensions() []string {
	return []string{"eml"}
}

func (e *Extractor) MimeTypes() []string {
	return []string{"message/rfc822"}
}

func (e *Extractor) Extract(ctx context.Context, source extractor.Source, options *extractor.ExtractOptions) (*extractor.Result, error) {
	r, err := source.Open()

	if err != nil {
		return nil, err
	}

	defer r.Close()

	env, err := enmime.ReadEnvelope(r)

	if err != nil {
		return nil, extractor.Fail(e.Name(), err)
	}

	result := extractor.NewResult()
	Describe(env, result.Meta())

	doc := result.AddDocument()

	if text := Body(env); text != "" {
		doc.Add(fieldContent.Name, text)
	}

	return result, nil
}

// Describe copies the addressing headers of a parsed message into a
// FieldSet. Shared with the mbox extractor.
func Describe(env *enmime.Envelope, meta *extractor.FieldSet) {
	if subject := env.GetHeader("Subject"); subject != "" {
		meta.Add(fieldSubject.Name, subject)
	}

	if from := env.GetHeader("From"); from != "" {
		meta.Add(fieldFrom.Name, from)
	}

	for _, header := range env.GetHeaderValues("To") {
		if header != "" {
			meta.Add(fieldTo.Name, header)
		}
	}

	for _, header := range env.GetHeaderValues("Cc") {
		if header != "" {
			meta.Add(fieldCc.Name, header)
		}
	}

	if date, err := mail.ParseDate(env.GetHeader("Date")); err == nil {
		meta.Add(fieldDate.Name, date)
	}
}

// Body returns the plain-text body, falling back to a tag-stripped
// rendering of the HTML part.
func Body(env *enmime.Envelope) string {
	if text := strings.TrimSpace(env.Text); text != "" {
		return text
	}

	stripped := tagPattern.ReplaceAllString(env.HTML, " ")

	return strings.Join(strings.Fields(stripped), " ")
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)
