// Package extractor defines the contract every format handler
// implements, along with the field schema and result model shared by
// all of them.
package extractor

import (
	"context"
)

// Extractor is implemented by every format handler. The capability
// methods are called once at registration time and must be stable for
// the extractor's lifetime. Name must never be empty; by convention it
// is the implementation's package name, lower-cased, with no
// "Parser" or "Extractor" suffix.
type Extractor interface {
	Name() string

	Parameters() []Field
	Fields() []Field

	Extensions() []string
	MimeTypes() []string

	Extract(ctx context.Context, source Source, options *ExtractOptions) (*Result, error)
}

// ExtractOptions carries the caller-supplied parameters and the best
// known extension and MIME type. Both hints may be empty and are not
// guarantees; the extractor decides how to use them.
type ExtractOptions struct {
	Parameters *FieldSet

	Extension string
	MimeType  string
}

func (o *ExtractOptions) Parameter(name string) (string, bool) {
	if o == nil || o.Parameters == nil {
		return "", false
	}

	value, ok := o.Parameters.First(name)

	if !ok {
		return "", false
	}

	text, ok := value.(string)

	return text, ok
}

// Descriptor is the static capability declaration of one extractor.
type Descriptor struct {
	Name string `json:"name"`

	Parameters []Field `json:"parameters,omitempty"`
	Fields     []Field `json:"fields,omitempty"`

	Extensions []string `json:"extensions,omitempty"`
	MimeTypes  []string `json:"mime_types,omitempty"`
}

func Describe(e Extractor) Descriptor {
	return Descriptor{
		Name: e.Name(),

		Parameters: e.Parameters(),
		Fields:     e.Fields(),

		Extensions: e.Extensions(),
		MimeTypes:  e.MimeTypes(),
	}
}
