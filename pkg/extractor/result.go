package extractor

import (
	"time"
)

// Result is the outcome of one extraction call. Documents holds one
// FieldSet per logical sub-document (page, sheet, message) and is never
// nil on a successfully returned Result. Metadata holds document-level
// properties and may be absent.
type Result struct {
	ExtractorName string `json:"extractor,omitempty"`

	Elapsed time.Duration `json:"elapsed,omitempty"`

	Metadata  *FieldSet   `json:"metadata,omitempty"`
	Documents []*FieldSet `json:"documents"`
}

func NewResult() *Result {
	return &Result{
		Documents: []*FieldSet{},
	}
}

// AddDocument appends a new document FieldSet and returns it for
// population by the extractor.
func (r *Result) AddDocument() *FieldSet {
	doc := NewFieldSet()
	r.Documents = append(r.Documents, doc)

	return doc
}

// Meta returns the metadata FieldSet, creating it on first use.
func (r *Result) Meta() *FieldSet {
	if r.Metadata == nil {
		r.Metadata = NewFieldSet()
	}

	return r.Metadata
}
