// Package dispatcher resolves which extractor handles a request and
// invokes it.
package dispatcher

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
	"github.com/qwazr/extractor-sub000/pkg/registry"

	"github.com/gabriel-vasile/mimetype"
)

type Dispatcher struct {
	registry *registry.Registry
}

func New(r *registry.Registry) *Dispatcher {
	return &Dispatcher{
		registry: r,
	}
}

// DispatchOptions selects an extractor. Name is an explicit selection
// and disables every fallback. Otherwise the filename's extension is
// tried first, then the declared MIME type, then a MIME type sniffed
// from the content's magic bytes. A declared MIME type always takes
// precedence over a sniffed one, even when wrong.
type DispatchOptions struct {
	Name string

	Filename string
	MimeType string

	Parameters *extractor.FieldSet
}

// Dispatch resolves an extractor for the source, runs it, and stamps
// the result with the extractor's name and the elapsed wall-clock
// time. Resolution failures surface as NotFoundError, extractor
// failures as ExtractionError; neither is retried.
func (d *Dispatcher) Dispatch(ctx context.Context, source extractor.Source, options *DispatchOptions) (*extractor.Result, error) {
	if options == nil {
		options = new(DispatchOptions)
	}

	if err := source.Validate(); err != nil {
		return nil, err
	}

	ext := ExtensionOf(options.Filename)
	mimeType := options.MimeType

	resolved, source, sniffed, cleanup, err := d.resolve(source, options, ext)

	if err != nil {
		return nil, err
	}

	defer cleanup()

	if mimeType == "" {
		mimeType = sniffed
	}

	start := time.Now()

	result, err := resolved.Extract(ctx, source, &extractor.ExtractOptions{
		Parameters: options.Parameters,

		Extension: ext,
		MimeType:  mimeType,
	})

	if err != nil {
		var extractionError *extractor.ExtractionError

		if errors.As(err, &extractionError) {
			return nil, err
		}

		return nil, &extractor.ExtractionError{
			Extractor: resolved.Name(),
			Err:       err,
		}
	}

	if result == nil {
		result = extractor.NewResult()
	}

	if result.Documents == nil {
		result.Documents = []*extractor.FieldSet{}
	}

	result.ExtractorName = resolved.Name()
	result.Elapsed = time.Since(start)

	return result, nil
}

// resolve walks the precedence ladder. It may replace a stream source
// with a materialized temporary file when sniffing was needed; the
// returned cleanup removes that file and is never nil on success.
func (d *Dispatcher) resolve(source extractor.Source, options *DispatchOptions, ext string) (extractor.Extractor, extractor.Source, string, func(), error) {
	noop := func() {}

	if options.Name != "" {
		e, err := d.registry.FindByName(options.Name)

		if err != nil {
			return nil, source, "", nil, err
		}

		return e, source, "", noop, nil
	}

	if ext != "" {
		if e, err := d.registry.FindFirstByExtension(ext); err == nil {
			return e, source, "", noop, nil
		}
	}

	if options.MimeType != "" {
		if e, err := d.registry.FindFirstByMimeType(options.MimeType); err == nil {
			return e, source, "", noop, nil
		}
	}

	path, cleanup, err := source.Materialize()

	if err != nil {
		return nil, source, "", nil, err
	}

	detected, err := mimetype.DetectFile(path)

	if err != nil {
		cleanup()

		return nil, source, "", nil, &extractor.InvalidInputError{Reason: err.Error(), Path: path}
	}

	sniffed := detected.String()

	e, err := d.registry.FindFirstByMimeType(sniffed)

	if err != nil {
		cleanup()

		return nil, source, "", nil, err
	}

	return e, extractor.PathSource(path), sniffed, cleanup, nil
}

// ExtensionOf returns the lower-cased text after the last dot of a
// filename, or an empty string.
func ExtensionOf(filename string) string {
	idx := strings.LastIndexByte(filename, '.')

	if idx < 0 || idx == len(filename)-1 {
		return ""
	}

	return strings.ToLower(filename[idx+1:])
}
