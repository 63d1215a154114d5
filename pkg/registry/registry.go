// Package registry holds the directory of registered extractors,
// queryable by name, file extension or MIME type.
package registry

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
)

// Registry indexes extractors three ways: exact name, extension and
// MIME type. Registration is rare and takes the write lock; every
// lookup takes the read lock, so concurrent readers never observe a
// partially updated index.
//
// Names are stored and matched as declared, case-sensitive. Extensions
// (leading dot stripped) and MIME types are lower-cased on both
// registration and lookup.
type Registry struct {
	mu sync.RWMutex

	extractors  map[string]extractor.Extractor
	descriptors map[string]extractor.Descriptor

	extensions map[string][]string
	mimeTypes  map[string][]string
}

func New() *Registry {
	return &Registry{
		extractors:  map[string]extractor.Extractor{},
		descriptors: map[string]extractor.Descriptor{},

		extensions: map[string][]string{},
		mimeTypes:  map[string][]string{},
	}
}

// Register adds an extractor under its declared name, extensions and
// MIME types. Re-registering a name overwrites the previous entry and
// fully re-indexes its extensions and MIME types: stale claims are
// removed, and the name's precedence position moves to the back of any
// extension or MIME list it still shares.
func (r *Registry) Register(e extractor.Extractor) error {
	if e == nil {
		return &extractor.RegistrationError{Err: errors.New("nil extractor")}
	}

	name := e.Name()

	if name == "" {
		return &extractor.RegistrationError{Err: errors.New("empty extractor name")}
	}

	descriptor := extractor.Describe(e)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.extractors[name]; ok {
		r.unindex(name)
	}

	r.extractors[name] = e
	r.descriptors[name] = descriptor

	for _, ext := range descriptor.Extensions {
		key := NormalizeExtension(ext)

		if key == "" {
			continue
		}

		r.extensions[key] = append(r.extensions[key], name)
	}

	for _, mimeType := range descriptor.MimeTypes {
		key := NormalizeMimeType(mimeType)

		if key == "" {
			continue
		}

		r.mimeTypes[key] = append(r.mimeTypes[key], name)
	}

	return nil
}

// RegisterAll registers each extractor in order. A failure is scoped
// to that one registration; the rest are still attempted and all
// failures are returned joined.
func (r *Registry) RegisterAll(extractors ...extractor.Extractor) error {
	var errs []error

	for _, e := range extractors {
		if err := r.Register(e); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// FindByName returns the extractor registered under name, exact match.
func (r *Registry) FindByName(name string) (extractor.Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.extractors[name]

	if !ok {
		return nil, &extractor.NotFoundError{Kind: "extractor", Value: name}
	}

	return e, nil
}

// FindFirstByExtension returns the first-registered extractor claiming
// the extension.
func (r *Registry) FindFirstByExtension(ext string) (extractor.Extractor, error) {
	key := NormalizeExtension(ext)

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.extensions[key]

	if len(names) == 0 {
		return nil, &extractor.NotFoundError{Kind: "extension", Value: key}
	}

	return r.extractors[names[0]], nil
}

// FindFirstByMimeType returns the first-registered extractor claiming
// the MIME type.
func (r *Registry) FindFirstByMimeType(mimeType string) (extractor.Extractor, error) {
	key := NormalizeMimeType(mimeType)

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.mimeTypes[key]

	if len(names) == 0 {
		return nil, &extractor.NotFoundError{Kind: "mime type", Value: key}
	}

	return r.extractors[names[0]], nil
}

// Names returns a sorted snapshot of all registered names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.extractors))

	for name := range r.extractors {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Descriptor returns the capability declaration snapshot taken when
// name was registered.
func (r *Registry) Descriptor(name string) (extractor.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptor, ok := r.descriptors[name]

	if !ok {
		return extractor.Descriptor{}, &extractor.NotFoundError{Kind: "extractor", Value: name}
	}

	return descriptor, nil
}

// unindex removes name from the extension and MIME indexes. Caller
// holds the write lock.
func (r *Registry) unindex(name string) {
	for key, names := range r.extensions {
		r.extensions[key] = remove(names, name)

		if len(r.extensions[key]) == 0 {
			delete(r.extensions, key)
		}
	}

	for key, names := range r.mimeTypes {
		r.mimeTypes[key] = remove(names, name)

		if len(r.mimeTypes[key]) == 0 {
			delete(r.mimeTypes, key)
		}
	}
}

func remove(names []string, name string) []string {
	var result []string

	for _, n := range names {
		if n == name {
			continue
		}

		result = append(result, n)
	}

	return result
}

// NormalizeExtension lowercases an extension and strips a leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// NormalizeMimeType lowercases a MIME type and drops any parameters.
func NormalizeMimeType(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")

	return strings.ToLower(strings.TrimSpace(mimeType))
}
