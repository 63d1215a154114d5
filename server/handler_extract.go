package server

import (
	"net/http"
	"net/url"

	"github.com/qwazr/extractor-sub000/pkg/dispatcher"
	"github.com/qwazr/extractor-sub000/pkg/extractor"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	writeJson(w, h.Registry.Names())
}

func (h *Handler) handleDescriptor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	descriptor, err := h.Registry.Descriptor(name)

	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJson(w, descriptor)
}

func (h *Handler) handleExtractByName(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, chi.URLParam(r, "name"))
}

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, "")
}

// dispatch runs an extraction request. The content is either a
// server-local file referenced by the path query parameter or the
// request body; filename and type provide resolution hints, every
// other query parameter is passed to the extractor.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, name string) {
	query := r.URL.Query()

	source := extractor.ReaderSource(r.Body)

	if path := query.Get("path"); path != "" {
		source = extractor.PathSource(path)
	}

	mimeType := query.Get("type")

	if mimeType == "" {
		if header := r.Header.Get("Content-Type"); header != "" && header != "application/octet-stream" {
			mimeType = header
		}
	}

	options := &dispatcher.DispatchOptions{
		Name: name,

		Filename: query.Get("filename"),
		MimeType: mimeType,

		Parameters: parameters(query),
	}

	result, err := h.Dispatcher.Dispatch(r.Context(), source, options)

	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJson(w, result)
}

var reservedParameters = map[string]struct{}{
	"path":     {},
	"filename": {},
	"type":     {},
}

func parameters(query url.Values) *extractor.FieldSet {
	set := extractor.NewFieldSet()

	for name, values := range query {
		if _, ok := reservedParameters[name]; ok {
			continue
		}

		for _, value := range values {
			set.Add(name, value)
		}
	}

	if set.Len() == 0 {
		return nil
	}

	return set
}
