package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/qwazr/extractor-sub000/config"
	"github.com/qwazr/extractor-sub000/pkg/extractor"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Handler struct {
	*config.Config
}

func New(cfg *config.Config) *Handler {
	return &Handler{
		Config: cfg,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	if h.Token != "" {
		r.Use(h.authenticate)
	}

	h.Attach(r)

	return r
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/v1/extractors", h.handleList)
	r.Get("/v1/extractors/{name}", h.handleDescriptor)
	r.Post("/v1/extractors/{name}", h.handleExtractByName)
	r.Post("/v1/extract", h.handleExtract)
}

func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		if !strings.HasPrefix(header, "Bearer ") || strings.TrimPrefix(header, "Bearer ") != h.Token {
			writeError(w, http.StatusUnauthorized, errors.New("invalid token"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	resp := ErrorResponse{
		Error: Error{
			Kind:    errorKind(err),
			Message: err.Error(),
		},
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(resp)
}

// statusOf maps the core error taxonomy to HTTP status codes:
// not-found resolutions to 404, unusable input to 400, extraction and
// registration failures to 500.
func statusOf(err error) int {
	var notFound *extractor.NotFoundError

	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}

	var invalidInput *extractor.InvalidInputError

	if errors.As(err, &invalidInput) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func errorKind(err error) string {
	var notFound *extractor.NotFoundError

	if errors.As(err, &notFound) {
		return "not_found"
	}

	var invalidInput *extractor.InvalidInputError

	if errors.As(err, &invalidInput) {
		return "invalid_input"
	}

	var extraction *extractor.ExtractionError

	if errors.As(err, &extraction) {
		return "extraction_failed"
	}

	var registration *extractor.RegistrationError

	if errors.As(err, &registration) {
		return "registration_failed"
	}

	return "internal"
}
