package extractor

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Source is the input of one extraction call: either a file-system
// path or a byte stream. The two are behaviorally equivalent; an
// extractor that needs random access over a stream materializes it to
// a temporary file and removes that file on every exit path.
//
// A stream is owned by the caller and is never closed here; a path is
// never deleted.
type Source struct {
	Path string

	Reader io.Reader
}

func PathSource(path string) Source {
	return Source{
		Path: path,
	}
}

func ReaderSource(r io.Reader) Source {
	return Source{
		Reader: r,
	}
}

// Validate checks that the source references a regular file or carries
// a stream.
func (s Source) Validate() error {
	if s.Path != "" {
		info, err := os.Stat(s.Path)

		if os.IsNotExist(err) {
			return &NotFoundError{Kind: "file", Value: s.Path}
		}

		if err != nil {
			return &InvalidInputError{Reason: err.Error(), Path: s.Path}
		}

		if !info.Mode().IsRegular() {
			return &InvalidInputError{Reason: "not a regular file", Path: s.Path}
		}

		return nil
	}

	if s.Reader == nil {
		return &InvalidInputError{Reason: "no path or stream supplied"}
	}

	return nil
}

// Open returns the content as a reader. The returned closer is a no-op
// for caller-owned streams.
func (s Source) Open() (io.ReadCloser, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if s.Path != "" {
		return os.Open(s.Path)
	}

	return io.NopCloser(s.Reader), nil
}

// Materialize returns a file-system path for the content. A path
// source is returned as-is; a stream is copied to a temporary file.
// The returned cleanup must be called on every exit path and removes
// the temporary file if one was created.
func (s Source) Materialize() (string, func(), error) {
	if err := s.Validate(); err != nil {
		return "", nil, err
	}

	if s.Path != "" {
		return s.Path, func() {}, nil
	}

	path := filepath.Join(os.TempDir(), "extractor-"+uuid.NewString())

	f, err := os.Create(path)

	if err != nil {
		return "", nil, err
	}

	if _, err := io.Copy(f, s.Reader); err != nil {
		f.Close()
		os.Remove(path)

		return "", nil, err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)

		return "", nil, err
	}

	return path, func() { os.Remove(path) }, nil
}
