package registry_test

import (
	"context"
	"sync"
	"testing"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
	"github.com/qwazr/extractor-sub000/pkg/registry"

	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	name string

	extensions []string
	mimeTypes  []string
}

func (f *fakeExtractor) Name() string {
	return f.name
}

func (f *fakeExtractor) Parameters() []extractor.Field {
	return nil
}

func (f *fakeExtractor) Fields() []extractor.Field {
	return []extractor.Field{extractor.StringField("content", "")}
}

func (f *fakeExtractor) Extensions() []string {
	return f.extensions
}

func (f *fakeExtractor) MimeTypes() []string {
	return f.mimeTypes
}

func (f *fakeExtractor) Extract(ctx context.Context, source extractor.Source, options *extractor.ExtractOptions) (*extractor.Result, error) {
	return extractor.NewResult(), nil
}

func TestRegisterAndFindByName(t *testing.T) {
	t.Parallel()

	r := registry.New()

	first := &fakeExtractor{name: "pdf"}
	require.NoError(t, r.Register(first))

	found, err := r.FindByName("pdf")
	require.NoError(t, err)
	require.Same(t, extractor.Extractor(first), found)

	// names are matched as declared, case-sensitive
	_, err = r.FindByName("PDF")

	var notFound *extractor.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "PDF", notFound.Value)
}

func TestRegisterLastWriteWins(t *testing.T) {
	t.Parallel()

	r := registry.New()

	first := &fakeExtractor{name: "pdf"}
	second := &fakeExtractor{name: "pdf"}

	require.NoError(t, r.Register(first))
	require.NoError(t, r.Register(second))

	found, err := r.FindByName("pdf")
	require.NoError(t, err)
	require.Same(t, extractor.Extractor(second), found)

	require.Equal(t, []string{"pdf"}, r.Names())
}

func TestRegisterInvalid(t *testing.T) {
	t.Parallel()

	r := registry.New()

	var registration *extractor.RegistrationError
	require.ErrorAs(t, r.Register(nil), &registration)
	require.ErrorAs(t, r.Register(&fakeExtractor{}), &registration)
}

func TestRegisterAllContinuesOnFailure(t *testing.T) {
	t.Parallel()

	r := registry.New()

	err := r.RegisterAll(
		&fakeExtractor{name: "a"},
		&fakeExtractor{},
		&fakeExtractor{name: "b"},
	)

	var registration *extractor.RegistrationError
	require.ErrorAs(t, err, &registration)

	require.Equal(t, []string{"a", "b"}, r.Names())
}

func TestFindFirstByExtensionPrecedence(t *testing.T) {
	t.Parallel()

	r := registry.New()

	first := &fakeExtractor{name: "a", extensions: []string{"x"}}
	second := &fakeExtractor{name: "b", extensions: []string{"x"}}

	require.NoError(t, r.Register(first))
	require.NoError(t, r.Register(second))

	found, err := r.FindFirstByExtension("x")
	require.NoError(t, err)
	require.Same(t, extractor.Extractor(first), found)
}

func TestFindFirstByMimeTypePrecedence(t *testing.T) {
	t.Parallel()

	r := registry.New()

	first := &fakeExtractor{name: "a", mimeTypes: []string{"application/pdf"}}
	second := &fakeExtractor{name: "b", mimeTypes: []string{"application/pdf"}}

	require.NoError(t, r.Register(first))
	require.NoError(t, r.Register(second))

	found, err := r.FindFirstByMimeType("application/pdf")
	require.NoError(t, err)
	require.Same(t, extractor.Extractor(first), found)
}

func TestCaseNormalization(t *testing.T) {
	t.Parallel()

	r := registry.New()

	e := &fakeExtractor{
		name: "pdf",

		extensions: []string{"PDF"},
		mimeTypes:  []string{"Application/PDF"},
	}

	require.NoError(t, r.Register(e))

	found, err := r.FindFirstByExtension("pdf")
	require.NoError(t, err)
	require.Same(t, extractor.Extractor(e), found)

	found, err = r.FindFirstByExtension(".Pdf")
	require.NoError(t, err)
	require.Same(t, extractor.Extractor(e), found)

	found, err = r.FindFirstByMimeType("application/pdf")
	require.NoError(t, err)
	require.Same(t, extractor.Extractor(e), found)

	found, err = r.FindFirstByMimeType("application/pdf; charset=binary")
	require.NoError(t, err)
	require.Same(t, extractor.Extractor(e), found)
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	r := registry.New()

	var notFound *extractor.NotFoundError

	_, err := r.FindByName("missing")
	require.ErrorAs(t, err, &notFound)

	_, err = r.FindFirstByExtension("zzz")
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "zzz", notFound.Value)

	_, err = r.FindFirstByMimeType("application/zzz")
	require.ErrorAs(t, err, &notFound)
}

func TestRegistryReregisterReindexes(t *testing.T) {
	t.Parallel()

	r := registry.New()

	first := &fakeExtractor{name: "dual", extensions: []string{"a"}}
	second := &fakeExtractor{name: "dual", extensions: []string{"b"}}

	require.NoError(t, r.Register(first))
	require.NoError(t, r.Register(second))

	found, err := r.FindByName("dual")
	require.NoError(t, err)
	require.Same(t, extractor.Extractor(second), found)

	// indexes are fully rebuilt on overwrite: the old extension claim
	// is gone, the new one resolves
	var notFound *extractor.NotFoundError

	_, err = r.FindFirstByExtension("a")
	require.ErrorAs(t, err, &notFound)

	found, err = r.FindFirstByExtension("b")
	require.NoError(t, err)
	require.Same(t, extractor.Extractor(second), found)
}

func TestDescriptor(t *testing.T) {
	t.Parallel()

	r := registry.New()

	e := &fakeExtractor{
		name: "pdf",

		extensions: []string{"pdf"},
		mimeTypes:  []string{"application/pdf"},
	}

	require.NoError(t, r.Register(e))

	descriptor, err := r.Descriptor("pdf")
	require.NoError(t, err)
	require.Equal(t, "pdf", descriptor.Name)
	require.Equal(t, []string{"pdf"}, descriptor.Extensions)
	require.Equal(t, []string{"application/pdf"}, descriptor.MimeTypes)
	require.Len(t, descriptor.Fields, 1)

	_, err = r.Descriptor("missing")

	var notFound *extractor.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := registry.New()
	require.NoError(t, r.Register(&fakeExtractor{name: "seed", extensions: []string{"seed"}}))

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()

			r.Register(&fakeExtractor{name: "seed", extensions: []string{"seed"}})
		}()

		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				if _, err := r.FindFirstByExtension("seed"); err != nil {
					t.Error(err)
					return
				}

				r.Names()
			}
		}()
	}

	wg.Wait()
}
