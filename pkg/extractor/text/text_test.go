package text_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
	"github.com/qwazr/extractor-sub000/pkg/extractor/text"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	e := text.New()

	result, err := e.Extract(context.Background(), extractor.ReaderSource(strings.NewReader("hello world")), &extractor.ExtractOptions{})
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)

	content, ok := result.Documents[0].First("content")
	require.True(t, ok)
	require.Equal(t, "hello world", content)

	charset, ok := result.Metadata.First("charset")
	require.True(t, ok)
	require.Equal(t, "utf-8", charset)
}

func TestExtractForcedCharset(t *testing.T) {
	t.Parallel()

	e := text.New()

	// "café" in ISO 8859-1
	data := []byte{'c', 'a', 'f', 0xE9}

	options := &extractor.ExtractOptions{
		Parameters: extractor.NewFieldSet().Add("charset", "iso-8859-1"),
	}

	result, err := e.Extract(context.Background(), extractor.ReaderSource(bytes.NewReader(data)), options)
	require.NoError(t, err)

	content, ok := result.Documents[0].First("content")
	require.True(t, ok)
	require.Equal(t, "café", content)
}

func TestExtractDetectsCharset(t *testing.T) {
	t.Parallel()

	e := text.New()

	data := []byte{'c', 'a', 'f', 0xE9}

	result, err := e.Extract(context.Background(), extractor.ReaderSource(bytes.NewReader(data)), &extractor.ExtractOptions{})
	require.NoError(t, err)

	content, ok := result.Documents[0].First("content")
	require.True(t, ok)
	require.Contains(t, content, "caf")
}

func TestDescriptor(t *testing.T) {
	t.Parallel()

	e := text.New()

	require.Equal(t, "text", e.Name())
	require.Contains(t, e.Extensions(), "txt")
	require.Contains(t, e.MimeTypes(), "text/plain")
}
