package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
	"github.com/qwazr/extractor-sub000/pkg/extractor/pdf"

	"github.com/stretchr/testify/require"
)

// buildDocument assembles a single-page document with an info
// dictionary, tracking object offsets so the xref table is valid.
func buildDocument() []byte {
	var buf bytes.Buffer
	var offsets []int

	buf.WriteString("%PDF-1.4\n")

	object := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	content := "BT /F1 12 Tf 72 720 Td (Hello PDF) Tj ET"

	object("<< /Type /Catalog /Pages 2 0 R >>")
	object("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	object("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>")
	object(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	object("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	object("<< /Title (Quarterly Report) /Author (Jane Doe) >>")

	start := buf.Len()

	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")

	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}

	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 6 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, start)

	return buf.Bytes()
}

func TestExtract(t *testing.T) {
	t.Parallel()

	e := pdf.New()

	result, err := e.Extract(context.Background(), extractor.ReaderSource(bytes.NewReader(buildDocument())), nil)
	require.NoError(t, err)

	pages, ok := result.Metadata.First("page_count")
	require.True(t, ok)
	require.Equal(t, 1, pages)

	title, ok := result.Metadata.First("title")
	require.True(t, ok)
	require.Equal(t, "Quarterly Report", title)

	author, ok := result.Metadata.First("author")
	require.True(t, ok)
	require.Equal(t, "Jane Doe", author)

	require.Len(t, result.Documents, 1)

	content, ok := result.Documents[0].First("content")
	require.True(t, ok)
	require.Contains(t, content, "Hello")
}

func TestExtractMalformed(t *testing.T) {
	t.Parallel()

	e := pdf.New()

	_, err := e.Extract(context.Background(), extractor.ReaderSource(strings.NewReader("%PDF-1.4 garbage")), nil)

	var extraction *extractor.ExtractionError
	require.ErrorAs(t, err, &extraction)
	require.Equal(t, "pdf", extraction.Extractor)
}

func TestDescriptor(t *testing.T) {
	t.Parallel()

	descriptor := extractor.Describe(pdf.New())

	require.Equal(t, "pdf", descriptor.Name)
	require.Equal(t, []string{"pdf"}, descriptor.Extensions)
	require.Equal(t, []string{"application/pdf"}, descriptor.MimeTypes)
}
