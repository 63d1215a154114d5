package csvfile_test

import (
	"context"
	"strings"
	"testing"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
	"github.com/qwazr/extractor-sub000/pkg/extractor/csvfile"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	e := csvfile.New()

	source := extractor.ReaderSource(strings.NewReader("name,amount\ncoffee,3.50\n"))

	result, err := e.Extract(context.Background(), source, &extractor.ExtractOptions{})
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	require.Equal(t, []any{"name amount", "coffee 3.50"}, result.Documents[0].Get("content"))

	columns, _ := result.Metadata.First("columns")
	require.Equal(t, 2, columns)

	rows, _ := result.Metadata.First("rows")
	require.Equal(t, 2, rows)
}

func TestExtractSeparator(t *testing.T) {
	t.Parallel()

	e := csvfile.New()

	tests := []struct {
		name    string
		input   string
		options *extractor.ExtractOptions
	}{
		{
			name:  "parameter",
			input: "a;b\n",
			options: &extractor.ExtractOptions{
				Parameters: extractor.NewFieldSet().Add("separator", ";"),
			},
		},
		{
			name:  "tsv extension",
			input: "a\tb\n",
			options: &extractor.ExtractOptions{
				Extension: "tsv",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := e.Extract(context.Background(), extractor.ReaderSource(strings.NewReader(tt.input)), tt.options)
			require.NoError(t, err)

			require.Equal(t, []any{"a b"}, result.Documents[0].Get("content"))
		})
	}
}

func TestExtractMalformed(t *testing.T) {
	t.Parallel()

	e := csvfile.New()

	source := extractor.ReaderSource(strings.NewReader("a,\"unterminated\n"))

	_, err := e.Extract(context.Background(), source, &extractor.ExtractOptions{})

	var extraction *extractor.ExtractionError
	require.ErrorAs(t, err, &extraction)
	require.Equal(t, "csv", extraction.Extractor)
}
