package config

import (
	"errors"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
	"github.com/qwazr/extractor-sub000/pkg/extractor/csvfile"
	"github.com/qwazr/extractor-sub000/pkg/extractor/custom"
	"github.com/qwazr/extractor-sub000/pkg/extractor/docx"
	"github.com/qwazr/extractor-sub000/pkg/extractor/eml"
	"github.com/qwazr/extractor-sub000/pkg/extractor/html"
	"github.com/qwazr/extractor-sub000/pkg/extractor/markdown"
	"github.com/qwazr/extractor-sub000/pkg/extractor/mbox"
	"github.com/qwazr/extractor-sub000/pkg/extractor/odt"
	"github.com/qwazr/extractor-sub000/pkg/extractor/pdf"
	"github.com/qwazr/extractor-sub000/pkg/extractor/text"
	"github.com/qwazr/extractor-sub000/pkg/extractor/xlsx"
)

type extractorConfig struct {
	Type string `yaml:"type"`

	URL string `yaml:"url"`

	Extensions []string `yaml:"extensions"`
	MimeTypes  []string `yaml:"mime_types"`
}

// registerDefaults registers every built-in extractor. Registration
// order matters: it is the precedence order for shared extensions and
// MIME types.
func (cfg *Config) registerDefaults() error {
	return cfg.Registry.RegisterAll(
		text.New(),
		markdown.New(),
		html.New(),
		csvfile.New(),
		pdf.New(),
		eml.New(),
		mbox.New(),
		xlsx.New(),
		docx.New(),
		odt.New(),
	)
}

// registerExtractors builds the registry from the extractors section,
// preserving the file's declaration order. An empty or absent section
// falls back to the defaults.
func (cfg *Config) registerExtractors(f *configFile) error {
	if f.Extractors.Kind == 0 || len(f.Extractors.Content) == 0 {
		return cfg.registerDefaults()
	}

	var configs map[string]extractorConfig

	if err := f.Extractors.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Extractors.Content {
		id := node.Value

		config, ok := configs[id]

		if !ok {
			continue
		}

		e, err := createExtractor(id, config)

		if err != nil {
			return err
		}

		if err := cfg.Registry.Register(e); err != nil {
			return err
		}
	}

	return nil
}

func createExtractor(id string, config extractorConfig) (extractor.Extractor, error) {
	kind := config.Type

	if kind == "" {
		kind = id
	}

	switch kind {
	case "text":
		return text.New(), nil

	case "markdown":
		return markdown.New(), nil

	case "html":
		return html.New(), nil

	case "csv":
		return csvfile.New(), nil

	case "pdf":
		return pdf.New(), nil

	case "eml":
		return eml.New(), nil

	case "mbox":
		return mbox.New(), nil

	case "xlsx":
		return xlsx.New(), nil

	case "docx":
		return docx.New(), nil

	case "odt":
		return odt.New(), nil

	case "custom":
		var options []custom.Option

		if len(config.Extensions) > 0 {
			options = append(options, custom.WithExtensions(config.Extensions...))
		}

		if len(config.MimeTypes) > 0 {
			options = append(options, custom.WithMimeTypes(config.MimeTypes...))
		}

		return custom.New(id, config.URL, options...)

	default:
		return nil, errors.New("invalid extractor type: " + kind)
	}
}
