package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qwazr/extractor-sub000/pkg/dispatcher"
	"github.com/qwazr/extractor-sub000/pkg/extractor"
	"github.com/qwazr/extractor-sub000/pkg/registry"
)

type Config struct {
	Address string
	Token   string

	Registry   *registry.Registry
	Dispatcher *dispatcher.Dispatcher
}

type configFile struct {
	Server serverConfig `yaml:"server"`

	Extractors yaml.Node `yaml:"extractors"`
}

type serverConfig struct {
	Address string `yaml:"address"`
	Token   string `yaml:"token"`
}

// Parse loads the configuration file and builds the registry and
// dispatcher from it. A missing or empty path yields the defaults:
// every built-in extractor registered, listening on :8080.
func Parse(path string) (*Config, error) {
	cfg := &Config{
		Address: ":8080",

		Registry: registry.New(),
	}

	cfg.Dispatcher = dispatcher.New(cfg.Registry)

	if path == "" {
		return cfg, cfg.registerDefaults()
	}

	data, err := os.ReadFile(path)

	if errors.Is(err, fs.ErrNotExist) {
		return cfg, cfg.registerDefaults()
	}

	if err != nil {
		return nil, err
	}

	var file configFile

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	if file.Server.Address != "" {
		cfg.Address = file.Server.Address
	}

	cfg.Token = file.Server.Token

	if err := cfg.registerExtractors(&file); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RegisterExtractor registers an externally produced extractor, e.g.
// one obtained from a plugin loader.
func (cfg *Config) RegisterExtractor(e extractor.Extractor) error {
	return cfg.Registry.Register(e)
}
