package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
)

type ExtractorService struct {
	Options []RequestOption
}

func NewExtractorService(opts ...RequestOption) ExtractorService {
	return ExtractorService{
		Options: opts,
	}
}

// List returns the names of all registered extractors.
func (s *ExtractorService) List(ctx context.Context, opts ...RequestOption) ([]string, error) {
	c := newRequestConfig(append(s.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, "GET", c.URL+"/v1/extractors", nil)

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	var names []string

	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, err
	}

	return names, nil
}

// Descriptor returns the capability declaration of one extractor.
func (s *ExtractorService) Descriptor(ctx context.Context, name string, opts ...RequestOption) (*extractor.Descriptor, error) {
	c := newRequestConfig(append(s.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, "GET", c.URL+"/v1/extractors/"+name, nil)

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	var descriptor extractor.Descriptor

	if err := json.NewDecoder(resp.Body).Decode(&descriptor); err != nil {
		return nil, err
	}

	return &descriptor, nil
}
