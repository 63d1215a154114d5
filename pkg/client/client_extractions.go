package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
)

type ExtractionService struct {
	Options []RequestOption
}

func NewExtractionService(opts ...RequestOption) ExtractionService {
	return ExtractionService{
		Options: opts,
	}
}

// ExtractionRequest runs one extraction. Name selects an extractor
// explicitly; otherwise the service auto-detects from Filename,
// MimeType and the content. Content is the byte stream to extract;
// Path references a file local to the server instead.
type ExtractionRequest struct {
	Name string

	Filename string
	MimeType string

	Path    string
	Content io.Reader

	Parameters url.Values
}

func (s *ExtractionService) New(ctx context.Context, input ExtractionRequest, opts ...RequestOption) (*extractor.Result, error) {
	c := newRequestConfig(append(s.Options, opts...)...)

	endpoint := c.URL + "/v1/extract"

	if input.Name != "" {
		endpoint = c.URL + "/v1/extractors/" + input.Name
	}

	query := url.Values{}

	for name, values := range input.Parameters {
		query[name] = values
	}

	if input.Filename != "" {
		query.Set("filename", input.Filename)
	}

	if input.MimeType != "" {
		query.Set("type", input.MimeType)
	}

	if input.Path != "" {
		query.Set("path", input.Path)
	}

	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", endpoint, input.Content)
	req.Header.Set("Content-Type", "application/octet-stream")

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)

		return nil, errors.New(resp.Status + ": " + string(data))
	}

	var result extractor.Result

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
