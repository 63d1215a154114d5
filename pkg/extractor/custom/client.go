package custom

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/qwazr/extractor-sub000/pkg/extractor"
)

var (
	_ extractor.Extractor = (*Client)(nil)
)

// Client forwards extraction to a remote endpoint speaking this
// service's wire format. It declares no extensions or MIME types
// unless configured with some, so by default it must be selected by
// name.
type Client struct {
	name string
	url  string

	extensions []string
	mimeTypes  []string

	client *http.Client
}

type Option func(*Client)

func New(name, url string, options ...Option) (*Client, error) {
	if url == "" || (!strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://")) {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		name: name,
		url:  url,

		client: http.DefaultClient,
	}

	for _, option := range options {
		option(c)
	}

	if c.name == "" {
		c.name = "custom"
	}

	return c, nil
}

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithExtensions(extensions ...string) Option {
	return func(c *Client) {
		c.extensions = extensions
	}
}

func WithMimeTypes(mimeTypes ...string) Option {
	return func(c *Client) {
		c.mimeTypes = mimeTypes
	}
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Parameters() []extractor.Field {
	return nil
}

func (c *Client) Fields() []extractor.Field {
	return nil
}

func (c *Client) Extensions() []string {
	return c.extensions
}

func (c *Client) MimeTypes() []string {
	return c.mimeTypes
}

func (c *Client) Extract(ctx context.Context, source extractor.Source, options *extractor.ExtractOptions) (*extractor.Result, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	body, err := source.Open()

	if err != nil {
		return nil, err
	}

	defer body.Close()

	req, _ := http.NewRequestWithContext(ctx, "POST", c.url, body)

	if options.MimeType != "" {
		req.Header.Set("Content-Type", options.MimeType)
	} else {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, extractor.Fail(c.name, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)

		return nil, extractor.Fail(c.name, errors.New(resp.Status+": "+strings.TrimSpace(string(data))))
	}

	var result extractor.Result

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, extractor.Fail(c.name, err)
	}

	if result.Documents == nil {
		result.Documents = []*extractor.FieldSet{}
	}

	return &result, nil
}
