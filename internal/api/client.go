package api

import (
	"net/http"
	"net/url"
)

// Client talks to the document API. Durable state (documents, metadata)
// lives behind it; the client only reads and patches.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func New(funcs ...OptionFunc) *Client {
	opts := NewOptions(funcs...)
	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
	}
}

func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}
