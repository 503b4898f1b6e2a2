package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

type Document struct {
	ID          string     `json:"id"`
	Fingerprint string     `json:"fingerprint"`
	Key         string     `json:"key"`
	TenantID    string     `json:"tenantId"`
	Title       string     `json:"title"`
	Mime        string     `json:"mime"`
	Size        int64      `json:"size"`
	Origin      *string    `json:"origin"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// IndexData is the editable, search-relevant part of a document.
type IndexData struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Type  string   `json:"type"`
}

func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	var docs []Document
	if err := c.jsonRequest(ctx, http.MethodGet, "/document/all", nil, &docs); err != nil {
		return nil, errors.WithStack(err)
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}

// GetDocument looks a document up by id. The API has no single-document
// endpoint yet, so this filters the full listing.
func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	docs, err := c.ListDocuments(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for i := range docs {
		if docs[i].ID == id {
			return &docs[i], nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "document %q", id)
}

func (c *Client) UpdateIndex(ctx context.Context, id string, data IndexData) error {
	endpoint := (&url.URL{Path: "/document"}).JoinPath(id)
	if data.Tags == nil {
		data.Tags = []string{}
	}
	if err := c.jsonRequest(ctx, http.MethodPatch, endpoint.String(), data, nil); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// StreamURL is the location serving the raw bytes of a document.
func (c *Client) StreamURL(id string) string {
	return c.baseURL.JoinPath("/document/stream", id).String()
}

// ShareURL builds a one-time share link for id using token.
func (c *Client) ShareURL(id, token string) string {
	return c.baseURL.JoinPath("/share/once", id+"-"+token).String()
}

var ErrNotFound = errors.New("not found")
