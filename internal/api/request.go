package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// resolve joins path onto the base URL. Absolute URLs pass through untouched.
func (c *Client) resolve(path string) (*url.URL, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		u, err := url.Parse(path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return u, nil
	}

	ref, err := url.Parse(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	u := c.baseURL.JoinPath(ref.Path)
	u.RawQuery = ref.RawQuery
	return u, nil
}

func (c *Client) request(ctx context.Context, method string, path string, header http.Header, body io.Reader, result io.Writer) error {
	u, err := c.resolve(path)
	if err != nil {
		return errors.WithStack(err)
	}

	slog.DebugContext(ctx, "new client request",
		slog.String("method", method),
		slog.String("path", u.Path),
		slog.String("host", u.Host),
	)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return errors.WithStack(err)
	}

	for k, v := range header {
		req.Header[k] = v
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}

	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		text, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &StatusError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	if result == nil {
		result = io.Discard
	}

	if _, err := io.Copy(result, res.Body); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Client) jsonRequest(ctx context.Context, method string, path string, payload any, result any) error {
	header := http.Header{}
	header.Set("Accept", "application/json")

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.WithStack(err)
		}
		body = bytes.NewReader(data)
		header.Set("Content-Type", "application/json")
	}

	var buff bytes.Buffer

	if err := c.request(ctx, method, path, header, body, &buff); err != nil {
		return err
	}

	if result == nil || buff.Len() == 0 {
		return nil
	}

	if err := json.Unmarshal(buff.Bytes(), result); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Fetch returns the raw bytes served at path.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	var buff bytes.Buffer
	if err := c.request(ctx, http.MethodGet, path, nil, nil, &buff); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// Head reports whether a HEAD request against path succeeds with a 2xx status.
func (c *Client) Head(ctx context.Context, path string) (bool, error) {
	err := c.request(ctx, http.MethodHead, path, nil, nil, nil)
	if err == nil {
		return true, nil
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return false, nil
	}

	return false, err
}
