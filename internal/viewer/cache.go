package viewer

import (
	"context"
	"strings"
	"sync"

	"github.com/kk-code-lab/docview/internal/engine"
)

// TextCache memoizes extracted page text for one document handle. Entries
// are written once and never evicted; a new handle gets a new cache.
type TextCache struct {
	doc engine.Document

	mu    sync.Mutex
	pages map[int]string
}

func NewTextCache(doc engine.Document) *TextCache {
	return &TextCache{
		doc:   doc,
		pages: make(map[int]string),
	}
}

// GetPageText returns the text of page, joining its fragments with single
// spaces. Without a handle it returns an empty string. Extraction errors
// are not cached.
func (c *TextCache) GetPageText(ctx context.Context, page int) (string, error) {
	if c == nil || c.doc == nil {
		return "", nil
	}

	c.mu.Lock()
	text, ok := c.pages[page]
	c.mu.Unlock()
	if ok {
		return text, nil
	}

	p, err := c.doc.Page(ctx, page)
	if err != nil {
		return "", err
	}
	content, err := p.TextContent(ctx)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(content.Items))
	for i, item := range content.Items {
		parts[i] = item.Str
	}
	text = strings.Join(parts, " ")

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.pages[page]; ok {
		return existing, nil
	}
	c.pages[page] = text
	return text, nil
}

func (c *TextCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}
