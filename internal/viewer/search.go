package viewer

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
)

// ErrSearchInProgress rejects a search issued while another one is scanning.
var ErrSearchInProgress = errors.New("search already in progress")

type SearchResult struct {
	Query string
	// Page is the matching page, 0 on a miss.
	Page  int
	Found bool
	// Scanned counts the pages examined.
	Scanned int
}

// searchToken occupies the single in-flight search slot.
type searchToken struct {
	cancel context.CancelFunc
}

func (c *Controller) cancelSearchLocked() {
	if c.search != nil {
		c.search.cancel()
		c.search = nil
	}
}

// CancelSearch stops a running scan, if any.
func (c *Controller) CancelSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelSearchLocked()
}

func (c *Controller) Searching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search != nil
}

// Search scans pages cyclically starting at the current page and moves to
// the first page whose text contains query, compared case-folded. A miss
// leaves the page unchanged. Blank queries and unloaded documents do
// nothing. A concurrent call is rejected with ErrSearchInProgress; a source
// change or load error during the scan cancels it.
func (c *Controller) Search(ctx context.Context, query string) (SearchResult, error) {
	return c.scan(ctx, query, 0)
}

// SearchNext is Search starting from the page after the current one, so a
// repeated query advances through matches. The current page is scanned last.
func (c *Controller) SearchNext(ctx context.Context, query string) (SearchResult, error) {
	return c.scan(ctx, query, 1)
}

func (c *Controller) scan(ctx context.Context, query string, skip int) (SearchResult, error) {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(query))
	result := SearchResult{Query: query}
	if needle == "" {
		return result, nil
	}

	c.mu.Lock()
	if c.search != nil {
		c.mu.Unlock()
		return result, ErrSearchInProgress
	}
	if c.cache == nil || c.pageCount <= 0 {
		c.mu.Unlock()
		return result, nil
	}
	scanCtx, cancel := context.WithCancel(ctx)
	token := &searchToken{cancel: cancel}
	c.search = token
	cache, pageCount, start, gen := c.cache, c.pageCount, c.view.Page, c.generation
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		if c.search == token {
			c.search = nil
		}
		c.mu.Unlock()
	}()

	for offset := 0; offset < pageCount; offset++ {
		if err := scanCtx.Err(); err != nil {
			return result, err
		}

		page := (start-1+skip+offset)%pageCount + 1
		text, err := cache.GetPageText(scanCtx, page)
		if err != nil {
			return result, err
		}
		result.Scanned++

		if strings.Contains(folder.String(text), needle) {
			c.mu.Lock()
			// cancelSearchLocked runs under c.mu, so this sees any cancel.
			stale := gen != c.generation || scanCtx.Err() != nil
			if !stale {
				c.goToLocked(page)
			}
			c.mu.Unlock()
			if stale {
				return result, context.Canceled
			}
			result.Page = page
			result.Found = true
			return result, nil
		}
	}

	return result, nil
}
