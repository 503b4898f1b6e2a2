package viewer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fivePageDocument() *fakeDocument {
	return newFakeDocument("alpha", "beta", "gamma alpha", "delta", "epsilon")
}

func TestSearchMovesToFirstMatch(t *testing.T) {
	c := loadedController(fivePageDocument())

	res, err := c.Search(context.Background(), "gamma")
	if err != nil {
		t.Fatalf("Search error = %v", err)
	}
	if !res.Found || res.Page != 3 {
		t.Fatalf("expected match on page 3, got %+v", res)
	}
	if got := c.View().Page; got != 3 {
		t.Fatalf("expected current page 3, got %d", got)
	}
}

func TestSearchMissLeavesPage(t *testing.T) {
	c := loadedController(fivePageDocument())

	res, err := c.Search(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("Search error = %v", err)
	}
	if res.Found || res.Scanned != 5 {
		t.Fatalf("expected full scan without match, got %+v", res)
	}
	if got := c.View().Page; got != 1 {
		t.Fatalf("miss moved page to %d", got)
	}
}

func TestSearchScansCyclicallyFromCurrentPage(t *testing.T) {
	c := loadedController(fivePageDocument())
	c.GoTo(4)

	res, err := c.Search(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Search error = %v", err)
	}
	// 4, 5, 1 -> first alpha after wrapping is page 1.
	if res.Page != 1 || res.Scanned != 3 {
		t.Fatalf("expected wrap to page 1 after 3 pages, got %+v", res)
	}
}

func TestSearchIncludesCurrentPage(t *testing.T) {
	c := loadedController(fivePageDocument())
	c.GoTo(3)

	res, _ := c.Search(context.Background(), "alpha")
	if res.Page != 3 || res.Scanned != 1 {
		t.Fatalf("current page should be checked first, got %+v", res)
	}
}

func TestSearchNextAdvancesThroughMatches(t *testing.T) {
	c := loadedController(fivePageDocument())

	var pages []int
	for i := 0; i < 3; i++ {
		res, err := c.SearchNext(context.Background(), "alpha")
		if err != nil {
			t.Fatalf("SearchNext error = %v", err)
		}
		pages = append(pages, res.Page)
	}

	want := []int{3, 1, 3}
	for i := range want {
		if pages[i] != want[i] {
			t.Fatalf("pages = %v, want %v", pages, want)
		}
	}
}

func TestSearchNextFallsBackToCurrentPage(t *testing.T) {
	c := loadedController(fivePageDocument())
	c.GoTo(2)

	res, _ := c.SearchNext(context.Background(), "beta")
	if res.Page != 2 || res.Scanned != 5 {
		t.Fatalf("expected the current page to be scanned last, got %+v", res)
	}
}

func TestSearchIsCaseInsensitiveAndTrimmed(t *testing.T) {
	c := loadedController(newFakeDocument("intro", "Straße Übersicht", "end"))

	res, err := c.Search(context.Background(), "  STRASSE ")
	if err != nil {
		t.Fatalf("Search error = %v", err)
	}
	if res.Page != 2 {
		t.Fatalf("expected case-folded match on page 2, got %+v", res)
	}

	c.GoTo(1)
	res, _ = c.Search(context.Background(), "übersicht")
	if res.Page != 2 {
		t.Fatalf("expected match on page 2, got %+v", res)
	}
}

func TestSearchBlankQueryDoesNothing(t *testing.T) {
	doc := fivePageDocument()
	c := loadedController(doc)

	for _, q := range []string{"", "   ", "\t\n"} {
		res, err := c.Search(context.Background(), q)
		if err != nil || res.Scanned != 0 {
			t.Fatalf("blank query %q scanned %d pages, err %v", q, res.Scanned, err)
		}
	}
	if doc.totalCalls() != 0 {
		t.Fatal("blank query must not extract text")
	}
}

func TestSearchWithoutDocument(t *testing.T) {
	c := readyController(Options{})
	res, err := c.Search(context.Background(), "alpha")
	if err != nil || res.Scanned != 0 {
		t.Fatalf("expected no-op search, got %+v, %v", res, err)
	}
}

func TestSearchUsesCache(t *testing.T) {
	doc := fivePageDocument()
	c := loadedController(doc)

	_, _ = c.Search(context.Background(), "zzz")
	_, _ = c.Search(context.Background(), "yyy")
	for page := 1; page <= 5; page++ {
		if got := doc.calls(page); got != 1 {
			t.Fatalf("page %d extracted %d times", page, got)
		}
	}
}

func TestSearchRejectsConcurrentRequest(t *testing.T) {
	doc := fivePageDocument()
	doc.gate = make(chan struct{})
	c := loadedController(doc)

	done := make(chan SearchResult, 1)
	go func() {
		res, _ := c.Search(context.Background(), "epsilon")
		done <- res
	}()

	waitFor(t, c.Searching)

	if _, err := c.Search(context.Background(), "beta"); !errors.Is(err, ErrSearchInProgress) {
		t.Fatalf("expected ErrSearchInProgress, got %v", err)
	}

	close(doc.gate)
	res := <-done
	if res.Page != 5 {
		t.Fatalf("first search should complete, got %+v", res)
	}
	if c.Searching() {
		t.Fatal("slot should be released after completion")
	}

	c.GoTo(1)
	if res, err := c.Search(context.Background(), "beta"); err != nil || res.Page != 2 {
		t.Fatalf("search after release = %+v, %v", res, err)
	}
}

func TestSourceChangeCancelsSearch(t *testing.T) {
	doc := fivePageDocument()
	doc.gate = make(chan struct{})
	c := loadedController(doc)
	c.GoTo(2)

	errCh := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "epsilon")
		errCh <- err
	}()

	waitFor(t, c.Searching)
	c.SetSource("http://api/document/stream/next")

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("search was not cancelled")
	}
	if c.Searching() {
		t.Fatal("slot should be free after cancellation")
	}
	if c.View().Page != 1 {
		t.Fatalf("page should be reset by the source change, got %d", c.View().Page)
	}
}

func TestCancelledSearchDoesNotMove(t *testing.T) {
	doc := fivePageDocument()
	c := loadedController(doc)
	// Cancel while the matching page is being read.
	doc.onExtract = func(page int) {
		if page == 2 {
			c.CancelSearch()
		}
	}

	res, err := c.Search(context.Background(), "beta")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v (%+v)", err, res)
	}
	if got := c.View().Page; got != 1 {
		t.Fatalf("cancelled search moved to page %d", got)
	}
	if c.Searching() {
		t.Fatal("slot should be free after cancellation")
	}
}

func TestSearchPropagatesExtractionError(t *testing.T) {
	doc := fivePageDocument()
	doc.failPage = 2
	c := loadedController(doc)

	if _, err := c.Search(context.Background(), "delta"); err == nil {
		t.Fatal("expected extraction error")
	}
	if c.View().Page != 1 || c.Searching() {
		t.Fatal("failed search must leave page and release slot")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}
