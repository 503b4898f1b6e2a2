package viewer

import (
	"context"
	"errors"
	"sync"

	"github.com/kk-code-lab/docview/internal/engine"
)

type fakeDocument struct {
	pages []string

	mu          sync.Mutex
	extractions map[int]int
	// gate, when set, is received from before every extraction.
	gate chan struct{}
	// failPage makes extraction of that page fail.
	failPage int
	// onExtract runs after each successful extraction.
	onExtract func(page int)
}

func newFakeDocument(pages ...string) *fakeDocument {
	return &fakeDocument{pages: pages, extractions: make(map[int]int)}
}

func (d *fakeDocument) NumPages() int {
	return len(d.pages)
}

func (d *fakeDocument) Page(ctx context.Context, number int) (engine.Page, error) {
	if number < 1 || number > len(d.pages) {
		return nil, errors.New("page out of range")
	}
	return fakePage{doc: d, number: number}, nil
}

func (d *fakeDocument) calls(page int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.extractions[page]
}

func (d *fakeDocument) totalCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	total := 0
	for _, n := range d.extractions {
		total += n
	}
	return total
}

type fakePage struct {
	doc    *fakeDocument
	number int
}

func (p fakePage) TextContent(ctx context.Context) (engine.TextContent, error) {
	if p.doc.gate != nil {
		select {
		case <-p.doc.gate:
		case <-ctx.Done():
			return engine.TextContent{}, ctx.Err()
		}
	}

	p.doc.mu.Lock()
	p.doc.extractions[p.number]++
	p.doc.mu.Unlock()

	if p.doc.failPage == p.number {
		return engine.TextContent{}, errors.New("broken page")
	}

	if p.doc.onExtract != nil {
		p.doc.onExtract(p.number)
	}

	var items []engine.TextItem
	for _, word := range splitWords(p.doc.pages[p.number-1]) {
		items = append(items, engine.TextItem{Str: word})
	}
	return engine.TextContent{Items: items}, nil
}

func splitWords(s string) []string {
	var out []string
	word := ""
	for _, r := range s {
		if r == ' ' {
			if word != "" {
				out = append(out, word)
			}
			word = ""
			continue
		}
		word += string(r)
	}
	if word != "" {
		out = append(out, word)
	}
	return out
}

type fixedStatus engine.State

func (s fixedStatus) State() engine.State {
	return engine.State(s)
}

type fakeEngine struct {
	docs map[string]engine.Document
	errs map[string]error
	// entered, when set, is closed once Open starts.
	entered chan struct{}
	// hold, when set, is received from before Open returns.
	hold chan struct{}
}

func (e *fakeEngine) Open(ctx context.Context, src string) (engine.Document, error) {
	if e.entered != nil {
		close(e.entered)
	}
	if e.hold != nil {
		<-e.hold
	}
	if err, ok := e.errs[src]; ok {
		return nil, err
	}
	if doc, ok := e.docs[src]; ok {
		return doc, nil
	}
	return nil, errors.New("404 not found")
}

func readyController(opts Options) *Controller {
	return NewController(fixedStatus(engine.StateReady), opts)
}

func loadedController(doc engine.Document) *Controller {
	c := readyController(Options{InitialPage: 1, InitialScale: 1.0})
	c.SetSource("http://api/document/stream/doc")
	c.OnDocumentLoadSuccess(doc)
	return c
}
