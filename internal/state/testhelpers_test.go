package state

import (
	"context"
	"errors"
	"strings"

	"github.com/kk-code-lab/docview/internal/api"
	"github.com/kk-code-lab/docview/internal/engine"
	"github.com/kk-code-lab/docview/internal/prefs"
	"github.com/kk-code-lab/docview/internal/viewer"
)

func sampleDocuments() []api.Document {
	return []api.Document{
		{ID: "d1", Title: "Invoice March", Mime: "application/pdf", TenantID: "acme", Size: 2048},
		{ID: "d2", Title: "Holiday photo", Mime: "image/jpeg", TenantID: "family", Size: 4 << 20},
		{ID: "d3", Title: "Contract draft", Mime: "application/pdf", TenantID: "acme", Size: 100},
		{ID: "d4", Title: "Notes", Mime: "text/plain", TenantID: "Globex", Size: 12},
	}
}

func newListState() *AppState {
	return &AppState{
		Documents:    sampleDocuments(),
		Layout:       prefs.LayoutTable,
		ScreenWidth:  100,
		ScreenHeight: 24,
	}
}

type textDocument []string

func (d textDocument) NumPages() int {
	return len(d)
}

func (d textDocument) Page(ctx context.Context, number int) (engine.Page, error) {
	if number < 1 || number > len(d) {
		return nil, errors.New("page out of range")
	}
	return textPage(d[number-1]), nil
}

type textPage string

func (p textPage) TextContent(ctx context.Context) (engine.TextContent, error) {
	var content engine.TextContent
	for _, word := range strings.Fields(string(p)) {
		content.Items = append(content.Items, engine.TextItem{Str: word})
	}
	return content, nil
}

func newDetailState(pages ...string) *AppState {
	ctrl := viewer.NewController(nil, viewer.Options{})
	ctrl.SetSource("http://api/document/stream/d1")
	ctrl.OnDocumentLoadSuccess(textDocument(pages))

	s := newListState()
	reducer := NewStateReducer(prefs.NewMemory())
	_, _ = reducer.Reduce(s, DetailOpenedAction{Document: s.Documents[0], Viewer: ctrl})
	return s
}
