package state

import (
	"errors"
	"testing"

	"github.com/kk-code-lab/docview/internal/api"
	"github.com/kk-code-lab/docview/internal/prefs"
	"github.com/kk-code-lab/docview/internal/ui/layout"
	"github.com/kk-code-lab/docview/internal/viewer"
)

// ===== DETAIL TESTS =====

func TestDetailOpenedMeasuresViewer(t *testing.T) {
	state := newDetailState("one", "two")

	if state.Screen != ScreenDetail || state.Detail == nil {
		t.Fatalf("expected detail screen")
	}
	snap := state.Detail.Viewer.Snapshot()
	if snap.ContainerWidth != 100 {
		t.Fatalf("container width = %d, want 100", snap.ContainerWidth)
	}
	if snap.RenderWidth != 96 {
		t.Fatalf("render width = %d, want 96", snap.RenderWidth)
	}
}

func TestViewerActionsDriveController(t *testing.T) {
	state := newDetailState("one", "two", "three")
	reducer := NewStateReducer(nil)
	ctrl := state.Detail.Viewer

	steps := []struct {
		action Action
		check  func(viewer.ViewState) bool
	}{
		{ViewerNextPageAction{}, func(v viewer.ViewState) bool { return v.Page == 2 }},
		{ViewerLastPageAction{}, func(v viewer.ViewState) bool { return v.Page == 3 }},
		{ViewerNextPageAction{}, func(v viewer.ViewState) bool { return v.Page == 3 }},
		{ViewerFirstPageAction{}, func(v viewer.ViewState) bool { return v.Page == 1 }},
		{ViewerPrevPageAction{}, func(v viewer.ViewState) bool { return v.Page == 1 }},
		{ViewerZoomInAction{}, func(v viewer.ViewState) bool { return v.Scale == 1.1 }},
		{ViewerZoomOutAction{}, func(v viewer.ViewState) bool { return v.Scale == 1.0 }},
		{ViewerZoomOutAction{}, func(v viewer.ViewState) bool { return v.Scale == 0.9 }},
		{ViewerResetZoomAction{}, func(v viewer.ViewState) bool { return v.Scale == 1.0 }},
		{ViewerToggleFitWidthAction{}, func(v viewer.ViewState) bool { return !v.FitWidth }},
		{ViewerRotateAction{}, func(v viewer.ViewState) bool { return v.Rotation == 90 }},
	}

	for i, step := range steps {
		if _, err := reducer.Reduce(state, step.action); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if view := ctrl.View(); !step.check(view) {
			t.Fatalf("step %d (%T): unexpected view %+v", i, step.action, view)
		}
	}
}

func TestToggleDrawerRemeasuresViewer(t *testing.T) {
	state := newDetailState("one")
	reducer := NewStateReducer(nil)

	_, _ = reducer.Reduce(state, ToggleDrawerAction{})
	if !state.Detail.DrawerOpen {
		t.Fatalf("drawer should be open")
	}
	want := layout.ViewerWidth(100, true)
	if got := state.Detail.Viewer.Snapshot().ContainerWidth; got != want {
		t.Fatalf("container width = %d, want %d", got, want)
	}

	_, _ = reducer.Reduce(state, ViewerMeasureAction{Width: 60, Height: 20})
	if state.ScreenWidth != 60 {
		t.Fatalf("screen width not updated")
	}
	if got := state.Detail.Viewer.Snapshot().ContainerWidth; got != 60 {
		t.Fatalf("narrow screen should drop the drawer, got width %d", got)
	}
}

func TestPageTextCurrent(t *testing.T) {
	state := newDetailState("one", "two")
	reducer := NewStateReducer(nil)
	detail := state.Detail

	_, _ = reducer.Reduce(state, PageTextAction{Source: "http://api/document/stream/d1", Page: 1, Text: "one"})
	if !detail.PageTextCurrent() {
		t.Fatalf("expected page text to be current")
	}

	_, _ = reducer.Reduce(state, ViewerNextPageAction{})
	if detail.PageTextCurrent() {
		t.Fatalf("page text should be stale after navigation")
	}
}

func TestPageTextIgnoresLateResults(t *testing.T) {
	state := newDetailState("one", "two", "three")
	reducer := NewStateReducer(nil)
	detail := state.Detail
	src := "http://api/document/stream/d1"

	_, _ = reducer.Reduce(state, PageTextAction{Source: src, Page: 1, Text: "one"})

	tests := []struct {
		name   string
		action PageTextAction
	}{
		{"other page", PageTextAction{Source: src, Page: 2, Text: "two"}},
		{"other source", PageTextAction{Source: "http://api/document/stream/d9", Page: 1, Text: "stale"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _ = reducer.Reduce(state, tt.action)
			if !detail.PageTextCurrent() || detail.PageText != "one" {
				t.Fatalf("late result replaced page text: page=%d text=%q", detail.PageTextPage, detail.PageText)
			}
		})
	}
}

func TestSearchEditing(t *testing.T) {
	state := newDetailState("one")
	reducer := NewStateReducer(nil)
	detail := state.Detail

	_, _ = reducer.Reduce(state, SearchCharAction{Char: 'x'})
	if detail.SearchQuery != "" {
		t.Fatalf("typing without search input changed query")
	}

	_, _ = reducer.Reduce(state, SearchStartAction{})
	for _, r := range " tax ü" {
		_, _ = reducer.Reduce(state, SearchCharAction{Char: r})
	}
	_, _ = reducer.Reduce(state, SearchBackspaceAction{})
	if detail.SearchQuery != " tax " {
		t.Fatalf("query = %q", detail.SearchQuery)
	}

	_, _ = reducer.Reduce(state, SearchSubmitAction{})
	if detail.SearchEditing || detail.SearchQuery != "tax" {
		t.Fatalf("submit should close input and trim, got %+v", detail)
	}

	_, _ = reducer.Reduce(state, SearchResultAction{Result: viewer.SearchResult{Query: "tax", Page: 1, Found: true}})
	if detail.LastSearch == nil || !detail.LastSearch.Found {
		t.Fatalf("expected last search to be recorded")
	}

	_, _ = reducer.Reduce(state, SearchResultAction{Err: viewer.ErrSearchInProgress})
	if !errors.Is(detail.SearchErr, viewer.ErrSearchInProgress) {
		t.Fatalf("expected search error, got %v", detail.SearchErr)
	}
}

func TestIndexFormLifecycle(t *testing.T) {
	state := newDetailState("one")
	reducer := NewStateReducer(nil)
	detail := state.Detail

	_, _ = reducer.Reduce(state, FormOpenAction{})
	form := detail.Form
	if form == nil || form.Values[IndexFieldTitle] != "Invoice March" {
		t.Fatalf("form should start with the document title, got %+v", form)
	}

	for i := 0; i < len("March"); i++ {
		_, _ = reducer.Reduce(state, FormBackspaceAction{})
	}
	for _, r := range "Apr" {
		_, _ = reducer.Reduce(state, FormCharAction{Char: r})
	}
	_, _ = reducer.Reduce(state, FormNextFieldAction{})
	for _, r := range "tax, 2024" {
		_, _ = reducer.Reduce(state, FormCharAction{Char: r})
	}
	_, _ = reducer.Reduce(state, FormNextFieldAction{})
	for _, r := range "invoice" {
		_, _ = reducer.Reduce(state, FormCharAction{Char: r})
	}
	_, _ = reducer.Reduce(state, FormNextFieldAction{})
	if form.Focus != IndexFieldTitle {
		t.Fatalf("focus should wrap to title, got %v", form.Focus)
	}
	_, _ = reducer.Reduce(state, FormPrevFieldAction{})
	if form.Focus != IndexFieldType {
		t.Fatalf("focus should wrap back to type, got %v", form.Focus)
	}

	data := form.Data()
	if data.Title != "Invoice Apr" || data.Type != "invoice" || len(data.Tags) != 2 || data.Tags[1] != "2024" {
		t.Fatalf("unexpected data %+v", data)
	}

	_, _ = reducer.Reduce(state, FormSubmitAction{})
	if !form.Saving {
		t.Fatalf("expected saving flag")
	}
	_, _ = reducer.Reduce(state, FormCharAction{Char: 'z'})
	if form.Values[IndexFieldType] != "invoice" {
		t.Fatalf("form must not change while saving")
	}

	_, _ = reducer.Reduce(state, FormSavedAction{Data: data, Err: &api.StatusError{StatusCode: 404, Body: "Not Found"}})
	if form.Saving || form.Err == nil || detail.Form == nil {
		t.Fatalf("failed save should keep the form with the error")
	}

	_, _ = reducer.Reduce(state, FormSavedAction{Data: data})
	if detail.Form != nil {
		t.Fatalf("successful save should close the form")
	}
	if detail.Document.Title != "Invoice Apr" {
		t.Fatalf("title not applied: %q", detail.Document.Title)
	}
	if state.StatusMessage == "" {
		t.Fatalf("expected status message")
	}
}

func TestLockDocumentToggles(t *testing.T) {
	state := newDetailState("one")
	reducer := NewStateReducer(prefs.NewMemory())
	reducer.newLockKey = func() string { return "cv37img5tppgl4002kb0" }

	_, _ = reducer.Reduce(state, LockDocumentAction{})
	if state.Detail.LockKey != "cv37img5tppgl4002kb0" {
		t.Fatalf("lock key = %q", state.Detail.LockKey)
	}
	_, _ = reducer.Reduce(state, LockDocumentAction{})
	if state.Detail.LockKey != "" {
		t.Fatalf("expected unlocked")
	}
}

func TestDefaultLockKeysAreUnique(t *testing.T) {
	reducer := NewStateReducer(nil)
	a, b := reducer.newLockKey(), reducer.newLockKey()
	if a == "" || a == b {
		t.Fatalf("expected distinct keys, got %q and %q", a, b)
	}
}

func TestShareLinkAndDownloadResults(t *testing.T) {
	state := newDetailState("one")
	reducer := NewStateReducer(nil)

	_, _ = reducer.Reduce(state, ShareLinkCreatedAction{URL: "http://api/share/once/d1-x", Copied: true})
	if state.Detail.ShareURL != "http://api/share/once/d1-x" {
		t.Fatalf("share url not stored")
	}
	if state.StatusMessage != "Share link copied to clipboard" {
		t.Fatalf("status = %q", state.StatusMessage)
	}

	if _, err := reducer.Reduce(state, DownloadDoneAction{Err: errors.New("disk full")}); err == nil {
		t.Fatalf("download error should be returned")
	}
	_, _ = reducer.Reduce(state, DownloadDoneAction{Path: "/tmp/document.pdf"})
	if state.StatusMessage != "Saved /tmp/document.pdf" {
		t.Fatalf("status = %q", state.StatusMessage)
	}
}

func TestCloseDetailReturnsToList(t *testing.T) {
	state := newDetailState("one")
	reducer := NewStateReducer(nil)

	_, _ = reducer.Reduce(state, CloseDetailAction{})
	if state.Screen != ScreenList || state.Detail != nil {
		t.Fatalf("expected list screen")
	}

	// Detail actions without a detail screen are ignored.
	if _, err := reducer.Reduce(state, ViewerNextPageAction{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
