package state

import (
	"time"

	"github.com/kk-code-lab/docview/internal/api"
	"github.com/kk-code-lab/docview/internal/prefs"
	"github.com/kk-code-lab/docview/internal/viewer"
)

type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
)

// ===== STATE DEFINITIONS =====

// IndexField identifies an input of the index form.
type IndexField int

const (
	IndexFieldTitle IndexField = iota
	IndexFieldTags
	IndexFieldType
	indexFieldCount
)

func (f IndexField) Label() string {
	switch f {
	case IndexFieldTitle:
		return "Title"
	case IndexFieldTags:
		return "Tags"
	case IndexFieldType:
		return "Type"
	default:
		return ""
	}
}

// IndexForm holds the index data being edited for the open document.
type IndexForm struct {
	Values [indexFieldCount]string
	Focus  IndexField
	Saving bool
	Err    error
}

func (f *IndexForm) Data() api.IndexData {
	return api.IndexData{
		Title: f.Values[IndexFieldTitle],
		Tags:  SplitTags(f.Values[IndexFieldTags]),
		Type:  f.Values[IndexFieldType],
	}
}

// DetailState is the document detail screen: viewer, metadata drawer and
// index form.
type DetailState struct {
	Document api.Document
	Viewer   *viewer.Controller

	// Text of the page currently shown, tagged with the page and source it
	// was extracted for.
	PageText       string
	PageTextPage   int
	PageTextSource string
	PageTextErr    error

	SearchEditing bool
	SearchQuery   string
	LastSearch    *viewer.SearchResult
	SearchErr     error

	DrawerOpen bool
	Form       *IndexForm

	LockKey  string
	ShareURL string
}

// PageTextCurrent reports whether PageText belongs to the page on screen.
func (d *DetailState) PageTextCurrent() bool {
	if d == nil || d.Viewer == nil {
		return false
	}
	snap := d.Viewer.Snapshot()
	return d.PageTextPage == snap.View.Page && d.PageTextSource == snap.Source
}

// AppState is the single source of truth
type AppState struct {
	Screen Screen

	// Document list
	Documents        []api.Document
	DocumentsLoading bool
	DocumentsError   error
	Layout           string

	// Selection & viewport
	SelectedIndex int
	ScrollOffset  int

	// Quick filter
	FilterActive    bool
	FilterQuery     string
	FilteredIndices []int

	Detail *DetailState

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	OpenerAvailable    bool
	StatusMessage      string
	StatusTime         time.Time

	// Error state
	LastError error
}

func (s *AppState) DisplayDocuments() []api.Document {
	if !s.filterApplied() {
		return s.Documents
	}
	docs := make([]api.Document, 0, len(s.FilteredIndices))
	for _, idx := range s.FilteredIndices {
		docs = append(docs, s.Documents[idx])
	}
	return docs
}

// SelectedDocument returns the highlighted document or nil.
func (s *AppState) SelectedDocument() *api.Document {
	if !s.filterApplied() {
		if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Documents) {
			return nil
		}
		return &s.Documents[s.SelectedIndex]
	}
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.FilteredIndices) {
		return nil
	}
	return &s.Documents[s.FilteredIndices[s.SelectedIndex]]
}

func (s *AppState) filterApplied() bool {
	return s.FilteredIndices != nil
}

// SetStatus shows msg on the status line.
func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
	s.StatusTime = time.Now()
}

// ListRows is the number of list rows that fit on screen for the layout.
func (s *AppState) ListRows() int {
	rows := s.ScreenHeight - 3 // header, column titles or filter, status
	if s.Layout == prefs.LayoutCards {
		rows /= CardHeight
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// CardHeight is the number of screen lines one card occupies.
const CardHeight = 4

func (s *AppState) ensureSelectionVisible() {
	total := len(s.DisplayDocuments())
	if total == 0 {
		s.SelectedIndex = 0
		s.ScrollOffset = 0
		return
	}
	if s.SelectedIndex >= total {
		s.SelectedIndex = total - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}

	rows := s.ListRows()
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ScrollOffset+rows {
		s.ScrollOffset = s.SelectedIndex - rows + 1
	}
	if last := total - rows; s.ScrollOffset > last {
		s.ScrollOffset = last
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}
