package state

import (
	"strings"
	"unicode/utf8"

	"github.com/kk-code-lab/docview/internal/prefs"
	"github.com/kk-code-lab/docview/internal/ui/layout"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	prefs      prefs.Store
	newLockKey func() string
}

// NewStateReducer creates a new reducer persisting preferences to store.
func NewStateReducer(store prefs.Store) *StateReducer {
	if store == nil {
		store = prefs.NewMemory()
	}
	return &StateReducer{
		prefs:      store,
		newLockKey: func() string { return xid.New().String() },
	}
}

// Reduce applies an action to state and returns new state. State is mutated
// in place.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== LIST =====

	case NavigateDownAction:
		state.SelectedIndex++
		state.ensureSelectionVisible()
		return state, nil

	case NavigateUpAction:
		if state.SelectedIndex > 0 {
			state.SelectedIndex--
		}
		state.ensureSelectionVisible()
		return state, nil

	case NavigatePageDownAction:
		state.SelectedIndex += state.ListRows()
		state.ensureSelectionVisible()
		return state, nil

	case NavigatePageUpAction:
		state.SelectedIndex -= state.ListRows()
		state.ensureSelectionVisible()
		return state, nil

	case NavigateHomeAction:
		state.SelectedIndex = 0
		state.ensureSelectionVisible()
		return state, nil

	case NavigateEndAction:
		state.SelectedIndex = len(state.DisplayDocuments()) - 1
		state.ensureSelectionVisible()
		return state, nil

	case ToggleLayoutAction:
		next := prefs.LayoutCards
		if state.Layout == prefs.LayoutCards {
			next = prefs.LayoutTable
		}
		state.Layout = next
		state.ensureSelectionVisible()
		if err := r.prefs.Set(prefs.KeyListLayout, next); err != nil {
			return state, errors.Wrap(err, "could not save layout preference")
		}
		return state, nil

	case DocumentsLoadingAction:
		state.DocumentsLoading = true
		state.DocumentsError = nil
		return state, nil

	case DocumentsLoadedAction:
		state.DocumentsLoading = false
		if a.Err != nil {
			state.DocumentsError = a.Err
			return state, nil
		}
		state.DocumentsError = nil
		state.Documents = a.Documents
		state.recomputeFilter()
		return state, nil

	// ===== FILTER =====

	case FilterStartAction:
		state.FilterActive = true
		return state, nil

	case FilterCharAction:
		if !state.FilterActive {
			return state, nil
		}
		state.FilterQuery += string(a.Char)
		state.recomputeFilter()
		return state, nil

	case FilterBackspaceAction:
		if !state.FilterActive || state.FilterQuery == "" {
			return state, nil
		}
		state.FilterQuery = trimLastRune(state.FilterQuery)
		state.recomputeFilter()
		return state, nil

	case FilterAcceptAction:
		state.FilterActive = false
		return state, nil

	case FilterClearAction:
		state.FilterActive = false
		state.FilterQuery = ""
		state.recomputeFilter()
		return state, nil

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.ensureSelectionVisible()
		return state, nil

	// ===== DETAIL =====

	case DetailOpenedAction:
		state.Screen = ScreenDetail
		state.Detail = &DetailState{
			Document: a.Document,
			Viewer:   a.Viewer,
		}
		state.measureViewer()
		return state, nil

	case CloseDetailAction:
		state.Screen = ScreenList
		state.Detail = nil
		return state, nil
	}

	if state.Detail == nil {
		return state, nil
	}
	return r.reduceDetail(state, action)
}

func (r *StateReducer) reduceDetail(state *AppState, action Action) (*AppState, error) {
	detail := state.Detail
	ctrl := detail.Viewer

	switch a := action.(type) {
	case ViewerNextPageAction:
		ctrl.NextPage()
	case ViewerPrevPageAction:
		ctrl.PrevPage()
	case ViewerFirstPageAction:
		ctrl.FirstPage()
	case ViewerLastPageAction:
		ctrl.LastPage()
	case ViewerZoomInAction:
		ctrl.ZoomIn()
	case ViewerZoomOutAction:
		ctrl.ZoomOut()
	case ViewerResetZoomAction:
		ctrl.ResetZoom()
	case ViewerToggleFitWidthAction:
		ctrl.ToggleFitWidth()
	case ViewerRotateAction:
		ctrl.Rotate()

	case ViewerMeasureAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.measureViewer()

	case ViewerChangedAction:

	case PageTextAction:
		// Extractions finish in any order; keep only the page on screen.
		snap := ctrl.Snapshot()
		if a.Page != snap.View.Page || a.Source != snap.Source {
			return state, nil
		}
		detail.PageText = a.Text
		detail.PageTextPage = a.Page
		detail.PageTextSource = a.Source
		detail.PageTextErr = a.Err

	case SearchStartAction:
		detail.SearchEditing = true
		detail.SearchErr = nil

	case SearchCharAction:
		if detail.SearchEditing {
			detail.SearchQuery += string(a.Char)
		}

	case SearchBackspaceAction:
		if detail.SearchEditing {
			detail.SearchQuery = trimLastRune(detail.SearchQuery)
		}

	case SearchCancelAction:
		detail.SearchEditing = false
		ctrl.CancelSearch()

	case SearchSubmitAction:
		detail.SearchEditing = false
		detail.SearchQuery = strings.TrimSpace(detail.SearchQuery)

	case SearchNextAction:

	case SearchResultAction:
		detail.SearchErr = a.Err
		if a.Err == nil {
			result := a.Result
			detail.LastSearch = &result
		}

	case ToggleDrawerAction:
		detail.DrawerOpen = !detail.DrawerOpen
		state.measureViewer()

	case FormOpenAction:
		if detail.Form == nil {
			detail.Form = newIndexForm(detail)
		}

	case FormCharAction:
		if form := detail.Form; form != nil && !form.Saving {
			form.Values[form.Focus] += string(a.Char)
		}

	case FormBackspaceAction:
		if form := detail.Form; form != nil && !form.Saving {
			form.Values[form.Focus] = trimLastRune(form.Values[form.Focus])
		}

	case FormNextFieldAction:
		if form := detail.Form; form != nil {
			form.Focus = (form.Focus + 1) % indexFieldCount
		}

	case FormPrevFieldAction:
		if form := detail.Form; form != nil {
			form.Focus = (form.Focus + indexFieldCount - 1) % indexFieldCount
		}

	case FormCancelAction:
		detail.Form = nil

	case FormSubmitAction:
		if form := detail.Form; form != nil {
			form.Saving = true
			form.Err = nil
		}

	case FormSavedAction:
		form := detail.Form
		if form == nil {
			return state, nil
		}
		form.Saving = false
		if a.Err != nil {
			form.Err = a.Err
			return state, nil
		}
		detail.Document.Title = a.Data.Title
		detail.Form = nil
		state.SetStatus("Index saved")

	case LockDocumentAction:
		if detail.LockKey == "" {
			detail.LockKey = r.newLockKey()
			state.SetStatus("Document locked")
		} else {
			detail.LockKey = ""
			state.SetStatus("Document unlocked")
		}

	case ShareLinkCreatedAction:
		if a.Err != nil {
			return state, a.Err
		}
		detail.ShareURL = a.URL
		if a.Copied {
			state.SetStatus("Share link copied to clipboard")
		} else {
			state.SetStatus("Share link created")
		}

	case DownloadDoneAction:
		if a.Err != nil {
			return state, a.Err
		}
		state.SetStatus("Saved " + a.Path)
	}

	return state, nil
}

func newIndexForm(detail *DetailState) *IndexForm {
	form := &IndexForm{}
	form.Values[IndexFieldTitle] = detail.Document.Title
	return form
}

// measureViewer hands the viewer panel width to the controller.
func (s *AppState) measureViewer() {
	if s.Detail == nil || s.Detail.Viewer == nil {
		return
	}
	s.Detail.Viewer.SetContainerWidth(layout.ViewerWidth(s.ScreenWidth, s.Detail.DrawerOpen))
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
