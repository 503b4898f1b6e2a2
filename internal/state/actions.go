package state

import (
	"github.com/kk-code-lab/docview/internal/api"
	"github.com/kk-code-lab/docview/internal/viewer"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== LIST ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type NavigatePageUpAction struct{}
type NavigatePageDownAction struct{}
type NavigateHomeAction struct{}
type NavigateEndAction struct{}
type ToggleLayoutAction struct{}

// RefreshDocumentsAction asks the app to reload the listing.
type RefreshDocumentsAction struct{}
type DocumentsLoadingAction struct{}
type DocumentsLoadedAction struct {
	Documents []api.Document
	Err       error
}

// ===== FILTER ACTIONS =====

type FilterStartAction struct{}
type FilterCharAction struct {
	Char rune
}
type FilterBackspaceAction struct{}
type FilterAcceptAction struct{}
type FilterClearAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// ===== DETAIL ACTIONS =====

// OpenSelectedAction opens the highlighted document in the viewer.
type OpenSelectedAction struct{}

// DetailOpenedAction mounts the detail screen for a document.
type DetailOpenedAction struct {
	Document api.Document
	Viewer   *viewer.Controller
}
type CloseDetailAction struct{}

type ViewerNextPageAction struct{}
type ViewerPrevPageAction struct{}
type ViewerFirstPageAction struct{}
type ViewerLastPageAction struct{}
type ViewerZoomInAction struct{}
type ViewerZoomOutAction struct{}
type ViewerResetZoomAction struct{}
type ViewerToggleFitWidthAction struct{}
type ViewerRotateAction struct{}

// ViewerMeasureAction re-measures the viewer panel for a screen size.
type ViewerMeasureAction struct {
	Width  int
	Height int
}

// ViewerChangedAction reports that the controller changed outside the
// reducer, e.g. a document finished loading.
type ViewerChangedAction struct{}

type PageTextAction struct {
	Source string
	Page   int
	Text   string
	Err    error
}

type SearchStartAction struct{}
type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type SearchCancelAction struct{}

// SearchSubmitAction runs the query from the current page.
type SearchSubmitAction struct{}

// SearchNextAction repeats the last query from the page after the current one.
type SearchNextAction struct{}
type SearchResultAction struct {
	Result viewer.SearchResult
	Err    error
}

type ToggleDrawerAction struct{}

type FormOpenAction struct{}
type FormCharAction struct {
	Char rune
}
type FormBackspaceAction struct{}
type FormNextFieldAction struct{}
type FormPrevFieldAction struct{}
type FormCancelAction struct{}
type FormSubmitAction struct{}
type FormSavedAction struct {
	Data api.IndexData
	Err  error
}

type LockDocumentAction struct{}
type ShareLinkAction struct{}
type ShareLinkCreatedAction struct {
	URL    string
	Copied bool
	Err    error
}

type OpenExternalAction struct{}
type PrintAction struct{}
type DownloadAction struct{}
type DownloadDoneAction struct {
	Path string
	Err  error
}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
