package app

import (
	"context"
	"log/slog"

	"github.com/kk-code-lab/docview/internal/platform"
	statepkg "github.com/kk-code-lab/docview/internal/state"
	"github.com/kk-code-lab/docview/internal/viewer"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// ===== DOCUMENT LIST =====

func (app *Application) refreshDocuments() bool {
	if app.state.DocumentsLoading {
		return false
	}
	app.reduce(statepkg.DocumentsLoadingAction{})

	go func() {
		docs, err := app.documents.ListDocuments(app.ctx)
		if err != nil {
			if app.ctx.Err() != nil {
				return
			}
			slog.WarnContext(app.ctx, "could not list documents", slog.Any("error", err))
		}
		app.dispatch(statepkg.DocumentsLoadedAction{Documents: docs, Err: err})
	}()
	return true
}

// ===== SEARCH =====

func (app *Application) submitSearch() bool {
	app.reduce(statepkg.SearchSubmitAction{})
	detail := app.state.Detail
	if detail == nil || detail.SearchQuery == "" {
		return true
	}
	app.runSearch(detail.SearchQuery, false)
	return true
}

// searchNext repeats the last query, or opens the query editor when there
// is none yet.
func (app *Application) searchNext() bool {
	detail := app.state.Detail
	if detail == nil {
		return false
	}
	query := detail.SearchQuery
	if detail.LastSearch != nil {
		query = detail.LastSearch.Query
	}
	if query == "" {
		app.reduce(statepkg.SearchStartAction{})
		return true
	}
	app.runSearch(query, true)
	return true
}

func (app *Application) runSearch(query string, next bool) {
	s := app.session
	if s == nil {
		return
	}

	go func() {
		var (
			result viewer.SearchResult
			err    error
		)
		if next {
			result, err = s.ctrl.SearchNext(s.ctx, query)
		} else {
			result, err = s.ctrl.Search(s.ctx, query)
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		app.dispatch(statepkg.SearchResultAction{Result: result, Err: err})
	}()
}

// ===== INDEX FORM =====

func (app *Application) submitForm() bool {
	s := app.session
	detail := app.state.Detail
	if s == nil || detail == nil || detail.Form == nil || detail.Form.Saving {
		return false
	}
	data := detail.Form.Data()
	app.reduce(statepkg.FormSubmitAction{})

	go func() {
		err := app.documents.UpdateIndex(s.ctx, s.doc.ID, data)
		if s.ctx.Err() != nil {
			return
		}
		if err != nil {
			slog.WarnContext(s.ctx, "could not save index data", slog.Any("error", err))
		}
		app.dispatch(statepkg.FormSavedAction{Data: data, Err: err})
	}()
	return true
}

// ===== SHARING & FILES =====

func (app *Application) createShareLink() bool {
	s := app.session
	if s == nil {
		return false
	}
	url := app.documents.ShareURL(s.doc.ID, xid.New().String())

	go func() {
		copied := false
		if app.desktop != nil && app.desktop.CanCopy() {
			if err := app.desktop.Copy(url); err != nil {
				slog.WarnContext(s.ctx, "could not copy share link", slog.Any("error", err))
			} else {
				copied = true
			}
		}
		app.dispatch(statepkg.ShareLinkCreatedAction{URL: url, Copied: copied})
	}()
	return true
}

func (app *Application) openExternal(printing bool) bool {
	s := app.session
	if s == nil {
		return false
	}
	if app.desktop == nil {
		app.state.LastError = platform.ErrNoOpener
		return true
	}

	src := s.ctrl.Source()
	var err error
	if printing {
		err = app.desktop.Print(src)
	} else {
		err = app.desktop.Open(src)
	}
	if err != nil {
		app.state.LastError = err
		return true
	}
	app.state.SetStatus("Opened in external viewer")
	return true
}

func (app *Application) download() bool {
	s := app.session
	if s == nil || app.desktop == nil {
		return false
	}
	src := s.ctrl.Source()
	app.state.SetStatus("Downloading…")

	go func() {
		path, err := app.desktop.Download(s.ctx, src, platform.DefaultDownloadName)
		if errors.Is(err, context.Canceled) {
			return
		}
		app.dispatch(statepkg.DownloadDoneAction{Path: path, Err: err})
	}()
	return true
}
