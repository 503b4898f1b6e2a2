package app

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/docview/internal/api"
	"github.com/kk-code-lab/docview/internal/logging"
	statepkg "github.com/kk-code-lab/docview/internal/state"
	"github.com/kk-code-lab/docview/internal/ui/events"
	inputui "github.com/kk-code-lab/docview/internal/ui/input"
	"github.com/kk-code-lab/docview/internal/viewer"
	"github.com/pkg/errors"
)

// viewerSession is one mounted viewer. Its listeners live on the hub only
// while the session is open.
type viewerSession struct {
	doc    api.Document
	ctrl   *viewer.Controller
	ctx    context.Context
	cancel context.CancelFunc

	release       []func()
	searchRelease func()
	formRelease   func()

	pendingText pageKey
}

type pageKey struct {
	source string
	page   int
}

func (app *Application) openSelected() bool {
	doc := app.state.SelectedDocument()
	if doc == nil {
		return false
	}
	app.openDocument(*doc)
	return true
}

func (app *Application) openDocument(doc api.Document) {
	app.closeViewer()

	ctx, cancel := context.WithCancel(app.ctx)
	ctx = logging.WithAttrs(ctx, slog.String("document", doc.ID))

	s := &viewerSession{
		doc:    doc,
		ctrl:   viewer.NewController(app.loader, app.viewerOpts),
		ctx:    ctx,
		cancel: cancel,
	}
	s.release = append(s.release,
		app.hub.Subscribe(app.viewerKeyListener),
		app.hub.Subscribe(app.viewerResizeListener),
	)
	app.session = s

	app.reduce(statepkg.DetailOpenedAction{Document: doc, Viewer: s.ctrl})
	s.ctrl.SetSource(app.documents.StreamURL(doc.ID))

	app.loader.Start(app.ctx)
	go app.loadDocument(s)

	slog.InfoContext(ctx, "viewer opened", slog.String("title", doc.Title))
}

// loadDocument waits for the engine and opens the session's source with it.
func (app *Application) loadDocument(s *viewerSession) {
	defer app.dispatch(statepkg.ViewerChangedAction{})

	eng, err := app.loader.Wait(s.ctx)
	if err != nil {
		if s.ctx.Err() == nil {
			slog.WarnContext(s.ctx, "document engine unavailable", slog.Any("error", err))
		}
		return
	}

	if err := s.ctrl.Load(s.ctx, eng); err != nil && !errors.Is(err, context.Canceled) {
		slog.WarnContext(s.ctx, "could not open document", slog.Any("error", err))
	}
}

func (app *Application) closeViewer() {
	s := app.session
	if s == nil {
		return
	}
	app.session = nil

	s.cancel()
	s.ctrl.CancelSearch()
	for _, release := range s.release {
		release()
	}
	if s.searchRelease != nil {
		s.searchRelease()
	}
	if s.formRelease != nil {
		s.formRelease()
	}

	slog.DebugContext(s.ctx, "viewer closed")
}

// syncViewer mounts the modal listeners the detail state asks for and
// requests the text of the page on screen.
func (app *Application) syncViewer() {
	s := app.session
	detail := app.state.Detail
	if s == nil || detail == nil {
		return
	}

	s.searchRelease = app.mountWhile(s.searchRelease, detail.SearchEditing, app.searchKeyListener)
	s.formRelease = app.mountWhile(s.formRelease, detail.Form != nil, app.formKeyListener)
	app.requestPageText(s, detail)
}

func (app *Application) mountWhile(release func(), active bool, listener events.Listener) func() {
	switch {
	case active && release == nil:
		return app.hub.Subscribe(listener)
	case !active && release != nil:
		release()
		return nil
	}
	return release
}

func (app *Application) requestPageText(s *viewerSession, detail *statepkg.DetailState) {
	snap := s.ctrl.Snapshot()
	if snap.Presentation != viewer.PresentationReady || detail.PageTextCurrent() {
		return
	}

	key := pageKey{source: snap.Source, page: snap.View.Page}
	if s.pendingText == key {
		return
	}
	s.pendingText = key

	go func() {
		text, err := s.ctrl.GetPageText(s.ctx, key.page)
		if s.ctx.Err() != nil {
			return
		}
		if err != nil {
			slog.WarnContext(s.ctx, "could not extract page text", slog.Int("page", key.page), slog.Any("error", err))
		}
		app.dispatch(statepkg.PageTextAction{
			Source: key.source,
			Page:   key.page,
			Text:   text,
			Err:    err,
		})
	}()
}

func (app *Application) viewerKeyListener(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	action := inputui.ViewerKeyAction(key)
	if action == nil {
		return false
	}
	app.handleAction(action)
	return true
}

// viewerResizeListener re-measures the viewer and lets the event through.
func (app *Application) viewerResizeListener(ev tcell.Event) bool {
	resize, ok := ev.(*tcell.EventResize)
	if !ok {
		return false
	}
	w, h := resize.Size()
	app.handleAction(statepkg.ViewerMeasureAction{Width: w, Height: h})
	return false
}

func (app *Application) searchKeyListener(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	action := inputui.SearchKeyAction(key)
	if action == nil {
		return false
	}
	app.handleAction(action)
	return true
}

// formKeyListener is modal: every key except the global ones stops here.
func (app *Application) formKeyListener(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	action := inputui.FormKeyAction(key)
	if action == nil {
		return key.Key() != tcell.KeyCtrlC && key.Key() != tcell.KeyCtrlZ
	}
	app.handleAction(action)
	return true
}
