package app

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docview/internal/state"
)

func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-app.ctx.Done():
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

// handleEvent offers the event to the mounted listeners first; whatever
// they leave goes to the list input handler.
func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		app.state.LastError = nil
		if app.hub.Dispatch(ev) {
			return true
		}
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		app.screen.Sync()
		if app.hub.Dispatch(ev) {
			return true
		}
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	changed := app.handleAppAction(action)
	app.syncViewer()
	return changed
}

func (app *Application) handleAppAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.RefreshDocumentsAction:
		return app.refreshDocuments()
	case statepkg.OpenSelectedAction:
		return app.openSelected()
	case statepkg.CloseDetailAction:
		app.closeViewer()
	case statepkg.SearchSubmitAction:
		return app.submitSearch()
	case statepkg.SearchNextAction:
		return app.searchNext()
	case statepkg.FormSubmitAction:
		return app.submitForm()
	case statepkg.ShareLinkAction:
		return app.createShareLink()
	case statepkg.OpenExternalAction:
		return app.openExternal(false)
	case statepkg.PrintAction:
		return app.openExternal(true)
	case statepkg.DownloadAction:
		return app.download()
	}

	app.reduce(action)
	return true
}

// resize applies a size change that did not arrive as an event.
func (app *Application) resize(w, h int) {
	app.reduce(statepkg.ResizeAction{Width: w, Height: h})
	app.reduce(statepkg.ViewerMeasureAction{Width: w, Height: h})
}

func (app *Application) reduce(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
	}
}
