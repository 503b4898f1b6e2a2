package app

import (
	"context"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/docview/internal/api"
	"github.com/kk-code-lab/docview/internal/engine"
	"github.com/kk-code-lab/docview/internal/prefs"
	statepkg "github.com/kk-code-lab/docview/internal/state"
	"github.com/kk-code-lab/docview/internal/ui/events"
	inputui "github.com/kk-code-lab/docview/internal/ui/input"
	renderui "github.com/kk-code-lab/docview/internal/ui/render"
	"github.com/kk-code-lab/docview/internal/viewer"
	"github.com/pkg/errors"
)

// DocumentService is the part of the API client the application talks to.
type DocumentService interface {
	ListDocuments(ctx context.Context) ([]api.Document, error)
	UpdateIndex(ctx context.Context, id string, data api.IndexData) error
	StreamURL(id string) string
	ShareURL(id, token string) string
}

// Desktop hands documents to the host system.
type Desktop interface {
	CanOpen() bool
	CanCopy() bool
	Open(url string) error
	Print(url string) error
	Copy(text string) error
	Download(ctx context.Context, url, name string) (string, error)
}

type Options struct {
	// Screen defaults to the terminal.
	Screen    tcell.Screen
	Documents DocumentService
	Loader    *engine.Loader
	Desktop   Desktop
	Prefs     prefs.Store
	Viewer    viewer.Options
	// Open, when set, starts on the detail screen of this document.
	Open *api.Document
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	hub        *events.Hub
	actionCh   chan statepkg.Action
	shouldQuit bool

	documents  DocumentService
	loader     *engine.Loader
	desktop    Desktop
	viewerOpts viewer.Options

	ctx     context.Context
	cancel  context.CancelFunc
	session *viewerSession
}

func NewApplication(opts Options) (*Application, error) {
	if opts.Documents == nil {
		return nil, errors.New("document service is required")
	}
	if opts.Loader == nil {
		return nil, errors.New("engine loader is required")
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, errors.WithStack(err)
	}

	store := opts.Prefs
	if store == nil {
		store = prefs.NewMemory()
	}

	state := &statepkg.AppState{
		Screen: statepkg.ScreenList,
		Layout: prefs.ListLayout(store),
	}
	if opts.Desktop != nil {
		state.ClipboardAvailable = opts.Desktop.CanCopy()
		state.OpenerAvailable = opts.Desktop.CanOpen()
	}
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	ctx, cancel := context.WithCancel(context.Background())

	actionCh := make(chan statepkg.Action, 10)

	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:     screen,
		state:      state,
		reducer:    statepkg.NewStateReducer(store),
		renderer:   renderui.NewRenderer(screen),
		input:      inputHandler,
		hub:        events.NewHub(),
		actionCh:   actionCh,
		documents:  opts.Documents,
		loader:     opts.Loader,
		desktop:    opts.Desktop,
		viewerOpts: opts.Viewer,
		ctx:        ctx,
		cancel:     cancel,
	}

	inputHandler.SetDispatch(func(a statepkg.Action) { app.handleAction(a) })

	app.loader.OnStateChange(func(engine.State) {
		app.dispatch(statepkg.ViewerChangedAction{})
	})

	app.handleAction(statepkg.RefreshDocumentsAction{})
	if opts.Open != nil {
		app.openDocument(*opts.Open)
	}
	return app, nil
}

// dispatch posts an action to the loop from any goroutine.
func (app *Application) dispatch(action statepkg.Action) {
	select {
	case <-app.ctx.Done():
		return
	default:
	}
	select {
	case app.actionCh <- action:
	default:
		go func() {
			select {
			case app.actionCh <- action:
			case <-app.ctx.Done():
			}
		}()
	}
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.closeViewer()
	app.cancel()
	if closer, ok := app.loader.Engine().(io.Closer); ok {
		_ = closer.Close()
	}
	app.screen.Fini()
	return nil
}
