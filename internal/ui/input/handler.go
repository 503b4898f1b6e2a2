package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docview/internal/state"
)

// InputHandler converts tcell events to Actions for the document list and
// the global bindings. The detail screen receives its keys through the
// listeners it mounts on the event hub.
type InputHandler struct {
	actionChan chan statepkg.Action
	dispatch   func(statepkg.Action)
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetDispatch makes the handler pass actions to fn instead of the channel.
// The event loop uses it to apply actions in place, so handling a key never
// waits on the loop's own queue.
func (ih *InputHandler) SetDispatch(fn func(statepkg.Action)) {
	ih.dispatch = fn
}

func (ih *InputHandler) emit(action statepkg.Action) {
	if ih.dispatch != nil {
		ih.dispatch(action)
		return
	}
	ih.actionChan <- action
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.emit(statepkg.ResizeAction{Width: w, Height: h})
		return true
	default:
		return true
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.emit(statepkg.QuitAction{})
		return false
	case tcell.KeyCtrlZ:
		ih.emit(statepkg.SuspendAction{})
		return true
	}

	if ih.state != nil && ih.state.Screen != statepkg.ScreenList {
		return true
	}

	inFilterMode := ih.state != nil && ih.state.FilterActive
	if inFilterMode {
		return ih.processFilterKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if ih.state != nil && ih.state.FilterQuery != "" {
			ih.emit(statepkg.FilterClearAction{})
		}
		return true
	case tcell.KeyUp:
		ih.emit(statepkg.NavigateUpAction{})
		return true
	case tcell.KeyDown:
		ih.emit(statepkg.NavigateDownAction{})
		return true
	case tcell.KeyPgUp:
		ih.emit(statepkg.NavigatePageUpAction{})
		return true
	case tcell.KeyPgDn:
		ih.emit(statepkg.NavigatePageDownAction{})
		return true
	case tcell.KeyHome:
		ih.emit(statepkg.NavigateHomeAction{})
		return true
	case tcell.KeyEnd:
		ih.emit(statepkg.NavigateEndAction{})
		return true
	case tcell.KeyEnter, tcell.KeyRight:
		ih.emit(statepkg.OpenSelectedAction{})
		return true
	case tcell.KeyRune:
		return ih.processListRune(ev.Rune())
	default:
		return true
	}
}

func (ih *InputHandler) processListRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.emit(statepkg.QuitAction{})
		return false
	case 'j':
		ih.emit(statepkg.NavigateDownAction{})
	case 'k':
		ih.emit(statepkg.NavigateUpAction{})
	case 'g':
		ih.emit(statepkg.NavigateHomeAction{})
	case 'G':
		ih.emit(statepkg.NavigateEndAction{})
	case 'l':
		ih.emit(statepkg.OpenSelectedAction{})
	case 'v':
		ih.emit(statepkg.ToggleLayoutAction{})
	case 'r':
		ih.emit(statepkg.RefreshDocumentsAction{})
	case '/':
		ih.emit(statepkg.FilterStartAction{})
	}
	return true
}

func (ih *InputHandler) processFilterKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.FilterClearAction{})
	case tcell.KeyEnter:
		ih.emit(statepkg.FilterAcceptAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(statepkg.FilterBackspaceAction{})
	case tcell.KeyUp:
		ih.emit(statepkg.NavigateUpAction{})
	case tcell.KeyDown:
		ih.emit(statepkg.NavigateDownAction{})
	case tcell.KeyRune:
		if r := ev.Rune(); unicode.IsPrint(r) {
			ih.emit(statepkg.FilterCharAction{Char: r})
		}
	}
	return true
}
