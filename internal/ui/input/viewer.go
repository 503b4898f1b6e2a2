package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docview/internal/state"
)

// ViewerKeyAction maps a key pressed on the viewer to an action, or nil
// when the viewer does not use the key.
func ViewerKeyAction(ev *tcell.EventKey) statepkg.Action {
	mods := ev.Modifiers()

	switch ev.Key() {
	case tcell.KeyLeft:
		if mods == tcell.ModNone {
			return statepkg.ViewerPrevPageAction{}
		}
		return nil
	case tcell.KeyRight:
		if mods == tcell.ModNone {
			return statepkg.ViewerNextPageAction{}
		}
		return nil
	case tcell.KeyPgUp:
		return statepkg.ViewerPrevPageAction{}
	case tcell.KeyPgDn:
		return statepkg.ViewerNextPageAction{}
	case tcell.KeyHome:
		return statepkg.ViewerFirstPageAction{}
	case tcell.KeyEnd:
		return statepkg.ViewerLastPageAction{}
	case tcell.KeyEscape:
		return statepkg.CloseDetailAction{}
	case tcell.KeyCtrlUnderscore:
		// Legacy terminals encode Ctrl+- as 0x1f.
		return statepkg.ViewerZoomOutAction{}
	case tcell.KeyRune:
	default:
		return nil
	}

	r := ev.Rune()
	if mods&tcell.ModCtrl != 0 {
		switch r {
		case '+', '=':
			return statepkg.ViewerZoomInAction{}
		case '-':
			return statepkg.ViewerZoomOutAction{}
		}
		return nil
	}
	if mods&tcell.ModAlt != 0 {
		return nil
	}

	switch r {
	case '+', '=':
		return statepkg.ViewerZoomInAction{}
	case '-':
		return statepkg.ViewerZoomOutAction{}
	case '0':
		return statepkg.ViewerResetZoomAction{}
	case 'f':
		return statepkg.ViewerToggleFitWidthAction{}
	case 'r':
		return statepkg.ViewerRotateAction{}
	case '/':
		return statepkg.SearchStartAction{}
	case 'n':
		return statepkg.SearchNextAction{}
	case 'o':
		return statepkg.OpenExternalAction{}
	case 'd':
		return statepkg.DownloadAction{}
	case 'p':
		return statepkg.PrintAction{}
	case 'i':
		return statepkg.ToggleDrawerAction{}
	case 'e':
		return statepkg.FormOpenAction{}
	case 'L':
		return statepkg.LockDocumentAction{}
	case 's':
		return statepkg.ShareLinkAction{}
	case 'q':
		return statepkg.CloseDetailAction{}
	}
	return nil
}

// SearchKeyAction maps keys while the search query is being typed. Keys it
// returns nil for stay available to the viewer.
func SearchKeyAction(ev *tcell.EventKey) statepkg.Action {
	switch ev.Key() {
	case tcell.KeyEscape:
		return statepkg.SearchCancelAction{}
	case tcell.KeyEnter:
		return statepkg.SearchSubmitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return statepkg.SearchBackspaceAction{}
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return nil
		}
		if r := ev.Rune(); unicode.IsPrint(r) {
			return statepkg.SearchCharAction{Char: r}
		}
	}
	return nil
}

// FormKeyAction maps keys while the index form is open.
func FormKeyAction(ev *tcell.EventKey) statepkg.Action {
	switch ev.Key() {
	case tcell.KeyEscape:
		return statepkg.FormCancelAction{}
	case tcell.KeyEnter:
		return statepkg.FormSubmitAction{}
	case tcell.KeyTab, tcell.KeyDown:
		return statepkg.FormNextFieldAction{}
	case tcell.KeyBacktab, tcell.KeyUp:
		return statepkg.FormPrevFieldAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return statepkg.FormBackspaceAction{}
	case tcell.KeyRune:
		if r := ev.Rune(); unicode.IsPrint(r) {
			return statepkg.FormCharAction{Char: r}
		}
	}
	return nil
}
