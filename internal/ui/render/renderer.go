package render

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docview/internal/state"
	"github.com/kk-code-lab/docview/internal/textutil"
)

const statusMessageTTL = 4 * time.Second

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
	now              func() time.Time
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		now:    time.Now,
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 || state == nil {
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	if state.Screen == statepkg.ScreenDetail && state.Detail != nil {
		r.drawDetail(state, w, h)
	} else {
		r.drawList(state, w, h)
	}
	r.drawStatusLine(state, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar with the program name and the screen title.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fillRow(0, 0, w, headerStyle)

	endX := r.drawTextLine(0, 0, w, "docview", headerStyle.Bold(true))
	if endX < w {
		endX++
	}

	var title string
	switch {
	case state.Screen == statepkg.ScreenDetail && state.Detail != nil:
		title = state.Detail.Document.Title
		if title == "" {
			title = state.Detail.Document.ID
		}
		if state.Detail.LockKey != "" {
			title = "🔒 " + title
		}
	default:
		title = "Documents"
	}

	title = textutil.SanitizeTerminalText(title)
	r.drawTextLine(endX, 0, w-endX, r.truncateTextToWidth(title, w-endX), headerStyle)
}

// drawStatusLine renders the bottom line: a transient message or error on
// the left and key hints for the current context.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fillRow(0, y, w, style)

	x := 0
	if state.LastError != nil {
		msg := " " + textutil.SanitizeTerminalText(firstLine(state.LastError.Error())) + " "
		x = r.drawTextLine(0, y, w, r.truncateTextToWidth(msg, w), style.Foreground(r.theme.ErrorFg))
	} else if state.StatusMessage != "" && r.now().Sub(state.StatusTime) < statusMessageTTL {
		msg := " " + textutil.SanitizeTerminalText(state.StatusMessage) + " "
		x = r.drawTextLine(0, y, w, r.truncateTextToWidth(msg, w), style.Foreground(r.theme.AccentFg))
	}

	help := buildFooterHelpText(state)
	if help == "" || x >= w {
		return
	}
	helpWidth := r.measureTextWidth(help)
	available := w - x
	if helpWidth > available {
		help = r.truncateTextToWidth(help, available)
		helpWidth = r.measureTextWidth(help)
	}
	r.drawTextLine(w-helpWidth, y, helpWidth, help, style.Foreground(r.theme.MutedFg))
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
