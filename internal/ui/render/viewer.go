package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docview/internal/state"
	"github.com/kk-code-lab/docview/internal/textutil"
	"github.com/kk-code-lab/docview/internal/ui/layout"
	"github.com/kk-code-lab/docview/internal/viewer"
)

func (r *Renderer) drawDetail(state *statepkg.AppState, w, h int) {
	detail := state.Detail
	m := layout.DetailMetrics(w, h, detail.DrawerOpen)
	if m.BodyHeight <= 0 {
		return
	}

	r.drawViewer(detail, 0, m.BodyTop, m.ViewerWidth, m.BodyHeight)

	if m.ShowDrawer {
		sep := tcell.StyleDefault.Foreground(r.theme.MutedFg)
		for y := m.BodyTop; y < m.BodyTop+m.BodyHeight; y++ {
			r.screen.SetContent(m.ViewerWidth, y, '│', nil, sep)
		}
		r.drawDrawer(detail, m.DrawerX, m.BodyTop, m.DrawerWidth, m.BodyHeight)
	}

	if detail.Form != nil {
		r.drawIndexForm(detail.Form, 0, m.BodyTop, m.ViewerWidth, m.BodyHeight)
	}
}

// drawViewer draws the toolbar, the page and the search bar.
func (r *Renderer) drawViewer(detail *statepkg.DetailState, x, top, width, height int) {
	snap := detail.Viewer.Snapshot()
	base := tcell.StyleDefault.Foreground(r.theme.Foreground)

	r.drawTextLine(x, top, width, r.truncateTextToWidth(viewerToolbarText(snap), width), base.Foreground(r.theme.MutedFg))

	pageTop := top + 1
	pageHeight := height - 2
	if pageHeight <= 0 {
		return
	}
	r.drawSearchBar(detail, x, top+height-1, width)

	muted := base.Foreground(r.theme.MutedFg)
	mid := pageTop + pageHeight/2
	switch snap.Presentation {
	case viewer.PresentationLoading:
		r.drawCentered(x, mid, width, "Loading viewer…", muted)
		return
	case viewer.PresentationEngineFailed:
		r.drawCentered(x, mid, width, "PDF engine unavailable", base.Foreground(r.theme.ErrorFg))
		r.drawCentered(x, mid+1, width, "o: open the document externally", muted)
		return
	case viewer.PresentationOpening:
		r.drawCentered(x, mid, width, "Opening document…", muted)
		return
	case viewer.PresentationError:
		msg := "Failed to load PDF: " + textutil.SanitizeTerminalText(firstLine(snap.Error))
		r.drawCentered(x, mid, width, msg, base.Foreground(r.theme.ErrorFg))
		return
	}

	if !detail.PageTextCurrent() {
		r.drawCentered(x, mid, width, "Rendering page…", muted)
		return
	}
	if detail.PageTextErr != nil {
		msg := "Page text unavailable: " + textutil.SanitizeTerminalText(firstLine(detail.PageTextErr.Error()))
		r.drawCentered(x, mid, width, msg, base.Foreground(r.theme.WarningFg))
		return
	}

	r.drawPage(detail.PageText, snap, x, pageTop, width, pageHeight)
}

func viewerToolbarText(snap viewer.Snapshot) string {
	parts := []string{}
	if snap.PageCount > 0 {
		parts = append(parts, fmt.Sprintf("Page %d/%d", snap.View.Page, snap.PageCount))
	} else {
		parts = append(parts, "Page -/-")
	}
	zoom := fmt.Sprintf("%d%%", int(math.Round(snap.View.Scale*100)))
	if snap.View.FitWidth {
		zoom = "fit width"
	}
	parts = append(parts, zoom)
	if snap.View.Rotation != 0 {
		parts = append(parts, fmt.Sprintf("↻ %d°", snap.View.Rotation))
	}
	if snap.Searching {
		parts = append(parts, "searching…")
	}
	return " " + strings.Join(parts, "  ")
}

// drawPage draws page text on a paper-coloured sheet of the controller's
// render width, centred in the panel.
func (r *Renderer) drawPage(text string, snap viewer.Snapshot, x, top, width, height int) {
	pageWidth := snap.RenderWidth
	if pageWidth <= 0 || pageWidth > width {
		pageWidth = width
	}
	offset := (width - pageWidth) / 2

	textWidth := pageWidth - 2
	if snap.View.Rotation == 90 || snap.View.Rotation == 270 {
		// The sheet is turned on its side: text lines run down the screen.
		textWidth = height
	}

	lines := textutil.Wrap(textutil.SanitizeTerminalText(text), textWidth)
	if len(lines) == 0 {
		lines = []string{"(no text on this page)"}
	}
	lines = RotateLines(lines, snap.View.Rotation)

	paper := tcell.StyleDefault.Background(r.theme.PageBg).Foreground(r.theme.PageFg)
	r.clearArea(x+offset, top, pageWidth, height, paper)
	for i, line := range lines {
		if i >= height {
			break
		}
		r.drawTextLine(x+offset+1, top+i, pageWidth-2, line, paper)
	}
}

// RotateLines turns a block of text clockwise by rotation degrees (a
// multiple of 90). Lines are treated as rune grids.
func RotateLines(lines []string, rotation int) []string {
	rotation = ((rotation % 360) + 360) % 360
	if rotation == 0 || len(lines) == 0 {
		return lines
	}

	grid := make([][]rune, len(lines))
	cols := 0
	for i, line := range lines {
		grid[i] = []rune(line)
		if len(grid[i]) > cols {
			cols = len(grid[i])
		}
	}
	at := func(row, col int) rune {
		if col < len(grid[row]) {
			return grid[row][col]
		}
		return ' '
	}

	rows := len(grid)
	var out []string
	switch rotation {
	case 90:
		for c := 0; c < cols; c++ {
			var b strings.Builder
			for r := rows - 1; r >= 0; r-- {
				b.WriteRune(at(r, c))
			}
			out = append(out, strings.TrimRight(b.String(), " "))
		}
	case 180:
		for r := rows - 1; r >= 0; r-- {
			var b strings.Builder
			for c := cols - 1; c >= 0; c-- {
				b.WriteRune(at(r, c))
			}
			out = append(out, strings.TrimRight(b.String(), " "))
		}
	case 270:
		for c := cols - 1; c >= 0; c-- {
			var b strings.Builder
			for r := 0; r < rows; r++ {
				b.WriteRune(at(r, c))
			}
			out = append(out, strings.TrimRight(b.String(), " "))
		}
	default:
		return lines
	}
	return out
}

func (r *Renderer) drawSearchBar(detail *statepkg.DetailState, x, y, width int) {
	switch {
	case detail.SearchEditing:
		style := tcell.StyleDefault.Background(r.theme.InputBg).Foreground(r.theme.InputFg)
		r.fillRow(x, y, x+width, style)
		text := "/" + textutil.SanitizeTerminalText(detail.SearchQuery)
		end := r.drawTextLine(x, y, width-1, r.truncateTextToWidth(text, width-1), style)
		if end < x+width {
			r.screen.SetContent(end, y, '▏', nil, style)
		}
	case detail.SearchErr != nil:
		msg := " search: " + textutil.SanitizeTerminalText(firstLine(detail.SearchErr.Error()))
		r.drawTextLine(x, y, width, r.truncateTextToWidth(msg, width), tcell.StyleDefault.Foreground(r.theme.WarningFg))
	case detail.LastSearch != nil:
		res := detail.LastSearch
		query := textutil.SanitizeTerminalText(res.Query)
		msg := fmt.Sprintf(" %q not found", query)
		if res.Found {
			msg = fmt.Sprintf(" %q on page %d  n: next", query, res.Page)
		}
		r.drawTextLine(x, y, width, r.truncateTextToWidth(msg, width), tcell.StyleDefault.Foreground(r.theme.MutedFg))
	}
}
