package render

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/docview/internal/api"
	"github.com/kk-code-lab/docview/internal/prefs"
	statepkg "github.com/kk-code-lab/docview/internal/state"
	"github.com/kk-code-lab/docview/internal/textutil"
)

type tableColumn struct {
	title string
	width int
	value func(r *Renderer, doc api.Document) string
}

func (r *Renderer) documentColumns(w int) []tableColumn {
	columns := []tableColumn{
		{title: "Type", width: 18, value: func(r *Renderer, doc api.Document) string { return doc.Mime }},
		{title: "Size", width: 10, value: func(r *Renderer, doc api.Document) string { return formatBytes(doc.Size) }},
		{title: "Tenant", width: 12, value: func(r *Renderer, doc api.Document) string { return doc.TenantID }},
		{title: "Updated", width: 14, value: func(r *Renderer, doc api.Document) string { return r.relativeTime(doc.UpdatedAt) }},
	}

	// Drop trailing columns until the title keeps at least 20 cells.
	const minTitle = 20
	for len(columns) > 0 {
		used := 0
		for _, c := range columns {
			used += c.width + 1
		}
		if w-used >= minTitle {
			title := tableColumn{title: "Title", width: w - used - 1, value: func(r *Renderer, doc api.Document) string { return documentTitle(doc) }}
			return append([]tableColumn{title}, columns...)
		}
		columns = columns[:len(columns)-1]
	}
	return []tableColumn{{title: "Title", width: w, value: func(r *Renderer, doc api.Document) string { return documentTitle(doc) }}}
}

func documentTitle(doc api.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	return doc.ID
}

// formatBytes renders sizes with binary units.
func formatBytes(size int64) string {
	if size <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(size))
}

func (r *Renderer) relativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, r.now(), "ago", "from now")
}

func (r *Renderer) drawList(state *statepkg.AppState, w, h int) {
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	listTop := 2
	rows := h - listTop - 1
	if rows <= 0 {
		return
	}

	filterShown := state.FilterActive || state.FilterQuery != ""
	if filterShown {
		r.drawFilterBar(state, w)
	}

	docs := state.DisplayDocuments()
	switch {
	case state.DocumentsLoading && len(state.Documents) == 0:
		r.drawCentered(0, listTop+rows/2, w, "Loading documents…", base.Foreground(r.theme.MutedFg))
		return
	case state.DocumentsError != nil && len(state.Documents) == 0:
		msg := "Failed to load documents: " + textutil.SanitizeTerminalText(firstLine(state.DocumentsError.Error()))
		r.drawCentered(0, listTop+rows/2, w, msg, base.Foreground(r.theme.ErrorFg))
		r.drawCentered(0, listTop+rows/2+1, w, "r: retry", base.Foreground(r.theme.MutedFg))
		return
	case len(docs) == 0 && len(state.Documents) > 0:
		r.drawCentered(0, listTop+rows/2, w, "No documents match the filter", base.Foreground(r.theme.MutedFg))
		return
	case len(docs) == 0:
		r.drawCentered(0, listTop+rows/2, w, "No documents", base.Foreground(r.theme.MutedFg))
		return
	}

	if state.Layout == prefs.LayoutCards {
		if !filterShown {
			summary := fmt.Sprintf(" %d documents", len(docs))
			r.drawTextLine(0, 1, w, summary, base.Foreground(r.theme.MutedFg))
		}
		r.drawDocumentCards(state, docs, w, listTop, rows)
		return
	}

	columns := r.documentColumns(w)
	if !filterShown {
		r.drawTableHeader(columns, w)
	}
	r.drawDocumentTable(state, docs, columns, w, listTop, rows)
}

func (r *Renderer) drawFilterBar(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Background(r.theme.InputBg).Foreground(r.theme.InputFg)
	r.fillRow(0, 1, w, style)
	text := "/" + textutil.SanitizeTerminalText(state.FilterQuery)
	x := r.drawTextLine(0, 1, w, r.truncateTextToWidth(text, w-1), style)
	if state.FilterActive && x < w {
		r.screen.SetContent(x, 1, '▏', nil, style)
	}
	count := fmt.Sprintf(" %d/%d ", len(state.DisplayDocuments()), len(state.Documents))
	if cw := r.measureTextWidth(count); x+2+cw <= w {
		r.drawTextLine(w-cw, 1, cw, count, style.Foreground(r.theme.MutedFg))
	}
}

func (r *Renderer) drawTableHeader(columns []tableColumn, w int) {
	style := tcell.StyleDefault.Bold(true).Foreground(r.theme.MutedFg)
	x := 0
	for _, c := range columns {
		r.drawTextLine(x, 1, c.width, textutil.PadRight(c.title, c.width), style)
		x += c.width + 1
	}
}

func (r *Renderer) drawDocumentTable(state *statepkg.AppState, docs []api.Document, columns []tableColumn, w, top, rows int) {
	for row := 0; row < rows; row++ {
		idx := state.ScrollOffset + row
		if idx >= len(docs) {
			break
		}
		doc := docs[idx]
		y := top + row

		style := tcell.StyleDefault.Foreground(r.theme.Foreground)
		if idx == state.SelectedIndex {
			style = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
			r.fillRow(0, y, w, style)
		}

		x := 0
		for _, c := range columns {
			value := textutil.SanitizeTerminalText(c.value(r, doc))
			r.drawTextLine(x, y, c.width, r.truncateTextToWidth(value, c.width), style)
			x += c.width + 1
		}
	}
}

func (r *Renderer) drawDocumentCards(state *statepkg.AppState, docs []api.Document, w, top, rows int) {
	cards := rows / statepkg.CardHeight
	if cards < 1 {
		cards = 1
	}
	inner := w - 3
	if inner < 1 {
		return
	}

	for i := 0; i < cards; i++ {
		idx := state.ScrollOffset + i
		if idx >= len(docs) {
			break
		}
		doc := docs[idx]
		y := top + i*statepkg.CardHeight
		selected := idx == state.SelectedIndex

		title := tcell.StyleDefault.Bold(true).Foreground(r.theme.Foreground)
		detail := tcell.StyleDefault.Foreground(r.theme.MutedFg)
		bar := tcell.StyleDefault.Foreground(r.theme.MutedFg)
		if selected {
			bar = tcell.StyleDefault.Foreground(r.theme.AccentFg)
			title = title.Foreground(r.theme.AccentFg)
		}

		lines := []struct {
			text  string
			style tcell.Style
		}{
			{documentTitle(doc), title},
			{joinNonEmpty(" · ", doc.Mime, formatBytes(doc.Size)), detail},
			{joinNonEmpty(" · ", doc.TenantID, "updated "+r.relativeTime(doc.UpdatedAt)), detail},
		}
		for j, line := range lines {
			if y+j >= top+rows {
				break
			}
			r.screen.SetContent(1, y+j, '▌', nil, bar)
			text := textutil.SanitizeTerminalText(line.text)
			r.drawTextLine(3, y+j, inner, r.truncateTextToWidth(text, inner), line.style)
		}
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
