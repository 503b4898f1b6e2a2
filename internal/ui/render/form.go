package render

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docview/internal/state"
	"github.com/kk-code-lab/docview/internal/textutil"
)

var indexFields = []statepkg.IndexField{
	statepkg.IndexFieldTitle,
	statepkg.IndexFieldTags,
	statepkg.IndexFieldType,
}

// drawIndexForm draws the index data form as a box over the viewer.
func (r *Renderer) drawIndexForm(form *statepkg.IndexForm, x, top, width, height int) {
	boxWidth := width - 4
	if boxWidth > 64 {
		boxWidth = 64
	}
	boxHeight := len(indexFields)*2 + 4
	if boxWidth < 20 || boxHeight > height {
		return
	}
	bx := x + (width-boxWidth)/2
	by := top + (height-boxHeight)/2

	style := tcell.StyleDefault.Background(r.theme.DrawerBg).Foreground(r.theme.DrawerFg)
	border := style.Foreground(r.theme.AccentFg)
	r.clearArea(bx, by, boxWidth, boxHeight, style)
	r.drawBox(bx, by, boxWidth, boxHeight, border)
	r.drawTextLine(bx+2, by, boxWidth-4, " Index document ", border.Bold(true))

	inner := boxWidth - 4
	labelWidth := 7
	fieldWidth := inner - labelWidth
	y := by + 1
	for _, field := range indexFields {
		r.drawTextLine(bx+2, y, labelWidth, field.Label(), style.Foreground(r.theme.MutedFg))

		input := tcell.StyleDefault.Background(r.theme.InputBg).Foreground(r.theme.InputFg)
		r.fillRow(bx+2+labelWidth, y, bx+2+labelWidth+fieldWidth, input)
		value := textutil.SanitizeTerminalText(form.Values[field])
		// Keep the end of the value, where the cursor is, visible.
		for textutil.DisplayWidth(value) > fieldWidth-1 && value != "" {
			_, size := utf8.DecodeRuneInString(value)
			value = value[size:]
		}
		end := r.drawTextLine(bx+2+labelWidth, y, fieldWidth-1, value, input)
		if field == form.Focus && !form.Saving {
			r.screen.SetContent(end, y, '▏', nil, input)
		}
		y += 2
	}

	status := "Tab: next  ↵: save  Esc: cancel"
	statusStyle := style.Foreground(r.theme.MutedFg)
	switch {
	case form.Saving:
		status = "Saving…"
	case form.Err != nil:
		status = "Save failed: " + textutil.SanitizeTerminalText(firstLine(form.Err.Error()))
		statusStyle = style.Foreground(r.theme.ErrorFg)
	}
	r.drawTextLine(bx+2, by+boxHeight-2, inner, r.truncateTextToWidth(status, inner), statusStyle)
}

func (r *Renderer) drawBox(x, y, width, height int, style tcell.Style) {
	right, bottom := x+width-1, y+height-1
	for cx := x + 1; cx < right; cx++ {
		r.screen.SetContent(cx, y, '─', nil, style)
		r.screen.SetContent(cx, bottom, '─', nil, style)
	}
	for cy := y + 1; cy < bottom; cy++ {
		r.screen.SetContent(x, cy, '│', nil, style)
		r.screen.SetContent(right, cy, '│', nil, style)
	}
	r.screen.SetContent(x, y, '┌', nil, style)
	r.screen.SetContent(right, y, '┐', nil, style)
	r.screen.SetContent(x, bottom, '└', nil, style)
	r.screen.SetContent(right, bottom, '┘', nil, style)
}
