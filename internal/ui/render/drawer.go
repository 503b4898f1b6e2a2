package render

import (
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docview/internal/state"
	"github.com/kk-code-lab/docview/internal/textutil"
)

const timestampLayout = "2006-01-02 15:04"

type drawerField struct {
	label string
	value string
}

func (r *Renderer) drawerFields(detail *statepkg.DetailState) []drawerField {
	doc := detail.Document
	fields := []drawerField{
		{"Title", documentTitle(doc)},
		{"ID", doc.ID},
		{"Type", doc.Mime},
		{"Size", formatBytes(doc.Size)},
		{"Tenant", doc.TenantID},
		{"Fingerprint", doc.Fingerprint},
		{"Key", doc.Key},
	}
	if doc.Origin != nil && *doc.Origin != "" {
		fields = append(fields, drawerField{"Origin", *doc.Origin})
	}
	fields = append(fields,
		drawerField{"Created", r.formatTimestamp(doc.CreatedAt)},
		drawerField{"Updated", r.formatTimestamp(doc.UpdatedAt)},
	)
	if doc.DeletedAt != nil {
		fields = append(fields, drawerField{"Deleted", r.formatTimestamp(*doc.DeletedAt)})
	}

	lock := "unlocked  L: lock"
	if detail.LockKey != "" {
		lock = "locked " + detail.LockKey
	}
	fields = append(fields, drawerField{"Lock", lock})

	share := "s: create one-time link"
	if detail.ShareURL != "" {
		share = detail.ShareURL
	}
	fields = append(fields, drawerField{"Share", share})
	return fields
}

func (r *Renderer) formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timestampLayout) + " (" + r.relativeTime(t) + ")"
}

// drawDrawer renders the metadata drawer as label/value pairs; long values
// wrap under their label.
func (r *Renderer) drawDrawer(detail *statepkg.DetailState, x, top, width, height int) {
	style := tcell.StyleDefault.Background(r.theme.DrawerBg).Foreground(r.theme.DrawerFg)
	label := style.Foreground(r.theme.MutedFg)
	r.clearArea(x, top, width, height, style)

	inner := width - 2
	if inner <= 0 {
		return
	}
	y := top
	bottom := top + height
	r.drawTextLine(x+1, y, inner, "Information", style.Bold(true))
	y += 2

	for _, field := range r.drawerFields(detail) {
		if y >= bottom {
			return
		}
		r.drawTextLine(x+1, y, inner, field.label, label)
		y++
		for _, line := range textutil.Wrap(textutil.SanitizeTerminalText(field.value), inner) {
			if y >= bottom {
				return
			}
			r.drawTextLine(x+1, y, inner, line, style)
			y++
		}
	}
}
