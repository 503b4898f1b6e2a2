package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/docview/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	if state.Screen == statepkg.ScreenDetail && state.Detail != nil {
		return detailHelpSegments(state)
	}

	if state.FilterActive {
		return []string{
			"type: filter (a, b)",
			"↵: accept",
			"Esc: clear",
		}
	}
	return []string{
		"↑↓: select",
		"↵: open",
		"/: filter",
		"v: table/cards",
		"r: reload",
		"q: quit",
	}
}

func detailHelpSegments(state *statepkg.AppState) []string {
	detail := state.Detail
	switch {
	case detail.Form != nil:
		return []string{"Tab: next field", "↵: save", "Esc: cancel"}
	case detail.SearchEditing:
		return []string{"type: search", "↵: find", "Esc: cancel"}
	}

	segments := []string{
		"←→: page",
		"^+/^-: zoom",
		"f: fit",
		"r: rotate",
		"/: search",
		"i: info",
		"e: index",
	}
	if state.OpenerAvailable {
		segments = append(segments, "o: open", "p: print")
	}
	segments = append(segments, "d: download", "q: back")
	return segments
}
