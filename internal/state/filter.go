package state

import (
	"strings"

	"github.com/kk-code-lab/docview/internal/api"
	"golang.org/x/text/cases"
)

// FilterTokens splits a quick-filter query on commas into case-folded,
// trimmed tokens. Empty tokens are dropped.
func FilterTokens(query string) []string {
	folder := cases.Fold()
	parts := strings.Split(query, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens = append(tokens, folder.String(part))
	}
	return tokens
}

// MatchDocument reports whether any token occurs in the document's title,
// mime type or tenant. No tokens match everything.
func MatchDocument(doc api.Document, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	folder := cases.Fold()
	fields := []string{
		folder.String(doc.Title),
		folder.String(doc.Mime),
		folder.String(doc.TenantID),
	}
	for _, token := range tokens {
		for _, field := range fields {
			if strings.Contains(field, token) {
				return true
			}
		}
	}
	return false
}

// SplitTags turns the comma separated tags input into a tag list.
func SplitTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// recomputeFilter rebuilds FilteredIndices from FilterQuery, keeping the
// selected document highlighted when it still matches.
func (s *AppState) recomputeFilter() {
	var selectedID string
	if doc := s.SelectedDocument(); doc != nil {
		selectedID = doc.ID
	}

	if s.FilterQuery == "" {
		s.FilteredIndices = nil
	} else {
		tokens := FilterTokens(s.FilterQuery)
		indices := make([]int, 0, len(s.Documents))
		for i, doc := range s.Documents {
			if MatchDocument(doc, tokens) {
				indices = append(indices, i)
			}
		}
		s.FilteredIndices = indices
	}

	s.SelectedIndex = 0
	if selectedID != "" {
		for i, doc := range s.DisplayDocuments() {
			if doc.ID == selectedID {
				s.SelectedIndex = i
				break
			}
		}
	}
	s.ensureSelectionVisible()
}
