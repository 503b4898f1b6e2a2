// Package prefs stores cross-session UI preferences.
package prefs

// Keys and their fallbacks.
const (
	KeyListLayout = "list.layout"

	LayoutTable = "table"
	LayoutCards = "cards"

	DefaultListLayout = LayoutTable
)

type Store interface {
	// Get returns the stored value for key, or fallback when unset or unreadable.
	Get(key, fallback string) string
	Set(key, value string) error
}

// ListLayout reads the remembered document list layout, rejecting unknown values.
func ListLayout(s Store) string {
	if s == nil {
		return DefaultListLayout
	}
	switch v := s.Get(KeyListLayout, DefaultListLayout); v {
	case LayoutTable, LayoutCards:
		return v
	}
	return DefaultListLayout
}

type Memory struct {
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key, fallback string) string {
	if v, ok := m.values[key]; ok {
		return v
	}
	return fallback
}

func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}
