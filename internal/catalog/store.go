package catalog

import (
	"cardmeta/internal/record"
)

// Entry is one comparable record.
type Entry struct {
	ID     record.ID
	Name   string
	Path   string
	Record *record.Record
}

// Store holds comparable records keyed by identifier, in first-insertion order.
type Store struct {
	entries []*Entry
	index   map[string]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Put adds entry. An entry with an identifier already present replaces the
// earlier one at its original position; Put reports whether that happened.
func (s *Store) Put(entry *Entry) (replaced bool) {
	key := entry.ID.Key()
	if pos, ok := s.index[key]; ok {
		s.entries[pos] = entry
		return true
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, entry)
	return false
}

// Get returns the entry for id.
func (s *Store) Get(id record.ID) (*Entry, bool) {
	pos, ok := s.index[id.Key()]
	if !ok {
		return nil, false
	}
	return s.entries[pos], true
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns entries in insertion order. The slice must not be modified.
func (s *Store) Entries() []*Entry { return s.entries }
