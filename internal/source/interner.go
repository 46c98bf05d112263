package source

import (
	"slices"
)

type StringID uint32

const NoStringID StringID = 0

// Interner maps strings to dense ids. Id 0 is always the empty string.
// It is not safe for concurrent mutation; an arena owns exactly one.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the id of s, adding it when missing.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// own copy so callers may reuse their buffers
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for id, or "" and false when id is unknown.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup panics on an unknown id.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len counts NoStringID as well, so it is never below 1.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of every interned string in id order.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
