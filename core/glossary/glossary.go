// Package glossary provides the in-memory dictionary model shared by the
// readers and writers: headword/definition entries plus an info map of
// book-level metadata.
package glossary

import (
	"sort"
	"strings"
)

// Well-known info keys.
const (
	InfoName       = "name"
	InfoTitle      = "title"
	InfoSourceLang = "sourceLang"
	InfoTargetLang = "targetLang"
	InfoAuthor     = "author"
	InfoCreator    = "creator"
	InfoCopyright  = "copyright"
	InfoUUID       = "uuid"
)

// Entry is a single headword and its definition. Alts are alternate
// spellings indexed alongside Word.
type Entry struct {
	Word       string
	Alts       []string
	Definition string
}

// Words returns the headword followed by its alternates.
func (e Entry) Words() []string {
	words := make([]string, 0, 1+len(e.Alts))
	words = append(words, e.Word)
	return append(words, e.Alts...)
}

// Glossary holds the entries and metadata of one dictionary.
type Glossary struct {
	entries []Entry
	info    map[string]string
	infoSeq []string
}

// New creates an empty glossary.
func New() *Glossary {
	return &Glossary{info: make(map[string]string)}
}

// AddEntry appends an entry. Entries with an empty headword are ignored.
func (g *Glossary) AddEntry(e Entry) {
	e.Word = strings.TrimSpace(e.Word)
	if e.Word == "" {
		return
	}
	g.entries = append(g.entries, e)
}

// Entries returns the entries in their current order.
func (g *Glossary) Entries() []Entry {
	return g.entries
}

// Len returns the number of entries.
func (g *Glossary) Len() int {
	return len(g.entries)
}

// Sort orders entries by lower-cased headword, keeping insertion order for
// equal keys.
func (g *Glossary) Sort() {
	sort.SliceStable(g.entries, func(i, j int) bool {
		return SortKey(g.entries[i].Word) < SortKey(g.entries[j].Word)
	})
}

// SortKey returns the key entries are ordered and grouped by.
func SortKey(word string) string {
	return strings.ToLower(word)
}

// SetInfo stores a metadata value. Keys keep their first insertion order.
func (g *Glossary) SetInfo(key, value string) {
	if _, ok := g.info[key]; !ok {
		g.infoSeq = append(g.infoSeq, key)
	}
	g.info[key] = value
}

// GetInfo returns a metadata value, or "" when unset.
func (g *Glossary) GetInfo(key string) string {
	return g.info[key]
}

// InfoKeys returns the metadata keys in insertion order.
func (g *Glossary) InfoKeys() []string {
	keys := make([]string, len(g.infoSeq))
	copy(keys, g.infoSeq)
	return keys
}

// Title returns the dictionary title, falling back to the name.
func (g *Glossary) Title() string {
	if t := g.info[InfoTitle]; t != "" {
		return t
	}
	if n := g.info[InfoName]; n != "" {
		return n
	}
	return "Untitled"
}

// Author returns the author, falling back to the creator.
func (g *Glossary) Author() string {
	if a := g.info[InfoAuthor]; a != "" {
		return a
	}
	return g.info[InfoCreator]
}
