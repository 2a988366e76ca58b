package ebook

import (
	"fmt"

	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
)

// Group is a run of sorted entries sharing a headword prefix. Index is
// 1-based and determines the page file name.
type Group struct {
	Index   int
	Prefix  string
	Entries []glossary.Entry
}

// FileName returns the page file name, e.g. "g000001.xhtml".
func (g Group) FileName() string {
	return fmt.Sprintf("g%06d.xhtml", g.Index)
}

// Title returns "first" or "first – last" for the group's headwords.
func (g Group) Title() string {
	if len(g.Entries) == 0 {
		return g.Prefix
	}
	first := g.Entries[0].Word
	last := g.Entries[len(g.Entries)-1].Word
	if first == last {
		return first
	}
	return first + " – " + last
}

// GroupEntries splits sorted entries into consecutive groups keyed by the
// first prefixLen runes of their sort key.
func GroupEntries(entries []glossary.Entry, prefixLen int) []Group {
	if prefixLen <= 0 {
		prefixLen = DefaultGroupByPrefixLength
	}

	var groups []Group
	for _, e := range entries {
		prefix := prefixOf(glossary.SortKey(e.Word), prefixLen)
		if n := len(groups); n > 0 && groups[n-1].Prefix == prefix {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, Group{
			Index:   len(groups) + 1,
			Prefix:  prefix,
			Entries: []glossary.Entry{e},
		})
	}
	return groups
}

func prefixOf(key string, n int) string {
	runes := []rune(key)
	if len(runes) <= n {
		return key
	}
	return string(runes[:n])
}
