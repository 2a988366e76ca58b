package glossary

import (
	"reflect"
	"testing"
)

func TestAddEntrySkipsEmptyHeadwords(t *testing.T) {
	g := New()
	g.AddEntry(Entry{Word: "  apple ", Definition: "a fruit"})
	g.AddEntry(Entry{Word: "   ", Definition: "ignored"})

	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
	if got := g.Entries()[0].Word; got != "apple" {
		t.Errorf("Word = %q, want %q", got, "apple")
	}
}

func TestSortIsCaseInsensitiveAndStable(t *testing.T) {
	g := New()
	for _, w := range []string{"banana", "Apple", "apple", "cherry", "APPLE"} {
		g.AddEntry(Entry{Word: w})
	}
	g.Sort()

	var got []string
	for _, e := range g.Entries() {
		got = append(got, e.Word)
	}
	want := []string{"Apple", "apple", "APPLE", "banana", "cherry"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted words = %v, want %v", got, want)
	}
}

func TestInfo(t *testing.T) {
	g := New()
	g.SetInfo(InfoName, "Test Dict")
	g.SetInfo(InfoSourceLang, "en")
	g.SetInfo(InfoName, "Renamed")

	if got := g.GetInfo(InfoName); got != "Renamed" {
		t.Errorf("GetInfo(name) = %q, want %q", got, "Renamed")
	}
	if got := g.GetInfo("missing"); got != "" {
		t.Errorf("GetInfo(missing) = %q, want empty", got)
	}
	if got, want := g.InfoKeys(), []string{InfoName, InfoSourceLang}; !reflect.DeepEqual(got, want) {
		t.Errorf("InfoKeys() = %v, want %v", got, want)
	}
}

func TestTitleAndAuthorFallbacks(t *testing.T) {
	g := New()
	if got := g.Title(); got != "Untitled" {
		t.Errorf("Title() = %q, want Untitled", got)
	}
	g.SetInfo(InfoName, "name")
	if got := g.Title(); got != "name" {
		t.Errorf("Title() = %q, want name", got)
	}
	g.SetInfo(InfoTitle, "title")
	if got := g.Title(); got != "title" {
		t.Errorf("Title() = %q, want title", got)
	}

	g.SetInfo(InfoCreator, "creator")
	if got := g.Author(); got != "creator" {
		t.Errorf("Author() = %q, want creator", got)
	}
	g.SetInfo(InfoAuthor, "author")
	if got := g.Author(); got != "author" {
		t.Errorf("Author() = %q, want author", got)
	}
}

func TestEntryWords(t *testing.T) {
	e := Entry{Word: "colour", Alts: []string{"color"}}
	if got, want := e.Words(), []string{"colour", "color"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}
