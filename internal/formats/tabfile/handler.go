// Package tabfile reads tab-separated glossaries: one entry per line,
// "word|alt1|alt2<TAB>definition", with "##key<TAB>value" info lines.
package tabfile

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
	"github.com/FocuswithJustin/JuniperGlossary/internal/archive"
	"github.com/FocuswithJustin/JuniperGlossary/internal/formats"
	"github.com/FocuswithJustin/JuniperGlossary/internal/logging"
)

// Name is the registry name of the format.
const Name = "tabfile"

// maxLine bounds a single entry line.
const maxLine = 16 * 1024 * 1024

// ctxCheckEvery is how many lines are read between cancellation checks.
const ctxCheckEvery = 1000

// Reader implements formats.Reader.
type Reader struct{}

// Handler returns the registry entry for tab-separated files.
func Handler() *formats.Handler {
	return &formats.Handler{
		Name:        Name,
		Description: "Tabfile (.txt, .dic)",
		Extensions:  []string{".txt", ".tsv", ".dic"},
		Reader:      Reader{},
	}
}

// Register registers this reader with the formats registry.
func Register() {
	formats.Register(Handler())
}

func init() {
	Register()
}

// Read parses path, decompressing .xz and .gz inputs.
func (Reader) Read(ctx context.Context, path string) (*glossary.Glossary, error) {
	r, err := archive.Open(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	defer r.Close()

	glos := glossary.New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		head, def, ok := strings.Cut(line, "\t")
		if !ok {
			logging.Debug("skipping line without tab", "path", path, "line", lineNo)
			continue
		}

		if key, isInfo := strings.CutPrefix(head, "##"); isInfo {
			glos.SetInfo(strings.TrimSpace(key), unescape(def))
			continue
		}

		words := splitWords(head)
		if len(words) == 0 {
			continue
		}
		glos.AddEntry(glossary.Entry{
			Word:       words[0],
			Alts:       words[1:],
			Definition: unescape(def),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewParse(Name, path, fmt.Sprintf("line %d: %v", lineNo+1, err))
	}

	if glos.GetInfo(glossary.InfoName) == "" {
		glos.SetInfo(glossary.InfoName, formats.DefaultName(path))
	}
	return glos, nil
}

// splitWords splits "word|alt1|alt2" on unescaped pipes, dropping empty
// parts.
func splitWords(head string) []string {
	parts := splitUnescaped(head, '|')
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		p = norm.NFC.String(strings.TrimSpace(unescape(p)))
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// splitUnescaped splits s on sep, skipping separators preceded by a
// backslash. Escapes are left in place for unescape.
func splitUnescaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// unescape resolves \n, \t and \\ sequences. Unknown escapes are kept.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '|':
			b.WriteByte('|')
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}
