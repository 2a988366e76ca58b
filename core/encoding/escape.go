// Package encoding provides shared text escaping utilities for the generated
// XHTML and OPF files.
package encoding

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// EscapeXML escapes special characters for XML content.
// Uses the standard library's xml.EscapeText for proper escaping.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// EscapeXMLAttr escapes text for use in double-quoted XML attributes.
func EscapeXMLAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// EscapeHeadword escapes a dictionary headword for XHTML text. Unlike
// EscapeXML it keeps tabs and newlines out of the output entirely, since
// kindlegen indexes the raw orth text.
func EscapeHeadword(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, s)
	return EscapeXMLAttr(strings.TrimSpace(s))
}

// NormalizeNewlines converts CRLF and bare CR line endings to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
