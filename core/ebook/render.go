package ebook

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/FocuswithJustin/JuniperGlossary/core/encoding"
	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
)

type bookMeta struct {
	Title      string
	SourceLang string
	TargetLang string
	Identifier string
	Creator    string
	Copyright  string
	Cover      string
}

type renderer struct {
	templates Templates
	title     string
	indexPage bool
	parsed    map[string]*template.Template
}

func (r *renderer) exec(name, text string, data any) ([]byte, error) {
	if r.parsed == nil {
		r.parsed = make(map[string]*template.Template)
	}
	tmpl, ok := r.parsed[name]
	if !ok {
		var err error
		tmpl, err = template.New(name).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, &errors.ParseError{Format: "template", Path: name, Message: err.Error(), Err: err}
		}
		r.parsed[name] = tmpl
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "render %s", name)
	}
	return buf.Bytes(), nil
}

func (r *renderer) groupPage(groups []Group, i int) ([]byte, error) {
	g := groups[i]

	var contents strings.Builder
	for j, e := range g.Entries {
		alts := make([]string, 0, len(e.Alts))
		for _, a := range e.Alts {
			if a = encoding.EscapeHeadword(a); a != "" {
				alts = append(alts, a)
			}
		}
		entry, err := r.exec("entry", r.templates.Entry, map[string]any{
			"Headword":   encoding.EscapeHeadword(e.Word),
			"Alts":       alts,
			"Definition": encoding.NormalizeNewlines(e.Definition),
		})
		if err != nil {
			return nil, err
		}
		if j > 0 {
			contents.WriteByte('\n')
		}
		contents.Write(entry)
	}

	prev, next := g, g
	if i > 0 {
		prev = groups[i-1]
	}
	if i < len(groups)-1 {
		next = groups[i+1]
	}

	indexLink := ""
	if r.indexPage {
		indexLink = r.templates.IndexLink
	}

	return r.exec("group", r.templates.GroupPage, map[string]any{
		"Title":        encoding.EscapeXML(r.title),
		"GroupTitle":   encoding.EscapeXML(g.Title()),
		"PreviousLink": prev.FileName(),
		"NextLink":     next.FileName(),
		"IndexLink":    indexLink,
		"Contents":     contents.String(),
	})
}

func (r *renderer) renderIndexPage(groups []Group) ([]byte, error) {
	var links strings.Builder
	for i, g := range groups {
		if i > 0 {
			links.WriteByte('\n')
		}
		fmt.Fprintf(&links, "\t\t\t<li><a href=\"%s\">%s</a></li>", g.FileName(), encoding.EscapeXML(g.Title()))
	}
	return r.exec("index", r.templates.IndexPage, map[string]any{
		"Title": encoding.EscapeXML(r.title),
		"Links": links.String(),
	})
}

func (r *renderer) ncx(meta bookMeta, groups []Group) ([]byte, error) {
	var nav strings.Builder
	for i, g := range groups {
		if i > 0 {
			nav.WriteByte('\n')
		}
		fmt.Fprintf(&nav, "\t\t<navPoint id=\"n%06d\" playOrder=\"%d\">\n", g.Index, i+1)
		fmt.Fprintf(&nav, "\t\t\t<navLabel><text>%s</text></navLabel>\n", encoding.EscapeXML(g.Title()))
		fmt.Fprintf(&nav, "\t\t\t<content src=\"%s\" />\n", g.FileName())
		nav.WriteString("\t\t</navPoint>")
	}
	return r.exec("ncx", r.templates.NCX, map[string]any{
		"Identifier": encoding.EscapeXMLAttr(meta.Identifier),
		"Title":      encoding.EscapeXML(meta.Title),
		"NavPoints":  nav.String(),
	})
}

type manifestItem struct {
	id, href, mediaType string
}

func (r *renderer) opf(meta bookMeta, groups []Group) ([]byte, error) {
	items := []manifestItem{
		{"style", StyleName, "text/css"},
		{"toc", NCXName, "application/x-dtbncx+xml"},
	}
	var spine []string
	if r.indexPage {
		items = append(items, manifestItem{"index", IndexName, "application/xhtml+xml"})
		spine = append(spine, "index")
	}
	for _, g := range groups {
		id := strings.TrimSuffix(g.FileName(), ".xhtml")
		items = append(items, manifestItem{id, g.FileName(), "application/xhtml+xml"})
		spine = append(spine, id)
	}
	if meta.Cover != "" {
		mt := mime.TypeByExtension(filepath.Ext(meta.Cover))
		if mt == "" {
			mt = "image/jpeg"
		}
		items = append(items, manifestItem{"cover", meta.Cover, mt})
	}

	var manifest strings.Builder
	for i, it := range items {
		if i > 0 {
			manifest.WriteByte('\n')
		}
		fmt.Fprintf(&manifest, "\t\t<item href=\"%s\" id=\"%s\" media-type=\"%s\" />", encoding.EscapeXMLAttr(it.href), it.id, it.mediaType)
	}

	var spineXML strings.Builder
	for i, id := range spine {
		if i > 0 {
			spineXML.WriteByte('\n')
		}
		fmt.Fprintf(&spineXML, "\t\t<itemref idref=\"%s\" />", id)
	}

	return r.exec("opf", r.templates.OPF, map[string]any{
		"Title":      encoding.EscapeXML(meta.Title),
		"SourceLang": encoding.EscapeXML(meta.SourceLang),
		"TargetLang": encoding.EscapeXML(meta.TargetLang),
		"Identifier": encoding.EscapeXML(meta.Identifier),
		"Creator":    encoding.EscapeXML(meta.Creator),
		"Copyright":  encoding.EscapeXML(meta.Copyright),
		"Cover":      encoding.EscapeXML(meta.Cover),
		"Manifest":   manifest.String(),
		"Spine":      spineXML.String(),
	})
}
