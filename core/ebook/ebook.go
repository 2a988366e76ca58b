// Package ebook builds the intermediate e-book tree shared by the e-book
// writers: grouped XHTML pages, a stylesheet, an NCX table of contents and an
// OPF package manifest under <output>/OEBPS.
package ebook

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
)

// Fixed locations inside the output tree.
const (
	ContentDir   = "OEBPS"
	ManifestName = "content.opf"
	NCXName      = "toc.ncx"
	StyleName    = "style.css"
	IndexName    = "index.xhtml"
	// ChecksumName lists "<blake3>  <path>" for every tree file, b3sum style.
	ChecksumName = "BLAKE3SUMS"
)

// DefaultGroupByPrefixLength is used when BuilderOptions leaves it unset.
const DefaultGroupByPrefixLength = 2

// TreeBuilder produces the intermediate tree for a glossary. Writers that
// post-process the tree (for example compiling it) wrap a TreeBuilder.
type TreeBuilder interface {
	Build(ctx context.Context, glos *glossary.Glossary, outputDir string) (*Tree, error)
}

// Tree describes a generated intermediate tree.
type Tree struct {
	Root         string
	ManifestPath string
	Groups       int
	Files        []File
}

// File is one generated file, relative to Tree.Root.
type File struct {
	Path   string
	Size   int64
	BLAKE3 string
}

// ManifestPathFor returns <outputDir>/OEBPS/content.opf.
func ManifestPathFor(outputDir string) string {
	return filepath.Join(outputDir, ContentDir, ManifestName)
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	GroupByPrefixLength int
	IncludeIndexPage    bool
	// CSSPath replaces the template stylesheet with the file's contents.
	CSSPath string
	// CoverPath is copied into the tree and referenced from the manifest.
	CoverPath string
	Templates Templates
}

// Builder is the default TreeBuilder.
type Builder struct {
	opts BuilderOptions
}

// NewBuilder creates a Builder. Zero-valued options fall back to defaults.
func NewBuilder(opts BuilderOptions) *Builder {
	if opts.GroupByPrefixLength <= 0 {
		opts.GroupByPrefixLength = DefaultGroupByPrefixLength
	}
	if opts.Templates.isZero() {
		opts.Templates = DefaultTemplates()
	}
	return &Builder{opts: opts}
}

// Options returns the effective options.
func (b *Builder) Options() BuilderOptions {
	return b.opts
}

// Build sorts the glossary and writes the tree under outputDir.
func (b *Builder) Build(ctx context.Context, glos *glossary.Glossary, outputDir string) (*Tree, error) {
	if glos == nil || glos.Len() == 0 {
		return nil, errors.NewValidation("glossary", "no entries to write")
	}

	root, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, errors.NewIO("resolve", outputDir, err)
	}

	glos.Sort()
	groups := GroupEntries(glos.Entries(), b.opts.GroupByPrefixLength)

	w := &treeWriter{root: root}
	tree := &Tree{Root: root, ManifestPath: ManifestPathFor(root), Groups: len(groups)}

	if err := w.write("mimetype", []byte("application/epub+zip")); err != nil {
		return nil, err
	}
	if err := w.write("META-INF/container.xml", []byte(containerXML)); err != nil {
		return nil, err
	}

	css := []byte(b.opts.Templates.CSS)
	if b.opts.CSSPath != "" {
		css, err = os.ReadFile(b.opts.CSSPath)
		if err != nil {
			return nil, errors.NewIO("read", b.opts.CSSPath, err)
		}
	}
	if err := w.write(contentPath(StyleName), css); err != nil {
		return nil, err
	}

	r := &renderer{templates: b.opts.Templates, title: glos.Title(), indexPage: b.opts.IncludeIndexPage}
	for i, g := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := r.groupPage(groups, i)
		if err != nil {
			return nil, err
		}
		if err := w.write(contentPath(g.FileName()), page); err != nil {
			return nil, err
		}
	}

	if b.opts.IncludeIndexPage {
		page, err := r.renderIndexPage(groups)
		if err != nil {
			return nil, err
		}
		if err := w.write(contentPath(IndexName), page); err != nil {
			return nil, err
		}
	}

	cover := ""
	if b.opts.CoverPath != "" {
		data, err := os.ReadFile(b.opts.CoverPath)
		if err != nil {
			return nil, errors.NewIO("read", b.opts.CoverPath, err)
		}
		cover = "cover" + strings.ToLower(filepath.Ext(b.opts.CoverPath))
		if err := w.write(contentPath(cover), data); err != nil {
			return nil, err
		}
	}

	identifier := glos.GetInfo(glossary.InfoUUID)
	if identifier == "" {
		identifier = strings.ReplaceAll(uuid.New().String(), "-", "")
		glos.SetInfo(glossary.InfoUUID, identifier)
	}
	meta := bookMeta{
		Title:      glos.Title(),
		SourceLang: glos.GetInfo(glossary.InfoSourceLang),
		TargetLang: glos.GetInfo(glossary.InfoTargetLang),
		Identifier: identifier,
		Creator:    glos.Author(),
		Copyright:  glos.GetInfo(glossary.InfoCopyright),
		Cover:      cover,
	}

	ncx, err := r.ncx(meta, groups)
	if err != nil {
		return nil, err
	}
	if err := w.write(contentPath(NCXName), ncx); err != nil {
		return nil, err
	}

	opf, err := r.opf(meta, groups)
	if err != nil {
		return nil, err
	}
	if err := w.write(contentPath(ManifestName), opf); err != nil {
		return nil, err
	}

	tree.Files = w.files
	return tree, nil
}

func contentPath(name string) string {
	return ContentDir + "/" + name
}

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`
