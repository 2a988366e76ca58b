// Package mobi writes glossaries as Mobipocket dictionaries. The Writer
// builds a Kindle-flavored OEBPS tree and, when a kindlegen executable is
// configured, compiles it into OEBPS/content.mobi.
package mobi

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperGlossary/core/ebook"
	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
	"github.com/FocuswithJustin/JuniperGlossary/core/xml"
	"github.com/FocuswithJustin/JuniperGlossary/internal/logging"
)

// Writer converts one glossary into a mobi tree.
type Writer struct {
	glos     *glossary.Glossary
	cfg      Config
	builder  ebook.TreeBuilder
	compiler *Compiler
	logger   *slog.Logger
}

// Result describes a finished Write.
type Result struct {
	Tree     *ebook.Tree
	Manifest *xml.ManifestInfo
	// Checksums is the BLAKE3SUMS file listing the tree's digests.
	Checksums string
	Compile   *CompileResult
}

// OutputPath returns the .mobi file when one was produced, otherwise the
// output directory.
func (r *Result) OutputPath() string {
	if r.Compile.Compiled() {
		return r.Compile.ArtifactPath
	}
	return r.Tree.Root
}

// NewWriter creates a Writer and stores a freshly generated identifier in
// the glossary's uuid info key so it ends up in the manifest.
func NewWriter(glos *glossary.Glossary, cfg Config, opts ...Option) (*Writer, error) {
	if glos == nil {
		return nil, errors.NewValidation("glossary", "glossary is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := applyOptions(opts)
	builder := s.builder
	if builder == nil {
		builder = ebook.NewBuilder(cfg.builderOptions())
	}

	glos.SetInfo(glossary.InfoUUID, strings.ReplaceAll(uuid.New().String(), "-", ""))

	return &Writer{
		glos:     glos,
		cfg:      cfg,
		builder:  builder,
		compiler: NewCompiler(cfg.KindlegenPath, opts...),
		logger:   s.logger,
	}, nil
}

// Config returns the writer's configuration.
func (w *Writer) Config() Config {
	return w.cfg
}

// Write builds the tree under outputDir, checks the manifest, records the
// file digests and runs the compiler step.
func (w *Writer) Write(ctx context.Context, outputDir string) (*Result, error) {
	root, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, errors.NewIO("resolve", outputDir, err)
	}

	log := w.logger
	if log == nil {
		log = logging.LoggerFromContext(ctx)
	}

	tree, err := w.builder.Build(ctx, w.glos, root)
	if err != nil {
		return nil, err
	}
	log.Debug("built ebook tree", "output", root, "groups", tree.Groups, "files", len(tree.Files))

	info, err := xml.VerifyManifest(tree.ManifestPath)
	if err != nil {
		return nil, err
	}

	sums, err := ebook.WriteChecksums(tree)
	if err != nil {
		return nil, err
	}
	log.Debug("wrote tree checksums", "path", sums, "files", len(tree.Files))

	comp, err := w.compiler.Compile(ctx, root)
	res := &Result{Tree: tree, Manifest: info, Checksums: sums, Compile: comp}
	if err != nil {
		return res, err
	}
	return res, nil
}
