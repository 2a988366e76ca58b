// Package plugins provides the registry of glossary output formats.
// Writers are compiled into the binary and register themselves from init.
package plugins

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
	"github.com/FocuswithJustin/JuniperGlossary/core/options"
)

// Kind describes the shape of a format's output.
type Kind string

const (
	KindText      Kind = "text"
	KindBinary    Kind = "binary"
	KindDirectory Kind = "directory"
	KindPackage   Kind = "package"
)

// Tool is an application that can open files of a format.
type Tool struct {
	Name      string
	Web       string
	Wiki      string
	Repo      string
	Platforms []string
	License   string
}

// Doc is an extra documentation section shown with a format.
type Doc struct {
	Title string
	Body  string
}

// Output reports what a writer produced.
type Output struct {
	// Path is the main artifact, or the output directory when nothing was
	// compiled.
	Path     string
	Compiled bool
	Files    int
	// Checksums is a file listing per-file digests, when the writer keeps one.
	Checksums string
	// Digest is the BLAKE3 hex digest of Path when it is a compiled file.
	Digest string
}

// Writer writes a glossary to outputDir.
type Writer interface {
	Write(ctx context.Context, outputDir string) (*Output, error)
}

// WriterFactory creates a Writer from validated write options.
type WriterFactory func(glos *glossary.Glossary, values options.Values) (Writer, error)

// Format describes an output format.
type Format struct {
	Name            string
	Lname           string
	Description     string
	Extensions      []string
	ExtensionCreate string
	Kind            Kind
	SortOnWrite     bool
	Wiki            string
	Website         string
	Tools           []Tool
	Options         options.Schema
	ExtraDocs       []Doc
	NewWriter       WriterFactory
}

// CreateWriter validates values against the format's options and calls its
// factory.
func (f *Format) CreateWriter(glos *glossary.Glossary, values options.Values) (Writer, error) {
	if f.NewWriter == nil {
		return nil, errors.NewUnsupported(f.Lname+" writer", "format has no writer")
	}
	if err := f.Options.Validate(values); err != nil {
		return nil, err
	}
	return f.NewWriter(glos, values)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Format)
)

// Register adds a format. Lname must be non-empty and unique.
func Register(f *Format) error {
	if f == nil || f.Lname == "" {
		return errors.NewValidation("lname", "format name is required")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[f.Lname]; ok {
		return &errors.ValidationError{Field: "lname", Value: f.Lname, Message: "format already registered"}
	}
	registry[f.Lname] = f
	return nil
}

// MustRegister is Register for use from init; it panics on error.
func MustRegister(f *Format) {
	if err := Register(f); err != nil {
		panic(err)
	}
}

// Get returns the format registered under lname.
func Get(lname string) (*Format, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[strings.ToLower(lname)]
	if !ok {
		return nil, errors.NewNotFound("format", lname)
	}
	return f, nil
}

// List returns all formats sorted by Lname.
func List() []*Format {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]*Format, 0, len(registry))
	for _, f := range registry {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Lname < result[j].Lname })
	return result
}

// ForExtension finds the format for a file extension, with or without the
// leading dot.
func ForExtension(ext string) (*Format, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, f := range List() {
		for _, e := range f.Extensions {
			if strings.ToLower(e) == ext {
				return f, true
			}
		}
	}
	return nil, false
}
