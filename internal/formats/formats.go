// Package formats holds the registry of glossary input formats. Reader
// packages register themselves from init; importing internal/embedded pulls
// them all in.
package formats

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
	"github.com/FocuswithJustin/JuniperGlossary/internal/archive"
)

// Reader loads a glossary from a file.
type Reader interface {
	Read(ctx context.Context, path string) (*glossary.Glossary, error)
}

// DetectResult reports whether a handler recognizes a file.
type DetectResult struct {
	Detected bool
	Format   string
	Reason   string
}

// Handler describes one input format.
type Handler struct {
	Name        string
	Description string
	// Extensions are matched after stripping .xz/.gz.
	Extensions []string
	// Magic, when set, must prefix the (decompressed) content.
	Magic  []byte
	Reader Reader
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Handler)
)

// Register adds or replaces the handler registered under h.Name.
func Register(h *Handler) {
	if h == nil || h.Name == "" {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[h.Name] = h
}

// Get returns the handler registered under name.
func Get(name string) (*Handler, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	h, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.NewNotFound("input format", name)
	}
	return h, nil
}

// List returns all handlers sorted by name.
func List() []*Handler {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]*Handler, 0, len(registry))
	for _, h := range registry {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Detect checks path against the handler's extensions and magic bytes.
func (h *Handler) Detect(path string) *DetectResult {
	info, err := os.Stat(path)
	if err != nil {
		return &DetectResult{Reason: "cannot stat: " + err.Error()}
	}
	if info.IsDir() {
		return &DetectResult{Reason: "path is a directory"}
	}

	ext := strings.ToLower(filepath.Ext(archive.Inner(path)))
	matched := false
	for _, e := range h.Extensions {
		if ext == e {
			matched = true
			break
		}
	}
	if !matched {
		return &DetectResult{Reason: "extension " + ext + " not handled by " + h.Name}
	}

	if len(h.Magic) > 0 {
		r, err := archive.Open(path)
		if err != nil {
			return &DetectResult{Reason: err.Error()}
		}
		defer r.Close()
		head := make([]byte, len(h.Magic))
		if _, err := io.ReadFull(r, head); err != nil || string(head) != string(h.Magic) {
			return &DetectResult{Reason: "missing " + h.Name + " signature"}
		}
	}

	return &DetectResult{Detected: true, Format: h.Name, Reason: h.Description}
}

// ForPath picks the first handler, by name order, that detects path.
func ForPath(path string) (*Handler, error) {
	var reasons []string
	for _, h := range List() {
		res := h.Detect(path)
		if res.Detected {
			return h, nil
		}
		reasons = append(reasons, res.Reason)
	}
	return nil, errors.NewUnsupported("input file "+path, strings.Join(reasons, "; "))
}

// Read loads path with the named format, or with the detected one when
// name is empty.
func Read(ctx context.Context, path, name string) (*glossary.Glossary, error) {
	var (
		h   *Handler
		err error
	)
	if name != "" {
		h, err = Get(name)
	} else {
		h, err = ForPath(path)
	}
	if err != nil {
		return nil, err
	}
	return h.Reader.Read(ctx, path)
}

// DefaultName derives a glossary name from an input path:
// "dir/en-fa.txt.xz" -> "en-fa".
func DefaultName(path string) string {
	base := filepath.Base(archive.Inner(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
