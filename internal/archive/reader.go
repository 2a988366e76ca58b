// Package archive opens glossary input files, decompressing .xz and .gz
// transparently.
package archive

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// Compression suffixes recognized by Open.
const (
	SuffixXZ   = ".xz"
	SuffixGzip = ".gz"
)

// Reader is an opened, possibly decompressed, input file.
type Reader struct {
	io.Reader
	// Name is the path without its compression suffix.
	Name         string
	file         *os.File
	decompressor io.Closer
}

// Inner strips a compression suffix: "dict.txt.xz" -> "dict.txt".
func Inner(path string) string {
	lower := strings.ToLower(path)
	for _, suffix := range []string{SuffixXZ, SuffixGzip} {
		if strings.HasSuffix(lower, suffix) {
			return path[:len(path)-len(suffix)]
		}
	}
	return path
}

// IsCompressed reports whether path carries a compression suffix.
func IsCompressed(path string) bool {
	return Inner(path) != path
}

// Open opens path, wrapping it in an xz or gzip decompressor when the name
// ends in .xz or .gz.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	var reader io.Reader = f
	var decompressor io.Closer

	switch strings.ToLower(path[len(Inner(path)):]) {
	case SuffixXZ:
		xzr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		reader = xzr
	case SuffixGzip:
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		reader = gzr
		decompressor = gzr
	}

	return &Reader{
		Reader:       reader,
		Name:         Inner(path),
		file:         f,
		decompressor: decompressor,
	}, nil
}

// Close closes the reader and any underlying decompressor.
func (r *Reader) Close() error {
	var errs []error
	if r.decompressor != nil {
		if err := r.decompressor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.file.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// ReadFile reads the whole (decompressed) content of path.
func ReadFile(path string) ([]byte, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
