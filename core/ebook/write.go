package ebook

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
)

// Injectable functions for testing.
var (
	osMkdirAll  = os.MkdirAll
	osWriteFile = os.WriteFile
)

// treeWriter writes files below root and records their hashes.
type treeWriter struct {
	root  string
	files []File
}

func (w *treeWriter) write(rel string, data []byte) error {
	path := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := osMkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewIO("create directory", filepath.Dir(path), err)
	}
	if err := osWriteFile(path, data, 0644); err != nil {
		return errors.NewIO("write", path, err)
	}

	sum := blake3.Sum256(data)
	w.files = append(w.files, File{
		Path:   rel,
		Size:   int64(len(data)),
		BLAKE3: hex.EncodeToString(sum[:]),
	})
	return nil
}

// WriteChecksums writes the tree's file digests to <root>/BLAKE3SUMS and
// returns its path. The list can be checked with b3sum -c.
func WriteChecksums(tree *Tree) (string, error) {
	var b strings.Builder
	for _, f := range tree.Files {
		fmt.Fprintf(&b, "%s  %s\n", f.BLAKE3, f.Path)
	}
	path := filepath.Join(tree.Root, ChecksumName)
	if err := osWriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", errors.NewIO("write", path, err)
	}
	return path, nil
}

// HashFile returns the hex BLAKE3 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
