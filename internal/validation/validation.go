// Package validation checks user-supplied paths before a conversion
// touches the filesystem.
package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// MaxPathLength is the maximum allowed path length.
const MaxPathLength = 4096

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrNotDirectory     = errors.New("output exists and is not a directory")
)

// ValidatePath checks length limits and rejects null bytes and control
// characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// ValidateOutputDir checks that path is usable as an output directory:
// either missing or an existing directory.
func ValidateOutputDir(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat output: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	return nil
}
