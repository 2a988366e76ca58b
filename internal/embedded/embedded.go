// Package embedded links every built-in reader and writer into the binary.
// Import it for its side effects.
package embedded

import (
	"github.com/FocuswithJustin/JuniperGlossary/core/plugins"
	"github.com/FocuswithJustin/JuniperGlossary/internal/formats"

	// writers
	_ "github.com/FocuswithJustin/JuniperGlossary/core/mobi"

	// readers
	_ "github.com/FocuswithJustin/JuniperGlossary/internal/formats/sqlite"
	_ "github.com/FocuswithJustin/JuniperGlossary/internal/formats/tabfile"
)

// IsInitialized reports whether the built-in formats have registered.
func IsInitialized() bool {
	return len(plugins.List()) > 0 && len(formats.List()) > 0
}

// PluginCount returns the number of registered writers and readers.
func PluginCount() int {
	return len(plugins.List()) + len(formats.List())
}
