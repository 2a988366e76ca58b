package embedded_test

import (
	"testing"

	"github.com/FocuswithJustin/JuniperGlossary/core/plugins"
	"github.com/FocuswithJustin/JuniperGlossary/internal/embedded"
	"github.com/FocuswithJustin/JuniperGlossary/internal/formats"
)

// TestRegistrations verifies that importing the package registers every
// built-in writer and reader.
func TestRegistrations(t *testing.T) {
	expectedWriters := []string{"mobi"}
	expectedReaders := []string{"sqlite", "tabfile"}

	t.Run("WritersRegistered", func(t *testing.T) {
		for _, name := range expectedWriters {
			t.Run(name, func(t *testing.T) {
				f, err := plugins.Get(name)
				if err != nil {
					t.Fatalf("writer %q not registered: %v", name, err)
				}
				if f.NewWriter == nil {
					t.Errorf("writer %q has no factory", name)
				}
			})
		}
	})

	t.Run("ReadersRegistered", func(t *testing.T) {
		for _, name := range expectedReaders {
			t.Run(name, func(t *testing.T) {
				h, err := formats.Get(name)
				if err != nil {
					t.Fatalf("reader %q not registered: %v", name, err)
				}
				if h.Reader == nil {
					t.Errorf("reader %q has nil Reader", name)
				}
			})
		}
	})
}

func TestIsInitialized(t *testing.T) {
	if !embedded.IsInitialized() {
		t.Error("IsInitialized() returned false, expected true")
	}
}

func TestPluginCount(t *testing.T) {
	count := embedded.PluginCount()
	if count < 3 {
		t.Errorf("PluginCount() = %d, expected at least 3", count)
	}
	if want := len(plugins.List()) + len(formats.List()); count != want {
		t.Errorf("PluginCount() = %d, want %d", count, want)
	}
}
