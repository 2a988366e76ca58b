package plugins

import (
	"context"
	"errors"
	"testing"

	gerrors "github.com/FocuswithJustin/JuniperGlossary/core/errors"
	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
	"github.com/FocuswithJustin/JuniperGlossary/core/options"
)

// withEmptyRegistry swaps in a fresh registry for the duration of the test.
func withEmptyRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := registry
	registry = make(map[string]*Format)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		registry = saved
		registryMu.Unlock()
	})
}

type mockWriter struct {
	values options.Values
}

func (m *mockWriter) Write(ctx context.Context, outputDir string) (*Output, error) {
	return &Output{Path: outputDir}, nil
}

func TestRegisterAndGet(t *testing.T) {
	withEmptyRegistry(t)

	if err := Register(&Format{Name: "Mock", Lname: "mock", Extensions: []string{".mck"}}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	f, err := Get("MOCK")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if f.Name != "Mock" {
		t.Errorf("Name = %q", f.Name)
	}

	if _, err := Get("missing"); !errors.Is(err, gerrors.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRegisterRejects(t *testing.T) {
	withEmptyRegistry(t)

	if err := Register(&Format{}); !errors.Is(err, gerrors.ErrInvalidInput) {
		t.Errorf("empty lname error = %v", err)
	}
	if err := Register(nil); err == nil {
		t.Error("nil format should be rejected")
	}
	if err := Register(&Format{Lname: "dup"}); err != nil {
		t.Fatal(err)
	}
	if err := Register(&Format{Lname: "dup"}); !errors.Is(err, gerrors.ErrInvalidInput) {
		t.Errorf("duplicate error = %v", err)
	}
}

func TestMustRegisterPanics(t *testing.T) {
	withEmptyRegistry(t)
	MustRegister(&Format{Lname: "once"})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	MustRegister(&Format{Lname: "once"})
}

func TestListSorted(t *testing.T) {
	withEmptyRegistry(t)
	for _, name := range []string{"mobi", "epub2", "kobo"} {
		MustRegister(&Format{Lname: name})
	}

	list := List()
	want := []string{"epub2", "kobo", "mobi"}
	if len(list) != len(want) {
		t.Fatalf("len = %d", len(list))
	}
	for i, f := range list {
		if f.Lname != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, f.Lname, want[i])
		}
	}
}

func TestForExtension(t *testing.T) {
	withEmptyRegistry(t)
	MustRegister(&Format{Lname: "mobi", Extensions: []string{".mobi"}})

	tests := []struct {
		ext  string
		want bool
	}{
		{".mobi", true},
		{"mobi", true},
		{".MOBI", true},
		{".epub", false},
		{"", false},
	}
	for _, tt := range tests {
		f, ok := ForExtension(tt.ext)
		if ok != tt.want {
			t.Errorf("ForExtension(%q) ok = %v, want %v", tt.ext, ok, tt.want)
		}
		if ok && f.Lname != "mobi" {
			t.Errorf("ForExtension(%q) = %q", tt.ext, f.Lname)
		}
	}
}

func TestCreateWriter(t *testing.T) {
	var got options.Values
	f := &Format{
		Lname:   "mock",
		Options: options.Schema{{Name: "level", Type: options.TypeInt}},
		NewWriter: func(glos *glossary.Glossary, values options.Values) (Writer, error) {
			got = values
			return &mockWriter{values: values}, nil
		},
	}

	if _, err := f.CreateWriter(glossary.New(), options.Values{"level": "3"}); err != nil {
		t.Fatalf("CreateWriter: %v", err)
	}
	if got["level"] != "3" {
		t.Errorf("factory values = %v", got)
	}

	if _, err := f.CreateWriter(glossary.New(), options.Values{"nope": "1"}); !errors.Is(err, gerrors.ErrNotFound) {
		t.Errorf("unknown option error = %v", err)
	}
	if _, err := f.CreateWriter(glossary.New(), options.Values{"level": "high"}); !errors.Is(err, gerrors.ErrInvalidInput) {
		t.Errorf("bad int error = %v", err)
	}

	noWriter := &Format{Lname: "readonly"}
	if _, err := noWriter.CreateWriter(glossary.New(), nil); !errors.Is(err, gerrors.ErrUnsupported) {
		t.Errorf("missing factory error = %v", err)
	}
}
