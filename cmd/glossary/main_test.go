package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	gerrors "github.com/FocuswithJustin/JuniperGlossary/core/errors"
	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
	"github.com/FocuswithJustin/JuniperGlossary/core/mobi"
	"github.com/FocuswithJustin/JuniperGlossary/internal/config"
	"github.com/FocuswithJustin/JuniperGlossary/internal/fileutil"
	"github.com/FocuswithJustin/JuniperGlossary/internal/logging"
	"github.com/FocuswithJustin/JuniperGlossary/internal/validation"
)

const tabSample = "##name\tEnglish-German\n" +
	"house|houses\tdas Haus\n" +
	"tree\tder Baum\n" +
	"hound\tder Hund\n"

// Test helpers

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// testGlobals points the CLI at a config file that does not exist, so
// defaults apply, and silences logging.
func testGlobals(t *testing.T) *Globals {
	t.Helper()
	t.Setenv("KINDLEGEN_PATH", "")
	logging.SetOutput(io.Discard)
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
		logging.InitLogger(logging.LevelInfo, logging.FormatAuto)
	})
	return &Globals{Config: filepath.Join(t.TempDir(), "config.toml")}
}

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// fakeKindlegen writes a shell script that behaves like kindlegen: it
// creates content.mobi next to the manifest passed as the first argument.
func fakeKindlegen(t *testing.T, dir string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script kindlegen stand-in needs a POSIX shell")
	}
	script := "#!/bin/sh\n" +
		"echo 'Amazon kindlegen(Linux) V2.9 build 1028-0897292'\n" +
		"[ -n \"$1\" ] || exit 1\n" +
		"printf MOBI > \"$(dirname \"$1\")/$3\"\n"
	path := filepath.Join(dir, "kindlegen")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// Tests for VersionCmd

func TestVersionCmd(t *testing.T) {
	out := captureStdout(t)
	if err := (&VersionCmd{}).Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("output = %q", out.String())
	}
}

// Tests for ConvertCmd

func TestConvertCmd_WithoutKindlegen(t *testing.T) {
	g := testGlobals(t)
	out := captureStdout(t)
	dir := t.TempDir()
	input := createTestFile(t, dir, "en-de.txt", tabSample)
	output := filepath.Join(dir, "en-de")

	cmd := &ConvertCmd{Input: input, Output: output, SourceLang: "EN", TargetLang: "de_de", Title: "My Dictionary"}
	if err := cmd.Run(g); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != output {
		t.Errorf("printed %q, want %q", got, output)
	}
	opf, err := os.ReadFile(filepath.Join(output, "OEBPS", "content.opf"))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	for _, want := range []string{
		"<dc:Title>My Dictionary</dc:Title>",
		"<DictionaryInLanguage>en</DictionaryInLanguage>",
		"<DictionaryOutLanguage>de-DE</DictionaryOutLanguage>",
	} {
		if !strings.Contains(string(opf), want) {
			t.Errorf("content.opf missing %q", want)
		}
	}
	if _, err := os.Stat(fileutil.LockPath(output)); !os.IsNotExist(err) {
		t.Errorf("lock file should be removed, stat err = %v", err)
	}
}

func TestConvertCmd_WithKindlegen(t *testing.T) {
	g := testGlobals(t)
	out := captureStdout(t)
	dir := t.TempDir()
	kg := fakeKindlegen(t, dir)
	input := createTestFile(t, dir, "en-de.txt", tabSample)
	output := filepath.Join(dir, "book")

	cmd := &ConvertCmd{
		Input:        input,
		Output:       output,
		WriteOptions: "kindlegen_path=" + kg + "; group_by_prefix_length=1",
	}
	if err := cmd.Run(g); err != nil {
		t.Fatalf("Run: %v", err)
	}

	artifact := filepath.Join(output, "OEBPS", mobi.ArtifactName)
	if got := strings.TrimSpace(out.String()); got != artifact {
		t.Errorf("printed %q, want %q", got, artifact)
	}
	if data, err := os.ReadFile(artifact); err != nil || string(data) != "MOBI" {
		t.Errorf("artifact = %q, %v", data, err)
	}
}

func TestConvertCmd_LogsRunDetails(t *testing.T) {
	g := testGlobals(t)
	g.LogLevel = "debug"
	g.LogFormat = "json"
	var logs bytes.Buffer
	logging.SetOutput(&logs)
	captureStdout(t)
	dir := t.TempDir()
	input := createTestFile(t, dir, "en-de.txt", tabSample)
	output := filepath.Join(dir, "en-de")

	cmd := &ConvertCmd{Input: input, Output: output, WriteOptions: "group_by_prefix_length=1"}
	if err := cmd.Run(g); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var start, info, done string
	for _, line := range strings.Split(logs.String(), "\n") {
		switch {
		case strings.Contains(line, `"msg":"conversion_start"`):
			start = line
		case strings.Contains(line, `"msg":"glossary info"`):
			info = line
		case strings.Contains(line, `"msg":"conversion_done"`):
			done = line
		}
	}
	if !strings.Contains(start, "group_by_prefix_length=1") {
		t.Errorf("conversion_start should carry write options: %s", start)
	}
	if !strings.Contains(info, `"name":"English-German"`) {
		t.Errorf("glossary info record: %s", info)
	}
	if !strings.Contains(done, "BLAKE3SUMS") {
		t.Errorf("conversion_done should name the checksum file: %s", done)
	}
}

func TestInfoAttrs(t *testing.T) {
	g := glossary.New()
	g.SetInfo("name", "n")
	g.SetInfo("author", "a")
	got := infoAttrs(g)
	want := []any{"name", "n", "author", "a"}
	if len(got) != len(want) {
		t.Fatalf("infoAttrs = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("infoAttrs[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestConvertCmd_ConfigOptions(t *testing.T) {
	g := testGlobals(t)
	captureStdout(t)
	dir := t.TempDir()
	kg := fakeKindlegen(t, dir)
	if err := os.WriteFile(g.Config, []byte("[mobi]\nkindlegen_path = \""+kg+"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	input := createTestFile(t, dir, "en-de.txt", tabSample)

	// --write-options wins over the config file
	cmd := &ConvertCmd{Input: input, Output: filepath.Join(dir, "raw"), WriteOptions: "kindlegen_path="}
	cfg, err := g.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	res, err := cmd.convert(context.Background(), cfg)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if res.Compiled {
		t.Error("empty kindlegen_path on the command line should skip kindlegen")
	}

	cmd = &ConvertCmd{Input: input, Output: filepath.Join(dir, "compiled")}
	res, err = cmd.convert(context.Background(), cfg)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !res.Compiled {
		t.Error("config kindlegen_path should be used")
	}
}

func TestConvertCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	input := createTestFile(t, dir, "en-de.txt", tabSample)

	tests := []struct {
		name    string
		cmd     ConvertCmd
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown write format",
			cmd:     ConvertCmd{Input: input, Output: filepath.Join(dir, "a"), WriteFormat: "epub"},
			wantErr: gerrors.ErrNotFound,
		},
		{
			name:    "unknown option",
			cmd:     ConvertCmd{Input: input, Output: filepath.Join(dir, "b"), WriteOptions: "spellcheck=1"},
			wantErr: gerrors.ErrNotFound,
		},
		{
			name:    "bad option value",
			cmd:     ConvertCmd{Input: input, Output: filepath.Join(dir, "c"), WriteOptions: "group_by_prefix_length=0"},
			wantErr: gerrors.ErrInvalidInput,
		},
		{
			name:    "malformed options",
			cmd:     ConvertCmd{Input: input, Output: filepath.Join(dir, "d"), WriteOptions: "=1"},
			wantErr: gerrors.ErrInvalidInput,
		},
		{
			name:    "output is a file",
			cmd:     ConvertCmd{Input: input, Output: input},
			wantErr: validation.ErrNotDirectory,
		},
		{
			name:    "unknown input",
			cmd:     ConvertCmd{Input: createTestFile(t, dir, "x.bin", "?"), Output: filepath.Join(dir, "e")},
			wantErr: gerrors.ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGlobals(t)
			captureStdout(t)
			err := tt.cmd.Run(g)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvertCmd_OutputLocked(t *testing.T) {
	g := testGlobals(t)
	dir := t.TempDir()
	input := createTestFile(t, dir, "en-de.txt", tabSample)
	output := filepath.Join(dir, "out")

	lock, err := fileutil.AcquireOutputLock(output)
	if err != nil {
		t.Fatal(err)
	}
	defer lock.Release()

	err = (&ConvertCmd{Input: input, Output: output}).Run(g)
	if err == nil || !strings.Contains(err.Error(), "in use") {
		t.Fatalf("error = %v, want lock conflict", err)
	}
	if _, err := os.Stat(filepath.Join(output, "OEBPS")); !os.IsNotExist(err) {
		t.Error("nothing should be written while the output is locked")
	}
}

func TestResolveFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Convert.WriteFormat = ""

	cmd := &ConvertCmd{Output: "dict.MOBI"}
	f, err := cmd.resolveFormat(&cfg)
	if err != nil || f.Lname != "mobi" {
		t.Errorf("from extension: %v, %v", f, err)
	}

	cmd = &ConvertCmd{Output: "dict"}
	if _, err := cmd.resolveFormat(&cfg); err == nil {
		t.Error("expected error without format or extension")
	}

	cfg.Convert.WriteFormat = "mobi"
	if f, err := cmd.resolveFormat(&cfg); err != nil || f.Lname != "mobi" {
		t.Errorf("from config: %v, %v", f, err)
	}
}

// Tests for FormatsCmd

func TestFormatsCmd(t *testing.T) {
	out := captureStdout(t)
	if err := (&FormatsCmd{}).Run(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"mobi", "Mobipocket (.mobi) E-Book", "tabfile", "sqlite"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("formats output missing %q", want)
		}
	}
	if strings.Contains(out.String(), "kindlegen_path") {
		t.Error("options should only be listed with --options")
	}

	out.Reset()
	if err := (&FormatsCmd{Options: true}).Run(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"kindlegen_path", "group_by_prefix_length", "disabled", "calibre", "KindleGen"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("formats --options output missing %q", want)
		}
	}
}

// Tests for CheckToolsCmd

type stubDetector struct {
	v   mobi.Version
	err error
}

func (s stubDetector) DetectVersion(ctx context.Context) (mobi.Version, error) { return s.v, s.err }

func stubTools(t *testing.T, found map[string]string, det stubDetector) {
	t.Helper()
	oldLook, oldDetect := lookPath, newDetector
	lookPath = func(file string) (string, error) {
		if p, ok := found[file]; ok {
			return p, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	newDetector = func(string) versionDetector { return det }
	t.Cleanup(func() { lookPath, newDetector = oldLook, oldDetect })
}

func TestCheckKindlegen(t *testing.T) {
	v29 := mobi.Version{Major: 2, Minor: 9, Build: 1028}
	tests := []struct {
		name       string
		configured string
		found      map[string]string
		detector   stubDetector
		wantOK     bool
		wantStatus string
	}{
		{name: "not configured", wantStatus: "not configured"},
		{
			name:       "on PATH only",
			found:      map[string]string{"kindlegen": "/usr/local/bin/kindlegen"},
			detector:   stubDetector{v: v29},
			wantStatus: "found on PATH",
		},
		{
			name:       "configured and working",
			configured: "/opt/kindlegen",
			found:      map[string]string{"/opt/kindlegen": "/opt/kindlegen"},
			detector:   stubDetector{v: v29},
			wantOK:     true,
			wantStatus: "ok",
		},
		{
			name:       "configured but missing",
			configured: "/opt/kindlegen",
			wantStatus: "missing",
		},
		{
			name:       "too old",
			configured: "kindlegen",
			found:      map[string]string{"kindlegen": "/usr/bin/kindlegen"},
			detector:   stubDetector{v: mobi.Version{Major: 1, Minor: 2}},
			wantStatus: "too old",
		},
		{
			name:       "not kindlegen",
			configured: "/bin/true",
			found:      map[string]string{"/bin/true": "/bin/true"},
			detector:   stubDetector{err: errors.New("no kindlegen version in output")},
			wantStatus: "unrecognized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTools(t, tt.found, tt.detector)
			cfg := config.Default()
			cfg.Mobi.KindlegenPath = tt.configured

			st := checkKindlegen(context.Background(), &cfg)
			if st.OK != tt.wantOK || !strings.Contains(st.Status, tt.wantStatus) {
				t.Errorf("status = %+v, want ok=%v status~%q", st, tt.wantOK, tt.wantStatus)
			}
		})
	}
}

func TestCheckToolsCmd(t *testing.T) {
	g := testGlobals(t)
	out := captureStdout(t)
	stubTools(t, nil, stubDetector{})

	if err := (&CheckToolsCmd{Timeout: 10 * time.Second}).Run(g); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "kindlegen") || !strings.Contains(out.String(), "kindlegen_path=") {
		t.Errorf("output = %s", out.String())
	}
}

// Tests for config commands

func TestConfigInitCmd(t *testing.T) {
	g := testGlobals(t)
	out := captureStdout(t)

	if err := (&ConfigInitCmd{}).Run(g); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out.String(), g.Config) {
		t.Errorf("output = %q", out.String())
	}
	if err := (&ConfigInitCmd{}).Run(g); err == nil {
		t.Error("second init without --force should fail")
	}
	if err := (&ConfigInitCmd{Force: true}).Run(g); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out.Reset()
	if err := (&ConfigShowCmd{}).Run(g); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out.String(), "group_by_prefix_length = 2") {
		t.Errorf("show output = %s", out.String())
	}
}

func TestGlobalsLogOverrides(t *testing.T) {
	g := testGlobals(t)
	g.LogLevel = "DEBUG"
	cfg, err := g.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}

	g.LogFormat = "yaml"
	if _, err := g.loadConfig(); err == nil {
		t.Error("expected validation error for log format")
	}
}
