package mobi

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/JuniperGlossary/core/ebook"
	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
	"github.com/FocuswithJustin/JuniperGlossary/internal/logging"
)

// ArtifactName is the file kindlegen writes next to the manifest.
const ArtifactName = "content.mobi"

// ErrCompileFailed is returned when kindlegen exits non-zero without
// producing the artifact.
var ErrCompileFailed = stderrors.New("kindlegen did not produce a .mobi file")

// State is the outcome of a Compile call.
type State string

const (
	// StateSkipped means no kindlegen path was configured.
	StateSkipped State = "skipped"
	// StateDone means kindlegen ran to completion.
	StateDone State = "done"
)

// ProcessResult is the captured outcome of one external process run.
type ProcessResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Executor abstracts command execution for testability. Run returns an error
// only when the program could not be run; a non-zero exit is reported
// through ProcessResult.ExitCode.
type Executor interface {
	Run(ctx context.Context, name string, args []string) (ProcessResult, error)
}

// osStat and osRemove are swapped in tests.
var (
	osStat   = os.Stat
	osRemove = os.Remove
)

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, name string, args []string) (ProcessResult, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	// Stdin stays nil so the child reads from the null device.
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := ProcessResult{ExitCode: -1, Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if err != nil && !stderrors.As(err, &exitErr) {
		return res, err
	}
	return res, nil
}

// Option configures a Compiler or Writer.
type Option func(*settings)

type settings struct {
	exec    Executor
	logger  *slog.Logger
	builder ebook.TreeBuilder
}

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(s *settings) {
		if exec != nil {
			s.exec = exec
		}
	}
}

// WithLogger sets the logger. The package logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithTreeBuilder replaces the tree builder used by a Writer.
func WithTreeBuilder(b ebook.TreeBuilder) Option {
	return func(s *settings) {
		if b != nil {
			s.builder = b
		}
	}
}

func applyOptions(opts []Option) settings {
	s := settings{exec: commandExecutor{}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// CompileResult describes one Compile call.
type CompileResult struct {
	State        State
	OutputDir    string
	ManifestPath string
	ArtifactPath string
	// Args is the argument list passed to kindlegen, excluding the program.
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	// ArtifactMissing is set when kindlegen ran but ArtifactPath does not
	// exist afterwards.
	ArtifactMissing bool
	// ArtifactBLAKE3 is the hex digest of the produced .mobi file.
	ArtifactBLAKE3 string
}

// Compiled reports whether a .mobi file was produced.
func (r *CompileResult) Compiled() bool {
	return r != nil && r.State == StateDone && !r.ArtifactMissing
}

// Compiler runs kindlegen over a generated tree.
type Compiler struct {
	path   string
	exec   Executor
	logger *slog.Logger
}

// NewCompiler creates a Compiler for the kindlegen executable at path. An
// empty path makes every Compile call a logged no-op.
func NewCompiler(path string, opts ...Option) *Compiler {
	s := applyOptions(opts)
	return &Compiler{
		path:   strings.TrimSpace(path),
		exec:   s.exec,
		logger: s.logger,
	}
}

// Path returns the configured kindlegen path.
func (c *Compiler) Path() string {
	return c.path
}

func (c *Compiler) log(ctx context.Context) *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.LoggerFromContext(ctx)
}

// Compile runs kindlegen on <outputDir>/OEBPS/content.opf. The tree must
// already exist; Compile never writes to it. Each call launches a new
// process.
func (c *Compiler) Compile(ctx context.Context, outputDir string) (*CompileResult, error) {
	root, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, errors.NewIO("resolve", outputDir, err)
	}
	res := &CompileResult{
		OutputDir:    root,
		ManifestPath: ebook.ManifestPathFor(root),
		ArtifactPath: filepath.Join(root, ebook.ContentDir, ArtifactName),
	}
	log := c.log(ctx)

	if c.path == "" {
		res.State = StateSkipped
		log.Warn("Not running kindlegen, the raw files are located in "+root, "output", root)
		log.Warn("Provide KindleGen path with: --write-options 'kindlegen_path=...'", "option", OptKindlegenPath)
		return res, nil
	}

	if _, err := osStat(res.ManifestPath); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("manifest", res.ManifestPath)
		}
		return nil, errors.NewIO("stat", res.ManifestPath, err)
	}

	// A .mobi left by an earlier run must not pass for this run's output.
	if err := osRemove(res.ArtifactPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.NewIO("remove stale artifact", res.ArtifactPath, err)
	}

	res.Args = []string{res.ManifestPath, "-o", ArtifactName}
	log.Info(fmt.Sprintf("Creating .mobi file with kindlegen, using '%s'", c.path), "kindlegen", c.path)

	proc, err := c.exec.Run(ctx, c.path, res.Args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.NewProcess(c.path, -1, string(proc.Stderr), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.State = StateDone
	res.ExitCode = proc.ExitCode
	res.Stdout = decodeOutput(proc.Stdout)
	res.Stderr = decodeOutput(proc.Stderr)
	if _, err := osStat(res.ArtifactPath); err != nil {
		res.ArtifactMissing = true
	}

	if res.ExitCode != 0 {
		log.Warn("kindlegen exited with non-zero status",
			"kindlegen", c.path,
			"exit_code", res.ExitCode,
			"stderr", res.Stderr,
		)
		if res.ArtifactMissing {
			return res, fmt.Errorf("%w: %w", ErrCompileFailed,
				errors.NewProcess(c.path, res.ExitCode, res.Stderr, nil))
		}
	}

	log.Info("Created .mobi file with kindlegen: "+res.ArtifactPath,
		"path", res.ArtifactPath,
		"kindlegen_output", res.Stdout,
	)
	if res.ArtifactMissing {
		log.Warn("kindlegen reported success but the .mobi file was not found", "path", res.ArtifactPath)
		return res, nil
	}

	sum, err := ebook.HashFile(res.ArtifactPath)
	if err != nil {
		log.Warn("could not hash .mobi file", "path", res.ArtifactPath, "error", err)
		return res, nil
	}
	res.ArtifactBLAKE3 = sum
	log.Debug("mobi digest", "path", res.ArtifactPath, "blake3", sum)
	return res, nil
}

func decodeOutput(b []byte) string {
	return strings.TrimRight(strings.ToValidUTF8(string(b), "\uFFFD"), "\r\n\t ")
}
