package main

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/FocuswithJustin/JuniperGlossary/core/mobi"
	"github.com/FocuswithJustin/JuniperGlossary/internal/config"
	"github.com/FocuswithJustin/JuniperGlossary/internal/logging"
)

// lookPath and newDetector are swapped in tests.
var (
	lookPath    = exec.LookPath
	newDetector = func(path string) versionDetector { return mobi.NewCompiler(path) }
)

type versionDetector interface {
	DetectVersion(ctx context.Context) (mobi.Version, error)
}

// toolStatus is one row of the check-tools report.
type toolStatus struct {
	Name    string
	Path    string
	Version string
	Status  string
	OK      bool
}

// CheckToolsCmd reports whether the external tools the writers use are
// available.
type CheckToolsCmd struct {
	Timeout time.Duration `help:"Time allowed for each tool version check" default:"10s"`
}

func (c *CheckToolsCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	st := checkKindlegen(ctx, cfg)
	fmt.Fprintln(stdout, renderTable(
		[]string{"Tool", "Path", "Version", "Status"},
		[][]string{{st.Name, st.Path, st.Version, st.Status}},
		nil,
	))
	if !st.OK {
		fmt.Fprintln(stdout, "Provide KindleGen path with: --write-options 'kindlegen_path=...' or [mobi] kindlegen_path in the config file")
	}
	return nil
}

func checkKindlegen(ctx context.Context, cfg *config.Config) toolStatus {
	st := toolStatus{Name: "kindlegen"}

	configured := cfg.Mobi.KindlegenPath
	if configured == "" {
		found, err := lookPath("kindlegen")
		if err != nil {
			st.Status = "not configured"
			return st
		}
		st.Path = found
		st.Status = "found on PATH, not configured"
	} else {
		found, err := lookPath(configured)
		if err != nil {
			st.Path = configured
			st.Status = "missing"
			logging.Debug("kindlegen lookup failed", "path", configured, "error", err)
			return st
		}
		st.Path = found
	}

	v, err := newDetector(st.Path).DetectVersion(ctx)
	if err != nil {
		st.Status = "unrecognized: " + err.Error()
		return st
	}
	st.Version = v.String()
	switch {
	case !v.Supported():
		st.Status = fmt.Sprintf("too old, need %s or newer", mobi.MinVersion)
	case configured == "":
		// keep the PATH hint
	default:
		st.Status = "ok"
		st.OK = true
	}
	return st
}
