// Command glossary converts dictionaries between formats. The mobi writer
// builds a Kindle OEBPS tree and, when kindlegen is configured, compiles it
// into a .mobi file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/JuniperGlossary/internal/config"
	"github.com/FocuswithJustin/JuniperGlossary/internal/logging"

	// Register built-in readers and writers
	_ "github.com/FocuswithJustin/JuniperGlossary/internal/embedded"
)

const version = "0.1.0"

// stdout is where commands print results; swapped in tests.
var stdout io.Writer = os.Stdout

// Globals are flags shared by every command.
type Globals struct {
	Config    string `name:"config" short:"c" help:"Config file path (default ~/.config/juniper-glossary/config.toml)" type:"path"`
	LogLevel  string `name:"log-level" help:"Override logging.level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Override logging.format (auto, json, text)"`
}

// CLI defines the command-line interface for glossary.
type CLI struct {
	Globals

	Convert    ConvertCmd    `cmd:"" help:"Convert a glossary file"`
	Formats    FormatsCmd    `cmd:"" help:"List supported input and output formats"`
	CheckTools CheckToolsCmd `cmd:"" name:"check-tools" help:"Check external tools such as kindlegen"`
	Settings   ConfigGroup   `cmd:"" name:"config" help:"Configuration file operations"`
	Version    VersionCmd    `cmd:"" help:"Print version information"`
}

// ConfigGroup contains config file operations.
type ConfigGroup struct {
	Init ConfigInitCmd `cmd:"" help:"Write a sample config file"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
}

// loadConfig reads the config file and applies the logging settings.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, path, exists, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Logging.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Logging.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := logging.ParseLevel(cfg.Logging.Level)
	format, _ := logging.ParseFormat(cfg.Logging.Format)
	logging.InitLogger(level, format)
	logging.Debug("config loaded", "path", path, "exists", exists)
	return cfg, nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(stdout, "glossary version %s\n", version)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("glossary"),
		kong.Description("Juniper Glossary - dictionary conversion to Kindle e-books"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
