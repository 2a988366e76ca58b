package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
	"github.com/FocuswithJustin/JuniperGlossary/core/options"
	"github.com/FocuswithJustin/JuniperGlossary/core/plugins"
	"github.com/FocuswithJustin/JuniperGlossary/internal/config"
	"github.com/FocuswithJustin/JuniperGlossary/internal/fileutil"
	"github.com/FocuswithJustin/JuniperGlossary/internal/formats"
	"github.com/FocuswithJustin/JuniperGlossary/internal/logging"
	"github.com/FocuswithJustin/JuniperGlossary/internal/validation"
)

// ConvertCmd converts an input glossary with one of the registered writers.
type ConvertCmd struct {
	Input        string `arg:"" help:"Input glossary file" type:"existingfile"`
	Output       string `arg:"" help:"Output directory" type:"path"`
	ReadFormat   string `name:"read-format" help:"Input format (detected from the file when empty)"`
	WriteFormat  string `name:"write-format" help:"Output format (default from config, then from the output extension)"`
	WriteOptions string `name:"write-options" help:"Writer options, e.g. 'kindlegen_path=/usr/bin/kindlegen; group_by_prefix_length=3'"`
	SourceLang   string `name:"source-lang" help:"Source language code"`
	TargetLang   string `name:"target-lang" help:"Target language code"`
	Title        string `help:"Book title"`
}

func (c *ConvertCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := c.convert(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, out.Path)
	return nil
}

func (c *ConvertCmd) convert(ctx context.Context, cfg *config.Config) (*plugins.Output, error) {
	if err := validation.ValidatePath(c.Input); err != nil {
		return nil, fmt.Errorf("invalid input path: %w", err)
	}
	if err := validation.ValidateOutputDir(c.Output); err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}

	format, err := c.resolveFormat(cfg)
	if err != nil {
		return nil, err
	}
	values, err := c.mergedOptions(cfg, format)
	if err != nil {
		return nil, err
	}

	output, err := filepath.Abs(c.Output)
	if err != nil {
		return nil, fmt.Errorf("resolve output: %w", err)
	}
	if cfg.Convert.LockOutput {
		lock, err := fileutil.AcquireOutputLock(output)
		if err != nil {
			if errors.Is(err, fileutil.ErrLocked) {
				return nil, fmt.Errorf("output %s is in use by another conversion", output)
			}
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logging.Warn("release output lock", "path", lock.Path(), "error", err)
			}
		}()
	}

	glos, err := formats.Read(ctx, c.Input, c.ReadFormat)
	if err != nil {
		return nil, err
	}
	c.applyInfo(cfg, glos)

	ctx = logging.WithConversionID(ctx, uuid.NewString())
	start := time.Now()
	logging.ConversionStart(ctx, format.Lname, c.Input, output,
		"entries", glos.Len(), "write_options", values.Encode())
	logging.LoggerFromContext(ctx).Debug("glossary info", infoAttrs(glos)...)

	w, err := format.CreateWriter(glos, values)
	if err != nil {
		return nil, err
	}
	res, err := w.Write(ctx, output)
	if err != nil {
		if res != nil {
			logging.Warn("conversion incomplete", "output", res.Path)
		}
		return nil, err
	}

	logging.ConversionDone(ctx, format.Lname, res.Path, glos.Len(), time.Since(start),
		"compiled", res.Compiled, "files", res.Files, "checksums", res.Checksums, "blake3", res.Digest)
	return res, nil
}

// resolveFormat picks the writer from --write-format, the config file, or
// the output extension, in that order.
func (c *ConvertCmd) resolveFormat(cfg *config.Config) (*plugins.Format, error) {
	name := strings.TrimSpace(c.WriteFormat)
	if name == "" {
		name = cfg.Convert.WriteFormat
	}
	if name != "" {
		return plugins.Get(name)
	}
	if f, ok := plugins.ForExtension(filepath.Ext(c.Output)); ok {
		return f, nil
	}
	return nil, fmt.Errorf("cannot detect output format of %s, use --write-format", c.Output)
}

// mergedOptions layers --write-options over the config file values.
func (c *ConvertCmd) mergedOptions(cfg *config.Config, format *plugins.Format) (options.Values, error) {
	values := options.Values{}
	if format.Lname == "mobi" {
		for k, v := range cfg.WriteOptions() {
			values[k] = v
		}
	}
	cli, err := options.Parse(c.WriteOptions)
	if err != nil {
		return nil, err
	}
	for k, v := range cli {
		values[k] = v
	}
	return values, nil
}

func (c *ConvertCmd) applyInfo(cfg *config.Config, glos *glossary.Glossary) {
	set := func(key string, values ...string) {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				glos.SetInfo(key, v)
				return
			}
		}
	}
	set(glossary.InfoTitle, c.Title)
	set(glossary.InfoSourceLang, c.SourceLang)
	set(glossary.InfoTargetLang, c.TargetLang)
	if glos.GetInfo(glossary.InfoSourceLang) == "" {
		set(glossary.InfoSourceLang, cfg.Convert.SourceLang)
	}
	if glos.GetInfo(glossary.InfoTargetLang) == "" {
		set(glossary.InfoTargetLang, cfg.Convert.TargetLang)
	}
	glos.NormalizeLangs()
}

// infoAttrs lists the glossary info in insertion order as log attributes.
func infoAttrs(g *glossary.Glossary) []any {
	keys := g.InfoKeys()
	attrs := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		attrs = append(attrs, k, g.GetInfo(k))
	}
	return attrs
}
