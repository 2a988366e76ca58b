package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/FocuswithJustin/JuniperGlossary/internal/config"
)

// ConfigInitCmd writes the sample config file.
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	path := g.Config
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := config.CreateSample(path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}

// ConfigShowCmd prints the configuration after defaults and overrides.
type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = stdout.Write(data)
	return err
}
