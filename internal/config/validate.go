package config

import (
	"errors"
	"fmt"

	"github.com/FocuswithJustin/JuniperGlossary/internal/logging"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateMobi()
}

func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}
	return nil
}

func (c *Config) validateMobi() error {
	if c.Mobi.GroupByPrefixLength < 1 {
		return errors.New("mobi.group_by_prefix_length must be at least 1")
	}
	return nil
}
