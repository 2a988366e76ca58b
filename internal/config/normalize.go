package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
)

func (c *Config) normalize() error {
	c.normalizeLogging()
	c.normalizeConvert()
	return c.normalizeMobi()
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func (c *Config) normalizeConvert() {
	c.Convert.WriteFormat = strings.ToLower(strings.TrimSpace(c.Convert.WriteFormat))
	if c.Convert.WriteFormat == "" {
		c.Convert.WriteFormat = defaultWriteFormat
	}
	c.Convert.SourceLang = glossary.NormalizeLang(c.Convert.SourceLang)
	c.Convert.TargetLang = glossary.NormalizeLang(c.Convert.TargetLang)
}

func (c *Config) normalizeMobi() error {
	c.Mobi.KindlegenPath = strings.TrimSpace(c.Mobi.KindlegenPath)
	if c.Mobi.KindlegenPath == "" {
		if value, ok := os.LookupEnv("KINDLEGEN_PATH"); ok {
			c.Mobi.KindlegenPath = strings.TrimSpace(value)
		}
	}
	// A bare program name is left for PATH lookup.
	if strings.ContainsAny(c.Mobi.KindlegenPath, `/\`) || strings.HasPrefix(c.Mobi.KindlegenPath, "~") {
		expanded, err := expandPath(c.Mobi.KindlegenPath)
		if err != nil {
			return fmt.Errorf("mobi.kindlegen_path: %w", err)
		}
		c.Mobi.KindlegenPath = expanded
	}
	if c.Mobi.GroupByPrefixLength == 0 {
		c.Mobi.GroupByPrefixLength = defaultGroupByPrefixLength
	}
	return nil
}
