package mobi

import (
	"github.com/FocuswithJustin/JuniperGlossary/core/ebook"
	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
	"github.com/FocuswithJustin/JuniperGlossary/core/options"
	"github.com/FocuswithJustin/JuniperGlossary/internal/logging"
)

// Write option names.
const (
	OptGroupByPrefixLength = "group_by_prefix_length"
	OptKindlegenPath       = "kindlegen_path"
	OptCompress            = "compress"
	OptKeep                = "keep"
	OptIncludeIndexPage    = "include_index_page"
	OptApplyCSS            = "apply_css"
	OptCoverPath           = "cover_path"
)

// Schema lists the mobi write options. Disabled options are accepted on the
// command line and ignored.
var Schema = options.Schema{
	{Name: OptGroupByPrefixLength, Type: options.TypeInt, Comment: "Prefix length for grouping"},
	{Name: OptKindlegenPath, Type: options.TypeStr, Comment: "Path to kindlegen executable"},
	{Name: OptCompress, Type: options.TypeBool, Comment: "Enable compression", Disabled: true},
	{Name: OptKeep, Type: options.TypeBool, Comment: "Keep temp files", Disabled: true},
	{Name: OptIncludeIndexPage, Type: options.TypeBool, Comment: "Include index page", Disabled: true},
	{Name: OptApplyCSS, Type: options.TypeStr, Comment: "Path to css file", Disabled: true},
	{Name: OptCoverPath, Type: options.TypeStr, Comment: "Path to cover file", Disabled: true},
}

// Config is the per-job configuration of a Writer. It is built once and not
// modified during a conversion.
//
// Compress and Keep have no effect. IncludeIndexPage, ApplyCSS and CoverPath
// are honored when set from Go code but cannot be set through write options.
type Config struct {
	GroupByPrefixLength int
	KindlegenPath       string
	Compress            bool
	Keep                bool
	IncludeIndexPage    bool
	ApplyCSS            string
	CoverPath           string
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() Config {
	return Config{GroupByPrefixLength: ebook.DefaultGroupByPrefixLength}
}

// ConfigFromOptions overlays parsed write options on DefaultConfig.
func ConfigFromOptions(values options.Values) (Config, error) {
	cfg := DefaultConfig()
	if err := Schema.Validate(values); err != nil {
		return cfg, err
	}

	for _, opt := range Schema {
		if _, ok := values[opt.Name]; ok && opt.Disabled {
			logging.Debug("ignoring disabled write option", "format", "mobi", "option", opt.Name)
		}
	}

	n, err := values.Int(OptGroupByPrefixLength, cfg.GroupByPrefixLength)
	if err != nil {
		return cfg, err
	}
	cfg.GroupByPrefixLength = n
	cfg.KindlegenPath = values.String(OptKindlegenPath, cfg.KindlegenPath)

	return cfg, cfg.Validate()
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.GroupByPrefixLength < 1 {
		return &errors.ValidationError{
			Field:   OptGroupByPrefixLength,
			Message: "must be at least 1",
		}
	}
	return nil
}

func (c Config) builderOptions() ebook.BuilderOptions {
	return ebook.BuilderOptions{
		GroupByPrefixLength: c.GroupByPrefixLength,
		IncludeIndexPage:    c.IncludeIndexPage,
		CSSPath:             c.ApplyCSS,
		CoverPath:           c.CoverPath,
		Templates:           Templates(),
	}
}
