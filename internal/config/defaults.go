package config

const (
	defaultLogLevel            = "info"
	defaultLogFormat           = "auto"
	defaultWriteFormat         = "mobi"
	defaultGroupByPrefixLength = 2
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Convert: Convert{
			WriteFormat: defaultWriteFormat,
			LockOutput:  true,
		},
		Mobi: Mobi{
			GroupByPrefixLength: defaultGroupByPrefixLength,
		},
	}
}
