// Package config loads, normalizes, and validates the glossary converter's
// TOML configuration.
//
// The file lives at ~/.config/juniper-glossary/config.toml unless --config
// points elsewhere. Missing files are not an error: defaults apply and
// KINDLEGEN_PATH fills in an unset kindlegen path. Command-line write
// options take precedence over anything read here.
package config
