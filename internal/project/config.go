package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"jsonfix"
)

// ErrInvalidConfig wraps every validation failure of a config file.
var ErrInvalidConfig = errors.New("invalid config")

// Config is a decoded .jsonfix.toml. Only keys present in the file
// override anything; see Apply.
type Config struct {
	Path string
	// Unknown lists keys present in the file that jsonfix does not use.
	Unknown []string
	// Warnings lists accepted values that will be adjusted, such as an
	// indent outside 0..MaxIndent, which the engine clamps.
	Warnings []string

	file fileConfig
	sort jsonfix.SortOrder
	meta toml.MetaData
}

type fileConfig struct {
	Format struct {
		Beautify bool   `toml:"beautify"`
		Indent   int    `toml:"indent"`
		SortKeys string `toml:"sort_keys"`
	} `toml:"format"`
	Repair struct {
		QuoteKeys      bool `toml:"quote_keys"`
		Comments       bool `toml:"comments"`
		TrailingCommas bool `toml:"trailing_commas"`
	} `toml:"repair"`
	Files struct {
		Extensions []string `toml:"extensions"`
	} `toml:"files"`
}

// LoadConfig decodes and validates the config file at path.
func LoadConfig(path string) (*Config, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg := &Config{Path: path, file: fc, meta: meta}
	for _, key := range meta.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}
	if meta.IsDefined("format", "sort_keys") {
		order, err := jsonfix.ParseSortOrder(fc.Format.SortKeys)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: [format].sort_keys: %w", path, ErrInvalidConfig, err)
		}
		cfg.sort = order
	}
	if meta.IsDefined("format", "indent") && (fc.Format.Indent < 0 || fc.Format.Indent > jsonfix.MaxIndent) {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("[format].indent %d is outside 0..%d and will be clamped", fc.Format.Indent, jsonfix.MaxIndent))
	}
	for _, ext := range fc.Files.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return nil, fmt.Errorf("%s: %w: [files].extensions entry %q must look like \".json\"", path, ErrInvalidConfig, ext)
		}
	}
	return cfg, nil
}

// Discover finds and loads the config file nearest to startDir.
// ok is false when no file exists.
func Discover(startDir string) (cfg *Config, ok bool, err error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err = LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Apply overrides the fields of base that the file defines.
func (c *Config) Apply(base jsonfix.Config) jsonfix.Config {
	if c == nil {
		return base
	}
	if c.meta.IsDefined("format", "beautify") {
		base.Beautify = c.file.Format.Beautify
	}
	if c.meta.IsDefined("format", "indent") {
		base.IndentWidth = c.file.Format.Indent
	}
	if c.meta.IsDefined("format", "sort_keys") {
		base.SortKeys = c.sort
	}
	if c.meta.IsDefined("repair", "quote_keys") {
		base.AutoQuoteKeys = c.file.Repair.QuoteKeys
	}
	if c.meta.IsDefined("repair", "comments") {
		base.RemoveComments = c.file.Repair.Comments
	}
	if c.meta.IsDefined("repair", "trailing_commas") {
		base.RemoveTrailingCommas = c.file.Repair.TrailingCommas
	}
	return base
}

// Extensions returns [files].extensions, or def when the file does not set it.
func (c *Config) Extensions(def []string) []string {
	if c == nil || !c.meta.IsDefined("files", "extensions") {
		return def
	}
	return append([]string(nil), c.file.Files.Extensions...)
}
