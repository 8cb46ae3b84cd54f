// Package config loads bridge options from TOML files.
//
// Options cover the marshalling knobs that are deployment decisions
// rather than call-site decisions: deterministic map key ordering,
// nesting depth limits, and logging verbosity for the engine.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/marshal"
)

// Options is the file form of bridge configuration.
type Options struct {
	// SortMapKeys sorts Go map keys for a deterministic foreign mapping.
	// When false, map inputs are rejected and mappings must be built with
	// explicit pair order.
	SortMapKeys bool `toml:"sort_map_keys"`

	// MaxDepth bounds container nesting during marshalling.
	MaxDepth int `toml:"max_depth"`

	// Debug enables engine debug logging.
	Debug bool `toml:"debug"`
}

// Default returns the options used when no file is given.
func Default() Options {
	def := marshal.DefaultOptions()
	return Options{
		SortMapKeys: def.SortMapKeys,
		MaxDepth:    def.MaxDepth,
	}
}

// Load reads options from a TOML file. Keys absent from the file keep
// their defaults.
func Load(path string) (Options, error) {
	cfg := Default()

	var raw Options
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Options{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "load "+path)
	}

	if meta.IsDefined("sort_map_keys") {
		cfg.SortMapKeys = raw.SortMapKeys
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}

	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	return cfg, nil
}

// Validate rejects option values the marshaller cannot honor.
func (o Options) Validate() error {
	if o.MaxDepth < 1 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidData).
			Detail("max_depth must be at least 1, got %d", o.MaxDepth).
			Build()
	}
	return nil
}

// Marshal converts the file options to marshaller options.
func (o Options) Marshal() marshal.Options {
	return marshal.Options{
		SortMapKeys: o.SortMapKeys,
		MaxDepth:    o.MaxDepth,
	}
}
