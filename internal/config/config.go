// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the settings of the logicsim command from an HCL file.
//
// Example:
//
//	log_level  = "debug"
//	log_format = "text"
//	budget     = 4096
//	cycles     = 16
//	circuit    = "counter"
//
package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"

	ls "github.com/db47h/logicsim"
)

// Config holds the command settings. Zero fields in a file keep their default
// value.
//
type Config struct {
	LogLevel  string `hcl:"log_level,optional"`
	LogFormat string `hcl:"log_format,optional"`
	Budget    int    `hcl:"budget,optional"`
	Cycles    int    `hcl:"cycles,optional"`
	Circuit   string `hcl:"circuit,optional"`
}

// Default returns the default settings.
//
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Budget:    ls.DefaultBudget,
		Cycles:    8,
		Circuit:   "counter",
	}
}

// Load reads settings from an HCL file on top of the defaults.
//
func Load(path string) (*Config, error) {
	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "parse %s", path)
	}
	return decode(f.Body, path)
}

// Parse is like Load but reads settings from src. The filename is only used
// in error messages.
//
func Parse(src []byte, filename string) (*Config, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "parse %s", filename)
	}
	return decode(f.Body, filename)
}

func decode(body hcl.Body, filename string) (*Config, error) {
	var fc Config
	if diags := gohcl.DecodeBody(body, nil, &fc); diags.HasErrors() {
		return nil, errors.Wrapf(diags, "decode %s", filename)
	}
	c := Default()
	c.Merge(&fc)
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, filename)
	}
	return c, nil
}

// Merge overrides c with the non-zero fields of o.
//
func (c *Config) Merge(o *Config) {
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.Budget != 0 {
		c.Budget = o.Budget
	}
	if o.Cycles != 0 {
		c.Cycles = o.Cycles
	}
	if o.Circuit != "" {
		c.Circuit = o.Circuit
	}
}

// Validate checks the settings.
//
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("invalid log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("invalid log format %q", c.LogFormat)
	}
	if c.Budget < 1 {
		return errors.Errorf("invalid evaluation budget %d", c.Budget)
	}
	if c.Cycles < 0 {
		return errors.Errorf("invalid cycle count %d", c.Cycles)
	}
	return nil
}
