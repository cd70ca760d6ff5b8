package main

import (
	"github.com/joeshaw/envdecode"
	"github.com/pkg/errors"

	"github.com/reoring/termpose/syntax"
)

// config holds the defaults every subcommand starts from. Flags override it.
type config struct {
	// MaxDepth bounds nesting of parsed documents. ENV: TERMPOSE_MAX_DEPTH
	MaxDepth int `env:"TERMPOSE_MAX_DEPTH,default=512"`
	// MaxBytes bounds the size of an input document. ENV: TERMPOSE_MAX_BYTES
	MaxBytes int64 `env:"TERMPOSE_MAX_BYTES,default=16777216"`
	// Indent is the indentation unit of pretty output; empty means a tab.
	// ENV: TERMPOSE_INDENT
	Indent string `env:"TERMPOSE_INDENT"`
	// Width is the line width pretty output tries to keep to. ENV: TERMPOSE_WIDTH
	Width int `env:"TERMPOSE_WIDTH,default=80"`
	// Lang selects the language of error headings, "en" or "ja". ENV: TERMPOSE_LANG
	Lang string `env:"TERMPOSE_LANG,default=en"`
	// Verbose turns on progress logs on stderr. ENV: TERMPOSE_VERBOSE
	Verbose bool `env:"TERMPOSE_VERBOSE,default=false"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return cfg, errors.Wrap(err, "termpose: reading environment")
	}
	return cfg, nil
}

func (c config) parseOpt() syntax.ParseOpt {
	return syntax.ParseOpt{MaxDepth: c.MaxDepth, MaxBytes: c.MaxBytes}
}

func (c config) prettyOpt() syntax.PrettyOpt {
	return syntax.PrettyOpt{Indent: c.Indent, Width: c.Width}
}
