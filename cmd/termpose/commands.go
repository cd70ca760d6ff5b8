package main

import (
	"flag"
	"fmt"

	"github.com/reoring/termpose/bridge"
)

func fmtCmd(e *env, args []string) (int, error) {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var inline bool
	fs.BoolVar(&inline, "inline", false, "print the whole document on one line")
	fs.IntVar(&e.cfg.Width, "width", e.cfg.Width, "line width to keep to")
	fs.StringVar(&e.cfg.Indent, "indent", e.cfg.Indent, "indentation unit (default a tab)")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	name, ok := inputArg(fs)
	if !ok {
		fs.Usage()
		return 2, nil
	}
	t, err := e.parseInput(name)
	if err != nil || t == nil {
		return 1, err
	}
	return 0, e.writeTerm(t, inline)
}

func checkCmd(e *env, args []string) (int, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var quiet bool
	fs.BoolVar(&quiet, "q", false, "print nothing on success")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	name, ok := inputArg(fs)
	if !ok {
		fs.Usage()
		return 2, nil
	}
	t, err := e.parseInput(name)
	if err != nil || t == nil {
		return 1, err
	}
	if !quiet {
		fmt.Fprintf(e.stdout, "%s: ok\n", displayName(name))
	}
	return 0, nil
}

func jsonCmd(e *env, args []string) (int, error) {
	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var opt bridge.JSONOpt
	fs.BoolVar(&opt.PairsAsObjects, "objects", false, "write lists of distinct pairs as objects")
	fs.BoolVar(&opt.BareScalars, "bare", false, "write numeric and boolean leaves unquoted")
	fs.StringVar(&opt.Indent, "indent", "", "indent string for pretty output")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	name, ok := inputArg(fs)
	if !ok {
		fs.Usage()
		return 2, nil
	}
	t, err := e.parseInput(name)
	if err != nil || t == nil {
		return 1, err
	}
	out, err := bridge.ToJSON(t, opt)
	if err != nil {
		return 1, err
	}
	return 0, e.write(append(out, '\n'))
}

func yamlCmd(e *env, args []string) (int, error) {
	fs := flag.NewFlagSet("yaml", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var opt bridge.YAMLOpt
	fs.BoolVar(&opt.PairsAsObjects, "objects", false, "write lists of distinct pairs as mappings")
	fs.BoolVar(&opt.BareScalars, "bare", false, "let leaves resolve as YAML numbers and booleans")
	fs.IntVar(&opt.Indent, "indent", 2, "spaces per indentation level")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	name, ok := inputArg(fs)
	if !ok {
		fs.Usage()
		return 2, nil
	}
	t, err := e.parseInput(name)
	if err != nil || t == nil {
		return 1, err
	}
	out, err := bridge.ToYAML(t, opt)
	if err != nil {
		return 1, err
	}
	return 0, e.write(out)
}

func binaryCmd(e *env, args []string) (int, error) {
	fs := flag.NewFlagSet("msgpack", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var format string
	fs.StringVar(&format, "format", "msgpack", "binary format: msgpack or cbor")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	f, err := bridge.ParseBinaryFormat(format)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return 2, nil
	}
	name, ok := inputArg(fs)
	if !ok {
		fs.Usage()
		return 2, nil
	}
	t, err := e.parseInput(name)
	if err != nil || t == nil {
		return 1, err
	}
	out, err := bridge.ToBinary(t, f)
	if err != nil {
		return 1, err
	}
	return 0, e.write(out)
}

func fromJSONCmd(e *env, args []string) (int, error) {
	fs := flag.NewFlagSet("from-json", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var inline bool
	fs.BoolVar(&inline, "inline", false, "print the whole document on one line")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	name, ok := inputArg(fs)
	if !ok {
		fs.Usage()
		return 2, nil
	}
	data, err := e.bridgeInput(name)
	if err != nil {
		return 1, err
	}
	if err := e.checkSize(data); err != nil {
		return e.reportForeign("JSON", name, err)
	}
	t, err := bridge.FromJSON(data, bridge.JSONOpt{MaxDepth: e.cfg.MaxDepth})
	if err != nil {
		return e.reportForeign("JSON", name, err)
	}
	return 0, e.writeTerm(t, inline)
}

func fromYAMLCmd(e *env, args []string) (int, error) {
	fs := flag.NewFlagSet("from-yaml", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var inline bool
	fs.BoolVar(&inline, "inline", false, "print the whole document on one line")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	name, ok := inputArg(fs)
	if !ok {
		fs.Usage()
		return 2, nil
	}
	data, err := e.bridgeInput(name)
	if err != nil {
		return 1, err
	}
	if err := e.checkSize(data); err != nil {
		return e.reportForeign("YAML", name, err)
	}
	t, err := bridge.FromYAML(data, bridge.YAMLOpt{MaxDepth: e.cfg.MaxDepth})
	if err != nil {
		return e.reportForeign("YAML", name, err)
	}
	return 0, e.writeTerm(t, inline)
}

func fromBinaryCmd(e *env, args []string) (int, error) {
	fs := flag.NewFlagSet("from-msgpack", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var (
		format string
		inline bool
	)
	fs.StringVar(&format, "format", "msgpack", "binary format: msgpack or cbor")
	fs.BoolVar(&inline, "inline", false, "print the whole document on one line")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	f, err := bridge.ParseBinaryFormat(format)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return 2, nil
	}
	name, ok := inputArg(fs)
	if !ok {
		fs.Usage()
		return 2, nil
	}
	data, err := e.bridgeInput(name)
	if err != nil {
		return 1, err
	}
	if err := e.checkSize(data); err != nil {
		return e.reportForeign(f.String(), name, err)
	}
	t, err := bridge.FromBinary(data, f, bridge.BinaryOpt{MaxDepth: e.cfg.MaxDepth})
	if err != nil {
		return e.reportForeign(f.String(), name, err)
	}
	return 0, e.writeTerm(t, inline)
}
