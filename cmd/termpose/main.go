package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.mindeco.de/logging"

	"github.com/reoring/termpose"
	"github.com/reoring/termpose/codec"
	"github.com/reoring/termpose/i18n"
	"github.com/reoring/termpose/syntax"
	"github.com/reoring/termpose/term"
)

var check = logging.CheckFatal

func main() {
	logging.SetupLogging(nil)
	code, err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	check(err)
	os.Exit(code)
}

type logger interface {
	Log(keyvals ...interface{}) error
}

type nopLogger struct{}

func (nopLogger) Log(...interface{}) error { return nil }

// env carries what every subcommand needs.
type env struct {
	cfg    config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    logger
}

// run executes one invocation. A malformed document is reported on stderr and
// yields exit code 1 with a nil error; the error is reserved for failures of
// the environment, such as unreadable files or a closed stdout.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return 2, err
	}
	global := flag.NewFlagSet("termpose", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log progress to stderr")
	global.StringVar(&cfg.Lang, "lang", cfg.Lang, "language of error headings (en, ja)")
	global.Usage = func() { usage(stderr) }
	if err := global.Parse(args); err != nil {
		return 2, nil
	}
	rest := global.Args()
	if len(rest) < 1 {
		usage(stderr)
		return 2, nil
	}
	i18n.SetLanguage(cfg.Lang)

	e := &env{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr, log: nopLogger{}}
	if cfg.Verbose {
		e.log = logging.Logger("termpose")
	}

	sub, subArgs := rest[0], rest[1:]
	switch sub {
	case "fmt":
		return fmtCmd(e, subArgs)
	case "check":
		return checkCmd(e, subArgs)
	case "json":
		return jsonCmd(e, subArgs)
	case "yaml":
		return yamlCmd(e, subArgs)
	case "msgpack":
		return binaryCmd(e, subArgs)
	case "from-json":
		return fromJSONCmd(e, subArgs)
	case "from-yaml":
		return fromYAMLCmd(e, subArgs)
	case "from-msgpack":
		return fromBinaryCmd(e, subArgs)
	default:
		usage(stderr)
		return 2, nil
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `termpose CLI

Usage:
  termpose [-v] [-lang en|ja] <command> [flags] [file]

Commands:
  fmt           reformat a document (-inline, -width N, -indent S)
  check         report the first syntax error, if any
  json          convert a document to JSON (-objects, -bare, -indent S)
  yaml          convert a document to YAML (-objects, -bare, -indent N)
  msgpack       convert a document to MessagePack or CBOR (-format)
  from-json     convert JSON to a document (-inline)
  from-yaml     convert YAML to a document (-inline)
  from-msgpack  convert MessagePack or CBOR to a document (-format, -inline)

Without a file argument the input is read from stdin. Defaults come from
TERMPOSE_MAX_DEPTH, TERMPOSE_MAX_BYTES, TERMPOSE_INDENT, TERMPOSE_WIDTH,
TERMPOSE_LANG and TERMPOSE_VERBOSE.`)
}

// readInput reads the named file, or stdin when name is empty, up to
// MaxBytes+1 bytes so that oversize input is still reported by the parser.
func (e *env) readInput(name string) (string, error) {
	var r io.Reader = e.stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return "", errors.Wrap(err, "termpose: opening input")
		}
		defer f.Close()
		r = f
	}
	if e.cfg.MaxBytes > 0 {
		r = io.LimitReader(r, e.cfg.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "termpose: reading input")
	}
	e.log.Log("event", "read", "input", displayName(name), "bytes", len(data))
	return string(data), nil
}

// parseInput reads and parses a document. A nil term with a nil error means
// the failure was already reported.
func (e *env) parseInput(name string) (term.Term, error) {
	src, err := e.readInput(name)
	if err != nil {
		return nil, err
	}
	t, err := termpose.DeserializeWith[term.Term](src, codec.Identity, e.cfg.parseOpt())
	if err != nil {
		e.log.Log("event", "rejected", "input", displayName(name), "err", err)
		fmt.Fprint(e.stderr, termpose.Snippet(err, src))
		return nil, nil
	}
	e.log.Log("event", "parsed", "input", displayName(name), "depth", term.Depth(t))
	return t, nil
}

func (e *env) write(p []byte) error {
	_, err := e.stdout.Write(p)
	return errors.Wrap(err, "termpose: writing output")
}

// writeTerm prints t as a document, pretty unless inline is set.
func (e *env) writeTerm(t term.Term, inline bool) error {
	if inline {
		return e.write([]byte(syntax.Render(t) + "\n"))
	}
	return e.write([]byte(syntax.Pretty(t, e.cfg.prettyOpt())))
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}

func inputArg(fs *flag.FlagSet) (string, bool) {
	switch fs.NArg() {
	case 0:
		return "", true
	case 1:
		return fs.Arg(0), true
	default:
		return "", false
	}
}

// reportForeign prints a conversion failure from one of the bridge formats.
func (e *env) reportForeign(format, name string, err error) (int, error) {
	fmt.Fprintf(e.stderr, "%s input %s: %v\n", format, displayName(name), err)
	return 1, nil
}

func (e *env) bridgeInput(name string) ([]byte, error) {
	src, err := e.readInput(name)
	if err != nil {
		return nil, err
	}
	return []byte(src), nil
}

func (e *env) checkSize(data []byte) error {
	if e.cfg.MaxBytes > 0 && int64(len(data)) > e.cfg.MaxBytes {
		return errors.Errorf("input exceeds %d bytes", e.cfg.MaxBytes)
	}
	return nil
}
