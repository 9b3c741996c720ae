// Command tooncat converts a document between JSON and TOON. The input
// format is sniffed from its first non-whitespace byte: '{' means JSON,
// anything else is treated as TOON.
//
// Grounded on cmd/ycat: a thin consumer of the public façade that
// tokenizes and colorizes its TOON output the same way ycat colorizes a
// YAML document for display.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"

	toon "github.com/vadelabs/toon-sub000"
	"github.com/vadelabs/toon-sub000/encoder"
	"github.com/vadelabs/toon-sub000/lexer"
	"github.com/vadelabs/toon-sub000/printer"
	"github.com/vadelabs/toon-sub000/value"
)

const escape = "\x1b"

func format(attr color.Attribute) string {
	return fmt.Sprintf("%s[%dm", escape, attr)
}

func colorPrinter() *printer.Printer {
	p := &printer.Printer{LineNumber: false}
	p.Bool = func() *printer.Property {
		return &printer.Property{Prefix: format(color.FgHiMagenta), Suffix: format(color.Reset)}
	}
	p.Number = func() *printer.Property {
		return &printer.Property{Prefix: format(color.FgHiMagenta), Suffix: format(color.Reset)}
	}
	p.Key = func() *printer.Property {
		return &printer.Property{Prefix: format(color.FgHiCyan), Suffix: format(color.Reset)}
	}
	p.String = func() *printer.Property {
		return &printer.Property{Prefix: format(color.FgHiGreen), Suffix: format(color.Reset)}
	}
	return p
}

func detectFormat(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return "json"
	}
	return "toon"
}

func fromJSONInterface(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Bool(t)
	case float64:
		return value.Number(t)
	case string:
		return value.String(t)
	case []interface{}:
		out := make([]value.Value, len(t))
		for i, item := range t {
			out[i] = fromJSONInterface(item)
		}
		return value.Array(out)
	case map[string]interface{}:
		obj := value.NewObject()
		for _, k := range sortedKeys(t) {
			obj.Set(k, fromJSONInterface(t[k]))
		}
		return value.FromObject(obj)
	default:
		return value.Null()
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func toJSONInterface(v value.Value) interface{} {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		return v.BoolValue()
	case value.KindNumber:
		return v.NumberValue()
	case value.KindString:
		return v.StrValue()
	case value.KindArray:
		arr := v.ArrayValue()
		out := make([]interface{}, len(arr))
		for i, item := range arr {
			out[i] = toJSONInterface(item)
		}
		return out
	case value.KindObject:
		obj := v.ObjectValue()
		out := make(map[string]interface{}, obj.Len())
		for _, k := range obj.Keys() {
			fv, _ := obj.Get(k)
			out[k] = toJSONInterface(fv)
		}
		return out
	default:
		return nil
	}
}

type config struct {
	indent        int
	delimiter     string
	keyCollapsing bool
	expandPaths   bool
	strict        bool
	color         bool
}

func parseFlags(args []string) (*config, []string, error) {
	fs := flag.NewFlagSet("tooncat", flag.ContinueOnError)
	cfg := &config{}
	fs.IntVar(&cfg.indent, "indent", 2, "spaces per nesting level")
	fs.StringVar(&cfg.delimiter, "delimiter", ",", "array/cell delimiter: , \\t or |")
	fs.BoolVar(&cfg.keyCollapsing, "key-collapsing", false, "collapse single-key object chains into dotted paths")
	fs.BoolVar(&cfg.expandPaths, "expand-paths", false, "expand dotted keys into nested objects when decoding")
	fs.BoolVar(&cfg.strict, "strict", true, "enforce declared array lengths and strict quoting when decoding")
	fs.BoolVar(&cfg.color, "color", false, "colorize TOON output")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, rest, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(cfg.delimiter) != 1 {
		return errors.New("tooncat: --delimiter must be exactly one character")
	}

	var data []byte
	if len(rest) > 0 {
		data, err = os.ReadFile(rest[0])
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return err
	}

	switch detectFormat(data) {
	case "json":
		var parsed interface{}
		if err := json.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("tooncat: invalid JSON input: %w", err)
		}
		v := fromJSONInterface(parsed)

		collapsing := encoder.CollapseOff
		if cfg.keyCollapsing {
			collapsing = encoder.CollapseSafe
		}
		text, err := toon.Marshal(v,
			toon.Indent(cfg.indent),
			toon.Delimiter(cfg.delimiter[0]),
			toon.KeyCollapsing(collapsing),
		)
		if err != nil {
			return err
		}
		if cfg.color {
			l := &lexer.Lexer{IndentSize: cfg.indent, Strict: cfg.strict}
			tokens := l.Tokenize(string(text))
			p := colorPrinter()
			fmt.Fprintln(stdout, p.PrintTokens(tokens))
			return nil
		}
		fmt.Fprintln(stdout, string(text))
		return nil

	default:
		v, err := toon.Unmarshal(data,
			toon.DecodeIndent(cfg.indent),
			toon.Strict(cfg.strict),
			toon.ExpandPaths(cfg.expandPaths),
		)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(toJSONInterface(v), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	}
}

func main() {
	stdout := colorable.NewColorableStdout()
	if err := run(os.Args[1:], os.Stdin, stdout); err != nil {
		if pe := toon.AsPositionedError(err); pe != nil {
			fmt.Fprintln(os.Stderr, color.New(color.FgHiRed).Sprint(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
