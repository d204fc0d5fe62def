package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rgonek/delta-md-converter/content"
	"github.com/rgonek/delta-md-converter/converter"
	"github.com/rgonek/delta-md-converter/delta"
	"github.com/rgonek/delta-md-converter/mdconverter"
	"github.com/rgonek/delta-md-converter/render"
)

const (
	outputMarkdown = "md"
	outputDelta    = "delta"
	outputHTML     = "html"
	outputText     = "text"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	from       string
	to         string
	preset     string
	configPath string
	allowHTML  bool
	strict     bool
	pretty     bool
	verbose    bool
	input      string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("dmc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.from, "from", "", "Input format: text|md|delta (default: from file extension)")
	fs.StringVar(&opts.to, "to", outputMarkdown, "Output format: md|delta|html|text")
	fs.StringVar(&opts.preset, "preset", presetBalanced, "Preset: balanced|strict|readable|lossy")
	fs.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	fs.BoolVar(&opts.allowHTML, "allow-html", false, "Emit inline HTML for underline, scripts, colors and alignment")
	fs.BoolVar(&opts.strict, "strict", false, "Return error on unknown attributes, embeds and unresolved references")
	fs.BoolVar(&opts.pretty, "pretty", false, "Indent Delta JSON output")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: dmc [options] <input-file|->\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, errUsage
	}
	opts.input = fs.Arg(0)

	if opts.from == "" {
		opts.from = formatFromPath(opts.input)
	}
	return opts, nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return string(content.FormatDelta)
	case ".txt":
		return string(content.FormatText)
	default:
		return string(content.FormatMarkdown)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := resolveConfig(opts.preset, opts.configPath, opts.allowHTML, opts.strict)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return 1
	}

	logger, err := newLogger(stderr, cfg.Log.Level, opts.verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid log level: %v\n", err)
		return 1
	}

	data, err := readInput(opts.input, stdin)
	if err != nil {
		logger.Error("failed to read input", "input", opts.input, "error", err)
		return 1
	}
	logger.Debug("converting", "input", opts.input, "from", opts.from, "to", opts.to, "bytes", len(data))

	out, err := convert(logger, cfg, opts, data)
	if err != nil {
		logger.Error("conversion failed", "input", opts.input, "error", err)
		return 1
	}

	if _, err := io.WriteString(stdout, out); err != nil {
		logger.Error("failed to write output", "error", err)
		return 1
	}
	return 0
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func convert(logger *log.Logger, cfg fileConfig, opts options, data []byte) (string, error) {
	stored, err := toDelta(logger, cfg, content.Format(opts.from), data)
	if err != nil {
		return "", err
	}

	switch opts.to {
	case outputDelta:
		if !opts.pretty {
			return stored + "\n", nil
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(stored), "", "  "); err != nil {
			return "", fmt.Errorf("failed to format Delta JSON: %w", err)
		}
		return buf.String() + "\n", nil

	case outputText:
		return delta.ExtractPlain(stored) + "\n", nil

	case outputMarkdown:
		conv, err := converter.New(cfg.Markdown)
		if err != nil {
			return "", fmt.Errorf("markdown config: %w", err)
		}
		result, err := conv.Convert([]byte(stored))
		if err != nil {
			return "", err
		}
		logWarnings(logger, result.Warnings)
		return result.Markdown, nil

	case outputHTML:
		r, err := render.New(cfg.renderConfig())
		if err != nil {
			return "", fmt.Errorf("html config: %w", err)
		}
		result, err := r.Render([]byte(stored))
		if err != nil {
			return "", err
		}
		logWarnings(logger, result.Warnings)
		return result.HTML, nil

	default:
		return "", fmt.Errorf("unknown output format %q (allowed: md, delta, html, text)", opts.to)
	}
}

// toDelta normalizes the input to canonical Delta JSON. Markdown goes through the
// converter directly so its warnings can be logged.
func toDelta(logger *log.Logger, cfg fileConfig, format content.Format, data []byte) (string, error) {
	if format == content.FormatMarkdown {
		conv, err := mdconverter.New(cfg.Delta)
		if err != nil {
			return "", fmt.Errorf("delta config: %w", err)
		}
		result, err := conv.Convert(string(data))
		if err != nil {
			return "", err
		}
		logWarnings(logger, result.Warnings)
		return result.Delta, nil
	}

	normalizer, err := content.NewNormalizer(cfg.Delta)
	if err != nil {
		return "", fmt.Errorf("delta config: %w", err)
	}
	text := string(data)
	if format == content.FormatText {
		text = strings.TrimSuffix(text, "\n")
	}
	return normalizer.Normalize(content.Submission{Format: format, Content: text})
}
