package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
	yaml "gopkg.in/yaml.v3"

	addrspec "github.com/mathematic-inc/go-addr-spec"
	"github.com/mathematic-inc/go-addr-spec/internal/expand"
	"github.com/mathematic-inc/go-addr-spec/internal/logging"
)

// Config mirrors the CLI capability and output settings so that a suite of
// addresses can be checked under a fixed, file-provided configuration.
type Config struct {
	Comments          *bool  `yaml:"comments"`
	FoldingWhiteSpace *bool  `yaml:"folding-white-space"`
	Literals          *bool  `yaml:"literals"`
	Normalization     *bool  `yaml:"normalization"`
	Format            string `yaml:"format"`
	Jobs              int    `yaml:"jobs"`
}

type CLI struct {
	Addresses         []string   `arg:"" optional:"" help:"Addresses to check. Read from standard input, one per line, when omitted."`
	Comments          bool       `name:"comments" help:"Allow parenthesized comments." env:"ADDR_SPEC_COMMENTS" default:"true" negatable:""`
	FoldingWhiteSpace bool       `name:"folding-white-space" help:"Allow folding white space." env:"ADDR_SPEC_FWS" default:"true" negatable:""`
	Literals          bool       `name:"literals" help:"Allow bracketed domain literals." env:"ADDR_SPEC_LITERALS" default:"true" negatable:""`
	Normalization     bool       `name:"normalization" help:"Apply Unicode NFC normalization." env:"ADDR_SPEC_NORMALIZATION" default:"true" negatable:""`
	Parts             bool       `name:"parts" help:"Report the serialized local part and domain separately."`
	Format            string     `name:"format" help:"Output format." enum:"text,json,yaml" default:"text" env:"ADDR_SPEC_FORMAT"`
	Jobs              int        `name:"jobs" help:"Number of addresses checked in parallel. Defaults to the CPU count." default:"0" env:"ADDR_SPEC_JOBS"`
	Config            string     `name:"config" help:"Path to a YAML configuration file. $${env.NAME} references are expanded from the environment." env:"ADDR_SPEC_CONFIG" optional:""`
	Quiet             bool       `name:"quiet" help:"Suppress diagnostics; the exit status alone reports failures."`
	LogLevel          slog.Level `name:"log-level" help:"Log level." env:"ADDR_SPEC_LOG_LEVEL" default:"INFO" enum:"DEBUG,INFO,WARN,ERROR"`
}

func expander(key string) string {
	if strings.HasPrefix(key, "env.") {
		return os.Getenv(key[4:])
	}
	return ""
}

func (c *CLI) loadConfig(kongCtx *kong.Context) {
	if c.Config == "" {
		return
	}
	b, err := os.ReadFile(c.Config)
	if err != nil {
		kongCtx.FatalIfErrorf(err)
	}
	var cfg Config
	err = yaml.Unmarshal([]byte(expand.Expand(string(b), expander)), &cfg)
	if err != nil {
		kongCtx.FatalIfErrorf(fmt.Errorf("%s: %w", c.Config, err))
	}
	if cfg.Comments != nil {
		c.Comments = *cfg.Comments
	}
	if cfg.FoldingWhiteSpace != nil {
		c.FoldingWhiteSpace = *cfg.FoldingWhiteSpace
	}
	if cfg.Literals != nil {
		c.Literals = *cfg.Literals
	}
	if cfg.Normalization != nil {
		c.Normalization = *cfg.Normalization
	}
	if cfg.Format != "" {
		c.Format = cfg.Format
	}
	if cfg.Jobs != 0 {
		c.Jobs = cfg.Jobs
	}
}

func (c *CLI) initLogger() *slog.Logger {
	if c.Quiet {
		return slog.New(logging.BlackholeHandler{})
	}
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{Level: c.LogLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel})
	}
	return slog.New(handler)
}

func (c *CLI) readInputs(kongCtx *kong.Context) []string {
	if len(c.Addresses) > 0 {
		return c.Addresses
	}
	var inputs []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	kongCtx.FatalIfErrorf(scanner.Err())
	return inputs
}

// record is one line of structured output.
type record struct {
	Input     string             `json:"input" yaml:"input"`
	Address   *addrspec.AddrSpec `json:"address" yaml:"address"`
	LocalPart string             `json:"localPart,omitempty" yaml:"localPart,omitempty"`
	Domain    string             `json:"domain,omitempty" yaml:"domain,omitempty"`
}

func (c *CLI) emit(w io.Writer, input string, a *addrspec.AddrSpec) error {
	switch c.Format {
	case "json", "yaml":
		rec := record{Input: input, Address: a}
		if c.Parts {
			rec.LocalPart, rec.Domain = a.SerializedParts()
		}
		if c.Format == "json" {
			b, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "%s\n", b)
			return err
		}
		b, err := yaml.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "---\n%s", b)
		return err
	default:
		if c.Parts {
			localPart, domain := a.SerializedParts()
			_, err := fmt.Fprintf(w, "%s\t%s\n", localPart, domain)
			return err
		}
		_, err := fmt.Fprintln(w, a.String())
		return err
	}
}

func main() {
	var cli CLI
	kongCtx := kong.Parse(&cli)
	cli.loadConfig(kongCtx)
	logger := cli.initLogger()
	inputs := cli.readInputs(kongCtx)

	parser := &addrspec.Parser{
		Comments:          cli.Comments,
		FoldingWhiteSpace: cli.FoldingWhiteSpace,
		Literals:          cli.Literals,
		Normalization:     cli.Normalization,
	}

	jobs := cli.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	results := make([]*addrspec.AddrSpec, len(inputs))
	errs := make([]error, len(inputs))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			results[i], errs[i] = parser.Parse(input)
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	w := bufio.NewWriter(os.Stdout)
	for i, input := range inputs {
		if errs[i] != nil {
			failed = true
			if perr, ok := errs[i].(*addrspec.ParseError); ok {
				logger.Error("invalid address",
					slog.String("input", input),
					slog.Int("offset", perr.Offset),
					slog.String("kind", perr.Kind.String()),
					slog.String("reason", perr.Message))
			} else {
				logger.Error("invalid address",
					slog.String("input", input),
					slog.Any("error", errs[i]))
			}
			continue
		}
		kongCtx.FatalIfErrorf(cli.emit(w, input, results[i]))
	}
	kongCtx.FatalIfErrorf(w.Flush())
	if failed {
		kongCtx.Exit(1)
	}
}
