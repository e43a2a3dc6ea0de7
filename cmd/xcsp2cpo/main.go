// Command xcsp2cpo converts XCSP3 instances into IBM CP Optimizer (.cpo)
// models.
//
// Usage:
//
//	xcsp2cpo [input]                     convert input (or stdin) to stdout
//	xcsp2cpo convert <input|-> [-o out]  same, optionally writing a file
//	xcsp2cpo batch <inputs...> --out-dir DIR [--workers N]
//	xcsp2cpo version [--json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sohaibafifi/xcsp2cpo/internal/config"
	"github.com/sohaibafifi/xcsp2cpo/internal/logging"
	"github.com/sohaibafifi/xcsp2cpo/pkg/convert"
	"github.com/sohaibafifi/xcsp2cpo/pkg/loader"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, loader.Host())
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, fs billy.Filesystem) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, fs: fs}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	fs     billy.Filesystem

	configPath  string
	verbose     bool
	noTransform bool
	strict      bool

	output  string
	outDir  string
	suffix  string
	workers int
	json    bool
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xcsp2cpo [input]",
		Short:         "Convert XCSP3 instances to IBM CP Optimizer format",
		Long:          `Reads an XCSP3 instance (plain XML or .lzma compressed) and prints the equivalent CPO model. Without an input the instance is read from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runConvert,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log progress and diagnostics to stderr")
	pf.BoolVar(&a.noTransform, "no-transform", false, "skip normalization and decomposition")
	pf.BoolVar(&a.strict, "strict", false, "fail on constraint kinds without a CPO form")
	root.Flags().StringVarP(&a.output, "output", "o", "", "output file (default stdout)")

	convertCmd := &cobra.Command{
		Use:   "convert <input|->",
		Short: "Convert one instance",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runConvert,
	}
	convertCmd.Flags().StringVarP(&a.output, "output", "o", "", "output file (default stdout)")

	batchCmd := &cobra.Command{
		Use:   "batch <inputs...>",
		Short: "Convert several instances concurrently",
		Long:  `Converts every input and writes <name>.cpo into the output directory. Inputs that fail are reported and do not stop the others.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runBatch,
	}
	batchCmd.Flags().StringVar(&a.outDir, "out-dir", "", "output directory (default from config, else .)")
	batchCmd.Flags().StringVar(&a.suffix, "suffix", "", "output file suffix (default .cpo)")
	batchCmd.Flags().IntVar(&a.workers, "workers", 0, "number of concurrent conversions (0 = one per CPU)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE:  a.runVersion,
	}
	versionCmd.Flags().BoolVar(&a.json, "json", false, "print build information as JSON")

	root.AddCommand(convertCmd, batchCmd, versionCmd)
	return root
}

// settings merges defaults, the optional config file and the flags set on
// cmd.
func (a *app) settings(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.fs, a.configPath)
		if err != nil {
			return cfg, zerolog.Nop(), err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("no-transform") {
		cfg.Transform = !a.noTransform
	}
	if flags.Changed("strict") {
		cfg.Strict = a.strict
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("out-dir") {
		cfg.OutputDir = a.outDir
	}
	if flags.Changed("suffix") {
		cfg.Suffix = a.suffix
	}
	if err := cfg.Validate(); err != nil {
		return cfg, zerolog.Nop(), err
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Verbose: a.verbose, Out: a.stderr})
	return cfg, logger, err
}

func (a *app) converter(cfg config.Config, logger zerolog.Logger) *convert.Converter {
	return convert.New(
		convert.WithTransform(cfg.Transform),
		convert.WithStrict(cfg.Strict),
		convert.WithLogger(logger),
		convert.WithFilesystem(a.fs),
	)
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	cfg, logger, err := a.settings(cmd)
	if err != nil {
		return err
	}
	c := a.converter(cfg, logger)

	input := "-"
	if len(args) == 1 {
		input = args[0]
	}
	var res *convert.Result
	if input == "-" {
		doc, err := io.ReadAll(a.stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		res, err = c.Convert(doc)
		if err != nil {
			return err
		}
	} else {
		res, err = c.ConvertFile(input)
		if errors.Is(err, loader.ErrNotFound) {
			return fmt.Errorf("file not found: %s", input)
		}
		if err != nil {
			return err
		}
	}

	logger.Info().
		Str("input", input).
		Int("constraints", len(res.Model.Constraints())).
		Int("diagnostics", len(res.Diagnostics)).
		Msg("converted")

	if a.output == "" {
		_, err := fmt.Fprintln(a.stdout, res.Text)
		return err
	}
	if err := loader.Save(a.fs, a.output, []byte(res.Text+"\n")); err != nil {
		return err
	}
	logger.Info().Str("output", a.output).Msg("wrote output")
	return nil
}

func (a *app) runBatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := a.settings(cmd)
	if err != nil {
		return err
	}
	results, err := a.converter(cfg, logger).Batch(cmd.Context(), args, path.Clean(cfg.OutputDir), cfg.Suffix, cfg.Workers)
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if errors.Is(r.Err, loader.ErrNotFound) {
				fmt.Fprintf(a.stderr, "Error: file not found: %s\n", r.Input)
			} else {
				fmt.Fprintf(a.stderr, "Error: %v\n", r.Err)
			}
			continue
		}
		fmt.Fprintf(a.stdout, "%s -> %s\n", r.Input, r.Output)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

func (a *app) runVersion(*cobra.Command, []string) error {
	info := convert.GetVersionInfo()
	if !a.json {
		_, err := fmt.Fprintf(a.stdout, "xcsp2cpo %s (%s)\n", info.Version, info.GoVersion)
		return err
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
