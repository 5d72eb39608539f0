// Package main implements the docsplit executable.
// It splits a generated API-reference markdown document into one file per
// third-level heading, grouped in directories named after their sections.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/d-kuro/docsplit/internal/cmd"
	"github.com/d-kuro/docsplit/internal/config"
	"github.com/d-kuro/docsplit/internal/logging"
	"github.com/d-kuro/docsplit/internal/security"
	"github.com/d-kuro/docsplit/internal/splitter"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootFlags holds the flags of the root command.
type rootFlags struct {
	configPath  string
	input       string
	output      string
	anchor      string
	renames     []string
	onDuplicate string
	logLevel    string
	dryRun      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "docsplit",
		Short: "Split an API-reference markdown document into per-member files",
		Long: `docsplit reads a generated API-reference document, drops everything before
the "## Properties" heading, removes horizontal rules and writes every "###"
block to <output>/<section>/<subsection>.md.

Settings are layered: defaults, --config YAML file, .env and environment
(DOCSPLIT_INPUT, DOCSPLIT_OUTPUT, DOCSPLIT_ANCHOR, LOG_LEVEL), then flags.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return runSplit(c, flags)
		},
	}

	defaults := config.Default()
	f := rootCmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "Path to a YAML config file")
	f.StringVarP(&flags.input, "input", "i", defaults.InputPath, "Markdown document to split")
	f.StringVarP(&flags.output, "output", "o", defaults.OutputDir, "Root directory of the section tree")
	f.StringVar(&flags.anchor, "anchor", defaults.Anchor, "Heading title where content starts")
	f.StringArrayVar(&flags.renames, "rename", config.FormatRenames(defaults.Renames), "Section rename as old=new, merged over the defaults (repeatable)")
	f.StringVar(&flags.onDuplicate, "on-duplicate", defaults.OnDuplicate, "Repeated section titles: last-wins, error or merge")
	f.StringVar(&flags.logLevel, "log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Print the files that would be written without writing them")

	rootCmd.AddCommand(cmd.NewVersionCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// resolveConfig loads the config file and environment, then applies the
// flags the user set explicitly.
func resolveConfig(c *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	f := c.Flags()
	if f.Changed("input") {
		cfg.InputPath = flags.input
	}
	if f.Changed("output") {
		cfg.OutputDir = flags.output
	}
	if f.Changed("anchor") {
		cfg.Anchor = flags.anchor
	}
	if f.Changed("rename") {
		renames, err := config.ParseRenames(flags.renames)
		if err != nil {
			return nil, err
		}
		cfg.Renames = config.MergeRenames(cfg.Renames, renames)
	}
	if f.Changed("on-duplicate") {
		cfg.OnDuplicate = flags.onDuplicate
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if f.Changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runSplit performs one split run.
func runSplit(c *cobra.Command, flags *rootFlags) error {
	cfg, err := resolveConfig(c, flags)
	if err != nil {
		return err
	}

	logger := logging.NewLoggerTo(c.ErrOrStderr(), cfg.LogLevel)

	opts, err := cfg.SplitOptions()
	if err != nil {
		logger.Error("Invalid configuration", slog.Any("error", err))
		return err
	}

	result, err := splitter.Split(c.Context(), splitter.Request{
		InputPath: cfg.InputPath,
		OutputDir: cfg.OutputDir,
		Options:   opts,
		DryRun:    cfg.DryRun,
		Validator: security.NewDefaultValidator(),
	}, logger)
	if err != nil {
		logger.Error("Error splitting document",
			slog.String("input", cfg.InputPath),
			slog.Any("error", err))
		return err
	}

	out := c.OutOrStdout()
	if cfg.DryRun {
		for _, path := range result.Written {
			fmt.Fprintf(out, "Would create: %s\n", path)
		}
		fmt.Fprintf(out, "Dry run: %d files in %d sections under %s\n", result.Files, result.Sections, cfg.OutputDir)
		return nil
	}

	fmt.Fprintln(out, "Files created successfully.")
	fmt.Fprintf(out, "%d files in %d sections under %s\n", result.Files, result.Sections, cfg.OutputDir)
	return nil
}
