// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scrape-docs CLI. The root
// command scrapes a tree of reference markdown files into a single API
// documentation manifest; subcommands index and query that manifest.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scrape-docs/internal/aggregate"
	"github.com/pdiddy/scrape-docs/internal/discover"
	"github.com/pdiddy/scrape-docs/internal/docparse"
	"github.com/pdiddy/scrape-docs/internal/logging"
	"github.com/pdiddy/scrape-docs/internal/manifest"
	"github.com/pdiddy/scrape-docs/pkg/types"
)

// Process exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitCancelled = 2
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE from the log_level and
// log_format settings.
var logger = zerolog.Nop()

// rootCmd scrapes the content tree given as its first argument. The same
// run is also reachable as the explicit scrape subcommand.
var rootCmd = &cobra.Command{
	Use:   "scrape-docs <content-root> <output-file>",
	Short: "Scrape reference markdown into an API documentation manifest",
	Long: `scrape-docs walks a tree of reference markdown files named
<prefix>-<header>-<api>.md, reads each file's YAML frontmatter and its
"### -param", "### -field" and "## -returns" sections, and writes a single
YAML manifest keyed by API name.

Files without frontmatter, with malformed frontmatter, or whose declared
api_name does not match the file name are skipped with a warning.`,
	Args: cobra.ExactArgs(2),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(os.Stderr, types.LogConfig{
			Level:  viper.GetString("log_level"),
			Format: viper.GetString("log_format"),
		})
		if err != nil {
			return err
		}
		logger = l
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug().Str("config", used).Msg("using config file")
		}
		return nil
	},
	RunE: runScrape,
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <content-root> <output-file>",
	Short: "Scrape reference markdown into an API documentation manifest",
	Long: `Scrape is the explicit form of the root command. Use it when the
content root shares a name with a subcommand such as index or version.`,
	Args: cobra.ExactArgs(2),
	RunE: runScrape,
}

func runScrape(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	ctx := cmd.Context()

	// root and scrape each own a copy of the scrape flags; bind the
	// copy that belongs to the running command.
	viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("help_base_url", cmd.Flags().Lookup("help-base-url"))
	viper.BindPFlag("report_duplicates", cmd.Flags().Lookup("report-duplicates"))

	cfg := types.ScrapeConfig{
		ContentRoot:      filepath.Clean(args[0]),
		OutputPath:       args[1],
		HelpBaseURL:      viper.GetString("help_base_url"),
		Workers:          viper.GetInt("workers"),
		ReportDuplicates: viper.GetBool("report_duplicates"),
	}
	return scrape(ctx, cfg)
}

// scrape runs discovery, parsing, and the manifest write. The write
// happens only if ctx is still live once aggregation completes.
func scrape(ctx context.Context, cfg types.ScrapeConfig) error {
	files, err := discover.Files(ctx, cfg.ContentRoot)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	logger.Info().Str("root", cfg.ContentRoot).Int("files", len(files)).Msg("discovered reference files")

	parser := docparse.NewParser(cfg.ContentRoot, cfg.HelpBaseURL)
	m, summary, err := aggregate.Run(ctx, files, parser, aggregate.Options{
		Workers:          cfg.Workers,
		ReportDuplicates: cfg.ReportDuplicates,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info().
		Int("files", summary.Total()).
		Int("parsed", summary.Parsed).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int("duplicates", summary.Duplicates).
		Dur("elapsed", summary.Elapsed).
		Msg("aggregation complete")

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := manifest.Write(cfg.OutputPath, m); err != nil {
		return err
	}
	logger.Info().Str("output", cfg.OutputPath).Int("apis", len(m)).Msg("wrote manifest")
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scrape-docs.yaml or ~/.config/scrape-docs/scrape-docs.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")

	addScrapeFlags(rootCmd)
	addScrapeFlags(scrapeCmd)

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(scrapeCmd)
}

func addScrapeFlags(cmd *cobra.Command) {
	cmd.Flags().Int("workers", 0, "files parsed in parallel (0 = GOMAXPROCS)")
	cmd.Flags().String("help-base-url", types.DefaultHelpBaseURL, "URL prefix for each API's HelpLink")
	cmd.Flags().Bool("report-duplicates", false, "warn when two files resolve to the same API name")
}

// routeArgs sends "<dir> <output-file>" to the scrape subcommand when
// <dir> is an existing directory whose name cobra would otherwise resolve
// to a subcommand (index, lookup, version).
func routeArgs(args []string) []string {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return args
	}
	sub, _, err := rootCmd.Find(args)
	if err != nil || sub == rootCmd || sub == scrapeCmd {
		return args
	}
	if info, err := os.Stat(args[0]); err != nil || !info.IsDir() {
		return args
	}
	return append([]string{scrapeCmd.Name()}, args...)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scrape-docs")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scrape-docs"))
		}
	}

	viper.SetEnvPrefix("SCRAPE_DOCS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

// exitCode maps the error returned by Execute to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitCancelled
	default:
		return exitFailure
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd.SetArgs(routeArgs(os.Args[1:]))
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "cancelled: no manifest written")
	}
	os.Exit(exitCode(err))
}
