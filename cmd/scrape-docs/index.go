// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scrape-docs/internal/index"
	"github.com/pdiddy/scrape-docs/internal/manifest"
	"github.com/pdiddy/scrape-docs/pkg/types"
)

// --- index subcommand ---

var indexCmd = &cobra.Command{
	Use:   "index <manifest>",
	Short: "Load a manifest into a SQLite lookup database",
	Long: `Index reads a manifest produced by scrape-docs and rebuilds a SQLite
database with one row per API and one row per parameter or field. Any
previous contents of the database are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}

	store, err := index.Open(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Replace(cmd.Context(), m); err != nil {
		return err
	}
	logger.Info().Str("manifest", args[0]).Int("apis", len(m)).Msg("indexed manifest")
	return nil
}

// --- lookup subcommand ---

var lookupCmd = &cobra.Command{
	Use:   "lookup [name]",
	Short: "Look up one API, or search the lookup database",
	Long: `Lookup prints the documentation record for an API name (matched
case-insensitively). With --search it lists APIs whose name or description
contains the given text instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")
	if search == "" && len(args) == 0 {
		return fmt.Errorf("name or --search required")
	}
	cmd.SilenceUsage = true

	store, err := index.Open(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if search != "" {
		limit, _ := cmd.Flags().GetInt("limit")
		results, err := store.Search(cmd.Context(), search, limit)
		if err != nil {
			return err
		}
		return formatSearchOutput(results, jsonOutput)
	}

	doc, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return formatDoc(doc, jsonOutput)
}

func formatDoc(doc *types.APIDoc, jsonOutput bool) error {
	record := types.Manifest{doc.APIName: *doc}
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(record); err != nil {
		return err
	}
	return enc.Close()
}

func formatSearchOutput(results []index.SearchResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %s\n", "Name", "Description")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%-40s  %s\n", r.Name, truncate(r.Description, 58))
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- shared helpers ---

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// indexConfig resolves the lookup database settings for cmd. The --db
// flag of whichever subcommand is running is bound to db_path, so the
// flag, SCRAPE_DOCS_DB_PATH, and the config file all feed the same key.
func indexConfig(cmd *cobra.Command) types.IndexConfig {
	viper.BindPFlag("db_path", cmd.Flags().Lookup("db"))

	dbPath := viper.GetString("db_path")
	if dbPath == "" {
		dbPath = index.DefaultDBPath
	}
	return types.IndexConfig{
		DBPath:     dbPath,
		MaxResults: viper.GetInt("max_results"),
	}
}

func init() {
	indexCmd.Flags().String("db", index.DefaultDBPath, "SQLite database file")

	lookupCmd.Flags().String("db", index.DefaultDBPath, "SQLite database file")
	lookupCmd.Flags().String("search", "", "list APIs whose name or description contains this text")
	lookupCmd.Flags().Int("limit", 0, "maximum search results (0 = max_results)")
	lookupCmd.Flags().Bool("json", false, "output as JSON")

	viper.SetDefault("max_results", 20)

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(lookupCmd)
}
