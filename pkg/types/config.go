// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultHelpBaseURL prefixes the content-relative path of every document
// to form its HelpLink.
const DefaultHelpBaseURL = "https://docs.microsoft.com/windows/win32/api/"

// LogConfig holds logging settings shared by every subcommand.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is console (human readable, default) or json.
	Format string `json:"format" yaml:"format"`
}

// ScrapeConfig holds settings for a scrape run.
type ScrapeConfig struct {
	// ContentRoot is the directory searched recursively for markdown files.
	ContentRoot string `json:"content_root" yaml:"content_root"`

	// OutputPath is the manifest file to write.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// HelpBaseURL prefixes each document's relative path (default DefaultHelpBaseURL).
	HelpBaseURL string `json:"help_base_url" yaml:"help_base_url"`

	// Workers bounds the number of files parsed in parallel. Zero or
	// negative uses GOMAXPROCS.
	Workers int `json:"workers" yaml:"workers"`

	// ReportDuplicates logs every API name collision at warn level instead
	// of debug. The first writer still wins.
	ReportDuplicates bool `json:"report_duplicates" yaml:"report_duplicates"`
}

// IndexConfig holds settings for the SQLite lookup index.
type IndexConfig struct {
	// DBPath is the SQLite database file (default apidocs.db).
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
