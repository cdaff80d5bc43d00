//go:build mage

// Package main contains Mage build targets for scrape-docs developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "scrape-docs"
	cmdPkg  = "./cmd/scrape-docs"

	// contentDir and manifestFile are the default inputs and outputs of
	// the Scrape and Index targets. Override with SCRAPE_CONTENT / SCRAPE_OUT.
	contentDir   = "content"
	manifestFile = "apidocs.yml"
	databaseFile = "apidocs.db"
)

// Init creates an empty content directory for local scrapes.
func Init() error {
	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", contentDir, err)
	}
	fmt.Println("  ", contentDir)
	fmt.Println("Content directory initialized. Copy or clone reference markdown into it.")
	return nil
}

// Build compiles the CLI binary into bin/, stamping the version from
// `git describe` when available.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := "dev"
	if out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil && out != "" {
		version = strings.TrimSpace(out)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Scrape builds the CLI and scrapes the content directory into the manifest.
func Scrape() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), envOr("SCRAPE_CONTENT", contentDir), envOr("SCRAPE_OUT", manifestFile))
}

// Index loads the manifest produced by Scrape into the SQLite lookup database.
func Index() error {
	mg.Deps(Scrape)
	return sh.RunV(filepath.Join(binDir, binName), "index", envOr("SCRAPE_OUT", manifestFile), "--db", databaseFile)
}

// Stats prints project metrics: Go production and test LOC.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if isTest := strings.HasSuffix(path, "_test.go"); isTest != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}
