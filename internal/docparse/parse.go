// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docparse extracts API documentation records from reference
// markdown files. Each file carries a YAML frontmatter block naming the
// API, followed by "### -param", "### -field" and "## -returns" sections.
package docparse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scrape-docs/pkg/types"
)

// Skip errors. A document that fails with one of these contributes nothing
// to the manifest; the run continues.
var (
	ErrNoFrontmatter        = errors.New("first line is not a frontmatter delimiter")
	ErrMalformedFrontmatter = errors.New("malformed frontmatter")
	ErrNoMatchingName       = errors.New("no declared api_name matches the file name")
)

// IsSkip reports whether err marks a document that should be left out of
// the manifest rather than a failure to read it.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoFrontmatter) ||
		errors.Is(err, ErrMalformedFrontmatter) ||
		errors.Is(err, ErrNoMatchingName)
}

// Parser turns reference markdown files under ContentRoot into APIDoc records.
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	// ContentRoot is the directory HelpLinks are computed relative to.
	ContentRoot string

	// HelpBaseURL prefixes every HelpLink. Empty uses types.DefaultHelpBaseURL.
	HelpBaseURL string
}

// NewParser returns a Parser for the content tree at root.
func NewParser(root, helpBaseURL string) *Parser {
	if helpBaseURL == "" {
		helpBaseURL = types.DefaultHelpBaseURL
	}
	return &Parser{ContentRoot: root, HelpBaseURL: helpBaseURL}
}

// ParseFile reads one markdown file and returns its documentation record.
// The file is closed before ParseFile returns on every path.
func (p *Parser) ParseFile(path string) (*types.APIDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	c := newLineCursor(f)

	fm, err := readFrontmatter(c)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	baseName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	apiName, ok := ResolveAPIName(baseName, fm.APINames)
	if !ok {
		return nil, fmt.Errorf("%s %v: %w", path, fm.APINames, ErrNoMatchingName)
	}

	helpLink, err := p.HelpLink(path)
	if err != nil {
		return nil, err
	}

	body := scanBody(c)
	if err := c.err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := &types.APIDoc{
		APIName:     apiName,
		HelpLink:    helpLink,
		Parameters:  body.parameters,
		Fields:      body.fields,
		ReturnValue: body.returnValue,
	}
	if fm.Description != nil {
		doc.Description = *fm.Description
	}
	return doc, nil
}

// HelpLink returns the documentation URL for a file: its path relative to
// the content root, without extension and with forward slashes, appended
// to the base URL.
func (p *Parser) HelpLink(path string) (string, error) {
	rel, err := filepath.Rel(p.ContentRoot, path)
	if err != nil {
		return "", fmt.Errorf("relating %s to %s: %w", path, p.ContentRoot, err)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	base := p.HelpBaseURL
	if base == "" {
		base = types.DefaultHelpBaseURL
	}
	return base + filepath.ToSlash(rel), nil
}
