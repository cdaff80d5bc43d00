// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docparse

import (
	"fmt"
	"iter"
	"strings"

	"go.yaml.in/yaml/v3"
)

// frontmatterDelimiter opens and closes the YAML block at the top of a document.
const frontmatterDelimiter = "---"

// frontmatter holds the keys read from a document's YAML block.
type frontmatter struct {
	APINames    []string `yaml:"api_name"`
	Description *string  `yaml:"description"`
}

// splitFrontmatter consumes the opening delimiter and returns a lazy
// sequence of the lines up to the closing delimiter. The closing delimiter
// is consumed but not yielded; afterwards c is positioned on the first
// body line. A first line other than the delimiter yields ErrNoFrontmatter.
func splitFrontmatter(c *lineCursor) (iter.Seq[string], error) {
	first, ok := c.next()
	if !ok || first != frontmatterDelimiter {
		return nil, ErrNoFrontmatter
	}
	return func(yield func(string) bool) {
		for {
			line, ok := c.next()
			if !ok || line == frontmatterDelimiter {
				return
			}
			if !yield(line) {
				return
			}
		}
	}, nil
}

// readFrontmatter drains the frontmatter lines from c and decodes them.
func readFrontmatter(c *lineCursor) (frontmatter, error) {
	lines, err := splitFrontmatter(c)
	if err != nil {
		return frontmatter{}, err
	}
	var b strings.Builder
	for line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return decodeFrontmatter(b.String())
}

// decodeFrontmatter parses the YAML text of a frontmatter block.
func decodeFrontmatter(text string) (frontmatter, error) {
	var fm frontmatter
	if err := yaml.Unmarshal([]byte(text), &fm); err != nil {
		return frontmatter{}, fmt.Errorf("%w: %v", ErrMalformedFrontmatter, err)
	}
	return fm, nil
}
