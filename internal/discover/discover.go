// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover finds reference markdown files in a content tree.
package discover

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
)

// referenceFilePattern matches <2 chars>-<segment>-<remainder>.md,
// e.g. nf-fileapi-createfilew.md.
var referenceFilePattern = regexp.MustCompile(`(?i)^\w\w-\w+-[\w\-]+\.md$`)

// IsReferenceFile reports whether a base name follows the reference
// file naming convention.
func IsReferenceFile(name string) bool {
	return referenceFilePattern.MatchString(name)
}

// Files walks root recursively and returns the sorted paths of all
// reference markdown files. The walk stops early when ctx is cancelled.
func Files(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsReferenceFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
