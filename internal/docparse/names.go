// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docparse

import (
	"regexp"
	"strings"
)

// fileNamePattern matches reference file names of the form
// <prefix>-<header>-<api>, e.g. nf-fileapi-createfilew. The api segment
// is the presumed API name.
var fileNamePattern = regexp.MustCompile(`^\w\w-\w+-([\w\-]+)$`)

// PresumedName returns the API segment of a file base name (without
// extension), or false when the name does not follow the convention.
func PresumedName(baseName string) (string, bool) {
	m := fileNamePattern.FindStringSubmatch(baseName)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ResolveAPIName picks the declared name that corresponds to baseName.
// Declared names are compared case-insensitively after replacing '.' with
// '-', so "Foo.Bar" matches a file segment "foo-bar". The first match is
// returned in its declared casing.
func ResolveAPIName(baseName string, declared []string) (string, bool) {
	presumed, ok := PresumedName(baseName)
	if !ok {
		return "", false
	}
	for _, name := range declared {
		if strings.EqualFold(presumed, strings.ReplaceAll(name, ".", "-")) {
			return name, true
		}
	}
	return "", false
}
