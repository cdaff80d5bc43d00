// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scrape-docs/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.IndexConfig{DBPath: filepath.Join(t.TempDir(), "index", "apidocs.db"), MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func testManifest() types.Manifest {
	return types.Manifest{
		"CreateFileW": {
			HelpLink:    "https://docs.microsoft.com/windows/win32/api/fileapi/nf-fileapi-createfilew",
			Description: "Creates or opens a file or I/O device.",
			Parameters: map[string]string{
				"lpFileName":      "The name of the file.",
				"dwDesiredAccess": "The requested access.",
			},
			ReturnValue: strPtr("An open handle."),
		},
		"CreateFileA": {
			HelpLink:    "https://docs.microsoft.com/windows/win32/api/fileapi/nf-fileapi-createfilea",
			Description: "Creates or opens a file or I/O device.",
		},
		"WNDCLASSEXW": {
			HelpLink: "https://docs.microsoft.com/windows/win32/api/winuser/ns-winuser-wndclassexw",
			Fields:   map[string]string{"cbSize": "The size of the structure."},
		},
		"DeleteFile_Ex": {
			HelpLink:    "https://example.test/deletefile_ex",
			Description: "Deletes 100% of a file.",
			ReturnValue: strPtr(""),
		},
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "apidocs.db")
	s, err := Open(types.IndexConfig{DBPath: path})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, 20, s.maxResults)
}

func TestReplaceAndCount(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, testManifest()))
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// A second Replace discards previous rows.
	require.NoError(t, s.Replace(ctx, types.Manifest{"Only": {HelpLink: "x"}}))
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Replace(ctx, testManifest()))

	doc, err := s.Get(ctx, "CreateFileW")
	require.NoError(t, err)
	assert.Equal(t, "CreateFileW", doc.APIName)
	assert.Equal(t, "Creates or opens a file or I/O device.", doc.Description)
	assert.Equal(t, map[string]string{
		"lpFileName":      "The name of the file.",
		"dwDesiredAccess": "The requested access.",
	}, doc.Parameters)
	assert.Nil(t, doc.Fields)
	require.NotNil(t, doc.ReturnValue)
	assert.Equal(t, "An open handle.", *doc.ReturnValue)
}

func TestGetCaseInsensitive(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Replace(ctx, testManifest()))

	doc, err := s.Get(ctx, "wndclassexw")
	require.NoError(t, err)
	assert.Equal(t, "WNDCLASSEXW", doc.APIName)
	assert.Equal(t, map[string]string{"cbSize": "The size of the structure."}, doc.Fields)
	assert.Nil(t, doc.ReturnValue)
}

func TestGetPrefersExactCase(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Replace(ctx, types.Manifest{
		"Foo": {HelpLink: "lower"},
		"FOO": {HelpLink: "upper"},
	}))

	doc, err := s.Get(ctx, "FOO")
	require.NoError(t, err)
	assert.Equal(t, "upper", doc.HelpLink)
}

func TestGetEmptyReturnValue(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Replace(ctx, testManifest()))

	doc, err := s.Get(ctx, "DeleteFile_Ex")
	require.NoError(t, err)
	require.NotNil(t, doc.ReturnValue)
	assert.Equal(t, "", *doc.ReturnValue)
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "Missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Replace(ctx, testManifest()))

	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"prefix on name", "createfile", 0, []string{"CreateFileA", "CreateFileW"}},
		{"description match", "I/O device", 0, []string{"CreateFileA", "CreateFileW"}},
		{"name prefix ranks first", "w", 0, []string{"WNDCLASSEXW", "CreateFileW"}},
		{"limit", "createfile", 1, []string{"CreateFileA"}},
		{"underscore is literal", "e_e", 0, []string{"DeleteFile_Ex"}},
		{"percent is literal", "100%", 0, []string{"DeleteFile_Ex"}},
		{"no match", "xyz123", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Search(ctx, tt.text, tt.limit)
			require.NoError(t, err)
			var names []string
			for _, r := range results {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSearchEmptyText(t *testing.T) {
	s := testStore(t)
	_, err := s.Search(context.Background(), "  ", 0)
	assert.Error(t, err)
}
