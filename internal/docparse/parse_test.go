// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scrape-docs/pkg/types"
)

// writeFile is a test helper that creates a file (and its parent
// directories) under dir and returns its path.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const createFileDoc = `---
UID: NF:fileapi.CreateFileW
title: CreateFileW function (fileapi.h)
description: Creates or opens a file or I/O device.
api_name:
- CreateFileW
- CreateFile
---

# CreateFileW function

## -description

Creates or opens a file.

## -parameters

### -param lpFileName [in]

The name of the file or device to be created or opened.

### -param dwDesiredAccess [in]

The requested access to the file or device.

## -returns

If the function succeeds, the return value is an open handle.

## -remarks

Remarks are not captured.
`

func TestParseFile(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "fileapi/nf-fileapi-createfilew.md", createFileDoc)

	doc, err := NewParser(root, "").ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "CreateFileW", doc.APIName)
	assert.Equal(t, types.DefaultHelpBaseURL+"fileapi/nf-fileapi-createfilew", doc.HelpLink)
	assert.Equal(t, "Creates or opens a file or I/O device.", doc.Description)
	assert.Equal(t, map[string]string{
		"lpFileName":      "The name of the file or device to be created or opened.",
		"dwDesiredAccess": "The requested access to the file or device.",
	}, doc.Parameters)
	assert.Empty(t, doc.Fields)
	require.NotNil(t, doc.ReturnValue)
	assert.Equal(t, "If the function succeeds, the return value is an open handle.", *doc.ReturnValue)
}

func TestParseFileStruct(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "winuser/ns-winuser-wndclassexw.md", `---
api_name:
- WNDCLASSEXW
---
## -struct-fields

### -field cbSize

The size, in bytes, of this structure.

### -field style

The class styles.
`)

	doc, err := NewParser(root, "https://example.test/api/").ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "WNDCLASSEXW", doc.APIName)
	assert.Equal(t, "https://example.test/api/winuser/ns-winuser-wndclassexw", doc.HelpLink)
	assert.Empty(t, doc.Description)
	assert.Empty(t, doc.Parameters)
	assert.Equal(t, map[string]string{
		"cbSize": "The size, in bytes, of this structure.",
		"style":  "The class styles.",
	}, doc.Fields)
	assert.Nil(t, doc.ReturnValue)
}

func TestParseFileSkips(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "no frontmatter",
			content: "# CreateFileW\n\nNo metadata.\n",
			wantErr: ErrNoFrontmatter,
		},
		{
			name:    "malformed yaml",
			content: "---\napi_name: [CreateFileW\n---\n",
			wantErr: ErrMalformedFrontmatter,
		},
		{
			name:    "no matching name",
			content: "---\napi_name:\n- CreateFileA\n---\n",
			wantErr: ErrNoMatchingName,
		},
		{
			name:    "missing api_name",
			content: "---\ndescription: orphan\n---\n",
			wantErr: ErrNoMatchingName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			path := writeFile(t, root, "fileapi/nf-fileapi-createfilew.md", tt.content)

			doc, err := NewParser(root, "").ParseFile(path)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsSkip(err))
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	root := t.TempDir()
	_, err := NewParser(root, "").ParseFile(filepath.Join(root, "nf-a-b.md"))
	require.Error(t, err)
	assert.False(t, IsSkip(err))
}

func TestHelpLink(t *testing.T) {
	root := filepath.Join("content", "sdk-api-src", "content")
	p := NewParser(root, "https://learn.example/")

	link, err := p.HelpLink(filepath.Join(root, "winbase", "nf-winbase-movefile.md"))
	require.NoError(t, err)
	assert.Equal(t, "https://learn.example/winbase/nf-winbase-movefile", link)
}
