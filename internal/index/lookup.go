// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/scrape-docs/pkg/types"
)

// ErrNotFound is returned by Get when no API has the requested name.
var ErrNotFound = errors.New("api not found")

// SearchResult is one row of a Search.
type SearchResult struct {
	Name        string `json:"name" yaml:"name"`
	HelpLink    string `json:"help_link" yaml:"help_link"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Get returns the full record for name. An exact match is preferred;
// otherwise the name is matched case-insensitively.
func (s *Store) Get(ctx context.Context, name string) (*types.APIDoc, error) {
	var (
		doc  types.APIDoc
		desc sql.NullString
		ret  sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, help_link, description, return_value FROM apis
		WHERE name = ? COLLATE NOCASE
		ORDER BY name = ? DESC, name
		LIMIT 1`, name, name,
	).Scan(&doc.APIName, &doc.HelpLink, &desc, &ret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("looking up %s: %w", name, err)
	}
	doc.Description = desc.String
	if ret.Valid {
		v := ret.String
		doc.ReturnValue = &v
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, name, text FROM api_items WHERE api_name = ? ORDER BY kind, name`, doc.APIName)
	if err != nil {
		return nil, fmt.Errorf("loading items of %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, item, text string
		if err := rows.Scan(&kind, &item, &text); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		switch kind {
		case kindParam:
			if doc.Parameters == nil {
				doc.Parameters = map[string]string{}
			}
			doc.Parameters[item] = text
		case kindField:
			if doc.Fields == nil {
				doc.Fields = map[string]string{}
			}
			doc.Fields[item] = text
		}
	}
	return &doc, rows.Err()
}

// Search returns APIs whose name or description contains text, names
// matching by prefix first. A limit of zero uses the store default.
func (s *Store) Search(ctx context.Context, text string, limit int) ([]SearchResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("search text is empty")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	pattern := "%" + escapeLike(text) + "%"
	prefix := escapeLike(text) + "%"

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, help_link, coalesce(description, '')
		FROM apis
		WHERE name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'
		ORDER BY (name LIKE ? ESCAPE '\') DESC, length(name), name
		LIMIT ?`,
		pattern, pattern, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Name, &r.HelpLink, &r.Description); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// escapeLike escapes LIKE wildcards so text matches literally.
func escapeLike(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(text)
}
