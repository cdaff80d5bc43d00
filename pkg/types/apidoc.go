// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// APIDoc is the documentation record extracted from one markdown file.
// The record is keyed by APIName in a Manifest, so the name itself is
// not serialized.
type APIDoc struct {
	// APIName is the canonical name chosen from the frontmatter api_name list.
	APIName string `json:"-" yaml:"-"`

	// HelpLink is the documentation URL derived from the file's path
	// relative to the content root.
	HelpLink string `json:"HelpLink" yaml:"HelpLink"`

	// Description is the frontmatter description, if any.
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`

	// Parameters maps a "### -param" identifier to its trimmed text.
	Parameters map[string]string `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`

	// Fields maps a "### -field" identifier to its trimmed text.
	Fields map[string]string `json:"Fields,omitempty" yaml:"Fields,omitempty"`

	// ReturnValue is the text under the return header. Nil means no return
	// section was captured; an empty string means the section was empty.
	ReturnValue *string `json:"ReturnValue,omitempty" yaml:"ReturnValue,omitempty"`
}

// Manifest maps API names to their documentation records.
type Manifest map[string]APIDoc

