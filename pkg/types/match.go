// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Match is one extracted token and where it came from.
type Match struct {
	// Line is the 1-based input line number. Zero for tokens found in a
	// fetched document, where lines carry no meaning.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// Token is the extracted value without surrounding quotes.
	Token string `json:"token" yaml:"token"`
}
