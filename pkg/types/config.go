// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultField is the form field name emitted by Spring Security and most
// CSRF middleware.
const DefaultField = "_csrf"

// DefaultMaxLineBytes bounds a single input line. Minified pages often put the
// whole document on one line, so the bufio default (64 KiB) is too small.
const DefaultMaxLineBytes = 16 << 20

// MatchMode selects how a line is searched for the token.
type MatchMode string

const (
	// ModeGreedy reproduces the legacy greedy regular expression exactly.
	ModeGreedy MatchMode = "greedy"

	// ModeScan finds the field marker and reads the value attribute of the
	// enclosing tag.
	ModeScan MatchMode = "scan"

	// ModeHTML tokenizes the line as HTML and compares parsed attributes.
	ModeHTML MatchMode = "html"
)

// OutputFormat selects how extracted tokens are written.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ExtractConfig holds settings for line extraction.
type ExtractConfig struct {
	// Field is the value of the name attribute to look for (default "_csrf").
	Field string `json:"field" yaml:"field"`

	// Mode selects the matcher (default greedy).
	Mode MatchMode `json:"mode" yaml:"mode"`

	// Format selects the output encoding (default text).
	Format OutputFormat `json:"format" yaml:"format"`

	// MaxLineBytes is the longest accepted input line (default 16 MiB).
	MaxLineBytes int `json:"max_line_bytes" yaml:"max_line_bytes"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c ExtractConfig) WithDefaults() ExtractConfig {
	if c.Field == "" {
		c.Field = DefaultField
	}
	if c.Mode == "" {
		c.Mode = ModeGreedy
	}
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.MaxLineBytes <= 0 {
		c.MaxLineBytes = DefaultMaxLineBytes
	}
	return c
}

// HTTPConfig holds shared HTTP settings used when fetching pages.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "csrf-token/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch subcommand.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries is the number of retries on 429 and 503 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// SecretsDir holds optional "username" and "password" files used for
	// HTTP basic auth.
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir"`

	// Selector overrides the CSS selector used to find token elements.
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`

	// Username and Password are filled from SecretsDir by the CLI.
	Username string `json:"-" yaml:"-"`
	Password string `json:"-" yaml:"-"`
}
