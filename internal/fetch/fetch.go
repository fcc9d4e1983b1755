// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads an HTML page and reads CSRF tokens from the whole
// document rather than line by line. Tokens are looked up in hidden inputs
// and in the <meta name="_csrf" content="..."> tags Spring Security renders
// for script use.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/pdiddy/csrf-token/internal/httputil"
	"github.com/pdiddy/csrf-token/pkg/types"
)

var (
	// ErrStatus is returned when the page answers with a non-2xx status.
	ErrStatus = errors.New("unexpected HTTP status")

	// ErrSelector is returned for a CSS selector that does not compile.
	ErrSelector = errors.New("invalid CSS selector")
)

var cssEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// DefaultSelector returns the selector for inputs and meta tags named field.
func DefaultSelector(field string) string {
	f := cssEscaper.Replace(field)
	return fmt.Sprintf(`input[name="%s"], meta[name="%s"]`, f, f)
}

// Fetch GETs url and returns the tokens found in the response body, in
// document order. Finding no token is not an error.
func Fetch(ctx context.Context, client *http.Client, cfg types.FetchConfig, field, url string) ([]string, error) {
	selector := cfg.Selector
	if selector == "" {
		selector = DefaultSelector(field)
	}
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrSelector, selector, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	if cfg.Username != "" && cfg.Password != "" {
		req.SetBasicAuth(cfg.Username, cfg.Password)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d fetching %s", ErrStatus, resp.StatusCode, url)
	}

	return tokens(resp.Body, matcher)
}

// Tokens parses r as HTML and returns the non-empty token of every element
// matching selector. An element's value attribute wins over content.
func Tokens(r io.Reader, selector string) ([]string, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrSelector, selector, err)
	}
	return tokens(r, matcher)
}

func tokens(r io.Reader, matcher goquery.Matcher) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var out []string
	doc.FindMatcher(matcher).Each(func(_ int, s *goquery.Selection) {
		v, ok := s.Attr("value")
		if !ok {
			v = s.AttrOr("content", "")
		}
		if v != "" {
			out = append(out, v)
		}
	})
	return out, nil
}
