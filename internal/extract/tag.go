// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// TagMatcher tokenizes each line as HTML and compares parsed attributes, so
// quoting style, attribute order and character references are handled the
// way a browser would. A tag whose name attribute equals the field yields its
// value attribute, or its content attribute for <meta name="_csrf"> tags.
type TagMatcher struct {
	field string
}

// NewTagMatcher returns a TagMatcher for field.
func NewTagMatcher(field string) *TagMatcher {
	return &TagMatcher{field: field}
}

// Match returns the token of the first matching tag on the line.
func (m *TagMatcher) Match(line string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(line))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return "", false
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		if v, ok := tokenValue(z.Token(), m.field); ok {
			return v, true
		}
	}
}

func tokenValue(t html.Token, field string) (string, bool) {
	var named bool
	var value, content string
	var hasValue, hasContent bool

	for _, a := range t.Attr {
		switch a.Key {
		case "name":
			named = named || a.Val == field
		case "value":
			if !hasValue {
				value, hasValue = a.Val, true
			}
		case "content":
			if !hasContent {
				content, hasContent = a.Val, true
			}
		}
	}

	switch {
	case !named:
		return "", false
	case hasValue:
		return value, true
	case hasContent:
		return content, true
	default:
		return "", false
	}
}
