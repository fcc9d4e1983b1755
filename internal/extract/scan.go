// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "strings"

// ScanMatcher finds the literal marker name="FIELD" and reads the value
// attribute of the tag that contains it. Unlike GreedyMatcher it never
// reaches into a neighbouring tag, and attribute order does not matter.
type ScanMatcher struct {
	marker string
}

// NewScanMatcher returns a ScanMatcher for field.
func NewScanMatcher(field string) *ScanMatcher {
	return &ScanMatcher{marker: `name="` + field + `"`}
}

// Match returns the value of the first tag on the line that carries the
// marker and a double-quoted value attribute.
func (s *ScanMatcher) Match(line string) (string, bool) {
	from := 0
	for {
		i := strings.Index(line[from:], s.marker)
		if i < 0 {
			return "", false
		}
		i += from
		from = i + len(s.marker)

		// data-name="_csrf" is not the name attribute.
		if i > 0 && !isAttrSpace(line[i-1]) {
			continue
		}
		start := strings.LastIndexByte(line[:i], '<')
		if start < 0 {
			continue
		}
		if v, ok := valueAttr(line[start:tagEnd(line, i)]); ok {
			return v, true
		}
	}
}

// tagEnd returns the index of the first '>' at or after i that is outside a
// double-quoted attribute value, or len(line) when the tag runs off the line.
func tagEnd(line string, i int) int {
	quoted := false
	for ; i < len(line); i++ {
		switch line[i] {
		case '"':
			quoted = !quoted
		case '>':
			if !quoted {
				return i
			}
		}
	}
	return len(line)
}

// valueAttr returns the contents of the first value="..." attribute in tag.
func valueAttr(tag string) (string, bool) {
	const key = `value="`
	from := 0
	for {
		i := strings.Index(tag[from:], key)
		if i < 0 {
			return "", false
		}
		i += from
		from = i + len(key)

		if i == 0 || !isAttrSpace(tag[i-1]) {
			continue
		}
		end := strings.IndexByte(tag[from:], '"')
		if end < 0 {
			return "", false
		}
		return tag[from : from+end], true
	}
}

func isAttrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
