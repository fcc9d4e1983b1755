// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "regexp"

// GreedyMatcher applies one greedy regular expression per line:
//
//	^.*<.*name="FIELD".*value="(.*)">
//
// Every wildcard is greedy, so on a line holding several tags the last
// value=" wins and the capture runs to the last `">` on the line. A value
// closed by `"/>` only matches if a later `">` follows. Go's regexp picks
// the same submatch a backtracking engine would, so these captures are
// exactly those of the shell-pipeline extractors this tool replaces.
type GreedyMatcher struct {
	re *regexp.Regexp
}

// NewGreedyMatcher compiles the pattern for field. field is quoted, so any
// string is safe.
func NewGreedyMatcher(field string) *GreedyMatcher {
	pattern := `^.*<.*name="` + regexp.QuoteMeta(field) + `".*value="(.*)">`
	return &GreedyMatcher{re: regexp.MustCompile(pattern)}
}

// Match returns the captured value.
func (g *GreedyMatcher) Match(line string) (string, bool) {
	m := g.re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
