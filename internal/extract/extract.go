// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls CSRF tokens out of HTML text, one input line at a
// time. A Matcher decides whether a line carries a token; Run drives a
// Matcher over a stream and hands every hit to an Emitter.
package extract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/csrf-token/pkg/types"
)

var (
	// ErrUnknownMode is returned by NewMatcher for an unsupported mode.
	ErrUnknownMode = errors.New("unknown match mode")

	// ErrEmptyField is returned by NewMatcher when no field name is given.
	ErrEmptyField = errors.New("field name must not be empty")
)

// Matcher reports the token carried by a single line, if any. A line that
// does not match is not an error.
type Matcher interface {
	Match(line string) (string, bool)
}

// NewMatcher returns the Matcher for mode, looking for tags whose name
// attribute equals field.
func NewMatcher(mode types.MatchMode, field string) (Matcher, error) {
	if field == "" {
		return nil, ErrEmptyField
	}
	switch mode {
	case types.ModeGreedy, "":
		return NewGreedyMatcher(field), nil
	case types.ModeScan:
		return NewScanMatcher(field), nil
	case types.ModeHTML:
		return NewTagMatcher(field), nil
	default:
		return nil, fmt.Errorf("%w %q (want greedy, scan, or html)", ErrUnknownMode, mode)
	}
}

// Summary holds counts from one extraction run.
type Summary struct {
	Lines   int
	Matched int
}

// Run reads r line by line until EOF, applies m to every line and emits each
// token in input order. The emitter is closed on every return path. Lines
// longer than maxLineBytes fail with bufio.ErrTooLong; maxLineBytes <= 0
// uses types.DefaultMaxLineBytes.
func Run(ctx context.Context, r io.Reader, m Matcher, e Emitter, maxLineBytes int) (summary Summary, err error) {
	defer func() {
		if cerr := e.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("flushing output: %w", cerr)
		}
	}()

	if maxLineBytes <= 0 {
		maxLineBytes = types.DefaultMaxLineBytes
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(4096, maxLineBytes)), maxLineBytes)

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.Lines++
		token, ok := m.Match(sc.Text())
		if !ok {
			continue
		}
		summary.Matched++

		if err := e.Emit(types.Match{Line: summary.Lines, Token: token}); err != nil {
			return summary, fmt.Errorf("writing token from line %d: %w", summary.Lines, err)
		}
	}
	if err := sc.Err(); err != nil {
		return summary, fmt.Errorf("reading input after line %d: %w", summary.Lines, err)
	}

	return summary, nil
}
