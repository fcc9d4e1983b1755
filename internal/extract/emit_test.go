// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/csrf-token/pkg/types"
)

const emitInput = `<title>Sign in</title>
<input name="_csrf" value="XYZ">
<p>filler</p>
<input name="_csrf" value="a&amp;b<c">
`

var emitWant = []types.Match{
	{Line: 2, Token: "XYZ"},
	{Line: 4, Token: "a&amp;b<c"},
}

func runFormat(t *testing.T, format types.OutputFormat) string {
	t.Helper()
	var out bytes.Buffer
	e, err := NewEmitter(format, &out)
	require.NoError(t, err)

	_, err = Run(context.Background(), strings.NewReader(emitInput), NewGreedyMatcher(types.DefaultField), e, 0)
	require.NoError(t, err)
	return out.String()
}

func TestEmitter_Text(t *testing.T) {
	assert.Equal(t, "XYZ\na&amp;b<c\n", runFormat(t, types.FormatText))
}

func TestEmitter_JSON(t *testing.T) {
	out := runFormat(t, types.FormatJSON)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"line":2,"token":"XYZ"}`, lines[0])
	// HTML characters are written as-is, not as \u003c escapes.
	assert.Equal(t, `{"line":4,"token":"a&amp;b<c"}`, lines[1])

	var got types.Match
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &got))
	assert.Equal(t, emitWant[1], got)
}

func TestEmitter_YAML(t *testing.T) {
	out := runFormat(t, types.FormatYAML)

	dec := yaml.NewDecoder(strings.NewReader(out))
	var got []types.Match
	for {
		var m types.Match
		err := dec.Decode(&m)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, m)
	}
	assert.Equal(t, emitWant, got)
	assert.Contains(t, out, "---")
}

func TestNewEmitter_UnknownFormat(t *testing.T) {
	_, err := NewEmitter("xml", io.Discard)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEmitter_BuffersUntilClose(t *testing.T) {
	var out bytes.Buffer
	e, err := NewEmitter(types.FormatText, &out)
	require.NoError(t, err)

	require.NoError(t, e.Emit(types.Match{Line: 1, Token: "tok"}))
	assert.Empty(t, out.String())

	require.NoError(t, e.Close())
	assert.Equal(t, "tok\n", out.String())
}
