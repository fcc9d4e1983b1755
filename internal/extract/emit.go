// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/csrf-token/pkg/types"
)

// ErrUnknownFormat is returned by NewEmitter for an unsupported format.
var ErrUnknownFormat = errors.New("unknown output format")

// Emitter writes extracted tokens. Output is buffered until Close.
type Emitter interface {
	Emit(m types.Match) error
	Close() error
}

// NewEmitter returns an Emitter writing format to w. Closing the emitter
// flushes it but does not close w.
func NewEmitter(format types.OutputFormat, w io.Writer) (Emitter, error) {
	bw := bufio.NewWriter(w)
	switch format {
	case types.FormatText, "":
		return &textEmitter{w: bw}, nil
	case types.FormatJSON:
		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false)
		return &jsonEmitter{w: bw, enc: enc}, nil
	case types.FormatYAML:
		return &yamlEmitter{w: bw, enc: yaml.NewEncoder(bw)}, nil
	default:
		return nil, fmt.Errorf("%w %q (want text, json, or yaml)", ErrUnknownFormat, format)
	}
}

// textEmitter writes one bare token per line.
type textEmitter struct {
	w *bufio.Writer
}

func (e *textEmitter) Emit(m types.Match) error {
	if _, err := e.w.WriteString(m.Token); err != nil {
		return err
	}
	return e.w.WriteByte('\n')
}

func (e *textEmitter) Close() error {
	return e.w.Flush()
}

// jsonEmitter writes one JSON object per line.
type jsonEmitter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func (e *jsonEmitter) Emit(m types.Match) error {
	return e.enc.Encode(m)
}

func (e *jsonEmitter) Close() error {
	return e.w.Flush()
}

// yamlEmitter writes one YAML document per token.
type yamlEmitter struct {
	w   *bufio.Writer
	enc *yaml.Encoder
}

func (e *yamlEmitter) Emit(m types.Match) error {
	return e.enc.Encode(m)
}

func (e *yamlEmitter) Close() error {
	if err := e.enc.Close(); err != nil {
		return err
	}
	return e.w.Flush()
}
