// Package xstruct turns free-form model replies into schema-conformant JSON:
// a validator, a sanitizer for common reply wrapping, and a bounded-retry
// extractor that drives the gateway.
package xstruct

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var schemaSeq atomic.Uint64

// Schema is a compiled JSON Schema document.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile parses and compiles a JSON Schema (draft 2020-12).
func Compile(definition string) (*Schema, error) {
	if strings.TrimSpace(definition) == "" {
		return nil, errors.New("empty schema definition")
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	url := fmt.Sprintf("mem://normgate/schema/%d.json", schemaSeq.Add(1))
	if err := c.AddResource(url, strings.NewReader(definition)); err != nil {
		return nil, fmt.Errorf("schema load failed: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema compile failed: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// Check decodes candidate as a single JSON value and validates it.
func (s *Schema) Check(candidate string) error {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("candidate is not JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("candidate has trailing content after the JSON value")
	}
	if err := s.compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate reports whether candidate conforms to schema. It never panics;
// any parse or compile failure of either input yields false.
func Validate(candidate, schema string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	s, err := Compile(schema)
	if err != nil {
		return false
	}
	return s.Check(candidate) == nil
}

// compact is used when embedding JSON documents in prompts.
func compact(doc string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(doc)); err != nil {
		return strings.TrimSpace(doc)
	}
	return buf.String()
}
