// Package schema compiles and caches JSON Schemas expressed as Go maps and
// validates raw JSON documents against them.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Definition is a named JSON Schema document.
type Definition struct {
	// Name identifies the schema in the cache and in error messages.
	// Kebab-case, e.g. "score-file".
	Name string

	// Document is the JSON Schema as a map.
	Document map[string]any
}

// cache holds compiled schemas by name.
var cache sync.Map // map[string]*jsonschema.Schema

// Compile returns a cached compiled schema or compiles and caches it.
func Compile(def Definition) (*jsonschema.Schema, error) {
	if cached, ok := cache.Load(def.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	defBytes, err := json.Marshal(def.Document)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", def.Name, err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", def.Name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", def.Name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", def.Name, err)
	}

	cache.Store(def.Name, compiled)
	return compiled, nil
}

// Validate parses raw as JSON and validates it against def.
func Validate(def Definition, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := Compile(def)
	if err != nil {
		return err
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
