package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/relations"
)

// Display setting keys accepted next to the relationship fields.
const (
	FieldShowExplanatoryColumn = "show_explanatory_column"
	FieldDimensionality        = "dimensionality"
)

var orderedFields = []string{relations.FieldAbstractMethods, relations.FieldRegularMethods}

// Description is a decoded description file.
type Description struct {
	Options relations.Options
	Diagram diagram.Options

	// Warnings holds configuration problems that were resolved by falling
	// back to a default.
	Warnings []error
}

// ReadDescription reads path as JSON (.json) or TOML (.toml).
func ReadDescription(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "description file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadJSON(f)
	case ".toml":
		return ReadTOML(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported description format %q (use .json or .toml)", ext)
	}
}

// ReadJSON decodes a JSON description from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Description, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON description")
	}

	raw := relations.Raw{Fields: make(map[string]any, len(top)), Order: make(map[string][]string)}
	for k, v := range top {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", k)
		}
		raw.Fields[k] = val
	}
	for _, field := range orderedFields {
		if v, ok := top[field]; ok {
			raw.Order[field] = jsonObjectKeys(v)
		}
	}
	return fromRaw(raw)
}

// jsonObjectKeys returns the keys of a JSON object in document order, or nil
// if data is not an object.
func jsonObjectKeys(data json.RawMessage) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

// ReadTOML decodes a TOML description from r. ReadTOML does not close r.
func ReadTOML(r io.Reader) (*Description, error) {
	fields := make(map[string]any)
	md, err := toml.NewDecoder(r).Decode(&fields)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML description")
	}

	raw := relations.Raw{Fields: fields, Order: make(map[string][]string)}
	for _, key := range md.Keys() {
		if len(key) == 2 && isOrderedField(key[0]) {
			raw.Order[key[0]] = append(raw.Order[key[0]], key[1])
		}
	}
	return fromRaw(raw)
}

func isOrderedField(k string) bool {
	for _, f := range orderedFields {
		if f == k {
			return true
		}
	}
	return false
}

func fromRaw(raw relations.Raw) (*Description, error) {
	desc := &Description{Diagram: diagram.DefaultOptions()}

	if v, ok := raw.Fields[FieldShowExplanatoryColumn]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, errors.Validation(FieldShowExplanatoryColumn, "expected a boolean, got %T", v)
		}
		desc.Diagram.Labels.ShowExplanatoryColumn = b
		delete(raw.Fields, FieldShowExplanatoryColumn)
	}

	if v, ok := raw.Fields[FieldDimensionality]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Validation(FieldDimensionality, "expected \"2d\" or \"3d\", got %T", v)
		}
		dim, err := diagram.ParseDimensionality(s)
		if err != nil {
			desc.Warnings = append(desc.Warnings, err)
		}
		desc.Diagram.Dimensionality = dim
		delete(raw.Fields, FieldDimensionality)
	}

	opts, err := relations.Decode(raw)
	if err != nil {
		return nil, err
	}
	desc.Options = opts
	return desc, nil
}
