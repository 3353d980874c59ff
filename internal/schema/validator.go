// Package schema validates persisted blobs against embedded CUE definitions.
package schema

import (
	"embed"
	"fmt"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Validator checks decoded JSON values against the embedded schemas.
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a Validator with every embedded schema compiled.
func NewValidator() (*Validator, error) {
	v := &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
	if err := v.loadSchemas(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Validator) loadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if err := inst.Err(); err != nil {
			return fmt.Errorf("compile schema %s: %w", entry.Name(), err)
		}
		// history.cue -> history
		v.schemas[entry.Name()[:len(entry.Name())-4]] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas embedded")
	}
	return nil
}

// ValidateHistory checks a decoded evidence history blob.
func (v *Validator) ValidateHistory(data map[string]any) error {
	return v.validate("history", "#History", data)
}

// ValidateEntry checks a single decoded evidence entry.
func (v *Validator) ValidateEntry(data map[string]any) error {
	return v.validate("history", "#Entry", data)
}

func (v *Validator) validate(schemaName, definition string, data map[string]any) error {
	schema, ok := v.schemas[schemaName]
	if !ok {
		return fmt.Errorf("schema %q not loaded", schemaName)
	}

	def := schema.LookupPath(cue.ParsePath(definition))
	if !def.Exists() {
		return fmt.Errorf("definition %s not found in schema %q", definition, schemaName)
	}

	dataValue := v.ctx.Encode(data)
	if err := dataValue.Err(); err != nil {
		return fmt.Errorf("encode data: %w", err)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	// Concreteness catches required fields that are missing.
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
