package cases

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaName = "cases.schema.json"

var (
	caseSchema  *jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// compileSchema compiles the embedded case schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		data, err := fixtures.ReadFile("fixtures/" + schemaName)
		if err != nil {
			compileErr = fmt.Errorf("read case schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal case schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, doc); err != nil {
			compileErr = fmt.Errorf("add case schema resource: %w", err)
			return
		}

		caseSchema, err = compiler.Compile(schemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile case schema: %w", err)
		}
	})

	return compileErr
}

// validateDocument checks a decoded fixture against the case schema. The
// value is round-tripped through JSON so YAML scalars take JSON types.
func validateDocument(v any) error {
	if err := compileSchema(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode fixture: %w", err)
	}

	if err := caseSchema.Validate(doc); err != nil {
		return fmt.Errorf("fixture validation failed: %w", err)
	}
	return nil
}
