package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchema caches the compiled bank file schema.
var compiledSchema struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// LoadFile reads a question bank from a JSON file, validates it against
// the bank schema, and builds a Bank.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bank file %s: %w", path, err)
	}
	return b, nil
}

// Parse validates raw JSON against the bank schema and builds a Bank.
func Parse(data []byte) (*Bank, error) {
	schema, err := getCompiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}

	// The jsonschema library validates a parsed JSON value, not raw bytes.
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	for i := range questions {
		tier, ok := TierFromString(questions[i].Difficulty)
		if !ok {
			return nil, fmt.Errorf("question %q: unknown difficulty %q", questions[i].ID, questions[i].Difficulty)
		}
		questions[i].Tier = tier
	}

	return New(questions)
}

// getCompiledSchema compiles the bank file schema once and caches it.
func getCompiledSchema() (*jsonschema.Schema, error) {
	compiledSchema.once.Do(func() {
		defBytes, err := json.Marshal(fileSchema)
		if err != nil {
			compiledSchema.err = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compiledSchema.err = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://question-bank.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compiledSchema.err = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema.schema, compiledSchema.err = c.Compile(schemaURL)
	})
	return compiledSchema.schema, compiledSchema.err
}
