package bank

// fileSchema is the JSON schema for user-supplied question bank files.
// Kept strict so a malformed bank fails at load time with a clear error
// instead of surfacing mid-interview.
var fileSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"text": map[string]any{
				"type":      "string",
				"minLength": 1,
				"maxLength": 500,
			},
			"type": map[string]any{
				"type": "string",
				"enum": []any{"technical", "behavioral"},
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard"},
			},
			"topic": map[string]any{
				"type": "string",
			},
		},
		"required":             []any{"id", "text", "type", "difficulty", "topic"},
		"additionalProperties": false,
	},
}
