package llm

// Purpose labels recorded with every translation request.
const (
	PurposeTranslate      = "translate"
	PurposeTranslateBatch = "translate-batch"
)

// TranslationSchema is the response schema for a single translation.
var TranslationSchema = &Schema{
	Name:        "translation",
	Description: "A faithful translation of the input text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"translation": map[string]any{
				"type":        "string",
				"description": "The translated text, with nothing added or omitted",
			},
		},
		"required":             []any{"translation"},
		"additionalProperties": false,
	},
}

// BatchTranslationSchema is the response schema for a batch of texts.
var BatchTranslationSchema = &Schema{
	Name:        "translation-batch",
	Description: "Faithful translations of the input texts, in input order",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"translations": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "One translation per input text, same order",
			},
		},
		"required":             []any{"translations"},
		"additionalProperties": false,
	},
}
