package explain

import "github.com/abhisek/examprep/internal/llm"

// Schema is the structured output requested from the model.
var Schema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "Why the correct option of a multiple-choice question is right",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the correct option is right (2-4 sentences)",
			},
			"chosen_mistake": map[string]any{
				"type":        "string",
				"description": "Why the option the learner chose is wrong (1-2 sentences); empty if they did not answer",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One short memory aid or rule of thumb",
			},
		},
		"required":             []any{"explanation", "chosen_mistake", "tip"},
		"additionalProperties": false,
	},
}
