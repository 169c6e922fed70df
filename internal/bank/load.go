package bank

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/studytrack/tutor/internal/schema"
)

// fileSchema describes a custom question bank file.
var fileSchema = schema.Definition{
	Name: "question-bank",
	Document: map[string]any{
		"type":     "object",
		"required": []string{"subjects"},
		"properties": map[string]any{
			"subjects": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []string{"name", "questions"},
					"properties": map[string]any{
						"name": map[string]any{"type": "string", "minLength": 1},
						"questions": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type":     "object",
								"required": []string{"type", "question", "answer"},
								"properties": map[string]any{
									"type":     map[string]any{"type": "string", "enum": []string{"mcq", "text"}},
									"question": map[string]any{"type": "string", "minLength": 1},
									"answer":   map[string]any{"type": "string", "minLength": 1},
									"options": map[string]any{
										"type":  "array",
										"items": map[string]any{"type": "string"},
									},
								},
							},
						},
					},
				},
			},
		},
	},
}

type fileQuestion struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer"`
}

type fileSubject struct {
	Name      string         `json:"name"`
	Questions []fileQuestion `json:"questions"`
}

type fileBank struct {
	Subjects []fileSubject `json:"subjects"`
}

// Load reads a custom question bank from a JSON file.
func Load(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a question bank document.
func Parse(raw []byte) (*Bank, error) {
	if err := schema.Validate(fileSchema, raw); err != nil {
		return nil, fmt.Errorf("question bank: %w", err)
	}

	var doc fileBank
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}

	subjects := make([]Subject, 0, len(doc.Subjects))
	for _, fs := range doc.Subjects {
		s := Subject{Name: fs.Name}
		for i, fq := range fs.Questions {
			switch Kind(fq.Type) {
			case KindMultipleChoice:
				s.Questions = append(s.Questions, MultipleChoice(fq.Question, fq.Answer, fq.Options...))
			default:
				if len(fq.Options) > 0 {
					return nil, fmt.Errorf("question bank: subject %q question %d: free-text question carries options", fs.Name, i+1)
				}
				s.Questions = append(s.Questions, FreeText(fq.Question, fq.Answer))
			}
		}
		subjects = append(subjects, s)
	}

	return New(subjects)
}
