package llm

import (
	"encoding/json"

	"github.com/studytrack/tutor/internal/schema"
)

// validateResponse validates raw JSON against s. A nil schema always passes.
// Failures are returned as *ErrInvalidResponse.
func validateResponse(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	def := schema.Definition{Name: "llm-" + s.Name, Document: s.Definition}
	if err := schema.Validate(def, raw); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}
