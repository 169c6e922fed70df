package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // pass-through
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(tipsTestSchema().Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "tips" {
		t.Fatalf("unexpected required: %v", s.Required)
	}
	tips := s.Properties["tips"]
	if tips == nil || tips.Type != genai.TypeArray {
		t.Fatalf("expected ARRAY for tips, got %+v", tips)
	}
	item := tips.Items
	if item == nil || item.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT items, got %+v", item)
	}
	if item.Properties["subject"].Type != genai.TypeString {
		t.Fatalf("expected STRING for subject, got %s", item.Properties["subject"].Type)
	}
	if len(item.Required) != 2 {
		t.Fatalf("expected 2 required item fields, got %d", len(item.Required))
	}
}

func TestGeminiSchema_DecodedEnum(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "string",
		"enum": []any{"mastery", "competent", "novice"},
	})
	if len(s.Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(s.Enum))
	}
}
