// Package coach turns standing recommendations into concrete study tips
// using an LLM, falling back to the canned tier text.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/llm"
)

const systemPrompt = `You are a study coach for a student preparing for exams.

Rules:
- For every subject listed, give exactly one concrete next study step.
- Base the step on the subject's score band: mastery means move to harder or applied work, competent means consolidate core concepts, novice means rebuild the basics.
- Each step is one or two plain sentences, specific to the subject, with no preamble.
- Use the subject names exactly as given.`

// tipsSchema is the structured response expected from the model.
var tipsSchema = &llm.Schema{
	Name:        "study-tips",
	Description: "One concrete next study step per subject",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tips": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"subject": map[string]any{"type": "string", "description": "Subject name exactly as given"},
						"tip":     map[string]any{"type": "string", "minLength": 1, "description": "The next study step"},
					},
					"required":             []any{"subject", "tip"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"tips"},
		"additionalProperties": false,
	},
}

// Tip is the study advice for one subject.
type Tip struct {
	Subject string
	Tier    advice.Tier
	Text    string

	// AI is true when the text came from the model rather than the
	// canned tier recommendation.
	AI bool
}

// Coach produces study tips. The zero value and a Coach without a provider
// return canned tips.
type Coach struct {
	provider  llm.Provider
	timeout   time.Duration
	maxTokens int
	log       *zap.Logger
}

// Option configures a Coach.
type Option func(*Coach)

// WithTimeout bounds a single Advise call.
func WithTimeout(d time.Duration) Option {
	return func(c *Coach) { c.timeout = d }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coach) { c.log = l }
}

// New creates a Coach. p may be nil.
func New(p llm.Provider, opts ...Option) *Coach {
	c := &Coach{
		provider:  p,
		timeout:   30 * time.Second,
		maxTokens: 1024,
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Enabled reports whether an LLM provider is configured.
func (c *Coach) Enabled() bool {
	return c != nil && c.provider != nil
}

// Advise returns one tip per recommendation, in the same order. Subjects
// the model skipped, and every subject when the model is unavailable, get
// the canned recommendation text.
func (c *Coach) Advise(ctx context.Context, recs []advice.Recommendation) []Tip {
	tips := Canned(recs)
	if !c.Enabled() || len(recs) == 0 {
		return tips
	}

	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, llm.PurposeCoach), c.timeout)
	defer cancel()

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMessage(recs)}},
		Schema:      tipsSchema,
		MaxTokens:   c.maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		c.log.Warn("coach request failed, using canned advice", zap.Error(err))
		return tips
	}

	generated, err := parseTips(resp.Content)
	if err != nil {
		c.log.Warn("coach response unusable, using canned advice", zap.Error(err))
		return tips
	}

	for i := range tips {
		if text, ok := generated[strings.ToLower(tips[i].Subject)]; ok {
			tips[i].Text = text
			tips[i].AI = true
		}
	}
	return tips
}

// Canned returns the tier recommendation for every subject.
func Canned(recs []advice.Recommendation) []Tip {
	tips := make([]Tip, len(recs))
	for i, r := range recs {
		tips[i] = Tip{Subject: r.Subject, Tier: r.Tier, Text: r.Text}
	}
	return tips
}

func userMessage(recs []advice.Recommendation) string {
	var b strings.Builder
	b.WriteString("Subjects:\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "- %s: score %d/100 after %d attempt(s), band %s\n",
			r.Subject, r.Score, r.Attempts, r.Tier)
	}
	return b.String()
}

// parseTips decodes the model output keyed by lower-cased subject.
func parseTips(raw json.RawMessage) (map[string]string, error) {
	var out struct {
		Tips []struct {
			Subject string `json:"subject"`
			Tip     string `json:"tip"`
		} `json:"tips"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode tips: %w", err)
	}

	byName := make(map[string]string, len(out.Tips))
	for _, t := range out.Tips {
		text := strings.TrimSpace(t.Tip)
		if text == "" {
			continue
		}
		byName[strings.ToLower(strings.TrimSpace(t.Subject))] = text
	}
	return byName, nil
}
