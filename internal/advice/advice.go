// Package advice maps subject scores to feedback tiers and the text shown
// after a quiz and in the recommendations view.
package advice

import "github.com/studytrack/tutor/internal/scores"

// Tier is a feedback band derived from a 0-100 score.
type Tier string

const (
	Mastery   Tier = "mastery"
	Competent Tier = "competent"
	Novice    Tier = "novice"
)

// Score thresholds. A score above MasteryAbove is mastery; a score of at
// least CompetentFrom is competent.
const (
	MasteryAbove  = 80
	CompetentFrom = 50
)

// TierFor returns the tier for a score. The same boundaries apply to a
// single attempt and to a stored running score.
func TierFor(score int) Tier {
	switch {
	case score > MasteryAbove:
		return Mastery
	case score >= CompetentFrom:
		return Competent
	default:
		return Novice
	}
}

// Label returns a short display name.
func (t Tier) Label() string {
	switch t {
	case Mastery:
		return "Mastery"
	case Competent:
		return "Competent"
	default:
		return "Novice"
	}
}

// Feedback is the message shown right after a quiz.
func (t Tier) Feedback() string {
	switch t {
	case Mastery:
		return "Excellent! You're ready for harder topics."
	case Competent:
		return "Good effort! Revise and retry for better results."
	default:
		return "Needs improvement. Review study material and retry."
	}
}

// Recommendation is the standing study advice for a subject in this tier.
func (t Tier) Recommendation() string {
	switch t {
	case Mastery:
		return "Advance to complex topics or practical applications."
	case Competent:
		return "Revise core concepts and practice medium-level exercises."
	default:
		return "Revisit basics and go through easier study material."
	}
}

// Recommendation is the advice for one subject.
type Recommendation struct {
	Subject  string
	Score    int
	Attempts int
	Tier     Tier
	Text     string
}

// Recommend builds one recommendation per subject in sc. Subjects listed in
// order come first, the rest follow sorted by name.
func Recommend(sc scores.Scores, order []string) []Recommendation {
	names := sc.Ordered(order)
	out := make([]Recommendation, 0, len(names))
	for _, name := range names {
		rec := sc[name]
		tier := TierFor(rec.Score)
		out = append(out, Recommendation{
			Subject:  name,
			Score:    rec.Score,
			Attempts: rec.Attempts,
			Tier:     tier,
			Text:     tier.Recommendation(),
		})
	}
	return out
}
