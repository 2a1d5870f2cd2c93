package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"copyforge/models"
)

// Rater scores one piece of copy against the fixed six-dimension rubric via a
// second model call. Any failure along the way degrades to the sentinel
// failure rating; it never aborts the caller.
type Rater struct {
	completion CompletionService
}

func NewRater(completion CompletionService) *Rater {
	return &Rater{completion: completion}
}

// ratingPayload mirrors the JSON the rubric prompt requests. Sub-scores are
// pointers so that a missing dimension is distinguishable from a zero.
type ratingPayload struct {
	OverallScore         *float64 `json:"overallScore"`
	ClarityScore         *float64 `json:"clarityScore"`
	EmotionalResonance   *float64 `json:"emotionalResonance"`
	ConversionPotential  *float64 `json:"conversionPotential"`
	PlatformOptimization *float64 `json:"platformOptimization"`
	HookStrength         *float64 `json:"hookStrength"`
	CtaPower             *float64 `json:"ctaPower"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	Triggers             []string `json:"psychologicalTriggers"`
	Recommendation       string   `json:"recommendation"`
}

// Rate evaluates content for a channel/topic/audience combination. The
// model's claimed overall score and recommendation are advisory only: the
// overall is recomputed as the mean of the six sub-scores and the tag is
// re-derived from it, so downstream filtering stays consistent under model
// drift.
func (r *Rater) Rate(ctx context.Context, content string, channel models.Channel, topic, audience string) models.QualityRating {
	if r.completion == nil {
		return models.FailureRating("rating service not configured")
	}

	spec, err := specFor(channel)
	if err != nil {
		return models.FailureRating(err.Error())
	}

	raw, err := r.completion.Generate(ctx, CompletionRequest{
		User:            ratingPrompt(content, spec.RatingName, topic, audience),
		MaxOutputTokens: 1500,
	})
	if err != nil {
		logrus.WithError(err).WithField("channel", channel).Warn("rating call failed")
		return models.FailureRating("rating call failed")
	}

	var payload ratingPayload
	if !ExtractJSON(raw, &payload) {
		logrus.WithField("channel", channel).Warn("unparseable rating response")
		return models.FailureRating("unparseable rating response")
	}
	for _, score := range []*float64{
		payload.ClarityScore, payload.EmotionalResonance, payload.ConversionPotential,
		payload.PlatformOptimization, payload.HookStrength, payload.CtaPower,
	} {
		if score == nil {
			return models.FailureRating("rating response missing sub-scores")
		}
	}

	rating := models.QualityRating{
		ClarityScore:         *payload.ClarityScore,
		EmotionalResonance:   *payload.EmotionalResonance,
		ConversionPotential:  *payload.ConversionPotential,
		PlatformOptimization: *payload.PlatformOptimization,
		HookStrength:         *payload.HookStrength,
		CtaPower:             *payload.CtaPower,
		Strengths:            emptyIfNil(payload.Strengths),
		Weaknesses:           emptyIfNil(payload.Weaknesses),
		Triggers:             emptyIfNil(payload.Triggers),
	}
	rating.Normalize()
	return rating
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func ratingPrompt(content, platform, topic, audience string) string {
	var sb strings.Builder
	sb.WriteString("You are a RUTHLESS copy quality evaluator. Your standards are BRUTAL.\n\n")
	sb.WriteString("**Rating Scale:**\n")
	sb.WriteString("- 9.5-10.0: World-class, study this\n")
	sb.WriteString("- 9.2-9.4: Elite, publish immediately\n")
	sb.WriteString("- 9.0-9.1: Strong, minor tweaks\n")
	sb.WriteString("- 8.0-8.9: Good, but not elite (REJECT for this system)\n")
	sb.WriteString("- Below 8.0: Amateur (REJECT)\n\n")
	fmt.Fprintf(&sb, "**Platform:** %s\n**Topic:** %s\n**Audience:** %s\n\n", platform, topic, audience)
	fmt.Fprintf(&sb, "**COPY TO RATE:**\n%s\n\n", content)
	sb.WriteString("**Rate on these dimensions (1-10 each):**\n\n")
	sb.WriteString("1. **Clarity (1-10):** Is the message crystal clear? Can a 12-year-old understand it?\n")
	sb.WriteString("2. **Emotional Resonance (1-10):** Does it create desire, urgency, or curiosity?\n")
	sb.WriteString("3. **Conversion Potential (1-10):** Will this drive the desired action?\n")
	fmt.Fprintf(&sb, "4. **Platform Optimization (1-10):** Native to %s best practices?\n", platform)
	sb.WriteString("5. **Hook Strength (1-10):** Does the opening stop scrolling/compel opening?\n")
	sb.WriteString("6. **CTA Power (1-10):** Clear, compelling, low-friction call-to-action?\n\n")
	sb.WriteString("**Identify:**\n")
	sb.WriteString("- Strengths (2-3 specific things that work)\n")
	sb.WriteString("- Weaknesses (2-3 specific improvements needed)\n")
	sb.WriteString("- Psychological Triggers Used (list them)\n\n")
	sb.WriteString("**Overall Score:** Average of all 6 dimensions\n\n")
	sb.WriteString("**Recommendation:**\n- PUBLISH: 9.2+ overall\n- NEEDS WORK: 9.0-9.1 overall\n- REJECT: Below 9.0\n\n")
	sb.WriteString("**CRITICAL FAILURES (Auto-REJECT):**\n")
	sb.WriteString("- Unclear value proposition\n")
	sb.WriteString("- Generic/could apply to anyone\n")
	sb.WriteString("- Salesy/pushy tone\n")
	sb.WriteString("- Weak/missing CTA\n")
	sb.WriteString("- Cliches (\"game-changer\", \"revolutionary\", \"cutting-edge\")\n")
	sb.WriteString("- No emotional impact\n\n")
	sb.WriteString("Return JSON (no markdown):\n")
	sb.WriteString(`{
  "overallScore": X.X,
  "clarityScore": X,
  "emotionalResonance": X,
  "conversionPotential": X,
  "platformOptimization": X,
  "hookStrength": X,
  "ctaPower": X,
  "strengths": ["...", "...", "..."],
  "weaknesses": ["...", "...", "..."],
  "psychologicalTriggers": ["...", "..."],
  "recommendation": "PUBLISH/NEEDS WORK/REJECT"
}`)
	sb.WriteString("\n\nBe RUTHLESS. This is for a 9.2+ quality system.")
	return sb.String()
}
