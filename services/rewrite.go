package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"copyforge/models"
)

// Rewriter improves one already-rated candidate by addressing its listed
// weaknesses. One revision per invocation; repeated calls on a still-weak
// candidate are allowed but convergence is not assumed.
type Rewriter struct {
	completion CompletionService
	rater      *Rater
}

func NewRewriter(completion CompletionService, rater *Rater) *Rewriter {
	return &Rewriter{completion: completion, rater: rater}
}

// Rewrite returns the candidate with improved content and a fresh rating.
// With an empty weaknesses list there is nothing to fix: the input comes
// back unchanged and no remote call is made. A failed completion call also
// returns the input unchanged (fail-safe); callers detect a no-op by content
// equality.
func (r *Rewriter) Rewrite(ctx context.Context, candidate models.Candidate, channel models.Channel, topic, audience string) models.Candidate {
	if len(candidate.Rating.Weaknesses) == 0 {
		return candidate
	}
	if r.completion == nil {
		return candidate
	}

	spec, err := specFor(channel)
	if err != nil {
		return candidate
	}

	raw, err := r.completion.Generate(ctx, CompletionRequest{
		User:            rewritePrompt(candidate, spec.RatingName, topic, audience),
		MaxOutputTokens: 2000,
	})
	if err != nil || strings.TrimSpace(raw) == "" {
		logrus.WithError(err).WithField("channel", channel).Warn("rewrite call failed, returning original")
		return candidate
	}

	improved := candidate
	improved.Content = strings.TrimSpace(raw)
	improved.Rating = r.rater.Rate(ctx, improved.Content, channel, topic, audience)
	return improved
}

func rewritePrompt(candidate models.Candidate, platform, topic, audience string) string {
	rating := candidate.Rating

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an ELITE copywriting editor. You've been given a piece of %s copy that was rated and has specific weaknesses to fix.\n\n", platform)
	fmt.Fprintf(&sb, "**ORIGINAL COPY:**\n%s\n\n", candidate.Content)
	fmt.Fprintf(&sb, "**CURRENT RATING:** %.1f/10\n\n", rating.OverallScore)

	sb.WriteString("**WEAKNESSES TO FIX:**\n")
	for i, w := range rating.Weaknesses {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, w)
	}
	if len(rating.Strengths) > 0 {
		sb.WriteString("\n**STRENGTHS TO MAINTAIN:**\n")
		for i, s := range rating.Strengths {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, s)
		}
	}

	sb.WriteString("\n**YOUR TASK:**\nRewrite this copy to address EVERY weakness while maintaining the strengths. Your rewrite MUST score 9.2+/10.\n")
	fmt.Fprintf(&sb, `
**CRITICAL:**
- Maintain the same topic: %s
- Maintain the same audience: %s
- Keep what's working, fix what's broken
- The rewrite should feel like a natural evolution, not a completely different post

**OUTPUT:**
Just provide the improved copy, formatted exactly as it should appear on %s. No explanations, no structural delimiters, just the copy.`,
		topic, audience, platform)
	return sb.String()
}
