package models

// Recommendation tags derived from the overall score.
const (
	RecommendationPublish   = "PUBLISH"
	RecommendationNeedsWork = "NEEDS WORK"
	RecommendationReject    = "REJECT"
)

// Score thresholds for the recommendation tags.
const (
	PublishThreshold   = 9.2
	NeedsWorkThreshold = 9.0
)

// QualityRating holds the six-dimension rubric verdict for one piece of copy.
// Overall is always the arithmetic mean of the six sub-scores; the model's own
// claimed overall is discarded.
type QualityRating struct {
	OverallScore         float64  `json:"overallScore" bson:"overallScore"`
	ClarityScore         float64  `json:"clarityScore" bson:"clarityScore"`
	EmotionalResonance   float64  `json:"emotionalResonance" bson:"emotionalResonance"`
	ConversionPotential  float64  `json:"conversionPotential" bson:"conversionPotential"`
	PlatformOptimization float64  `json:"platformOptimization" bson:"platformOptimization"`
	HookStrength         float64  `json:"hookStrength" bson:"hookStrength"`
	CtaPower             float64  `json:"ctaPower" bson:"ctaPower"`
	Strengths            []string `json:"strengths" bson:"strengths"`
	Weaknesses           []string `json:"weaknesses" bson:"weaknesses"`
	Triggers             []string `json:"psychologicalTriggers" bson:"psychologicalTriggers"`
	Recommendation       string   `json:"recommendation" bson:"recommendation"`

	// Failed marks the sentinel rating returned when the rating call itself
	// broke, as opposed to the model genuinely scoring the copy at zero.
	// It does not change filtering behavior.
	Failed bool `json:"failed,omitempty" bson:"failed,omitempty"`
}

// RecommendationFor maps an overall score onto a recommendation tag.
func RecommendationFor(overall float64) string {
	switch {
	case overall >= PublishThreshold:
		return RecommendationPublish
	case overall >= NeedsWorkThreshold:
		return RecommendationNeedsWork
	default:
		return RecommendationReject
	}
}

// Normalize recomputes the overall score from the six sub-scores and derives
// the recommendation tag, overriding whatever the model reported.
func (r *QualityRating) Normalize() {
	r.OverallScore = (r.ClarityScore + r.EmotionalResonance + r.ConversionPotential +
		r.PlatformOptimization + r.HookStrength + r.CtaPower) / 6
	r.Recommendation = RecommendationFor(r.OverallScore)
}

// FailureRating returns the sentinel rating used when the rating call fails.
// All-zero scores guarantee it never survives any acceptance threshold.
func FailureRating(reason string) QualityRating {
	return QualityRating{
		Strengths:      []string{},
		Weaknesses:     []string{reason},
		Triggers:       []string{},
		Recommendation: RecommendationReject,
		Failed:         true,
	}
}
