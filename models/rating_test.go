package models

import (
	"math"
	"testing"
)

func TestRecommendationFor(t *testing.T) {
	cases := []struct {
		overall float64
		want    string
	}{
		{9.5, RecommendationPublish},
		{9.2, RecommendationPublish},
		{9.19, RecommendationNeedsWork},
		{9.0, RecommendationNeedsWork},
		{8.99, RecommendationReject},
		{0, RecommendationReject},
	}

	for _, c := range cases {
		if got := RecommendationFor(c.overall); got != c.want {
			t.Errorf("RecommendationFor(%v) = %q, want %q", c.overall, got, c.want)
		}
	}
}

func TestNormalizeRecomputesOverall(t *testing.T) {
	rating := QualityRating{
		OverallScore:         2.0, // model's claim, must be discarded
		ClarityScore:         10,
		EmotionalResonance:   9,
		ConversionPotential:  9,
		PlatformOptimization: 10,
		HookStrength:         9,
		CtaPower:             9.5,
		Recommendation:       RecommendationReject,
	}
	rating.Normalize()

	want := 56.5 / 6
	if math.Abs(rating.OverallScore-want) > 1e-9 {
		t.Errorf("OverallScore = %v, want %v", rating.OverallScore, want)
	}
	if rating.Recommendation != RecommendationPublish {
		t.Errorf("Recommendation = %q, want %q", rating.Recommendation, RecommendationPublish)
	}
}

func TestFailureRating(t *testing.T) {
	rating := FailureRating("rating call failed")

	if rating.OverallScore != 0 {
		t.Errorf("Expected zero overall score, got %v", rating.OverallScore)
	}
	if !rating.Failed {
		t.Error("Expected Failed to be true")
	}
	if rating.Recommendation != RecommendationReject {
		t.Errorf("Recommendation = %q, want %q", rating.Recommendation, RecommendationReject)
	}
	if len(rating.Weaknesses) != 1 || rating.Weaknesses[0] != "rating call failed" {
		t.Errorf("Weaknesses = %v, want the failure reason", rating.Weaknesses)
	}
	if rating.Strengths == nil || rating.Triggers == nil {
		t.Error("Expected empty, non-nil strengths and triggers")
	}
}
