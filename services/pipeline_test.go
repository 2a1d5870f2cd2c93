package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"copyforge/models"
)

const pipelineVariations = `VARIATION 1: Angle A

Alpha insight for founders.

---
TRIGGERS USED: authority
---

VARIATION 2: Angle B

Beta insight for founders.

---
TRIGGERS USED: social_proof
---

VARIATION 3: Angle C

Gamma insight for founders.

---
`

// scriptedCompletion answers the main call with output, rating calls with a
// per-content score, and the image concept call with a fixed prompt.
func scriptedCompletion(output string, ratings map[string]float64) *fakeCompletion {
	return &fakeCompletion{fn: func(req CompletionRequest) (string, error) {
		switch {
		case strings.Contains(req.User, "RUTHLESS copy quality evaluator"):
			for key, score := range ratings {
				if strings.Contains(req.User, key) {
					return ratingJSON(score), nil
				}
			}
			return "", errors.New("no scripted rating for this content")
		case strings.Contains(req.User, "image generation prompt"):
			return "Warm photo of two founders reviewing notes in a sunlit office.", nil
		default:
			return output, nil
		}
	}}
}

func newTestPipeline(completion CompletionService, image ImageService) *Pipeline {
	return NewPipeline(completion, image, nil, NewPromptBuilder(completion), NewRater(completion))
}

func TestPipelineFiltersAndSharesImage(t *testing.T) {
	completion := scriptedCompletion(pipelineVariations, map[string]float64{
		"Alpha": 9.5,
		"Beta":  8.9,
		"Gamma": 9.3,
	})
	image := &fakeImage{url: "/uploads/img_1.png"}
	pipeline := newTestPipeline(completion, image)

	result, err := pipeline.Generate(context.Background(), models.GenerationRequest{
		Channel:        models.ChannelInstagram,
		Topic:          "customer interviews",
		TargetAudience: "founders",
		Goal:           "engagement",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(result.Variations) != 2 {
		t.Fatalf("Expected 2 survivors of the 9.2 threshold, got %d", len(result.Variations))
	}
	if !strings.Contains(result.Variations[0].Content, "Alpha") {
		t.Errorf("First survivor = %q, want Alpha (parse order preserved)", result.Variations[0].Content)
	}
	if !strings.Contains(result.Variations[1].Content, "Gamma") {
		t.Errorf("Second survivor = %q, want Gamma", result.Variations[1].Content)
	}

	if image.callCount() != 1 {
		t.Errorf("Expected exactly one image call, got %d", image.callCount())
	}
	for i, v := range result.Variations {
		if v.ImageURL != "/uploads/img_1.png" {
			t.Errorf("Variation %d ImageURL = %q, want the shared image", i, v.ImageURL)
		}
	}
}

func TestPipelineLowerThresholdChannels(t *testing.T) {
	completion := scriptedCompletion(pipelineVariations, map[string]float64{
		"Alpha": 8.5,
		"Beta":  7.9,
		"Gamma": 8.0,
	})
	pipeline := newTestPipeline(completion, &fakeImage{url: "/uploads/img_2.png"})

	result, err := pipeline.Generate(context.Background(), models.GenerationRequest{
		Channel:        models.ChannelLinkedIn,
		Topic:          "t",
		TargetAudience: "a",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Variations) != 2 {
		t.Fatalf("Expected 2 survivors of the 8.0 threshold, got %d", len(result.Variations))
	}
}

func TestPipelineEmptyParseIsValid(t *testing.T) {
	completion := scriptedCompletion("The model produced prose with no structure.", nil)
	image := &fakeImage{url: "/uploads/never.png"}
	pipeline := newTestPipeline(completion, image)

	result, err := pipeline.Generate(context.Background(), models.GenerationRequest{
		Channel:        models.ChannelLinkedIn,
		Topic:          "t",
		TargetAudience: "a",
	})
	if err != nil {
		t.Fatalf("Empty output must not be an error: %v", err)
	}
	if len(result.Variations) != 0 {
		t.Errorf("Expected 0 variations, got %d", len(result.Variations))
	}
	if image.callCount() != 0 {
		t.Error("No image call should happen without survivors")
	}
}

func TestPipelineMainCallFailureAborts(t *testing.T) {
	completion := &fakeCompletion{fn: func(req CompletionRequest) (string, error) {
		return "", errors.New("model overloaded")
	}}
	pipeline := newTestPipeline(completion, nil)

	_, err := pipeline.Generate(context.Background(), models.GenerationRequest{
		Channel:        models.ChannelLinkedIn,
		Topic:          "t",
		TargetAudience: "a",
	})
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected GenerationError, got %v", err)
	}
}

func TestPipelineUnknownChannel(t *testing.T) {
	pipeline := newTestPipeline(scriptedCompletion("", nil), nil)

	_, err := pipeline.Generate(context.Background(), models.GenerationRequest{Channel: "myspace"})
	var unknown *UnknownChannelError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownChannelError, got %v", err)
	}
}

func TestPipelineNoCompletionService(t *testing.T) {
	pipeline := NewPipeline(nil, nil, nil, NewPromptBuilder(nil), NewRater(nil))

	_, err := pipeline.Generate(context.Background(), models.GenerationRequest{Channel: models.ChannelLinkedIn})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestPipelineRatingFailureFiltersCandidate(t *testing.T) {
	// No scripted rating for Beta: its rating call fails and the sentinel
	// zero score keeps it below every threshold.
	completion := scriptedCompletion(pipelineVariations, map[string]float64{
		"Alpha": 8.5,
		"Gamma": 8.1,
	})
	pipeline := newTestPipeline(completion, nil)

	result, err := pipeline.Generate(context.Background(), models.GenerationRequest{
		Channel:        models.ChannelLinkedIn,
		Topic:          "t",
		TargetAudience: "a",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Variations) != 2 {
		t.Fatalf("Expected the failed-rating candidate filtered out, got %d survivors", len(result.Variations))
	}
	for _, v := range result.Variations {
		if strings.Contains(v.Content, "Beta") {
			t.Error("Beta should have been filtered by its sentinel rating")
		}
	}
}

func TestPipelineImageFailureNonFatal(t *testing.T) {
	completion := scriptedCompletion(pipelineVariations, map[string]float64{
		"Alpha": 9.5, "Beta": 9.5, "Gamma": 9.5,
	})
	image := &fakeImage{err: errors.New("imagen down")}
	pipeline := newTestPipeline(completion, image)

	result, err := pipeline.Generate(context.Background(), models.GenerationRequest{
		Channel:        models.ChannelInstagram,
		Topic:          "t",
		TargetAudience: "a",
	})
	if err != nil {
		t.Fatalf("Image failure must not fail the run: %v", err)
	}
	if len(result.Variations) != 3 {
		t.Fatalf("Expected 3 survivors, got %d", len(result.Variations))
	}
	for _, v := range result.Variations {
		if v.ImageURL != "" {
			t.Errorf("Expected no image URL, got %q", v.ImageURL)
		}
	}
}

func TestPipelineLandingPageObject(t *testing.T) {
	raw := `Here you go:
{"headline": "Launch in days, not months", "subheadline": "Built for small teams",
"heroCopy": "Stop wrestling with infrastructure.",
"features": ["Feature 1: X -> Benefit: Y"], "socialProof": "412 teams shipped last quarter",
"cta": "Start free", "ctaSupporting": "No credit card needed"}`

	completion := scriptedCompletion(raw, map[string]float64{"Launch in days": 9.0})
	pipeline := newTestPipeline(completion, nil)

	result, err := pipeline.Generate(context.Background(), models.GenerationRequest{
		Channel:        models.ChannelLandingPage,
		Topic:          "deploy tool",
		TargetAudience: "small teams",
		UniqueValue:    "zero config",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.LandingPage == nil {
		t.Fatal("Expected landing page copy")
	}
	if result.LandingPage.Headline != "Launch in days, not months" {
		t.Errorf("Headline = %q", result.LandingPage.Headline)
	}
	if math.Abs(result.LandingPage.Rating.OverallScore-9.0) > 1e-9 {
		t.Errorf("Rating = %v, want 9.0", result.LandingPage.Rating.OverallScore)
	}
}

func TestPipelineObjectDecodeFailureDegrades(t *testing.T) {
	completion := scriptedCompletion("not json at all", map[string]float64{"": 0})
	pipeline := newTestPipeline(completion, nil)

	result, err := pipeline.Generate(context.Background(), models.GenerationRequest{
		Channel:        models.ChannelEmail,
		Topic:          "t",
		TargetAudience: "a",
	})
	if err != nil {
		t.Fatalf("Decode failure must degrade, not error: %v", err)
	}
	if result.Email == nil {
		t.Fatal("Expected an email result with defaulted fields")
	}
	if result.Email.Body != "" || len(result.Email.SubjectLines) != 0 {
		t.Error("Expected zero-valued fields after decode failure")
	}
}

func TestPipelineInstagramAuxiliaries(t *testing.T) {
	raw := pipelineVariations + `
HASHTAG STRATEGY (for all variations):
#fitness #health #wellness

STORY TEXT OVERLAYS: ['Tap to learn more', 'Last day', 'New drop']`

	completion := scriptedCompletion(raw, map[string]float64{
		"Alpha": 9.5, "Beta": 9.5, "Gamma": 9.5,
	})
	pipeline := newTestPipeline(completion, &fakeImage{url: "/uploads/x.png"})

	result, err := pipeline.Generate(context.Background(), models.GenerationRequest{
		Channel:        models.ChannelInstagram,
		Topic:          "t",
		TargetAudience: "a",
		ContentType:    "story",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Hashtags) != 3 {
		t.Errorf("Hashtags = %v, want 3", result.Hashtags)
	}
	if result.StoryText != "Tap to learn more" {
		t.Errorf("StoryText = %q", result.StoryText)
	}
}

func TestPipelineProgressReporting(t *testing.T) {
	completion := scriptedCompletion(pipelineVariations, map[string]float64{
		"Alpha": 9.5, "Beta": 9.5, "Gamma": 9.5,
	})
	pipeline := newTestPipeline(completion, &fakeImage{url: "/uploads/p.png"})

	var stages []string
	_, err := pipeline.GenerateWithProgress(context.Background(), models.GenerationRequest{
		Channel:        models.ChannelInstagram,
		Topic:          "t",
		TargetAudience: "a",
	}, func(stage, detail string) {
		stages = append(stages, stage)
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	joined := strings.Join(stages, ",")
	for _, want := range []string{"building", "generating", "parsed", "rated", "filtered", "image"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Missing progress stage %q in %v", want, stages)
		}
	}
}
