package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"copyforge/models"
)

func linkedInRequest() models.GenerationRequest {
	return models.GenerationRequest{
		Channel:        models.ChannelLinkedIn,
		Topic:          "customer interviews",
		TargetAudience: "early-stage founders",
		Goal:           "authority",
		Tone:           "direct",
		Triggers:       []string{"authority", "social_proof"},
	}
}

func TestBuildDeterministic(t *testing.T) {
	builder := NewPromptBuilder(nil)
	req := linkedInRequest()
	examples := []models.HistoricalExample{
		{Content: "old winner", Framework: "Story", Likes: 40, Comments: 10, Shares: 5, Reach: 1000, EngagementRate: 5.5},
	}

	first, err := builder.Build(context.Background(), req, examples)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := builder.Build(context.Background(), req, examples)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if first.System != second.System || first.User != second.User {
		t.Error("Identical inputs must produce byte-identical prompts")
	}
}

func TestBuildUnknownChannel(t *testing.T) {
	builder := NewPromptBuilder(nil)
	req := linkedInRequest()
	req.Channel = models.Channel("tiktok")

	_, err := builder.Build(context.Background(), req, nil)
	var unknown *UnknownChannelError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownChannelError, got %v", err)
	}
}

func TestBuildKeywordHashtags(t *testing.T) {
	builder := NewPromptBuilder(nil)
	req := linkedInRequest()
	req.Keywords = "growth marketing, b2b"

	pkg, err := builder.Build(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.Contains(pkg.User, "growth marketing, b2b") {
		t.Error("User prompt missing keyword list")
	}
	if !strings.Contains(pkg.User, "#growthmarketing #b2b") {
		t.Error("User prompt missing derived hashtags")
	}
}

func TestBuildExamplesCapped(t *testing.T) {
	builder := NewPromptBuilder(nil)
	examples := make([]models.HistoricalExample, 5)
	for i := range examples {
		examples[i] = models.HistoricalExample{Content: "winner", Framework: "Story", Reach: 100}
	}

	pkg, err := builder.Build(context.Background(), linkedInRequest(), examples)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := strings.Count(pkg.User, "**Example "); got != 3 {
		t.Errorf("Expected 3 examples in prompt, found %d", got)
	}
}

func TestBuildWithoutHistory(t *testing.T) {
	builder := NewPromptBuilder(nil)

	pkg, err := builder.Build(context.Background(), linkedInRequest(), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if strings.Contains(pkg.User, "HIGH-PERFORMING CONTENT") {
		t.Error("History section must be absent with no examples")
	}
}

func TestBuildTriggerExplanations(t *testing.T) {
	builder := NewPromptBuilder(nil)

	pkg, err := builder.Build(context.Background(), linkedInRequest(), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.Contains(pkg.System, "Authority: Establish expertise") {
		t.Error("System prompt missing trigger explanation for authority")
	}
	if !strings.Contains(pkg.System, "Social Proof:") {
		t.Error("System prompt missing trigger explanation for social_proof")
	}
}

func TestBuildInstagramStoryOverlays(t *testing.T) {
	builder := NewPromptBuilder(nil)
	req := linkedInRequest()
	req.Channel = models.ChannelInstagram
	req.ContentType = "story"

	pkg, err := builder.Build(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.Contains(pkg.User, "STORY TEXT OVERLAYS") {
		t.Error("Story requests must ask for overlay options")
	}
	if !strings.Contains(pkg.User, "HASHTAG STRATEGY") {
		t.Error("Instagram requests must ask for a hashtag strategy")
	}
}

func TestBuildStyleExtraction(t *testing.T) {
	completion := &fakeCompletion{fn: func(req CompletionRequest) (string, error) {
		if req.Image == nil {
			t.Error("Style extraction call must carry the reference image")
		}
		return "Deep blue palette, minimalist, professional mood.", nil
	}}
	builder := NewPromptBuilder(completion)
	req := linkedInRequest()
	req.ReferenceImage = &models.ReferenceImage{Data: []byte{0x89, 0x50}, MimeType: "image/png"}

	pkg, err := builder.Build(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if pkg.StyleContext != "Deep blue palette, minimalist, professional mood." {
		t.Errorf("StyleContext = %q", pkg.StyleContext)
	}
	if !strings.Contains(pkg.User, "Brand Style Context") {
		t.Error("User prompt missing brand style section")
	}
}

func TestBuildStyleExtractionFailureDegrades(t *testing.T) {
	completion := &fakeCompletion{fn: func(req CompletionRequest) (string, error) {
		return "", errors.New("vision unavailable")
	}}
	builder := NewPromptBuilder(completion)
	req := linkedInRequest()
	req.ReferenceImage = &models.ReferenceImage{Data: []byte{1}, MimeType: "image/png"}

	pkg, err := builder.Build(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Style failure must not fail the build: %v", err)
	}
	if pkg.StyleContext != "" {
		t.Errorf("StyleContext = %q, want empty", pkg.StyleContext)
	}
}

func TestBuildObjectChannels(t *testing.T) {
	builder := NewPromptBuilder(nil)

	cases := []struct {
		channel models.Channel
		marker  string
	}{
		{models.ChannelLandingPage, `"heroCopy"`},
		{models.ChannelEmail, `"subjectLines"`},
		{models.ChannelWebsite, `"bodyCopy"`},
	}
	for _, c := range cases {
		req := linkedInRequest()
		req.Channel = c.channel
		pkg, err := builder.Build(context.Background(), req, nil)
		if err != nil {
			t.Fatalf("Build(%s) failed: %v", c.channel, err)
		}
		if !strings.Contains(pkg.User, c.marker) {
			t.Errorf("%s prompt missing JSON key %s", c.channel, c.marker)
		}
		if pkg.MaxOutputTokens != 3000 {
			t.Errorf("%s MaxOutputTokens = %d, want 3000", c.channel, pkg.MaxOutputTokens)
		}
	}
}
