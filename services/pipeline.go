package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"copyforge/models"
)

// ProgressFunc receives stage notifications while a generation runs. Used by
// the streaming endpoint; nil means no reporting.
type ProgressFunc func(stage, detail string)

// Pipeline orchestrates one generation run: history fetch, prompt build, the
// primary completion call, parsing, concurrent rating, threshold filtering,
// and the single shared image. Only the primary completion call may abort the
// run; every other failure degrades.
type Pipeline struct {
	completion CompletionService
	image      ImageService
	history    HistoryStore
	builder    *PromptBuilder
	rater      *Rater
}

func NewPipeline(completion CompletionService, image ImageService, history HistoryStore, builder *PromptBuilder, rater *Rater) *Pipeline {
	return &Pipeline{
		completion: completion,
		image:      image,
		history:    history,
		builder:    builder,
		rater:      rater,
	}
}

// Generate runs the pipeline for one request.
func (p *Pipeline) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	return p.generate(ctx, req, nil)
}

// GenerateWithProgress runs the pipeline, reporting stage transitions.
func (p *Pipeline) GenerateWithProgress(ctx context.Context, req models.GenerationRequest, notify ProgressFunc) (*models.GenerationResult, error) {
	return p.generate(ctx, req, notify)
}

func (p *Pipeline) generate(ctx context.Context, req models.GenerationRequest, notify ProgressFunc) (*models.GenerationResult, error) {
	report := func(stage, detail string) {
		if notify != nil {
			notify(stage, detail)
		}
	}

	spec, err := specFor(req.Channel)
	if err != nil {
		return nil, err
	}
	if p.completion == nil {
		return nil, ErrNotConfigured
	}

	report("building", "assembling prompt")
	examples := p.fetchExamples(ctx, req.Channel)
	pkg, err := p.builder.Build(ctx, req, examples)
	if err != nil {
		return nil, err
	}

	report("generating", "calling model")
	raw, err := p.completion.Generate(ctx, CompletionRequest{
		System:          pkg.System,
		User:            pkg.User,
		MaxOutputTokens: pkg.MaxOutputTokens,
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	switch spec.Shape {
	case shapeObject:
		return p.assembleObject(ctx, req, spec, raw, report)
	default:
		return p.assembleVariations(ctx, req, spec, raw, pkg.StyleContext, report)
	}
}

// fetchExamples pulls up to three top performers for the channel. A missing
// or unconfigured store, or a fetch error, cleanly degrades to no examples;
// the rest of the pipeline behaves identically either way.
func (p *Pipeline) fetchExamples(ctx context.Context, channel models.Channel) []models.HistoricalExample {
	if p.history == nil || !p.history.IsConfigured() {
		return nil
	}
	examples, err := p.history.TopPerforming(ctx, channel, maxHistoricalExamples)
	if err != nil {
		logrus.WithError(err).WithField("channel", channel).Warn("history fetch failed, continuing without examples")
		return nil
	}
	return examples
}

// assembleVariations handles the delimited-variation channels: parse, rate
// concurrently, filter by the channel threshold, then attach one shared image
// to every survivor.
func (p *Pipeline) assembleVariations(ctx context.Context, req models.GenerationRequest, spec channelSpec, raw, styleDesc string, report ProgressFunc) (*models.GenerationResult, error) {
	candidates := ParseVariations(raw)
	report("parsed", fmt.Sprintf("%d candidates", len(candidates)))

	result := &models.GenerationResult{
		Channel:    req.Channel,
		Variations: []models.Candidate{},
	}
	if req.Channel == models.ChannelInstagram {
		result.Hashtags = ParseHashtags(raw)
		if req.ContentType == "story" {
			result.StoryText = ParseStoryText(raw)
		}
	}
	if len(candidates) == 0 {
		// No usable candidates is a valid outcome, not an error.
		logrus.WithField("channel", req.Channel).Warn("no variations parsed from model output")
		return result, nil
	}

	// Rate all candidates concurrently; the output slice keeps parse order
	// regardless of completion order.
	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			candidates[i].Rating = p.rater.Rate(ctx, candidates[i].Content, req.Channel, req.Topic, req.TargetAudience)
		}(i)
	}
	wg.Wait()
	report("rated", fmt.Sprintf("%d candidates", len(candidates)))

	for _, c := range candidates {
		if c.Rating.OverallScore >= spec.Threshold {
			result.Variations = append(result.Variations, c)
		}
	}
	report("filtered", fmt.Sprintf("%d of %d passed %.1f threshold", len(result.Variations), len(candidates), spec.Threshold))

	if spec.Image && len(result.Variations) > 0 {
		if url := p.sharedImage(ctx, result.Variations[0].Content, req.Topic, styleDesc, spec); url != "" {
			for i := range result.Variations {
				result.Variations[i].ImageURL = url
			}
			report("image", url)
		}
	}

	return result, nil
}

// sharedImage runs the two-step image generation: one completion call turns
// the winning copy into a photographic prompt, then one image call renders
// it. All variations share the result to bound cost and latency. Every
// failure here is non-fatal.
func (p *Pipeline) sharedImage(ctx context.Context, content, topic, styleDesc string, spec channelSpec) string {
	if p.image == nil {
		return ""
	}

	prompt, err := p.completion.Generate(ctx, CompletionRequest{
		User:            imageConceptPrompt(content, topic, styleDesc, spec.RatingName),
		MaxOutputTokens: 300,
	})
	if err != nil || strings.TrimSpace(prompt) == "" {
		logrus.WithError(err).Warn("image concept prompt failed, using fallback")
		prompt = fmt.Sprintf("Professional documentary-style photograph representing %s, natural lighting, authentic setting, no text", topic)
	}

	url, err := p.image.Generate(ctx, strings.TrimSpace(prompt), spec.AspectRatio)
	if err != nil {
		logrus.WithError(err).Warn("image generation failed, returning candidates without image")
		return ""
	}
	return url
}

func imageConceptPrompt(content, topic, styleDesc, platform string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this %s post and create a photorealistic image generation prompt.\n\n", platform)
	fmt.Fprintf(&sb, "**Post:**\n%s\n\n**Topic:** %s\n", content, topic)
	if styleDesc != "" {
		fmt.Fprintf(&sb, "\n**Brand Style:** %s\n", styleDesc)
	}
	sb.WriteString(`
**Style Requirements:**
- MUST be photorealistic professional photography, NOT illustration or abstract art
- Real people in authentic settings, shown from behind, side angles, or in groups
- Warm, natural lighting
- Avoid: text in image, cartoon style, logos, cluttered designs

**Output:**
Provide ONLY the image generation prompt (2-3 sentences), no explanations.`)
	return sb.String()
}

// assembleObject handles the single-JSON-object channels. Decode failure
// degrades to an empty object: every field defaults, and the composite copy
// is still rated so the UI always gets a verdict.
func (p *Pipeline) assembleObject(ctx context.Context, req models.GenerationRequest, spec channelSpec, raw string, report ProgressFunc) (*models.GenerationResult, error) {
	result := &models.GenerationResult{Channel: req.Channel}

	switch req.Channel {
	case models.ChannelLandingPage:
		var page models.LandingPageCopy
		if !ExtractJSON(raw, &page) {
			logrus.WithField("channel", req.Channel).Warn("no JSON object in model output, returning empty copy")
		}
		report("parsed", "landing page copy")
		full := strings.Join([]string{page.Headline, page.Subheadline, page.HeroCopy}, "\n\n")
		page.Rating = p.rater.Rate(ctx, full, req.Channel, req.Topic, req.TargetAudience)
		result.LandingPage = &page

	case models.ChannelEmail:
		var email models.EmailCopy
		if !ExtractJSON(raw, &email) {
			logrus.WithField("channel", req.Channel).Warn("no JSON object in model output, returning empty copy")
		}
		report("parsed", "email campaign copy")
		subject := ""
		if len(email.SubjectLines) > 0 {
			subject = email.SubjectLines[0]
		}
		email.Rating = p.rater.Rate(ctx, subject+"\n\n"+email.Body, req.Channel, req.Topic, req.TargetAudience)
		result.Email = &email

	case models.ChannelWebsite:
		var site models.WebsiteCopy
		if !ExtractJSON(raw, &site) {
			logrus.WithField("channel", req.Channel).Warn("no JSON object in model output, returning empty copy")
		}
		report("parsed", "website copy")
		full := site.Headline + "\n\n" + site.Subheadline + "\n\n" + strings.Join(site.BodyCopy, "\n\n")
		site.Rating = p.rater.Rate(ctx, full, req.Channel, req.Topic, req.TargetAudience)
		result.Website = &site
	}

	report("rated", "composite copy")
	return result, nil
}
