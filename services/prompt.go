package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"copyforge/models"
)

// Historical examples injected into a prompt are capped to keep context
// focused on the strongest performers.
const maxHistoricalExamples = 3

// PromptPackage is the model-ready instruction payload for one completion
// call. StyleContext carries the extracted brand-style sentence so the image
// step can reuse it without a second vision call.
type PromptPackage struct {
	System          string
	User            string
	StyleContext    string
	MaxOutputTokens int32
}

// PromptBuilder assembles prompts from a request, optional historical
// high-performers, and channel-specific style rules. Assembly itself is
// deterministic; the only remote work is the optional style-extraction
// sub-step for a supplied reference image.
type PromptBuilder struct {
	completion CompletionService
}

func NewPromptBuilder(completion CompletionService) *PromptBuilder {
	return &PromptBuilder{completion: completion}
}

// Build produces the prompt package for a request. Unrecognized channels are
// a configuration error; style-extraction failure is not (building continues
// with no style context).
func (b *PromptBuilder) Build(ctx context.Context, req models.GenerationRequest, examples []models.HistoricalExample) (PromptPackage, error) {
	spec, err := specFor(req.Channel)
	if err != nil {
		return PromptPackage{}, err
	}

	styleDesc := b.extractStyle(ctx, req)
	return b.assemble(req, examples, styleDesc, spec), nil
}

// extractStyle asks the vision model for a one-sentence description of the
// reference image's palette, style, and mood. Any failure degrades to "".
func (b *PromptBuilder) extractStyle(ctx context.Context, req models.GenerationRequest) string {
	if req.ReferenceImage == nil || b.completion == nil {
		return ""
	}

	prompt := `Analyze this brand logo/image and extract key visual style elements that should influence AI-generated images.

Focus on:
- Color palette (specific colors)
- Visual style (modern, minimalist, gradient, geometric, etc.)
- Mood/tone (professional, vibrant, bold, soft, etc.)

Output ONLY a brief style description (1 sentence) that can be added to an image generation prompt.`

	desc, err := b.completion.Generate(ctx, CompletionRequest{
		User:            prompt,
		Image:           req.ReferenceImage,
		MaxOutputTokens: 150,
	})
	if err != nil {
		logrus.WithError(err).Warn("style extraction failed, continuing without brand style")
		return ""
	}
	return strings.TrimSpace(desc)
}

// assemble is the deterministic part of prompt building: identical request,
// examples, and style description always yield byte-identical text.
func (b *PromptBuilder) assemble(req models.GenerationRequest, examples []models.HistoricalExample, styleDesc string, spec channelSpec) PromptPackage {
	pkg := PromptPackage{
		StyleContext:    styleDesc,
		MaxOutputTokens: spec.MaxTokens,
	}

	switch spec.Channel {
	case models.ChannelLinkedIn:
		pkg.System = linkedInSystemPrompt(req)
		pkg.User = socialUserPrompt(req, examples, styleDesc, spec, "LinkedIn posts",
			"250-400 words, bro-etry formatting (short 1-2 sentence paragraphs), 1-2 emojis max, "+
				"3-5 hashtags at the end, value-first with a soft discussion CTA (never a sales CTA)")
	case models.ChannelInstagram:
		pkg.System = instagramSystemPrompt(req)
		pkg.User = socialUserPrompt(req, examples, styleDesc, spec, "Instagram "+contentTypeOf(req)+" captions",
			instagramRequirements(req))
	case models.ChannelFacebook:
		pkg.System = facebookSystemPrompt(req)
		pkg.User = socialUserPrompt(req, examples, styleDesc, spec, "Facebook "+postTypeOf(req)+" posts",
			"conversational hook in the first 2 lines (shows before \"See more\"), 40-80 word body "+
				"like talking to a friend, 2-3 emojis max, engagement CTA (question, tag request, or this/that choice)")
	case models.ChannelLandingPage:
		pkg.System = landingPageSystemPrompt()
		pkg.User = landingPageUserPrompt(req, examples)
	case models.ChannelEmail:
		pkg.System = emailSystemPrompt()
		pkg.User = emailUserPrompt(req, examples)
	case models.ChannelWebsite:
		pkg.System = websiteSystemPrompt()
		pkg.User = websiteUserPrompt(req, examples)
	}

	return pkg
}

// --- social channels -------------------------------------------------------

func linkedInSystemPrompt(req models.GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString(`You are an ELITE LinkedIn thought leader and storyteller specializing in value-first content.

**Your Standards:**
- MINIMUM quality: 9.2/10 (top 1% of all copywriters)
- VALUE FIRST, selling never
- Build authority through expertise, not promotion
- Every post teaches, inspires, or challenges

**VALUE-FIRST CONTENT FORMULA:**
1. **Hook (First Line):** Insight, surprising fact, or story opening (NOT "Are you struggling with...")
2. **Story/Example:** Real scenario, client story (anonymized), or personal experience
3. **Insight/Lesson:** What you learned, actionable takeaway
4. **Discussion CTA:** Ask their experience, invite perspectives (NOT "Book a call")

**CRITICAL RULES:**
- 250-400 words (substantive, not superficial)
- Lead with value/insight, NEVER with a pitch
- Tell a story with specific details (numbers, quotes, situations)
- 1-2 strategic emojis MAX
- End with 3-5 relevant hashtags
- NO sales language: no "book", "audit", "claim your spot", "limited time"`)

	if block := triggerExplanations(req.Triggers); block != "" {
		sb.WriteString("\n\n**Psychological Trigger Mastery (Applied Subtly):**\n")
		sb.WriteString(block)
	}
	return sb.String()
}

func instagramSystemPrompt(req models.GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString(`You are an ELITE Instagram copywriter with 9.2+/10 quality standards.

**Instagram Mastery:**
- First line = EVERYTHING (shows in feed preview, must hook)
- 125-150 words = sweet spot (engagement drops after 150)
- Emoji strategy: enhance, don't distract (2-4 per caption)
- Line breaks create visual rhythm (no walls of text)
- Hashtags: mix mega/mid/niche, 20-30 total
- CTA: natural ask (comment, save, share, visit bio link)

**Feed vs Reel vs Story:**
- Feed: longer captions (up to 150 words), storytelling
- Reel: shorter captions (50-100 words), punchy
- Story: ultra-short (15-30 words), urgency, link sticker CTA`)

	if block := triggerExplanations(req.Triggers); block != "" {
		sb.WriteString("\n\n**Psychological Triggers to Layer Subtly:**\n")
		sb.WriteString(block)
	}
	return sb.String()
}

func facebookSystemPrompt(req models.GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString(`You are an ELITE Facebook copywriter with 9.2+/10 quality standards.

**Facebook Mastery:**
- Conversational tone WINS (like talking to a friend, not broadcasting)
- 40-80 words = optimal (longer works only for a compelling story)
- First 2 lines = preview (must hook before "See more")
- Questions drive comments (the algorithm loves engagement)

**Organic vs Ad Copy:**
- Organic: community-focused, conversational, engagement-driven
- Ad: benefit-focused, clear CTA, specific offer`)

	if block := triggerExplanations(req.Triggers); block != "" {
		sb.WriteString("\n\n**Psychological Triggers to Layer Subtly:**\n")
		sb.WriteString(block)
	}
	return sb.String()
}

// socialUserPrompt builds the shared delimited-variation request: context
// block, keyword rules, channel requirements, historical examples, and the
// exact output grammar the parser expects.
func socialUserPrompt(req models.GenerationRequest, examples []models.HistoricalExample, styleDesc string, spec channelSpec, what, requirements string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create 3 elite %s (each 9.2+/10 quality).\n\n", what)

	fmt.Fprintf(&sb, "**Topic:** %s\n", req.Topic)
	if req.Description != "" {
		fmt.Fprintf(&sb, "**Story/Context:** %s\n", req.Description)
	}
	fmt.Fprintf(&sb, "**Target Audience:** %s\n", req.TargetAudience)
	fmt.Fprintf(&sb, "**Goal:** %s\n", req.Goal)
	if req.Tone != "" {
		fmt.Fprintf(&sb, "**Tone:** %s\n", req.Tone)
	}
	if len(req.Triggers) > 0 {
		fmt.Fprintf(&sb, "**Psychological Triggers to Layer Subtly:** %s\n", strings.Join(req.Triggers, ", "))
	}
	if styleDesc != "" {
		fmt.Fprintf(&sb, "**Brand Style Context:** %s\n", styleDesc)
	}

	sb.WriteString(keywordBlock(req.Keywords, spec.Hashtags))
	sb.WriteString(examplesBlock(examples))

	fmt.Fprintf(&sb, "\n**Requirements:** %s\n", requirements)

	sb.WriteString(`
**Output Format:**
For each of 3 variations:

VARIATION [#]: [Approach/Angle]

[The post exactly as it would appear]

---
TRIGGERS USED: [comma-separated list]
WHY THIS WORKS: [2-3 sentences]
---

Make each variation use a DIFFERENT story/angle/insight.
Each must be 9.2+/10 quality or don't include it.`)

	if spec.Channel == models.ChannelInstagram {
		sb.WriteString(`

Then separately:

HASHTAG STRATEGY (for all variations):
[20-30 hashtags organized by size: MEGA: ... | MID: ... | NICHE: ...]`)
		if req.ContentType == "story" {
			sb.WriteString("\n\nSTORY TEXT OVERLAYS: [3 options for on-screen text]")
		}
	}

	return sb.String()
}

func instagramRequirements(req models.GenerationRequest) string {
	words := "125-150 words"
	switch req.ContentType {
	case "reel":
		words = "50-100 words"
	case "story":
		words = "15-30 words"
	}
	return "hook under 125 characters (feed preview cutoff), " + words +
		" body with 2-4 strategic emojis and line breaks for rhythm, natural CTA (comment, save, or bio link)"
}

func contentTypeOf(req models.GenerationRequest) string {
	if req.ContentType == "" {
		return "feed"
	}
	return req.ContentType
}

func postTypeOf(req models.GenerationRequest) string {
	if req.PostType == "" {
		return "organic"
	}
	return req.PostType
}

// --- single-object channels ------------------------------------------------

func landingPageSystemPrompt() string {
	return `You are an ELITE landing page copywriter with a 9.2+/10 quality standard.

**Landing Page Psychology:**
- Above-the-fold clarity: 5-second rule
- Headline = Promise (specific benefit, not clever wordplay)
- Subheadline = Proof/Expansion (makes the promise believable)
- Features tell, Benefits sell (always lead with benefits)
- Social proof creates trust (specific stats, not "many customers")
- CTA clarity > creativity

**Conversion Principles:**
- One clear goal per page
- Speak to ONE person
- Specific > Generic
- Believable > Hype`
}

func landingPageUserPrompt(req models.GenerationRequest, examples []models.HistoricalExample) string {
	framework := req.Framework
	if framework == "" {
		framework = "AIDA"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create elite landing page copy using the %s framework.\n\n", framework)
	fmt.Fprintf(&sb, "**Product/Service:** %s\n", req.Topic)
	fmt.Fprintf(&sb, "**Target Audience:** %s\n", req.TargetAudience)
	fmt.Fprintf(&sb, "**Unique Value Proposition:** %s\n", req.UniqueValue)
	sb.WriteString(keywordBlock(req.Keywords, false))
	sb.WriteString(examplesBlock(examples))

	sb.WriteString(`
**Required Sections:**
1. HEADLINE (5-10 words): clear benefit promise
2. SUBHEADLINE (10-15 words): expands the promise with credibility
3. HERO COPY (2-3 sentences): addresses the main pain point, creates urgency
4. 3 KEY FEATURES, each translated to a benefit ("Feature: ... -> Benefit: ...")
5. SOCIAL PROOF (1-2 sentences): specific and believable
6. CTA (3-5 words) plus supporting text

Return as JSON with these exact keys:
{
  "headline": "...",
  "subheadline": "...",
  "heroCopy": "...",
  "features": ["Feature 1: ... -> Benefit: ...", "Feature 2: ...", "Feature 3: ..."],
  "socialProof": "...",
  "cta": "...",
  "ctaSupporting": "..."
}

9.2+/10 quality REQUIRED.`)
	return sb.String()
}

func emailSystemPrompt() string {
	return `You are an ELITE email copywriter with 9.2+/10 quality standards.

**Email Psychology:**
- Subject line = 50% of success (open or delete in 2 seconds)
- Preview text works WITH the subject, not against it
- First sentence confirms the subject line promise
- Body = ONE idea, ONE CTA
- Under 50 characters per subject line (mobile)

**AVOID (Spam Triggers):**
- ALL CAPS, excessive !!!, $$$
- "Free", "Act Now", "Limited Time" (unless genuinely true)
- Generic mass-mail language`
}

func emailUserPrompt(req models.GenerationRequest, examples []models.HistoricalExample) string {
	campaign := req.CampaignType
	if campaign == "" {
		campaign = "nurture"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create an elite %s email campaign.\n\n", campaign)
	fmt.Fprintf(&sb, "**Product/Service:** %s\n", req.Topic)
	fmt.Fprintf(&sb, "**Target Audience:** %s\n", req.TargetAudience)
	fmt.Fprintf(&sb, "**Goal:** %s\n", req.Goal)
	sb.WriteString(keywordBlock(req.Keywords, false))
	sb.WriteString(examplesBlock(examples))

	sb.WriteString(`
**Required Components:**
1. 5 SUBJECT LINE OPTIONS (A/B variations: curiosity, benefit, question, urgency, social proof), each under 50 characters
2. PREVIEW TEXT (40-60 characters) complementing the subject
3. EMAIL BODY (150-250 words): hook, problem, solution, brief social proof, ONE clear CTA, personal sign-off
4. CTA: action verb, specific outcome, low friction

Return as JSON:
{
  "subjectLines": ["option1", "option2", "option3", "option4", "option5"],
  "previewText": "...",
  "body": "...",
  "cta": "..."
}

9.2+/10 quality REQUIRED.`)
	return sb.String()
}

func websiteSystemPrompt() string {
	return `You are an ELITE website copywriter with 9.2+/10 quality standards.

**Website Copy Principles:**
- Clarity > Cleverness (visitors should know what you do in 5 seconds)
- Skim-friendly (headers, bullets, short paragraphs)
- Benefits before features
- Social proof throughout
- Natural keyword integration for SEO`
}

func websiteUserPrompt(req models.GenerationRequest, examples []models.HistoricalExample) string {
	section := req.Section
	if section == "" {
		section = "homepage"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create elite %s page copy (9.2+/10 quality).\n\n", section)
	fmt.Fprintf(&sb, "**Business:** %s\n", req.Topic)
	fmt.Fprintf(&sb, "**Target Audience:** %s\n", req.TargetAudience)
	fmt.Fprintf(&sb, "**Unique Value:** %s\n", req.UniqueValue)
	if req.Tone != "" {
		fmt.Fprintf(&sb, "**Tone:** %s\n", req.Tone)
	}
	fmt.Fprintf(&sb, "**Section:** %s\n", section)
	sb.WriteString(keywordBlock(req.Keywords, false))
	sb.WriteString(examplesBlock(examples))

	sb.WriteString(`
**Requirements:**
1. HEADLINE (5-12 words): clear, benefit-focused value proposition
2. SUBHEADLINE (10-20 words): adds specificity or proof
3. BODY COPY (3-5 scannable paragraphs): benefit-focused, social proof integrated
4. CTA: clear action, specific outcome, low friction

Return as JSON:
{
  "headline": "...",
  "subheadline": "...",
  "bodyCopy": ["paragraph1", "paragraph2", "paragraph3"],
  "cta": "..."
}

9.2+/10 quality REQUIRED.`)
	return sb.String()
}

// --- shared blocks ----------------------------------------------------------

// keywordBlock renders the keyword-integration rules. On hashtag-bearing
// channels the keywords must additionally appear as derived hashtags.
func keywordBlock(keywords string, hashtags bool) string {
	if keywords == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n**KEYWORD INTEGRATION (CRITICAL):**\n")
	fmt.Fprintf(&sb, "- You MUST naturally incorporate these keywords: %s\n", keywords)
	sb.WriteString("- Weave them in organically, DO NOT force them\n")
	if hashtags {
		fmt.Fprintf(&sb, "- MUST also include them as hashtags: %s\n", hashtagsFromKeywords(keywords))
	}
	return sb.String()
}

// hashtagsFromKeywords derives a "#word" list from the comma-delimited
// keyword string, dropping inner whitespace.
func hashtagsFromKeywords(keywords string) string {
	var tags []string
	for _, k := range strings.Split(keywords, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		tags = append(tags, "#"+strings.Join(strings.Fields(k), ""))
	}
	return strings.Join(tags, " ")
}

// examplesBlock formats up to three historical high performers as
// inspirational context, labeled as structure to emulate rather than copy.
// Callers supply examples pre-sorted by descending engagement rate.
func examplesBlock(examples []models.HistoricalExample) string {
	if len(examples) == 0 {
		return ""
	}
	if len(examples) > maxHistoricalExamples {
		examples = examples[:maxHistoricalExamples]
	}

	var sb strings.Builder
	sb.WriteString("\n**HIGH-PERFORMING CONTENT FROM YOUR HISTORY:**\n\n")
	sb.WriteString("These performed exceptionally well with YOUR audience. Study their approach:\n")
	for i, ex := range examples {
		fmt.Fprintf(&sb, "\n---\n**Example %d** (%.2f%% engagement, %s)\n", i+1, ex.EngagementRate, ex.Framework)
		fmt.Fprintf(&sb, "%s\n", ex.Content)
		fmt.Fprintf(&sb, "**Performance:** %d likes, %d comments, %d shares (%d reach)\n",
			ex.Likes, ex.Comments, ex.Shares, ex.Reach)
	}
	sb.WriteString("\n---\n\n**Use these as inspiration for tone, structure, and style. Emulate the structure, never copy verbatim.**\n")
	return sb.String()
}

// triggerExplanations expands trigger identifiers into coaching lines for the
// system prompt. Unknown identifiers are skipped.
func triggerExplanations(triggers []string) string {
	explanations := map[string]string{
		"loss_aversion": "Loss Aversion: People fear loss 2x more than they value gain. Frame as what they'll LOSE by not acting.",
		"social_proof":  "Social Proof: People follow the crowd. Use specific stats, case studies, testimonials.",
		"authority":     "Authority: Establish expertise. Use credentials, years of experience, insider knowledge.",
		"scarcity":      "Scarcity: Limited availability creates urgency. Be specific (\"12 spots left\") not vague (\"limited time\").",
		"reciprocity":   "Reciprocity: Give value first. Share insight, offer help, teach something useful.",
		"consistency":   "Consistency: People want to be consistent with past actions. Reference their previous behavior.",
		"liking":        "Liking: We buy from people we like. Be relatable, share vulnerabilities, show personality.",
		"unity":         "Unity: Create an \"us\" feeling. Shared identity, common enemy, insider language.",
	}

	var lines []string
	for _, t := range triggers {
		if line, ok := explanations[t]; ok {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
