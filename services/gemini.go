package services

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"
)

const completionTimeout = 90 * time.Second

// NewGeminiClient creates the shared genai client. The same client backs both
// the completion and the image services.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	config := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		config.APIKey = apiKey
	}
	return genai.NewClient(ctx, config)
}

// GeminiCompletion implements CompletionService on top of the Gemini API.
type GeminiCompletion struct {
	client *genai.Client
	model  string
}

func NewGeminiCompletion(client *genai.Client, model string) *GeminiCompletion {
	return &GeminiCompletion{client: client, model: model}
}

// Generate issues one completion call. A reference image, when present, is
// attached inline ahead of the user text for vision analysis.
func (g *GeminiCompletion) Generate(ctx context.Context, req CompletionRequest) (string, error) {
	if g == nil || g.client == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	parts := []*genai.Part{}
	if req.Image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: req.Image.MimeType, Data: req.Image.Data},
		})
	}
	parts = append(parts, &genai.Part{Text: req.User})

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.MaxOutputTokens > 0 {
		config.MaxOutputTokens = req.MaxOutputTokens
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: parts}}, config)
	if err != nil {
		return "", err
	}
	return cleanModelOutput(resp.Text()), nil
}

// cleanModelOutput strips markdown code fences the model sometimes wraps
// around its answer.
func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
