package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Image prompts longer than this get truncated before the generation call.
const maxImagePromptLen = 1000

// GeminiImage implements ImageService with the Imagen models. Generated
// bytes are written to the uploads directory and referenced by URL path, the
// same way the server serves other static uploads.
type GeminiImage struct {
	client     *genai.Client
	model      string
	uploadsDir string
}

func NewGeminiImage(client *genai.Client, model, uploadsDir string) *GeminiImage {
	return &GeminiImage{client: client, model: model, uploadsDir: uploadsDir}
}

func (g *GeminiImage) Generate(ctx context.Context, prompt, aspectRatio string) (string, error) {
	if g == nil || g.client == nil {
		return "", nil
	}
	if len(prompt) > maxImagePromptLen {
		prompt = prompt[:maxImagePromptLen-3] + "..."
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio,
	})
	if err != nil {
		return "", err
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", nil
	}

	name := fmt.Sprintf("img_%d.png", time.Now().UnixNano())
	path := filepath.Join(g.uploadsDir, name)
	if err := os.WriteFile(path, resp.GeneratedImages[0].Image.ImageBytes, 0o644); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{"file": name, "aspectRatio": aspectRatio}).Info("image generated")
	return "/uploads/" + name, nil
}
