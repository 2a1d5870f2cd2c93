package services

import (
	"context"

	"copyforge/models"
)

// CompletionRequest is one text (or vision+text) completion call.
type CompletionRequest struct {
	System          string
	User            string
	Image           *models.ReferenceImage
	MaxOutputTokens int32
}

// CompletionService abstracts the text-generation model provider. An error
// return means the call failed; an empty string with a nil error means the
// model answered with no usable content.
type CompletionService interface {
	Generate(ctx context.Context, req CompletionRequest) (string, error)
}

// ImageService abstracts the image-generation provider. A ("", nil) return
// means no image is available (unconfigured or empty response); absence of an
// image never aborts a generation request.
type ImageService interface {
	Generate(ctx context.Context, prompt, aspectRatio string) (string, error)
}

// HistoryStore is the read side of the persistence collaborator used by the
// pipeline. The full store (save, performance, insights) lives in the db
// package; the pipeline only ever fetches prompt context.
type HistoryStore interface {
	IsConfigured() bool
	TopPerforming(ctx context.Context, channel models.Channel, limit int) ([]models.HistoricalExample, error)
}
