package services

import (
	"context"
	"fmt"
	"sync"
)

// fakeCompletion routes each call through a scripted function. Rating calls
// run concurrently, so the function must be safe for parallel use.
type fakeCompletion struct {
	mu    sync.Mutex
	calls int
	fn    func(req CompletionRequest) (string, error)
}

func (f *fakeCompletion) Generate(ctx context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.fn(req)
}

func (f *fakeCompletion) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeImage struct {
	mu    sync.Mutex
	calls int
	url   string
	err   error
}

func (f *fakeImage) Generate(ctx context.Context, prompt, aspectRatio string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.url, f.err
}

func (f *fakeImage) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// ratingJSON builds a rubric response whose six sub-scores all equal score.
func ratingJSON(score float64) string {
	return fmt.Sprintf(`{"overallScore": 1.0, "clarityScore": %[1]v, "emotionalResonance": %[1]v, `+
		`"conversionPotential": %[1]v, "platformOptimization": %[1]v, "hookStrength": %[1]v, "ctaPower": %[1]v, `+
		`"strengths": ["strong hook"], "weaknesses": ["weak cta"], "psychologicalTriggers": ["authority"], `+
		`"recommendation": "REJECT"}`, score)
}
