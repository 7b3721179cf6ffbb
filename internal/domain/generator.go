package domain

import "context"

// QuizGenerator defines the port to a generative text-completion provider.
// Implementations send a single blocking request and return the provider's
// raw text response; they never retry on their own.
type QuizGenerator interface {
	// Generate asks the provider for count multiple-choice questions at the
	// given difficulty, built from the (already normalized) document text.
	Generate(ctx context.Context, text string, count int, difficulty Difficulty) (string, error)
}
