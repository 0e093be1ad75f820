package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Judge is an external large-language-model service that scores candidate
// policies for relevance. Implementations must be thread-safe for concurrent
// use. The judge is a black box: callers must never trust the shape or the
// claimed ordering of its output.
type Judge interface {
	// Complete sends a prompt to the judge and returns its raw text response.
	// Sampling temperature is part of the implementation's configuration and
	// defaults to zero so repeated calls on identical input are expected to
	// be stable. The caller bounds the call through ctx.
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and Judge
// instances, ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Judge returns the relevance judge service.
	// The returned Judge is safe for concurrent use.
	Judge() Judge

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
