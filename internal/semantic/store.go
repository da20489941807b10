package semantic

import "context"

// Document is a text blob plus a small metadata mapping stored in the
// semantic index. Metadata keys (productId, orderId) are used for filtered
// deletion.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// ScoredDocument is a search hit with its similarity score.
type ScoredDocument struct {
	Document Document
	Score    float64
}

// Store persists documents and supports similarity search plus
// metadata-filtered deletion.
type Store interface {
	// Add inserts documents into the index
	Add(ctx context.Context, docs []Document) error

	// DeleteByMetadata removes every document whose metadata carries the
	// given key/value pair
	DeleteByMetadata(ctx context.Context, key, value string) error

	// Search returns up to topK documents most similar to the query,
	// discarding hits scoring below minScore
	Search(ctx context.Context, query string, topK int, minScore float64) ([]ScoredDocument, error)
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
