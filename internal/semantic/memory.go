package semantic

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is a brute-force cosine-similarity store. It is the default
// backend for single-node deployments and the backend used in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	embedder Embedder
	docs     []Document
	vectors  [][]float64
}

func NewMemoryStore(embedder Embedder) *MemoryStore {
	return &MemoryStore{embedder: embedder}
}

func (s *MemoryStore) Add(ctx context.Context, docs []Document) error {
	vectors := make([][]float64, len(docs))
	for i := range docs {
		vec, err := s.embedder.Embed(ctx, docs[i].Content)
		if err != nil {
			return err
		}
		vectors[i] = vec
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *MemoryStore) DeleteByMetadata(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.docs[:0]
	vectors := s.vectors[:0]
	for i, doc := range s.docs {
		if doc.Metadata[key] == value {
			continue
		}
		docs = append(docs, doc)
		vectors = append(vectors, s.vectors[i])
	}
	s.docs = docs
	s.vectors = vectors
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, query string, topK int, minScore float64) ([]ScoredDocument, error) {
	qvec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if topK <= 0 {
		topK = 5
	}

	hits := make([]ScoredDocument, 0, len(s.docs))
	for i := range s.docs {
		score := cosine(s.vectors[i], qvec)
		if score < minScore {
			continue
		}
		hits = append(hits, ScoredDocument{Document: s.docs[i], Score: score})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// Len reports the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
