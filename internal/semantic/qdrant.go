package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// QdrantStore is a minimal REST client to Qdrant. It assumes cosine
// distance and creates the collection on first Add if missing.
type QdrantStore struct {
	url        string
	apiKey     string
	collection string
	embedder   Embedder
	client     *http.Client
	prepared   bool
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewQdrantStore(cfg QdrantConfig, embedder Embedder) *QdrantStore {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &QdrantStore{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		embedder:   embedder,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *QdrantStore) ensureCollection(ctx context.Context, dimension int) error {
	if s.prepared {
		return nil
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 OK if the collection already exists with the same schema
	if err := s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body); err != nil {
		return err
	}
	s.prepared = true
	return nil
}

func (s *QdrantStore) Add(ctx context.Context, docs []Document) error {
	points := make([]map[string]any, len(docs))
	for i := range docs {
		vec, err := s.embedder.Embed(ctx, docs[i].Content)
		if err != nil {
			return errors.Wrap(err, "embed document")
		}
		if err := s.ensureCollection(ctx, len(vec)); err != nil {
			return errors.Wrap(err, "ensure collection")
		}
		payload := map[string]any{"content": docs[i].Content}
		for k, v := range docs[i].Metadata {
			payload[k] = v
		}
		points[i] = map[string]any{
			"id":      docs[i].ID,
			"vector":  vec,
			"payload": payload,
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

func (s *QdrantStore) DeleteByMetadata(ctx context.Context, key, value string) error {
	body := map[string]any{
		"filter": map[string]any{
			"must": []map[string]any{
				{"key": key, "match": map[string]any{"value": value}},
			},
		},
	}
	return s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.url, s.collection), body, nil)
}

func (s *QdrantStore) Search(ctx context.Context, query string, topK int, minScore float64) ([]ScoredDocument, error) {
	if topK <= 0 {
		topK = 5
	}
	qvec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "embed query")
	}
	req := map[string]any{
		"vector":          qvec,
		"limit":           topK,
		"with_payload":    true,
		"score_threshold": minScore,
	}
	var resp struct {
		Result []struct {
			ID      string         `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]ScoredDocument, 0, len(resp.Result))
	for _, r := range resp.Result {
		doc := Document{ID: r.ID, Metadata: map[string]string{}}
		for k, v := range r.Payload {
			sv, ok := v.(string)
			if !ok {
				continue
			}
			if k == "content" {
				doc.Content = sv
			} else {
				doc.Metadata[k] = sv
			}
		}
		results = append(results, ScoredDocument{Document: doc, Score: r.Score})
	}
	return results, nil
}

func (s *QdrantStore) putJSON(ctx context.Context, url string, body any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *QdrantStore) postJSON(ctx context.Context, url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
