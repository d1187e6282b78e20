package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/praxislabs/praxis/pkg/errors"
)

// Source is one attributable fragment returned alongside assembled context.
type Source struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Score    float32                `json:"score"`
}

// Result is the outcome of one retrieval query.
type Result struct {
	Context string   `json:"context"`
	Sources []Source `json:"sources"`
}

// Provider is the retrieval boundary the conversational engine depends on.
// Implementations must be safe for concurrent callers.
type Provider interface {
	Query(ctx context.Context, store, query string, topK int) (*Result, error)
}

// Document is raw input for ingestion.
type Document struct {
	Name     string
	Text     string
	Metadata map[string]interface{}
}

// Option configures a Service.
type Option func(*Service)

// WithVectorSize sets the collection vector dimensionality.
func WithVectorSize(size uint64) Option {
	return func(s *Service) { s.vectorSize = size }
}

// WithScoreThreshold drops search hits below the given similarity score.
func WithScoreThreshold(threshold float32) Option {
	return func(s *Service) { s.scoreThreshold = threshold }
}

// WithChunking sets chunk size and overlap (in bytes) for ingestion.
func WithChunking(size, overlap int) Option {
	return func(s *Service) {
		s.chunkSize = size
		s.chunkOverlap = overlap
	}
}

// Service implements Provider on top of an Embedder and a VectorStore.
type Service struct {
	embedder       Embedder
	store          VectorStore
	vectorSize     uint64
	scoreThreshold float32
	chunkSize      int
	chunkOverlap   int
	embedBatchSize int
}

// NewService creates a retrieval service.
func NewService(embedder Embedder, store VectorStore, opts ...Option) *Service {
	s := &Service{
		embedder:       embedder,
		store:          store,
		vectorSize:     768,
		chunkSize:      1000,
		chunkOverlap:   200,
		embedBatchSize: 25,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query embeds the query text, searches the named store, and assembles the
// context block plus source fragments.
func (s *Service) Query(ctx context.Context, store, query string, topK int) (*Result, error) {
	if topK <= 0 {
		topK = 3
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, errors.New(errors.CodeRetrievalError, "query embedding failed", err).
			WithContext("store", store)
	}

	hits, err := s.store.Search(ctx, store, vector, topK, s.scoreThreshold)
	if err != nil {
		return nil, errors.New(errors.CodeRetrievalError, "vector search failed", err).
			WithContext("store", store)
	}

	var parts []string
	sources := make([]Source, 0, len(hits))
	for i, hit := range hits {
		content, _ := hit.Payload["content"].(string)
		if content == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[Document %d]\n%s\n", i+1, content))

		meta := make(map[string]interface{}, len(hit.Payload))
		for k, v := range hit.Payload {
			if k != "content" {
				meta[k] = v
			}
		}
		sources = append(sources, Source{Content: content, Metadata: meta, Score: hit.Score})
	}

	return &Result{
		Context: strings.Join(parts, "\n"),
		Sources: sources,
	}, nil
}

// CreateStore creates a named knowledge base collection.
func (s *Service) CreateStore(ctx context.Context, name string) error {
	if err := s.store.CreateCollection(ctx, name, s.vectorSize); err != nil {
		return errors.New(errors.CodeRetrievalError, "collection creation failed", err).
			WithContext("store", name)
	}
	return nil
}

// Ingest chunks a document, embeds the chunks in batches, and upserts them
// into the named store. Returns the number of chunks stored.
func (s *Service) Ingest(ctx context.Context, store string, doc Document) (int, error) {
	chunks := Chunk(doc.Text, s.chunkSize, s.chunkOverlap)
	if len(chunks) == 0 {
		return 0, errors.New(errors.CodeInvalidInput, "document is empty", nil).
			WithContext("document", doc.Name)
	}

	points := make([]Point, 0, len(chunks))
	for start := 0; start < len(chunks); start += s.embedBatchSize {
		end := start + s.embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]
		vectors, err := s.embedBatch(ctx, batch)
		if err != nil {
			return 0, errors.New(errors.CodeRetrievalError, "chunk embedding failed", err).
				WithContext("document", doc.Name).
				WithContext("batch_start", start)
		}
		for i, text := range batch {
			payload := map[string]interface{}{
				"content":  text,
				"document": doc.Name,
				"chunk":    start + i,
			}
			for k, v := range doc.Metadata {
				payload[k] = v
			}
			points = append(points, Point{
				ID:      uuid.NewString(),
				Vector:  vectors[i],
				Payload: payload,
			})
		}
	}

	if err := s.store.Upsert(ctx, store, points); err != nil {
		return 0, errors.New(errors.CodeRetrievalError, "upsert failed", err).
			WithContext("store", store).
			WithContext("chunks", len(points))
	}
	return len(points), nil
}

// embedBatch vectorizes one batch of texts, in one call when the embedder
// supports batching and text by text otherwise.
func (s *Service) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if batcher, ok := s.embedder.(BatchEmbedder); ok {
		vectors, err := batcher.EmbedAll(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
		}
		return vectors, nil
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

var _ Provider = (*Service)(nil)
