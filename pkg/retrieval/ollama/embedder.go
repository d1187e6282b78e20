// Package ollama implements retrieval.Embedder on the Ollama embed API.
package ollama

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/praxislabs/praxis/pkg/errors"
	"github.com/praxislabs/praxis/pkg/retrieval"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultBaseURL = "http://localhost:11434"
	embedPath      = "/api/embed"
)

// Embedder vectorizes text through an Ollama embedding model. It speaks the
// batch embed endpoint, so ingestion sends one request per chunk batch
// instead of one per chunk.
type Embedder struct {
	baseURL string
	model   string
	client  *http.Client
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Embedder) { e.client = client }
}

// NewEmbedder creates an Embedder for the given Ollama endpoint and model.
func NewEmbedder(baseURL, model string, opts ...Option) *Embedder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	e := &Embedder{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed converts a single text into a vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedAll(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedAll converts a batch of texts into vectors in one round trip. The
// result has one vector per input text, in input order.
func (e *Embedder) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(embedRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, errors.New(errors.CodeRetrievalError, "failed to marshal embed request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+embedPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.New(errors.CodeRetrievalError, "failed to build embed request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, errors.New(errors.CodeRetrievalError, "ollama embed call failed", err).
			WithContext("model", e.model)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.New(errors.CodeRetrievalError, "ollama embed returned an error", nil).
			WithContext("status", resp.StatusCode).
			WithContext("detail", string(detail))
	}

	var embResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, errors.New(errors.CodeRetrievalError, "failed to decode embed response", err)
	}
	if len(embResp.Embeddings) != len(texts) {
		return nil, errors.New(errors.CodeRetrievalError, "embed response count mismatch", nil).
			WithContext("want", len(texts)).
			WithContext("got", len(embResp.Embeddings))
	}
	return embResp.Embeddings, nil
}

var (
	_ retrieval.Embedder      = (*Embedder)(nil)
	_ retrieval.BatchEmbedder = (*Embedder)(nil)
)
