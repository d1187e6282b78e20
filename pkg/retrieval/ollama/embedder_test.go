package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/praxislabs/praxis/pkg/errors"
)

func TestEmbedAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Model != "nomic-embed-text" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if len(req.Input) != 2 || req.Input[0] != "alpha" || req.Input[1] != "beta" {
			t.Errorf("unexpected input: %v", req.Input)
		}
		json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float32{
			{0.1, 0.2},
			{0.3, 0.4},
		}})
	}))
	defer srv.Close()

	e := NewEmbedder(srv.URL, "nomic-embed-text")
	vectors, err := e.EmbedAll(context.Background(), []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(vectors) != 2 || vectors[1][0] != 0.3 {
		t.Errorf("unexpected vectors: %v", vectors)
	}
}

func TestEmbedSingle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float32{{0.5, 0.6, 0.7}}})
	}))
	defer srv.Close()

	e := NewEmbedder(srv.URL, "nomic-embed-text")
	vec, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.5 {
		t.Errorf("unexpected vector: %v", vec)
	}
}

func TestEmbedAllEmptyInput(t *testing.T) {
	e := NewEmbedder("http://localhost:0", "nomic-embed-text")
	vectors, err := e.EmbedAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vectors != nil {
		t.Errorf("expected no vectors, got %v", vectors)
	}
}

func TestEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewEmbedder(srv.URL, "missing-model")
	_, err := e.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error on 404")
	}
	if errors.CodeOf(err) != errors.CodeRetrievalError {
		t.Errorf("unexpected error code %s", errors.CodeOf(err))
	}
}

func TestEmbedAllCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float32{{0.1}}})
	}))
	defer srv.Close()

	e := NewEmbedder(srv.URL, "nomic-embed-text")
	if _, err := e.EmbedAll(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("expected error on vector count mismatch")
	}
}
