package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/praxislabs/praxis/pkg/retrieval"
)

type stubProvider struct {
	result *retrieval.Result
	err    error
	store  string
	topK   int
}

func (s *stubProvider) Query(_ context.Context, store, _ string, topK int) (*retrieval.Result, error) {
	s.store, s.topK = store, topK
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestKnowledgeBaseSearch(t *testing.T) {
	provider := &stubProvider{result: &retrieval.Result{
		Sources: []retrieval.Source{
			{Content: "doc one", Score: 0.8},
			{Content: "doc two", Score: 0.6},
		},
	}}

	res := run(t, NewKnowledgeBaseSearch(provider), map[string]any{
		"kb_name": "handbook",
		"query":   "vacation policy",
	})
	mustSucceed(t, res)

	if provider.store != "handbook" || provider.topK != 3 {
		t.Errorf("provider called with store=%q topK=%d", provider.store, provider.topK)
	}
	docs := res.Output.([]map[string]any)
	if len(docs) != 2 || docs[0]["content"] != "doc one" {
		t.Errorf("unexpected documents: %+v", docs)
	}
}

func TestKnowledgeBaseSearchFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("backend down")}
	res := run(t, NewKnowledgeBaseSearch(provider), map[string]any{
		"kb_name": "kb", "query": "q",
	})
	if res.Success {
		t.Error("expected failure when provider errors")
	}

	res = run(t, NewKnowledgeBaseSearch(nil), map[string]any{
		"kb_name": "kb", "query": "q",
	})
	if res.Success {
		t.Error("expected failure when provider is nil")
	}
}
