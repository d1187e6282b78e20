package tools

import (
	"context"

	"github.com/praxislabs/praxis/pkg/retrieval"
	"github.com/praxislabs/praxis/pkg/tool"
)

// NewKnowledgeBaseSearch returns the knowledge-base search tool over the
// given retrieval provider.
func NewKnowledgeBaseSearch(provider retrieval.Provider) tool.Tool {
	return tool.New(tool.Descriptor{
		Name:        "knowledge_base_search",
		Description: "Searches a named knowledge base for relevant documents. Use it to look up previously ingested documents and internal material.",
		Category:    tool.CategorySearch,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"kb_name": {
				Type:        "string",
				Description: "Name of the knowledge base",
			},
			"query": {
				Type:        "string",
				Description: "The search query",
			},
			"top_k": {
				Type:        "integer",
				Description: "Maximum number of results",
				Default:     3,
			},
		}, "kb_name", "query"),
	}, func(ctx context.Context, args map[string]any) tool.Result {
		if provider == nil {
			return tool.Fail("retrieval is not configured")
		}

		kb := strArg(args, "kb_name", "")
		query := strArg(args, "query", "")
		topK := intArg(args, "top_k", 3)

		res, err := provider.Query(ctx, kb, query, topK)
		if err != nil {
			return tool.Fail("knowledge base search failed: %v", err)
		}

		docs := make([]map[string]any, 0, len(res.Sources))
		for _, s := range res.Sources {
			docs = append(docs, map[string]any{
				"content":  s.Content,
				"metadata": s.Metadata,
				"score":    s.Score,
			})
		}
		return tool.OkMeta(docs, map[string]any{
			"kb_name": kb,
			"query":   query,
			"count":   len(docs),
		})
	})
}
