// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"strings"

	"github.com/praxislabs/praxis/pkg/llm"
	"github.com/praxislabs/praxis/pkg/retrieval"
)

// RunOptions parameterizes a single conversational turn. History and
// retrieval are per-turn decisions, not engine construction decisions.
type RunOptions struct {
	// History holds prior turns, already persisted by the caller's store.
	// They are threaded between the system message and the new user message
	// unmodified.
	History []llm.Message
	// EnableRAG folds retrieved context into the system message for this
	// turn before the first model call. It is not re-queried on subsequent
	// iterations of the same run.
	EnableRAG bool
	// RAGStore names the context store to query when EnableRAG is set.
	RAGStore string
	// TopK is the number of fragments to retrieve. Zero means the default.
	TopK int
}

// DefaultTopK is the retrieval result count used when RunOptions leaves it unset.
const DefaultTopK = 3

// ConversationResult extends Result with retrieval attribution and the
// messages the caller should persist for this turn.
type ConversationResult struct {
	Result

	// RAGUsed reports whether retrieved context was folded into this turn.
	// A retrieval failure degrades to false; the run proceeds without context.
	RAGUsed  bool               `json:"rag_used"`
	RAGStore string             `json:"rag_store,omitempty"`
	Sources  []retrieval.Source `json:"sources,omitempty"`

	// NewMessages is what this turn adds to the persisted history: the user
	// message and the final assistant answer. Intermediate assistant
	// tool-call turns and tool results are deliberately not included, so a
	// saved history never contains an unanswered tool call.
	NewMessages []llm.Message `json:"-"`
}

// ConversationalEngine wraps Engine with history threading and per-turn
// retrieval context injection.
type ConversationalEngine struct {
	engine    *Engine
	retriever retrieval.Provider
}

// NewConversationalEngine creates a conversational engine. The retriever may
// be nil, in which case EnableRAG turns degrade to no-context runs.
func NewConversationalEngine(engine *Engine, retriever retrieval.Provider) (*ConversationalEngine, error) {
	if engine == nil {
		return nil, ErrMissingProvider
	}
	return &ConversationalEngine{engine: engine, retriever: retriever}, nil
}

// Run executes one conversational turn to completion.
func (c *ConversationalEngine) Run(ctx context.Context, userMessage string, opts RunOptions) *ConversationResult {
	res := &ConversationResult{}

	system := c.engine.SystemPrompt()
	if opts.EnableRAG {
		system = c.injectContext(ctx, system, userMessage, opts, res)
	}

	messages := make([]llm.Message, 0, len(opts.History)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	messages = append(messages, opts.History...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})

	res.Result = *c.engine.run(ctx, messages)

	res.NewMessages = []llm.Message{
		{Role: llm.RoleUser, Content: userMessage},
		{Role: llm.RoleAssistant, Content: res.Answer},
	}
	return res
}

// injectContext queries the retriever and folds the assembled context into
// the system message. Failures are logged and the original message returned;
// a broken retrieval backend must not abort the turn.
func (c *ConversationalEngine) injectContext(ctx context.Context, system, query string, opts RunOptions, res *ConversationResult) string {
	if c.retriever == nil {
		c.engine.logger.Warn("retrieval requested but no provider configured", "store", opts.RAGStore)
		return system
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	r, err := c.retriever.Query(ctx, opts.RAGStore, query, topK)
	if err != nil {
		c.engine.logger.Warn("retrieval failed, continuing without context",
			"store", opts.RAGStore, "error", err)
		return system
	}

	res.RAGUsed = true
	res.RAGStore = opts.RAGStore
	res.Sources = r.Sources

	if strings.TrimSpace(r.Context) == "" {
		return system
	}
	return system + "\n\nUse the following context to help answer the user's question. If the context is not relevant, answer from your own knowledge.\n\n" + r.Context
}
