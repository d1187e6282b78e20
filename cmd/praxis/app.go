// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/praxislabs/praxis/pkg/agent"
	"github.com/praxislabs/praxis/pkg/config"
	"github.com/praxislabs/praxis/pkg/llm"
	"github.com/praxislabs/praxis/pkg/memory"
	"github.com/praxislabs/praxis/pkg/retrieval"
	"github.com/praxislabs/praxis/pkg/retrieval/ollama"
	"github.com/praxislabs/praxis/pkg/retrieval/qdrant"
	"github.com/praxislabs/praxis/pkg/telemetry"
	"github.com/praxislabs/praxis/pkg/tool"
	"github.com/praxislabs/praxis/pkg/tools"
	"github.com/praxislabs/praxis/providers/openai"
)

type app struct {
	global    globalFlags
	cfg       *config.Config
	logger    *slog.Logger
	shutdown  telemetry.ShutdownFunc
	metrics   *telemetry.RunMetrics
	provider  llm.Provider
	retriever *retrieval.Service
	registry  *tool.Registry
}

func newApp(ctx context.Context, global globalFlags) (*app, error) {
	cfg, err := config.Load(global.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger := telemetry.NewLogger(os.Stderr, telemetry.LoggerOptions{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})
	slog.SetDefault(logger)

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:  "praxis",
		Version:      version,
		Exporter:     cfg.Telemetry.Exporter,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure: cfg.Telemetry.OTLPInsecure,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry init failed: %w", err)
	}

	metrics, err := telemetry.NewRunMetrics()
	if err != nil {
		return nil, fmt.Errorf("metrics init failed: %w", err)
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		global:   global,
		cfg:      cfg,
		logger:   logger,
		shutdown: shutdown,
		metrics:  metrics,
		provider: provider,
	}
	a.retriever = buildRetriever(cfg)
	a.registry, err = a.buildRegistry()
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) Close(ctx context.Context) {
	if a.shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("telemetry shutdown failed", "error", err)
	}
}

func buildProvider(cfg *config.Config) (llm.Provider, error) {
	switch cfg.LLM.Provider {
	case "openai":
		opts := []openai.Option{openai.WithModel(cfg.LLM.Model)}
		if cfg.LLM.APIKey != "" {
			opts = append(opts, openai.WithAPIKey(cfg.LLM.APIKey))
		}
		if cfg.LLM.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.LLM.BaseURL))
		}
		return openai.New(opts...), nil
	case "ollama":
		return llm.NewOllama(cfg.LLM.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

// buildRetriever wires qdrant and the embedding backend. A failure leaves
// retrieval off; the engine degrades rather than refusing to start.
func buildRetriever(cfg *config.Config) *retrieval.Service {
	if cfg.Retrieval.QdrantAddr == "" {
		return nil
	}
	store, err := qdrant.New(cfg.Retrieval.QdrantAddr)
	if err != nil {
		slog.Warn("qdrant unavailable, retrieval disabled", "addr", cfg.Retrieval.QdrantAddr, "error", err)
		return nil
	}
	embedder := ollama.NewEmbedder(cfg.Retrieval.EmbedderBaseURL, cfg.Retrieval.EmbedderModel)
	return retrieval.NewService(embedder, store,
		retrieval.WithVectorSize(cfg.Retrieval.VectorSize))
}

func (a *app) buildRegistry() (*tool.Registry, error) {
	registry := tool.NewRegistry()
	if err := registry.RegisterAll(tools.Builtin()...); err != nil {
		return nil, err
	}

	workdir, err := os.Getwd()
	if err != nil {
		workdir = "."
	}
	fs := tools.FileToolset{Root: workdir}
	if err := registry.RegisterAll(fs.ReadFile(), fs.WriteFile()); err != nil {
		return nil, err
	}
	if err := registry.Register(tools.NewHTTPRequest(tools.HTTPToolOptions{})); err != nil {
		return nil, err
	}
	if a.cfg.SMTP.Host != "" {
		if err := registry.Register(tools.NewSendEmail(a.cfg.SMTP)); err != nil {
			return nil, err
		}
	}
	if a.retriever != nil {
		if err := registry.Register(tools.NewKnowledgeBaseSearch(a.retriever)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// retrievalProvider avoids handing a typed nil to interface consumers.
func (a *app) retrievalProvider() retrieval.Provider {
	if a.retriever == nil {
		return nil
	}
	return a.retriever
}

func (a *app) engineConfig() agent.Config {
	return agent.Config{
		Model:            a.cfg.LLM.Model,
		Temperature:      a.cfg.Agent.Temperature,
		MaxIterations:    a.cfg.Agent.MaxIterations,
		MaxExecutionTime: time.Duration(a.cfg.Agent.MaxExecutionSecs) * time.Second,
		Verbose:          a.cfg.Agent.Verbose || a.global.Verbose,
	}
}

func (a *app) newEngine() (*agent.Engine, error) {
	return agent.NewEngine(a.provider, a.registry,
		agent.WithConfig(a.engineConfig()),
		agent.WithLogger(a.logger),
		agent.WithMetrics(a.metrics),
	)
}

func (a *app) newConversationStore() (memory.ConversationStore, func() error, error) {
	switch a.cfg.Memory.Provider {
	case "sqlite":
		store, err := memory.OpenSQLite(a.cfg.Memory.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "inmemory":
		return memory.NewInMemoryConversation(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown memory provider %q", a.cfg.Memory.Provider)
	}
}
