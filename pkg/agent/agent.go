// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent implements the task-execution loop: given a user request, a
// registry of tools, and a function-calling model, it repeatedly asks the
// model for a decision, executes the chosen tools, feeds the observations
// back, and stops when the model calls finish or a bound is reached.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/praxislabs/praxis/pkg/llm"
	"github.com/praxislabs/praxis/pkg/telemetry"
	"github.com/praxislabs/praxis/pkg/tool"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config bounds and parameterizes a run.
type Config struct {
	// Model is the backend model identity passed through to the gateway.
	Model string
	// Temperature is the sampling temperature passed through to the gateway.
	Temperature float64
	// MaxIterations caps the number of model round trips per run.
	MaxIterations int
	// MaxExecutionTime is the wall-clock budget for a run, checked between
	// iterations. Zero disables the check. A run already inside a model call
	// or tool invocation is not preempted.
	MaxExecutionTime time.Duration
	// Verbose logs full observations at info level instead of debug.
	Verbose bool
}

// DefaultConfig returns the standard run bounds.
func DefaultConfig() Config {
	return Config{
		Temperature:   0.7,
		MaxIterations: 10,
	}
}

// Engine drives one query to completion against a fixed tool registry.
// The registry must be fully populated before the first run; after that the
// engine only reads it, so concurrent runs are safe.
type Engine struct {
	provider llm.Provider
	registry *tool.Registry
	cfg      Config
	logger   *slog.Logger
	metrics  *telemetry.RunMetrics
	tracer   trace.Tracer
	preamble string
}

var (
	ErrMissingProvider = errors.New("agent: model provider is required")
	ErrMissingRegistry = errors.New("agent: tool registry is required")
)

// Option configures an Engine instance.
type Option func(*Engine) error

// NewEngine creates an Engine for the given gateway and registry.
func NewEngine(provider llm.Provider, registry *tool.Registry, opts ...Option) (*Engine, error) {
	if provider == nil {
		return nil, ErrMissingProvider
	}
	if registry == nil {
		return nil, ErrMissingRegistry
	}
	e := &Engine{
		provider: provider,
		registry: registry,
		cfg:      DefaultConfig(),
		logger:   slog.Default(),
		tracer:   otel.Tracer("praxis/agent"),
		preamble: defaultPreamble,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.cfg.MaxIterations <= 0 {
		e.cfg.MaxIterations = DefaultConfig().MaxIterations
	}
	return e, nil
}

// WithConfig sets the run bounds and sampling parameters.
func WithConfig(cfg Config) Option {
	return func(e *Engine) error {
		e.cfg = cfg
		return nil
	}
}

// WithLogger sets the logger used for run progress.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			return errors.New("agent: logger must not be nil")
		}
		e.logger = logger
		return nil
	}
}

// WithMetrics attaches run and tool-invocation counters.
func WithMetrics(m *telemetry.RunMetrics) Option {
	return func(e *Engine) error {
		e.metrics = m
		return nil
	}
}

// WithPreamble replaces the default instruction text that precedes the tool
// menu in the system message.
func WithPreamble(text string) Option {
	return func(e *Engine) error {
		if strings.TrimSpace(text) == "" {
			return errors.New("agent: preamble must not be empty")
		}
		e.preamble = text
		return nil
	}
}

// Config returns the engine's run configuration.
func (e *Engine) Config() Config { return e.cfg }

const defaultPreamble = `You are a helpful assistant that completes tasks step by step using the tools available to you.

Think about what the user needs, then either answer directly or call a tool to make progress. When you have everything needed for a complete answer, call the finish tool with the full answer text.`

// SystemPrompt assembles the system message sent on every run: the preamble
// followed by one line per available tool.
func (e *Engine) SystemPrompt() string {
	var b strings.Builder
	b.WriteString(e.preamble)
	b.WriteString("\n\nAvailable tools:\n")
	for _, t := range e.registry.Definitions() {
		fmt.Fprintf(&b, "- %s: %s\n", t.Function.Name, t.Function.Description)
	}
	return b.String()
}

// Run executes a single stateless query to completion.
func (e *Engine) Run(ctx context.Context, query string) *Result {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: e.SystemPrompt()},
		{Role: llm.RoleUser, Content: query},
	}
	return e.run(ctx, messages)
}

// run drives the loop over a pre-assembled conversation. The conversational
// engine reuses it with history and retrieval context already threaded in.
func (e *Engine) run(ctx context.Context, messages []llm.Message) *Result {
	start := time.Now()
	res := &Result{}

	ctx, span := e.tracer.Start(ctx, "agent.run",
		trace.WithAttributes(attribute.Int("agent.max_iterations", e.cfg.MaxIterations)))
	defer span.End()

	defer func() {
		res.ElapsedSeconds = time.Since(start).Seconds()
		span.SetAttributes(
			attribute.String("agent.outcome", string(res.Outcome)),
			attribute.Int("agent.iterations", res.Iterations),
		)
		e.metrics.RecordRun(ctx, string(res.Outcome), res.Iterations, time.Since(start))
		e.logger.Info("run finished",
			"outcome", res.Outcome,
			"iterations", res.Iterations,
			"steps", len(res.Steps),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	}()

	tools := e.registry.Definitions()
	e.logger.Debug("run started", "tools", len(tools), "messages", len(messages))

	for res.Iterations < e.cfg.MaxIterations {
		if e.cfg.MaxExecutionTime > 0 && time.Since(start) >= e.cfg.MaxExecutionTime {
			res.Outcome = OutcomeDeadline
			res.Answer = deadlineAnswer
			return res
		}
		res.Iterations++

		resp, err := e.provider.Chat(ctx, llm.ChatRequest{
			Model:       e.cfg.Model,
			Messages:    messages,
			Tools:       tools,
			ToolChoice:  "auto",
			Temperature: e.cfg.Temperature,
		})
		if err != nil {
			res.Outcome = OutcomeError
			res.Error = err.Error()
			e.logger.Error("model gateway failed", "iteration", res.Iterations, "error", err)
			return res
		}

		if len(resp.ToolCalls) == 0 {
			// Direct answer, no tool round trip needed.
			res.Outcome = OutcomeAnswered
			res.Success = true
			res.Answer = resp.Content
			return res
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			if call.Function.Name == tool.FinishName {
				// First finish wins; remaining calls in this turn are dropped.
				res.Outcome = OutcomeAnswered
				res.Success = true
				res.Answer = e.finishAnswer(call)
				res.Steps = append(res.Steps, Step{
					Iteration:   res.Iterations,
					Tool:        tool.FinishName,
					Args:        map[string]any{tool.FinishAnswerParam: res.Answer},
					Observation: res.Answer,
					Timestamp:   time.Now(),
				})
				return res
			}
			messages = append(messages, e.invoke(ctx, res, call))
		}
	}

	res.Outcome = OutcomeMaxIterations
	res.Answer = maxIterationsAnswer
	return res
}

// invoke dispatches one tool call and returns the tool-result message that
// answers it. Argument decoding failures and registry misses are failure
// observations, not run aborts.
func (e *Engine) invoke(ctx context.Context, res *Result, call llm.ToolCall) llm.Message {
	name := call.Function.Name

	ctx, span := e.tracer.Start(ctx, "agent.tool",
		trace.WithAttributes(attribute.String("tool.name", name)))
	defer span.End()

	var result tool.Result
	args, err := decodeArgs(call.Function.Arguments)
	switch {
	case err != nil:
		result = tool.Fail("invalid arguments for %s: %v", name, err)
	default:
		t, ok := e.registry.Lookup(name)
		if !ok {
			result = tool.Fail("unknown tool %q", name)
		} else {
			result = tool.Run(ctx, t, args)
		}
	}

	obs := result.Observation()
	res.Steps = append(res.Steps, Step{
		Iteration:   res.Iterations,
		Tool:        name,
		Args:        args,
		Observation: obs,
		Timestamp:   time.Now(),
	})
	e.metrics.RecordToolInvocation(ctx, name, result.Success)

	level := slog.LevelDebug
	if e.cfg.Verbose {
		level = slog.LevelInfo
	}
	e.logger.Log(ctx, level, "tool invoked",
		"tool", name,
		"success", result.Success,
		"iteration", res.Iterations,
	)

	return llm.Message{
		Role:       llm.RoleTool,
		Content:    obs,
		ToolCallID: call.ID,
	}
}

// finishAnswer extracts the answer argument from a finish call. A malformed
// payload degrades to the raw argument string rather than losing the run.
func (e *Engine) finishAnswer(call llm.ToolCall) string {
	args, err := decodeArgs(call.Function.Arguments)
	if err != nil {
		e.logger.Warn("finish call had malformed arguments", "error", err)
		return call.Function.Arguments
	}
	if v, ok := args[tool.FinishAnswerParam]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return ""
}

func decodeArgs(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
