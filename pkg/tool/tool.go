// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package tool defines the capability contract of the engine: a named,
// schema-described unit of functionality the model may request, a uniform
// result envelope, and the registry that builds the per-turn tool menu.
package tool

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/praxislabs/praxis/pkg/llm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Category tags a tool for listing and display. Informational only; the
// engine never branches on it.
type Category string

const (
	CategorySearch        Category = "search"
	CategoryCalculation   Category = "calculation"
	CategoryFileOperation Category = "file_operation"
	CategoryDataAnalysis  Category = "data_analysis"
	CategoryCommunication Category = "communication"
	CategoryUtility       Category = "utility"
)

// Property describes one parameter in a tool's schema.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Schema is the JSON-Schema-shaped parameter declaration of a tool.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// ObjectSchema builds an object schema from properties and required names.
func ObjectSchema(props map[string]Property, required ...string) Schema {
	if props == nil {
		props = map[string]Property{}
	}
	if required == nil {
		required = []string{}
	}
	return Schema{Type: "object", Properties: props, Required: required}
}

// Descriptor is the immutable identity of a tool: what it is called, what it
// does, and how to call it.
type Descriptor struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Parameters  Schema   `json:"parameters"`
}

// Definition converts the descriptor into the provider-agnostic shape sent
// to the model gateway.
func (d Descriptor) Definition() llm.Tool {
	return llm.Tool{
		Type: llm.ToolTypeFunction,
		Function: llm.FunctionDef{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.Parameters,
		},
	}
}

// Result is the uniform outcome of a tool invocation. A tool never lets an
// error escape its boundary; failures are carried here as a tagged value.
type Result struct {
	Success  bool           `json:"success"`
	Output   any            `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Ok builds a success result.
func Ok(output any) Result {
	return Result{Success: true, Output: output}
}

// OkMeta builds a success result with attached metadata.
func OkMeta(output any, metadata map[string]any) Result {
	return Result{Success: true, Output: output, Metadata: metadata}
}

// Fail builds a failure result with a formatted message.
func Fail(format string, args ...any) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Observation renders a result as the JSON envelope appended to the
// conversation as a tool-result message.
func (r Result) Observation() string {
	out, err := json.Marshal(struct {
		Success bool   `json:"success"`
		Result  any    `json:"result,omitempty"`
		Error   string `json:"error,omitempty"`
	}{Success: r.Success, Result: r.Output, Error: r.Error})
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"unencodable result: %s"}`, err)
	}
	return string(out)
}

// Tool is the contract every capability implements. Describe is pure;
// Invoke must never panic past the boundary (Run guards it regardless).
type Tool interface {
	Describe() Descriptor
	Invoke(ctx context.Context, args map[string]any) Result
}

// Func adapts a plain function into a Tool.
type Func struct {
	desc Descriptor
	fn   func(ctx context.Context, args map[string]any) Result
}

// New builds a function-backed tool.
func New(desc Descriptor, fn func(ctx context.Context, args map[string]any) Result) *Func {
	return &Func{desc: desc, fn: fn}
}

// Describe implements Tool.
func (f *Func) Describe() Descriptor { return f.desc }

// Invoke implements Tool.
func (f *Func) Invoke(ctx context.Context, args map[string]any) Result {
	return f.fn(ctx, args)
}

// Run is the invocation boundary the engine goes through. It checks that all
// required parameters are present, invokes the tool, and converts any panic
// into a failure result so no fault crosses back into the loop.
func Run(ctx context.Context, t Tool, args map[string]any) (result Result) {
	desc := t.Describe()

	defer func() {
		if r := recover(); r != nil {
			result = Fail("%s panicked: %v", desc.Name, r)
		}
	}()

	if args == nil {
		args = map[string]any{}
	}
	for _, name := range desc.Parameters.Required {
		if _, ok := args[name]; !ok {
			return Fail("%s: missing required parameter %q", desc.Name, name)
		}
	}

	return t.Invoke(ctx, args)
}

var _ Tool = (*Func)(nil)
