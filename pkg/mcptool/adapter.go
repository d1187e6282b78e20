// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcptool exposes tools served over the Model Context Protocol as
// engine capabilities.
package mcptool

import (
	"context"
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/praxislabs/praxis/pkg/tool"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Caller abstracts MCP tool execution for adapters.
type Caller interface {
	CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error)
}

// Adapter wraps an MCP tool to satisfy tool.Tool.
type Adapter struct {
	desc   tool.Descriptor
	caller Caller
}

// New builds a capability backed by an MCP tool definition and caller.
func New(t mcp.Tool, caller Caller) (*Adapter, error) {
	if t.Name == "" {
		return nil, errors.New("mcp tool name is required")
	}
	if caller == nil {
		return nil, errors.New("tool caller is required")
	}
	return &Adapter{
		desc: tool.Descriptor{
			Name:        t.Name,
			Description: t.Description,
			Category:    tool.CategoryUtility,
			Parameters:  convertSchema(t.InputSchema),
		},
		caller: caller,
	}, nil
}

// AdaptAll wraps a list of MCP tools. A tool that cannot be adapted fails
// the whole batch.
func AdaptAll(tools []mcp.Tool, caller Caller) ([]tool.Tool, error) {
	out := make([]tool.Tool, 0, len(tools))
	for _, t := range tools {
		a, err := New(t, caller)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Describe implements tool.Tool.
func (a *Adapter) Describe() tool.Descriptor { return a.desc }

// Invoke implements tool.Tool.
func (a *Adapter) Invoke(ctx context.Context, args map[string]any) tool.Result {
	result, err := a.caller.CallTool(ctx, a.desc.Name, args)
	if err != nil {
		return tool.Fail("mcp call failed: %v", err)
	}
	if result == nil {
		return tool.Fail("mcp tool %s returned no result", a.desc.Name)
	}
	if result.IsError {
		return tool.Fail("%s", extractTextContent(result.Content))
	}
	if result.StructuredContent != nil {
		return tool.Ok(result.StructuredContent)
	}
	if text := extractTextContent(result.Content); text != "" {
		return tool.Ok(text)
	}
	return tool.Ok(result)
}

// convertSchema maps an MCP input schema onto the engine's schema shape.
// Unknown property attributes are dropped; required names carry over.
func convertSchema(schema mcp.ToolInputSchema) tool.Schema {
	props := make(map[string]tool.Property, len(schema.Properties))
	for name, raw := range schema.Properties {
		var p tool.Property
		if encoded, err := json.Marshal(raw); err == nil {
			json.Unmarshal(encoded, &p)
		}
		if p.Type == "" {
			p.Type = "string"
		}
		props[name] = p
	}
	return tool.ObjectSchema(props, schema.Required...)
}

func extractTextContent(items []mcp.Content) string {
	var parts []string
	for _, item := range items {
		switch content := item.(type) {
		case mcp.TextContent:
			parts = append(parts, content.Text)
		case *mcp.TextContent:
			parts = append(parts, content.Text)
		}
	}
	return strings.Join(parts, "\n")
}

var _ tool.Tool = (*Adapter)(nil)
