package mcptool

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/praxislabs/praxis/pkg/tool"
)

type stubCaller struct {
	lastName string
	lastArgs map[string]interface{}
	result   *mcp.CallToolResult
	err      error
}

func (s *stubCaller) CallTool(_ context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	s.lastName = name
	s.lastArgs = args
	return s.result, s.err
}

func TestAdapter_InvokeText(t *testing.T) {
	caller := &stubCaller{
		result: &mcp.CallToolResult{
			Content: []mcp.Content{mcp.TextContent{Type: "text", Text: "ok"}},
		},
	}
	adapter, err := New(mcp.Tool{Name: "echo"}, caller)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	res := adapter.Invoke(context.Background(), map[string]any{"input": "hello"})
	if !res.Success || res.Output != "ok" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if caller.lastName != "echo" || caller.lastArgs["input"] != "hello" {
		t.Errorf("call not forwarded: name=%q args=%v", caller.lastName, caller.lastArgs)
	}
}

func TestAdapter_InvokeStructuredContent(t *testing.T) {
	caller := &stubCaller{
		result: &mcp.CallToolResult{
			StructuredContent: map[string]any{"count": 3},
		},
	}
	adapter, _ := New(mcp.Tool{Name: "counter"}, caller)

	res := adapter.Invoke(context.Background(), nil)
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	out, ok := res.Output.(map[string]any)
	if !ok || out["count"] != 3 {
		t.Errorf("structured content not passed through: %v", res.Output)
	}
}

func TestAdapter_InvokeErrors(t *testing.T) {
	caller := &stubCaller{err: errors.New("transport broke")}
	adapter, _ := New(mcp.Tool{Name: "flaky"}, caller)
	res := adapter.Invoke(context.Background(), nil)
	if res.Success || !strings.Contains(res.Error, "transport broke") {
		t.Errorf("transport error not surfaced: %+v", res)
	}

	caller = &stubCaller{
		result: &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{mcp.TextContent{Type: "text", Text: "bad input"}},
		},
	}
	adapter, _ = New(mcp.Tool{Name: "flaky"}, caller)
	res = adapter.Invoke(context.Background(), nil)
	if res.Success || res.Error != "bad input" {
		t.Errorf("tool error not surfaced: %+v", res)
	}
}

func TestAdapter_RequiredArgsEnforcedByRunBoundary(t *testing.T) {
	caller := &stubCaller{
		result: &mcp.CallToolResult{
			Content: []mcp.Content{mcp.TextContent{Type: "text", Text: "ok"}},
		},
	}
	adapter, _ := New(mcp.Tool{
		Name: "fetch",
		InputSchema: mcp.ToolInputSchema{
			Type:     "object",
			Required: []string{"url"},
		},
	}, caller)

	res := tool.Run(context.Background(), adapter, map[string]any{})
	if res.Success {
		t.Fatal("expected missing-parameter failure")
	}
	if caller.lastName != "" {
		t.Error("caller should not be reached on validation failure")
	}
}

func TestConvertSchema(t *testing.T) {
	schema := convertSchema(mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]any{
			"url":   map[string]any{"type": "string", "description": "target URL"},
			"depth": map[string]any{"type": "integer"},
		},
		Required: []string{"url"},
	})

	if schema.Properties["url"].Type != "string" || schema.Properties["url"].Description != "target URL" {
		t.Errorf("url property not carried over: %+v", schema.Properties["url"])
	}
	if schema.Properties["depth"].Type != "integer" {
		t.Errorf("depth property not carried over: %+v", schema.Properties["depth"])
	}
	if len(schema.Required) != 1 || schema.Required[0] != "url" {
		t.Errorf("required not carried over: %v", schema.Required)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(mcp.Tool{}, &stubCaller{}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := New(mcp.Tool{Name: "x"}, nil); err == nil {
		t.Error("expected error for nil caller")
	}
}
