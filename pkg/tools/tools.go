// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools provides the built-in capability set: arithmetic, clock and
// date math, file access, HTTP requests, encoding, random generation, text
// and numeric statistics, email, and knowledge-base search.
package tools

import (
	"fmt"

	"github.com/praxislabs/praxis/pkg/tool"
)

// Builtin returns the tools that need no external wiring. File, HTTP, email,
// and knowledge-base tools are constructed separately because they carry
// configuration or collaborators.
func Builtin() []tool.Tool {
	return []tool.Tool{
		NewCalculator(),
		NewCurrentTime(),
		NewTimeCalculator(),
		NewEncodeDecode(),
		NewRandomGenerator(),
		NewStatistics(),
		NewTextAnalyzer(),
	}
}

// Argument accessors. Invocation arguments arrive as decoded JSON, so
// numbers are float64 and objects are map[string]any.

func strArg(args map[string]any, name, fallback string) string {
	if v, ok := args[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return fallback
}

func intArg(args map[string]any, name string, fallback int) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

func floatArg(args map[string]any, name string, fallback float64) float64 {
	switch v := args[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

func floatsArg(args map[string]any, name string) ([]float64, bool) {
	raw, ok := args[name].([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

func mapArg(args map[string]any, name string) map[string]any {
	if v, ok := args[name].(map[string]any); ok {
		return v
	}
	return nil
}
