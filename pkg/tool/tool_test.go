package tool

import (
	"context"
	"strings"
	"testing"
)

func echoTool(name string, category Category) Tool {
	return New(Descriptor{
		Name:        name,
		Description: "echoes its input",
		Category:    category,
		Parameters: ObjectSchema(map[string]Property{
			"text": {Type: "string", Description: "text to echo"},
		}, "text"),
	}, func(ctx context.Context, args map[string]any) Result {
		return Ok(args["text"])
	})
}

func TestRunValidatesRequiredParameters(t *testing.T) {
	res := Run(context.Background(), echoTool("echo", CategoryUtility), map[string]any{})
	if res.Success {
		t.Fatal("expected failure for missing required parameter")
	}
	if !strings.Contains(res.Error, "text") {
		t.Errorf("error should name the missing parameter, got %q", res.Error)
	}
}

func TestRunNilArgs(t *testing.T) {
	optional := New(Descriptor{
		Name:       "noargs",
		Parameters: ObjectSchema(nil),
	}, func(ctx context.Context, args map[string]any) Result {
		if args == nil {
			t.Error("args should be normalized to an empty map")
		}
		return Ok("done")
	})

	res := Run(context.Background(), optional, nil)
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
}

func TestRunRecoversPanic(t *testing.T) {
	panicky := New(Descriptor{
		Name:       "explode",
		Parameters: ObjectSchema(nil),
	}, func(ctx context.Context, args map[string]any) Result {
		panic("kaboom")
	})

	res := Run(context.Background(), panicky, nil)
	if res.Success {
		t.Fatal("expected failure result from panic")
	}
	if !strings.Contains(res.Error, "kaboom") {
		t.Errorf("panic message lost: %q", res.Error)
	}
}

func TestResultObservation(t *testing.T) {
	obs := Ok(map[string]any{"value": 42}).Observation()
	if !strings.Contains(obs, `"success":true`) {
		t.Errorf("unexpected observation: %s", obs)
	}

	obs = Fail("no such thing").Observation()
	if !strings.Contains(obs, `"success":false`) || !strings.Contains(obs, "no such thing") {
		t.Errorf("unexpected failure observation: %s", obs)
	}
}

func TestFinishDefinition(t *testing.T) {
	def := FinishDefinition()
	if def.Function.Name != FinishName {
		t.Errorf("unexpected name %q", def.Function.Name)
	}
	schema, ok := def.Function.Parameters.(Schema)
	if !ok {
		t.Fatalf("unexpected parameters type %T", def.Function.Parameters)
	}
	if len(schema.Required) != 1 || schema.Required[0] != FinishAnswerParam {
		t.Errorf("finish must require exactly the answer parameter, got %v", schema.Required)
	}
}
