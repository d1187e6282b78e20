package tool

import (
	"testing"

	"github.com/praxislabs/praxis/pkg/errors"
)

func TestRegisterDuplicateRejected(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoTool("echo", CategoryUtility)); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	err := r.Register(echoTool("echo", CategorySearch))
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if errors.CodeOf(err) != errors.CodeDuplicateTool {
		t.Errorf("unexpected error code: %s", errors.CodeOf(err))
	}

	// Registry must be unchanged: the original tool is still the one stored.
	if r.Len() != 1 {
		t.Fatalf("expected 1 tool, got %d", r.Len())
	}
	got, ok := r.Lookup("echo")
	if !ok {
		t.Fatal("tool vanished after rejected duplicate")
	}
	if got.Describe().Category != CategoryUtility {
		t.Error("rejected duplicate overwrote the original")
	}
}

func TestRegisterReservedFinishName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoTool(FinishName, CategoryUtility)); err == nil {
		t.Fatal("expected registration of 'finish' to fail")
	}
	if r.Len() != 0 {
		t.Error("registry should remain empty")
	}
}

func TestLookupMiss(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("missing"); ok {
		t.Error("expected lookup miss")
	}
}

func TestListCategoryFilter(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterAll(
		echoTool("a", CategorySearch),
		echoTool("b", CategoryCalculation),
		echoTool("c", CategorySearch),
	); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	all := r.List("")
	if len(all) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(all))
	}
	// Registration order is preserved.
	if all[0].Describe().Name != "a" || all[2].Describe().Name != "c" {
		t.Errorf("order not preserved: %v", names(all))
	}

	search := r.List(CategorySearch)
	if len(search) != 2 {
		t.Fatalf("expected 2 search tools, got %d", len(search))
	}
}

func TestDefinitionsIncludeFinish(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoTool("echo", CategoryUtility)); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	defs := r.Definitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[len(defs)-1].Function.Name != FinishName {
		t.Error("finish must always close the menu")
	}
}

func names(tools []Tool) []string {
	out := make([]string, len(tools))
	for i, tl := range tools {
		out[i] = tl.Describe().Name
	}
	return out
}
