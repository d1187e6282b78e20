package tools

import (
	"context"
	"math"
	"testing"

	"github.com/praxislabs/praxis/pkg/tool"
)

func TestCalculator(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		expr string
		want float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"21*2", 42},
		{"sqrt(16)", 4},
		{"2 ** 10", 1024},
		{"2 ^ 10", 1024},
		{"-5 + 3", -2},
		{"10 % 3", 1},
		{"abs(-7)", 7},
		{"pi", math.Pi},
		{"-(2 + 3)", -5},
		{"2 ^ 3 ^ 2", 512}, // right-associative
		{"100 / 4 / 5", 5}, // left-associative
	}
	for _, tt := range tests {
		res := tool.Run(context.Background(), calc, map[string]any{"expression": tt.expr})
		if !res.Success {
			t.Errorf("%q: unexpected failure: %s", tt.expr, res.Error)
			continue
		}
		got, ok := res.Output.(float64)
		if !ok {
			t.Errorf("%q: output is %T, want float64", tt.expr, res.Output)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%q = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestCalculatorErrors(t *testing.T) {
	calc := NewCalculator()

	for _, expr := range []string{
		"",
		"1 / 0",
		"2 +",
		"(1 + 2",
		"foo(3)",
		"1 $ 2",
		"sqrt(-1)",
	} {
		res := tool.Run(context.Background(), calc, map[string]any{"expression": expr})
		if res.Success {
			t.Errorf("%q: expected failure, got %v", expr, res.Output)
		}
		if res.Error == "" {
			t.Errorf("%q: failure without message", expr)
		}
	}
}

func TestCalculatorMissingParameter(t *testing.T) {
	res := tool.Run(context.Background(), NewCalculator(), nil)
	if res.Success {
		t.Fatal("expected failure for missing expression")
	}
}
