package tools

import (
	"context"
	"testing"
	"time"

	"github.com/praxislabs/praxis/pkg/tool"
)

func run(t *testing.T, tl tool.Tool, args map[string]any) tool.Result {
	t.Helper()
	return tool.Run(context.Background(), tl, args)
}

func mustSucceed(t *testing.T, res tool.Result) {
	t.Helper()
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
}

func TestBuiltinNamesAreUnique(t *testing.T) {
	registry := tool.NewRegistry()
	if err := registry.RegisterAll(Builtin()...); err != nil {
		t.Fatalf("builtin set should register cleanly: %v", err)
	}
	if registry.Len() != len(Builtin()) {
		t.Errorf("registered %d of %d tools", registry.Len(), len(Builtin()))
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := NewEncodeDecode()

	res := run(t, enc, map[string]any{"operation": "base64_encode", "text": "hello praxis"})
	mustSucceed(t, res)
	encoded := res.Output.(string)

	res = run(t, enc, map[string]any{"operation": "base64_decode", "text": encoded})
	mustSucceed(t, res)
	if res.Output != "hello praxis" {
		t.Errorf("round trip produced %q", res.Output)
	}

	res = run(t, enc, map[string]any{"operation": "url_encode", "text": "a b&c"})
	mustSucceed(t, res)
	if res.Output != "a+b%26c" {
		t.Errorf("url encode produced %q", res.Output)
	}

	res = run(t, enc, map[string]any{"operation": "sha256", "text": "abc"})
	mustSucceed(t, res)
	if res.Output != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("unexpected sha256: %v", res.Output)
	}

	res = run(t, enc, map[string]any{"operation": "base64_decode", "text": "!!!"})
	if res.Success {
		t.Error("expected failure for invalid base64")
	}
	res = run(t, enc, map[string]any{"operation": "rot13", "text": "x"})
	if res.Success {
		t.Error("expected failure for unsupported operation")
	}
}

func TestRandomGenerator(t *testing.T) {
	gen := NewRandomGenerator()

	for i := 0; i < 20; i++ {
		res := run(t, gen, map[string]any{"type": "number", "min": float64(5), "max": float64(10)})
		mustSucceed(t, res)
		n := res.Output.(int)
		if n < 5 || n > 10 {
			t.Fatalf("number %d out of range", n)
		}
	}

	res := run(t, gen, map[string]any{"type": "string", "length": float64(16)})
	mustSucceed(t, res)
	if len(res.Output.(string)) != 16 {
		t.Errorf("unexpected string length: %q", res.Output)
	}

	res = run(t, gen, map[string]any{"type": "uuid"})
	mustSucceed(t, res)
	if len(res.Output.(string)) != 36 {
		t.Errorf("unexpected uuid: %q", res.Output)
	}

	res = run(t, gen, map[string]any{"type": "choice", "options": []any{"a"}})
	mustSucceed(t, res)
	if res.Output != "a" {
		t.Errorf("choice of one option returned %v", res.Output)
	}

	res = run(t, gen, map[string]any{"type": "number", "min": float64(9), "max": float64(1)})
	if res.Success {
		t.Error("expected failure for inverted range")
	}
	res = run(t, gen, map[string]any{"type": "choice"})
	if res.Success {
		t.Error("expected failure for empty options")
	}
}

func TestStatistics(t *testing.T) {
	stats := NewStatistics()

	res := run(t, stats, map[string]any{"numbers": []any{2.0, 4.0, 4.0, 4.0, 5.0, 5.0, 7.0, 9.0}})
	mustSucceed(t, res)
	out := res.Output.(map[string]any)
	if out["count"] != 8 || out["sum"] != 40.0 || out["mean"] != 5.0 {
		t.Errorf("unexpected aggregates: %+v", out)
	}
	if out["median"] != 4.5 || out["min"] != 2.0 || out["max"] != 9.0 {
		t.Errorf("unexpected order stats: %+v", out)
	}
	if out["stddev"] != 2.0 {
		t.Errorf("unexpected stddev: %v", out["stddev"])
	}

	res = run(t, stats, map[string]any{"numbers": []any{}})
	if res.Success {
		t.Error("expected failure for empty input")
	}
	res = run(t, stats, map[string]any{"numbers": []any{"x"}})
	if res.Success {
		t.Error("expected failure for non-numeric input")
	}
}

func TestTextAnalyzer(t *testing.T) {
	res := run(t, NewTextAnalyzer(), map[string]any{"text": "Go is fun. Really fun!"})
	mustSucceed(t, res)
	out := res.Output.(map[string]any)
	if out["words"] != 5 || out["sentences"] != 2 || out["lines"] != 1 {
		t.Errorf("unexpected counts: %+v", out)
	}

	res = run(t, NewTextAnalyzer(), map[string]any{"text": "   "})
	if res.Success {
		t.Error("expected failure for blank text")
	}
}

func TestCurrentTime(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	clock = func() time.Time { return fixed }
	defer func() { clock = time.Now }()

	res := run(t, NewCurrentTime(), map[string]any{"format": "date"})
	mustSucceed(t, res)
	if res.Output != "2026-03-14" {
		t.Errorf("unexpected date: %v", res.Output)
	}

	res = run(t, NewCurrentTime(), nil)
	mustSucceed(t, res)
	out := res.Output.(map[string]any)
	if out["weekday"] != "Saturday" || out["time"] != "15:09:26" {
		t.Errorf("unexpected full output: %+v", out)
	}
}

func TestTimeCalculator(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock = func() time.Time { return fixed }
	defer func() { clock = time.Now }()

	calc := NewTimeCalculator()

	res := run(t, calc, map[string]any{"operation": "add", "amount": float64(2), "unit": "days"})
	mustSucceed(t, res)
	out := res.Output.(map[string]any)
	if out["result"] != "2026-01-03 12:00:00" {
		t.Errorf("unexpected add result: %v", out["result"])
	}

	res = run(t, calc, map[string]any{"operation": "subtract", "amount": float64(3), "unit": "hours"})
	mustSucceed(t, res)
	out = res.Output.(map[string]any)
	if out["result"] != "2026-01-01 09:00:00" {
		t.Errorf("unexpected subtract result: %v", out["result"])
	}

	res = run(t, calc, map[string]any{"operation": "diff", "amount": float64(90), "unit": "minutes"})
	mustSucceed(t, res)
	out = res.Output.(map[string]any)
	if out["hours"] != 1.5 {
		t.Errorf("unexpected diff: %+v", out)
	}

	res = run(t, calc, map[string]any{"operation": "add", "amount": float64(1), "unit": "weeks"})
	if res.Success {
		t.Error("expected failure for unsupported unit")
	}
}
