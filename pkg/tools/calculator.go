// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/praxislabs/praxis/pkg/tool"
)

// NewCalculator returns the arithmetic expression tool. It evaluates infix
// expressions with + - * / % ^, parentheses, unary minus, the constants pi
// and e, and the functions sqrt, abs, sin, cos, tan, log.
func NewCalculator() tool.Tool {
	return tool.New(tool.Descriptor{
		Name:        "calculator",
		Description: "Evaluates a mathematical expression. Supports + - * / % ^, parentheses, sqrt, abs, sin, cos, tan, log, and the constants pi and e. Example: 'sqrt(16) + 2 ^ 10'.",
		Category:    tool.CategoryCalculation,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"expression": {
				Type:        "string",
				Description: "The expression to evaluate, e.g. '2 + 3 * 4'",
			},
		}, "expression"),
	}, func(_ context.Context, args map[string]any) tool.Result {
		expr := strArg(args, "expression", "")
		value, err := evalExpression(expr)
		if err != nil {
			return tool.Fail("calculation failed: %v", err)
		}
		return tool.OkMeta(value, map[string]any{"expression": expr})
	})
}

type calcToken struct {
	kind  rune // 'n' number, 'o' operator, '(' or ')', 'f' function
	value float64
	op    byte
	fn    string
}

var calcConstants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var calcFunctions = map[string]func(float64) float64{
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"log":  math.Log,
}

// evalExpression parses and evaluates via the shunting-yard algorithm.
func evalExpression(expr string) (float64, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, fmt.Errorf("empty expression")
	}
	rpn, err := toRPN(tokens)
	if err != nil {
		return 0, err
	}
	return evalRPN(rpn)
}

func tokenize(expr string) ([]calcToken, error) {
	var tokens []calcToken
	runes := []rune(expr)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			v, err := strconv.ParseFloat(string(runes[i:j]), 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q", string(runes[i:j]))
			}
			tokens = append(tokens, calcToken{kind: 'n', value: v})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			name := strings.ToLower(string(runes[i:j]))
			if v, ok := calcConstants[name]; ok {
				tokens = append(tokens, calcToken{kind: 'n', value: v})
			} else if _, ok := calcFunctions[name]; ok {
				tokens = append(tokens, calcToken{kind: 'f', fn: name})
			} else {
				return nil, fmt.Errorf("unknown identifier %q", name)
			}
			i = j
		case r == '(' || r == ')':
			tokens = append(tokens, calcToken{kind: r})
			i++
		case strings.ContainsRune("+-*/%^", r):
			op := byte(r)
			// '**' is accepted as an alias for '^'.
			if r == '*' && i+1 < len(runes) && runes[i+1] == '*' {
				op = '^'
				i++
			}
			// Unary minus: at start or after an operator or '('.
			if op == '-' && expectsOperand(tokens) {
				op = 'u'
			}
			tokens = append(tokens, calcToken{kind: 'o', op: op})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q", r)
		}
	}
	return tokens, nil
}

func expectsOperand(tokens []calcToken) bool {
	if len(tokens) == 0 {
		return true
	}
	last := tokens[len(tokens)-1]
	return last.kind == 'o' || last.kind == '(' || last.kind == 'f'
}

func precedence(op byte) int {
	switch op {
	case 'u':
		return 4
	case '^':
		return 3
	case '*', '/', '%':
		return 2
	default:
		return 1
	}
}

func rightAssociative(op byte) bool { return op == '^' || op == 'u' }

func toRPN(tokens []calcToken) ([]calcToken, error) {
	var out, stack []calcToken
	for _, t := range tokens {
		switch t.kind {
		case 'n':
			out = append(out, t)
		case 'f', '(':
			stack = append(stack, t)
		case ')':
			for {
				if len(stack) == 0 {
					return nil, fmt.Errorf("unbalanced parentheses")
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == '(' {
					break
				}
				out = append(out, top)
			}
			if len(stack) > 0 && stack[len(stack)-1].kind == 'f' {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		case 'o':
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind != 'o' {
					break
				}
				if precedence(top.op) > precedence(t.op) ||
					(precedence(top.op) == precedence(t.op) && !rightAssociative(t.op)) {
					out = append(out, top)
					stack = stack[:len(stack)-1]
					continue
				}
				break
			}
			stack = append(stack, t)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.kind == '(' {
			return nil, fmt.Errorf("unbalanced parentheses")
		}
		out = append(out, top)
	}
	return out, nil
}

func evalRPN(rpn []calcToken) (float64, error) {
	var stack []float64
	pop := func() (float64, bool) {
		if len(stack) == 0 {
			return 0, false
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, true
	}
	for _, t := range rpn {
		switch t.kind {
		case 'n':
			stack = append(stack, t.value)
		case 'f':
			v, ok := pop()
			if !ok {
				return 0, fmt.Errorf("missing argument for %s", t.fn)
			}
			stack = append(stack, calcFunctions[t.fn](v))
		case 'o':
			if t.op == 'u' {
				v, ok := pop()
				if !ok {
					return 0, fmt.Errorf("missing operand")
				}
				stack = append(stack, -v)
				continue
			}
			b, okB := pop()
			a, okA := pop()
			if !okA || !okB {
				return 0, fmt.Errorf("missing operand for %q", t.op)
			}
			switch t.op {
			case '+':
				stack = append(stack, a+b)
			case '-':
				stack = append(stack, a-b)
			case '*':
				stack = append(stack, a*b)
			case '/':
				if b == 0 {
					return 0, fmt.Errorf("division by zero")
				}
				stack = append(stack, a/b)
			case '%':
				if b == 0 {
					return 0, fmt.Errorf("division by zero")
				}
				stack = append(stack, math.Mod(a, b))
			case '^':
				stack = append(stack, math.Pow(a, b))
			}
		}
	}
	if len(stack) != 1 {
		return 0, fmt.Errorf("malformed expression")
	}
	v := stack[0]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("result is not a finite number")
	}
	return v, nil
}
