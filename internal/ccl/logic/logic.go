// Package logic evaluates CertLogic expressions: JsonLogic with the date
// operators certificate rules need. Expressions are JSON; the data document
// is JSON addressed with dotted paths.
package logic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrMissingAttribute means a var path was absent and carried no default.
	ErrMissingAttribute = errors.New("missing attribute")
	// ErrMalformedExpression covers unknown operators and wrong operand shapes.
	ErrMalformedExpression = errors.New("malformed expression")
)

const maxDepth = 64

// Evaluate runs expr against data and returns the raw result.
func Evaluate(expr json.RawMessage, data []byte) (any, error) {
	if len(bytes.TrimSpace(expr)) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrMalformedExpression)
	}
	if len(data) > 0 && !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: data is not valid JSON", ErrMalformedExpression)
	}
	var tree any
	if err := json.Unmarshal(expr, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedExpression, err)
	}
	e := &evaluator{data: data}
	return e.eval(tree, 0)
}

// Test evaluates expr and reduces the result to a boolean.
func Test(expr json.RawMessage, data []byte) (bool, error) {
	v, err := Evaluate(expr, data)
	if err != nil {
		return false, err
	}
	return Truthy(v), nil
}

// Truthy applies JsonLogic truthiness: false, null, 0, "" and [] are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

type evaluator struct {
	data []byte
}

func (e *evaluator) eval(node any, depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrMalformedExpression, maxDepth)
	}
	switch n := node.(type) {
	case map[string]any:
		if len(n) != 1 {
			return nil, fmt.Errorf("%w: operation must have exactly one operator, got %d", ErrMalformedExpression, len(n))
		}
		for op, raw := range n {
			args, ok := raw.([]any)
			if !ok {
				args = []any{raw}
			}
			fn, known := operators[op]
			if !known {
				return nil, fmt.Errorf("%w: unknown operator %q", ErrMalformedExpression, op)
			}
			return fn(e, args, depth+1)
		}
	case []any:
		out := make([]any, len(n))
		for i, item := range n {
			v, err := e.eval(item, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	return node, nil
}

func (e *evaluator) evalAll(args []any, depth int) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		v, err := e.eval(a, depth)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *evaluator) lookup(path string) (any, bool) {
	if path == "" {
		if len(e.data) == 0 {
			return nil, false
		}
		return gjson.ParseBytes(e.data).Value(), true
	}
	res := gjson.GetBytes(e.data, escapePath(path))
	if !res.Exists() {
		return nil, false
	}
	return res.Value(), true
}

// escapePath keeps dots as separators but escapes gjson's wildcard and
// modifier characters so keys are matched literally.
func escapePath(path string) string {
	var b bytes.Buffer
	for _, r := range path {
		switch r {
		case '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
