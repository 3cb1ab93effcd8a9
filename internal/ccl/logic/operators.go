package logic

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type opFunc func(e *evaluator, args []any, depth int) (any, error)

var operators map[string]opFunc

func init() {
	operators = map[string]opFunc{
		"var":        opVar,
		"if":         opIf,
		"and":        opAnd,
		"or":         opOr,
		"!":          opNot,
		"!!":         opTruthy,
		"==":         opEqual(false, false),
		"===":        opEqual(true, false),
		"!=":         opEqual(false, true),
		"!==":        opEqual(true, true),
		"<":          opCompare(func(c int) bool { return c < 0 }, true),
		"<=":         opCompare(func(c int) bool { return c <= 0 }, true),
		">":          opCompare(func(c int) bool { return c > 0 }, false),
		">=":         opCompare(func(c int) bool { return c >= 0 }, false),
		"in":         opIn,
		"+":          opPlus,
		"plusTime":   opPlusTime,
		"before":     opTimeChain(func(c int) bool { return c < 0 }),
		"after":      opTimeChain(func(c int) bool { return c > 0 }),
		"not-before": opTimeChain(func(c int) bool { return c >= 0 }),
		"not-after":  opTimeChain(func(c int) bool { return c <= 0 }),
	}
}

func opVar(e *evaluator, args []any, depth int) (any, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, fmt.Errorf("%w: var takes a path and an optional default", ErrMalformedExpression)
	}
	p, err := e.eval(args[0], depth)
	if err != nil {
		return nil, err
	}
	var path string
	switch t := p.(type) {
	case string:
		path = t
	case float64:
		path = strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
	default:
		return nil, fmt.Errorf("%w: var path must be a string", ErrMalformedExpression)
	}
	if v, ok := e.lookup(path); ok {
		return v, nil
	}
	if len(args) == 2 {
		return e.eval(args[1], depth)
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingAttribute, path)
}

func opIf(e *evaluator, args []any, depth int) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: if needs a condition and a branch", ErrMalformedExpression)
	}
	i := 0
	for ; i+1 < len(args); i += 2 {
		cond, err := e.eval(args[i], depth)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return e.eval(args[i+1], depth)
		}
	}
	if i < len(args) {
		return e.eval(args[i], depth)
	}
	return nil, nil
}

func opAnd(e *evaluator, args []any, depth int) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: and needs operands", ErrMalformedExpression)
	}
	var v any
	for _, a := range args {
		var err error
		if v, err = e.eval(a, depth); err != nil {
			return nil, err
		}
		if !Truthy(v) {
			return v, nil
		}
	}
	return v, nil
}

func opOr(e *evaluator, args []any, depth int) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: or needs operands", ErrMalformedExpression)
	}
	var v any
	for _, a := range args {
		var err error
		if v, err = e.eval(a, depth); err != nil {
			return nil, err
		}
		if Truthy(v) {
			return v, nil
		}
	}
	return v, nil
}

func opNot(e *evaluator, args []any, depth int) (any, error) {
	v, err := unary(e, "!", args, depth)
	if err != nil {
		return nil, err
	}
	return !Truthy(v), nil
}

func opTruthy(e *evaluator, args []any, depth int) (any, error) {
	v, err := unary(e, "!!", args, depth)
	if err != nil {
		return nil, err
	}
	return Truthy(v), nil
}

func unary(e *evaluator, op string, args []any, depth int) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s takes one operand", ErrMalformedExpression, op)
	}
	return e.eval(args[0], depth)
}

func opEqual(strict, negate bool) opFunc {
	return func(e *evaluator, args []any, depth int) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: equality takes two operands", ErrMalformedExpression)
		}
		vals, err := e.evalAll(args, depth)
		if err != nil {
			return nil, err
		}
		var eq bool
		if strict {
			eq = strictEqual(vals[0], vals[1])
		} else {
			eq = looseEqual(vals[0], vals[1])
		}
		return eq != negate, nil
	}
}

// opCompare supports the two operand form, and the three operand "between"
// form when between is set (only < and <=).
func opCompare(ok func(int) bool, between bool) opFunc {
	return func(e *evaluator, args []any, depth int) (any, error) {
		switch {
		case len(args) == 2:
		case len(args) == 3 && between:
		case between:
			return nil, fmt.Errorf("%w: comparison takes two or three operands", ErrMalformedExpression)
		default:
			return nil, fmt.Errorf("%w: comparison takes two operands", ErrMalformedExpression)
		}
		vals, err := e.evalAll(args, depth)
		if err != nil {
			return nil, err
		}
		for i := 0; i+1 < len(vals); i++ {
			c, err := compare(vals[i], vals[i+1])
			if err != nil {
				return nil, err
			}
			if !ok(c) {
				return false, nil
			}
		}
		return true, nil
	}
}

func opIn(e *evaluator, args []any, depth int) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: in takes a needle and a haystack", ErrMalformedExpression)
	}
	vals, err := e.evalAll(args, depth)
	if err != nil {
		return nil, err
	}
	switch hay := vals[1].(type) {
	case []any:
		for _, item := range hay {
			if strictEqual(vals[0], item) {
				return true, nil
			}
		}
		return false, nil
	case string:
		needle, ok := vals[0].(string)
		if !ok {
			return false, nil
		}
		return strings.Contains(hay, needle), nil
	case nil:
		return false, nil
	default:
		return nil, fmt.Errorf("%w: in needs an array or string haystack", ErrMalformedExpression)
	}
}

func opPlus(e *evaluator, args []any, depth int) (any, error) {
	vals, err := e.evalAll(args, depth)
	if err != nil {
		return nil, err
	}
	var sum float64
	for _, v := range vals {
		n, ok := toNumber(v)
		if !ok {
			return nil, fmt.Errorf("%w: + operand %v is not numeric", ErrMalformedExpression, v)
		}
		sum += n
	}
	return sum, nil
}

func opPlusTime(e *evaluator, args []any, depth int) (any, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("%w: plusTime takes date, amount and unit", ErrMalformedExpression)
	}
	vals, err := e.evalAll(args, depth)
	if err != nil {
		return nil, err
	}
	at, ok := toTime(vals[0])
	if !ok {
		return nil, fmt.Errorf("%w: plusTime operand %v is not a date", ErrMalformedExpression, vals[0])
	}
	amount, ok := vals[1].(float64)
	if !ok || amount != math.Trunc(amount) {
		return nil, fmt.Errorf("%w: plusTime amount must be an integer", ErrMalformedExpression)
	}
	unit, _ := vals[2].(string)
	n := int(amount)
	switch unit {
	case "year":
		return at.AddDate(n, 0, 0), nil
	case "month":
		return at.AddDate(0, n, 0), nil
	case "day":
		return at.AddDate(0, 0, n), nil
	case "hour":
		return at.Add(time.Duration(n) * time.Hour), nil
	default:
		return nil, fmt.Errorf("%w: plusTime unit %q", ErrMalformedExpression, unit)
	}
}

func opTimeChain(ok func(int) bool) opFunc {
	return func(e *evaluator, args []any, depth int) (any, error) {
		if len(args) != 2 && len(args) != 3 {
			return nil, fmt.Errorf("%w: date comparison takes two or three operands", ErrMalformedExpression)
		}
		vals, err := e.evalAll(args, depth)
		if err != nil {
			return nil, err
		}
		times := make([]time.Time, len(vals))
		for i, v := range vals {
			t, isTime := toTime(v)
			if !isTime {
				return nil, fmt.Errorf("%w: %v is not a date", ErrMalformedExpression, v)
			}
			times[i] = t
		}
		for i := 0; i+1 < len(times); i++ {
			if !ok(times[i].Compare(times[i+1])) {
				return false, nil
			}
		}
		return true, nil
	}
}
