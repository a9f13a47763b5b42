// Package rules provides declarative predicate evaluation over frame data.
// It replaces the dynamically-compiled routing and conditional expressions of
// earlier element generations with explicit field/operator/value conditions
// that can be validated up front and cached safely.
package rules

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/demersaj/elements/internal/types"
)

// Condition is a single predicate over a frame context: the value at Field
// (dot-notation path) is compared to Value using Operator.
type Condition struct {
	Field    string `json:"field" yaml:"field"`
	Operator string `json:"operator" yaml:"operator"`
	Value    any    `json:"value" yaml:"value"` // unused for exists/not_exists
}

// Supported operators.
const (
	OpEqual     = "eq"
	OpNotEqual  = "ne"
	OpGreater   = "gt"
	OpLess      = "lt"
	OpGreaterEq = "gte"
	OpLessEq    = "lte"
	OpContains  = "contains"
	OpExists    = "exists"
	OpNotExists = "not_exists"
)

// ordering maps the numeric comparison operators to their comparators.
var ordering = map[string]func(field, value float64) bool{
	OpGreater:   func(f, v float64) bool { return f > v },
	OpLess:      func(f, v float64) bool { return f < v },
	OpGreaterEq: func(f, v float64) bool { return f >= v },
	OpLessEq:    func(f, v float64) bool { return f <= v },
}

// Evaluate reports whether the condition holds for ctx. A missing field
// satisfies only not_exists; every comparison operator treats it as false.
// Type mismatches under numeric or contains operators are errors, not false.
func (c *Condition) Evaluate(ctx map[string]any) (bool, error) {
	fieldValue, found := ResolvePath(ctx, c.Field)

	switch c.Operator {
	case OpExists:
		return found, nil
	case OpNotExists:
		return !found, nil
	}
	if !found {
		return false, nil
	}

	switch c.Operator {
	case OpEqual:
		return looseEqual(fieldValue, c.Value), nil
	case OpNotEqual:
		return !looseEqual(fieldValue, c.Value), nil
	case OpContains:
		return c.contains(fieldValue)
	}

	if compare, ok := ordering[c.Operator]; ok {
		field, okF := asNumber(fieldValue)
		value, okV := asNumber(c.Value)
		if !okF || !okV {
			return false, types.NewError(types.RULES_EVAL_FAILED,
				fmt.Sprintf("operator %q needs numeric operands, got field=%T value=%T",
					c.Operator, fieldValue, c.Value))
		}
		return compare(field, value), nil
	}

	return false, types.NewError(types.RULES_EVAL_FAILED,
		fmt.Sprintf("invalid operator %q", c.Operator))
}

// Validate checks the condition is structurally sound without evaluating it.
func (c *Condition) Validate() error {
	if strings.TrimSpace(c.Field) == "" {
		return types.NewError(types.RULES_PARSE_FAILED, "condition field cannot be empty")
	}

	switch c.Operator {
	case OpEqual, OpNotEqual, OpContains, OpExists, OpNotExists:
		return nil
	}
	if _, ok := ordering[c.Operator]; ok {
		return nil
	}
	return types.NewError(types.RULES_PARSE_FAILED,
		fmt.Sprintf("invalid operator %q", c.Operator))
}

// looseEqual compares across numeric types (int 10 equals float 10.0, as
// YAML and JSON decoding produce either) and falls back to deep equality.
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			return an == bn
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// contains handles substring checks on strings and membership checks on
// slices. Anything else is a type error.
func (c *Condition) contains(fieldValue any) (bool, error) {
	if s, ok := fieldValue.(string); ok {
		sub, ok := c.Value.(string)
		if !ok {
			return false, types.NewError(types.RULES_EVAL_FAILED,
				"contains on a string field needs a string value")
		}
		return strings.Contains(s, sub), nil
	}

	rv := reflect.ValueOf(fieldValue)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if looseEqual(rv.Index(i).Interface(), c.Value) {
				return true, nil
			}
		}
		return false, nil
	}

	return false, types.NewError(types.RULES_EVAL_FAILED,
		fmt.Sprintf("contains needs a string or slice field, got %T", fieldValue))
}

// asNumber widens any integer or float value to float64. Strings never
// count as numbers here; conditions compare typed values, not text.
func asNumber(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
