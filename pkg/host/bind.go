package host

import (
	"errors"
	"fmt"

	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
	"github.com/mitchellh/mapstructure"
)

// ErrBinding is returned when a definition value cannot be bound to a parameter.
var ErrBinding = errors.New("cannot bind parameter")

// Reference is the mapping form of a dynamic value:
//
//	{expr: "uniform(1.0, 2.0)"}          context-free expression
//	{attribute: priority, default: 0}  entity attribute
type Reference struct {
	Expr      string  `mapstructure:"expr"`
	Attribute string  `mapstructure:"attribute"`
	Default   float64 `mapstructure:"default"`
}

func reference(v any) (Reference, bool, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Reference{}, false, nil
	}
	var ref Reference
	if err := mapstructure.Decode(m, &ref); err != nil {
		return Reference{}, true, fmt.Errorf("%w: %v", ErrBinding, err)
	}
	if ref.Expr == "" && ref.Attribute == "" {
		return Reference{}, true, fmt.Errorf("%w: mapping needs 'expr' or 'attribute'", ErrBinding)
	}
	return ref, true, nil
}

func attribute(e domain.Entity, key string, def float64) float64 {
	if a, ok := e.(domain.Attributed); ok {
		if v, ok := a.Attribute(key); ok {
			return v
		}
	}
	return def
}

func dynamic[T any](src string, env *Env) (param.Param[T], error) {
	cb, err := Callback(src, env)
	if err != nil {
		return param.Param[T]{}, fmt.Errorf("%w: %v", ErrBinding, err)
	}
	return param.Func[T](cb), nil
}

// Number binds a numeric parameter. Numbers are constants, strings are expressions and
// mappings are references.
func Number(v any, env *Env) (param.Param[float64], error) {
	ref, isRef, err := reference(v)
	if err != nil {
		return param.Param[float64]{}, err
	}
	if isRef {
		if ref.Attribute != "" {
			key, def := ref.Attribute, ref.Default
			return param.FromEntity(func(e domain.Entity) float64 {
				return attribute(e, key, def)
			}), nil
		}
		return dynamic[float64](ref.Expr, env)
	}
	if src, ok := v.(string); ok {
		return dynamic[float64](src, env)
	}

	var out float64
	if err := mapstructure.WeakDecode(v, &out); err != nil || v == nil {
		return param.Param[float64]{}, fmt.Errorf("%w: %v is not a number", ErrBinding, v)
	}
	return param.Const(out), nil
}

// Numbers binds a list of numbers. A scalar is a one-element list and a string or
// {expr: ...} mapping is an expression returning a list.
func Numbers(v any, env *Env) (param.Param[[]float64], error) {
	if src, ok := v.(string); ok {
		return dynamic[[]float64](src, env)
	}
	ref, isRef, err := reference(v)
	if err != nil {
		return param.Param[[]float64]{}, err
	}
	if isRef {
		if ref.Attribute != "" {
			key, def := ref.Attribute, ref.Default
			return param.FromEntity(func(e domain.Entity) []float64 {
				return []float64{attribute(e, key, def)}
			}), nil
		}
		return dynamic[[]float64](ref.Expr, env)
	}

	var out []float64
	if err := mapstructure.WeakDecode(v, &out); err != nil || v == nil {
		return param.Param[[]float64]{}, fmt.Errorf("%w: %v is not a list of numbers", ErrBinding, v)
	}
	return param.Const(out), nil
}

// Strings binds a list of names. A single string is a one-element list.
func Strings(v any, env *Env) (param.Param[[]string], error) {
	ref, isRef, err := reference(v)
	if err != nil {
		return param.Param[[]string]{}, err
	}
	if isRef {
		if ref.Expr == "" {
			return param.Param[[]string]{}, fmt.Errorf("%w: names only accept expressions", ErrBinding)
		}
		return dynamic[[]string](ref.Expr, env)
	}

	var out []string
	if err := mapstructure.WeakDecode(v, &out); err != nil || len(out) == 0 {
		return param.Param[[]string]{}, fmt.Errorf("%w: %v is not a list of names", ErrBinding, v)
	}
	return param.Const(out), nil
}

// Text binds a string parameter. Strings are constants; use {expr: ...} for expressions.
func Text(v any, env *Env) (param.Param[string], error) {
	ref, isRef, err := reference(v)
	if err != nil {
		return param.Param[string]{}, err
	}
	if isRef {
		if ref.Expr == "" {
			return param.Param[string]{}, fmt.Errorf("%w: text only accepts expressions", ErrBinding)
		}
		return dynamic[string](ref.Expr, env)
	}
	s, ok := v.(string)
	if !ok {
		return param.Param[string]{}, fmt.Errorf("%w: %v is not text", ErrBinding, v)
	}
	return param.Const(s), nil
}

// Bool binds a condition. Booleans are constants, strings are expressions and an attribute
// reference is true when the attribute is positive.
func Bool(v any, env *Env) (param.Param[bool], error) {
	if b, ok := v.(bool); ok {
		return param.Const(b), nil
	}
	if src, ok := v.(string); ok {
		return dynamic[bool](src, env)
	}
	ref, isRef, err := reference(v)
	if err != nil {
		return param.Param[bool]{}, err
	}
	if !isRef {
		return param.Param[bool]{}, fmt.Errorf("%w: %v is not a condition", ErrBinding, v)
	}
	if ref.Attribute != "" {
		key, def := ref.Attribute, ref.Default
		return param.FromEntity(func(e domain.Entity) bool {
			return attribute(e, key, def) > 0
		}), nil
	}
	return dynamic[bool](ref.Expr, env)
}
