package param

import (
	"errors"
	"fmt"

	"github.com/aretw0/simchain/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// ErrUnbound is returned when resolving a Param that was never bound to a source.
var ErrUnbound = errors.New("parameter not bound")

// ErrConvert is returned when a callback result cannot be converted to the declared type.
var ErrConvert = errors.New("cannot convert parameter value")

// Kind identifies the source a Param is bound to.
type Kind uint8

const (
	KindUnbound Kind = iota
	KindConst
	KindFunc
	KindEntity
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindFunc:
		return "func"
	case KindEntity:
		return "entity"
	default:
		return "unbound"
	}
}

// Param is a value of type T taken from one of three sources.
// The zero value is unbound. Params are small values; copy them freely.
type Param[T any] struct {
	kind  Kind
	value T
	fn    func() (any, error)
	efn   func(domain.Entity) T
}

// Const binds p to a fixed value.
func Const[T any](v T) Param[T] {
	return Param[T]{kind: KindConst, value: v}
}

// Func binds p to a context-free callback. Its result is converted to T on every call.
func Func[T any](fn func() (any, error)) Param[T] {
	if fn == nil {
		return Param[T]{}
	}
	return Param[T]{kind: KindFunc, fn: fn}
}

// FromEntity binds p to a callback that receives the executing entity.
func FromEntity[T any](fn func(domain.Entity) T) Param[T] {
	if fn == nil {
		return Param[T]{}
	}
	return Param[T]{kind: KindEntity, efn: fn}
}

// Kind reports the bound source.
func (p Param[T]) Kind() Kind { return p.kind }

// Resolve computes the current value for e.
// e is ignored by Const and Func sources.
func (p Param[T]) Resolve(e domain.Entity) (T, error) {
	switch p.kind {
	case KindConst:
		return p.value, nil
	case KindFunc:
		raw, err := p.fn()
		if err != nil {
			var zero T
			return zero, fmt.Errorf("parameter callback failed: %w", err)
		}
		return convert[T](raw)
	case KindEntity:
		return p.efn(e), nil
	default:
		var zero T
		return zero, ErrUnbound
	}
}

// String renders the parameter for diagnostics. Callbacks are shown by their signature.
func (p Param[T]) String() string {
	switch p.kind {
	case KindConst:
		return fmt.Sprint(p.value)
	case KindFunc:
		return "function()"
	case KindEntity:
		return "function(arrival)"
	default:
		return "<unbound>"
	}
}

func convert[T any](raw any) (T, error) {
	var out T
	if raw == nil {
		return out, fmt.Errorf("%w: callback returned nil", ErrConvert)
	}
	if v, ok := raw.(T); ok {
		return v, nil
	}
	if err := mapstructure.WeakDecode(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %T to %T: %v", ErrConvert, raw, out, err)
	}
	return out, nil
}
