package param_test

import (
	"errors"
	"testing"

	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entity struct {
	name string
	load float64
}

func (e *entity) Name() string { return e.name }

func TestConst_IgnoresEntity(t *testing.T) {
	p := param.Const(3.5)
	require.Equal(t, param.KindConst, p.Kind())

	a, err := p.Resolve(&entity{name: "a"})
	require.NoError(t, err)
	b, err := p.Resolve(&entity{name: "b"})
	require.NoError(t, err)

	assert.Equal(t, 3.5, a)
	assert.Equal(t, a, b)
}

func TestFromEntity_ResolvedOnEveryCall(t *testing.T) {
	calls := 0
	p := param.FromEntity(func(e domain.Entity) float64 {
		calls++
		return e.(*entity).load
	})
	require.Equal(t, param.KindEntity, p.Kind())

	e1 := &entity{name: "e1", load: 1}
	e2 := &entity{name: "e2", load: 2}

	v1, err := p.Resolve(e1)
	require.NoError(t, err)
	v2, err := p.Resolve(e2)
	require.NoError(t, err)

	e1.load = 10
	v3, err := p.Resolve(e1)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 10}, []float64{v1, v2, v3})
	assert.Equal(t, 3, calls)
}

func TestFunc_NotCached(t *testing.T) {
	n := 0
	p := param.Func[int](func() (any, error) {
		n++
		return n, nil
	})

	first, err := p.Resolve(nil)
	require.NoError(t, err)
	second, err := p.Resolve(nil)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestFunc_Conversion(t *testing.T) {
	t.Run("Float To Int", func(t *testing.T) {
		p := param.Func[int](func() (any, error) { return 4.0, nil })
		v, err := p.Resolve(nil)
		require.NoError(t, err)
		assert.Equal(t, 4, v)
	})

	t.Run("String To Float", func(t *testing.T) {
		p := param.Func[float64](func() (any, error) { return "2.5", nil })
		v, err := p.Resolve(nil)
		require.NoError(t, err)
		assert.Equal(t, 2.5, v)
	})

	t.Run("Generic Slice", func(t *testing.T) {
		p := param.Func[[]float64](func() (any, error) { return []any{1, 2.5}, nil })
		v, err := p.Resolve(nil)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2.5}, v)
	})

	t.Run("Scalar To Slice", func(t *testing.T) {
		p := param.Func[[]string](func() (any, error) { return "visits", nil })
		v, err := p.Resolve(nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"visits"}, v)
	})

	t.Run("Unconvertible", func(t *testing.T) {
		p := param.Func[float64](func() (any, error) { return "abc", nil })
		_, err := p.Resolve(nil)
		assert.ErrorIs(t, err, param.ErrConvert)
	})

	t.Run("Nil Result", func(t *testing.T) {
		p := param.Func[float64](func() (any, error) { return nil, nil })
		_, err := p.Resolve(nil)
		assert.ErrorIs(t, err, param.ErrConvert)
	})
}

func TestFunc_CallbackError(t *testing.T) {
	boom := errors.New("boom")
	p := param.Func[float64](func() (any, error) { return nil, boom })

	_, err := p.Resolve(nil)
	assert.ErrorIs(t, err, boom)
}

func TestUnbound(t *testing.T) {
	var zero param.Param[float64]
	_, err := zero.Resolve(nil)
	assert.ErrorIs(t, err, param.ErrUnbound)

	nilFunc := param.Func[float64](nil)
	assert.Equal(t, param.KindUnbound, nilFunc.Kind())

	nilEntity := param.FromEntity[float64](nil)
	_, err = nilEntity.Resolve(nil)
	assert.ErrorIs(t, err, param.ErrUnbound)
}

func TestString(t *testing.T) {
	assert.Equal(t, "5", param.Const(5).String())
	assert.Equal(t, "function()", param.Func[int](func() (any, error) { return 1, nil }).String())
	assert.Equal(t, "function(arrival)", param.FromEntity(func(domain.Entity) int { return 1 }).String())
	assert.Equal(t, "<unbound>", param.Param[int]{}.String())
	assert.Equal(t, "unbound", param.KindUnbound.String())
}
