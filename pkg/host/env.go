package host

import (
	"fmt"
	"math/rand"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the set of variables and functions visible to expressions.
type Env struct {
	vars map[string]any
	rng  *rand.Rand
}

// NewEnv creates an Env seeded with seed. It predefines:
//
//	uniform(min, max)   continuous uniform draw
//	exponential(rate)   exponential draw with the given rate
//	normal(mean, sd)    normal draw
func NewEnv(seed int64) *Env {
	e := &Env{
		vars: make(map[string]any),
		rng:  rand.New(rand.NewSource(seed)),
	}
	e.vars["uniform"] = func(min, max float64) float64 {
		return min + e.rng.Float64()*(max-min)
	}
	e.vars["exponential"] = func(rate float64) float64 {
		return e.rng.ExpFloat64() / rate
	}
	e.vars["normal"] = func(mean, sd float64) float64 {
		return mean + e.rng.NormFloat64()*sd
	}
	return e
}

// Seed resets the random generator behind the distribution functions.
func (e *Env) Seed(seed int64) {
	e.rng.Seed(seed)
}

// Set defines or overrides a variable. Expressions compiled before a new name is defined
// do not see it.
func (e *Env) Set(name string, value any) {
	e.vars[name] = value
}

// Callback compiles src and returns a context-free callback evaluating it on every call.
func Callback(src string, env *Env) (func() (any, error), error) {
	program, err := compile(src, env)
	if err != nil {
		return nil, err
	}
	return func() (any, error) {
		return expr.Run(program, env.vars)
	}, nil
}

func compile(src string, env *Env) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(env.vars))
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", src, err)
	}
	return program, nil
}
