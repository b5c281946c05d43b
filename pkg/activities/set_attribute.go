package activities

import (
	"fmt"
	"io"

	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/operator"
	"github.com/aretw0/simchain/pkg/param"
)

// SetAttribute writes numeric attributes on the entity.
// Each value is merged into the current one with Mod ('+' or '*'); any other modifier
// replaces it. Attributes that do not exist yet start from Init.
type SetAttribute struct {
	domain.Base
	Keys   param.Param[[]string]
	Values param.Param[[]float64]
	Mod    rune
	Init   float64
}

// NewSetAttribute creates a SetAttribute step.
func NewSetAttribute(keys param.Param[[]string], values param.Param[[]float64], mod rune, init float64) *SetAttribute {
	return &SetAttribute{
		Base:   domain.NewBase("SetAttribute", 0),
		Keys:   keys,
		Values: values,
		Mod:    mod,
		Init:   init,
	}
}

func (s *SetAttribute) Run(e domain.Entity) (float64, error) {
	target, ok := e.(domain.Attributed)
	if !ok {
		return 0, fmt.Errorf("%s: %w", e.Name(), domain.ErrNotAttributed)
	}

	keys, err := s.Keys.Resolve(e)
	if err != nil {
		return 0, fmt.Errorf("attribute keys: %w", err)
	}
	values, err := s.Values.Resolve(e)
	if err != nil {
		return 0, fmt.Errorf("attribute values: %w", err)
	}
	if len(keys) != len(values) {
		return 0, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}

	for i, k := range keys {
		current, ok := target.Attribute(k)
		if !ok {
			current = s.Init
		}
		target.SetAttribute(k, operator.Combine(s.Mod, current, values[i]))
	}
	return 0, nil
}

func (s *SetAttribute) Clone() domain.Activity {
	c := *s
	c.Base = s.Base.Copy()
	return &c
}

func (s *SetAttribute) Print(w io.Writer, indent int, verbose, brief bool) {
	mod := "N/A"
	if s.Mod != 0 {
		mod = string(s.Mod)
	}
	s.Base.Print(w, indent, verbose, brief)
	domain.PrintArgs(w, brief, true, "keys", s.Keys, "values", s.Values, "mod", mod, "init", s.Init)
}
