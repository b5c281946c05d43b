package chain

import (
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/ports"
)

// Head returns the first node of def. It reports false when def is nil or empty.
func Head(def ports.Definition) (domain.Activity, bool) {
	if def == nil {
		return nil, false
	}
	h := def.Head()
	return h, h != nil
}

// Tail returns the last node of def. It reports false when def is nil or empty.
func Tail(def ports.Definition) (domain.Activity, bool) {
	if def == nil {
		return nil, false
	}
	t := def.Tail()
	return t, t != nil
}

// Count returns the number of nodes owned by def.
func Count(def ports.Definition) int {
	if def == nil {
		return 0
	}
	return def.Len()
}

// Clone returns a deep copy of def, or nil when def is nil.
func Clone(def ports.Definition) ports.Definition {
	if def == nil {
		return nil
	}
	return def.CloneDefinition()
}
