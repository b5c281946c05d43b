package domain

// Entity is the opaque handle of a simulated actor.
// The core never inspects it; it is passed through to steps and parameter callbacks.
// Implementations are compared by identity when used as bookkeeping keys, so they
// should be pointers.
type Entity interface {
	Name() string
}

// Attributed is implemented by entities that carry numeric attributes.
// Steps that read or write attributes type-assert the Entity they receive.
type Attributed interface {
	Entity
	Attribute(key string) (float64, bool)
	SetAttribute(key string, value float64)
}
