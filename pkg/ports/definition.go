package ports

import "github.com/aretw0/simchain/pkg/domain"

// Definition is a process definition that owns a chain of activities.
// The core only reads it; building, relinking and lifetime belong to the implementation.
type Definition interface {
	// Head returns the first node, or nil when the definition is empty.
	Head() domain.Activity

	// Tail returns the last node, or nil when the definition is empty.
	Tail() domain.Activity

	// Len returns the number of owned nodes.
	Len() int

	// CloneDefinition returns a fully independent copy whose nodes share no identity
	// with the receiver.
	CloneDefinition() Definition
}
