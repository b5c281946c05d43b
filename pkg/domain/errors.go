package domain

import "errors"

// ErrNegativeCost is returned when a step reports a negative time cost.
var ErrNegativeCost = errors.New("negative time cost")

// ErrNotAttributed is returned when a step needs attributes from an entity that has none.
var ErrNotAttributed = errors.New("entity does not carry attributes")

// ErrEmptyDefinition is returned when a process definition has no head node.
var ErrEmptyDefinition = errors.New("empty process definition")
