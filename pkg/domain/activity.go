package domain

import "io"

// Activity is one executable step of a trajectory.
//
// Concrete steps embed Base, which provides the link accessors, the default Remove and the
// header of Print. A step must implement Run and Clone itself; Clone must return a copy of
// the step's dynamic type with both links reset (use Base.Copy).
type Activity interface {
	// Node exposes the shared attributes of the step.
	Node() *Base

	// Run executes the step for the given entity and returns the simulated time it costs.
	// The cost must not be negative.
	Run(e Entity) (float64, error)

	Next() Activity
	SetNext(a Activity)
	Prev() Activity
	SetPrev(a Activity)

	// Clone returns an unlinked copy of the step.
	Clone() Activity

	// Remove drops any bookkeeping the step keeps for e.
	// It is called when e is discarded before leaving the step on its own.
	Remove(e Entity)

	// Print renders the step for diagnostics.
	Print(w io.Writer, indent int, verbose, brief bool)
}

// Router is implemented by steps that pick the next node per entity (e.g. rollback).
// Schedulers ask a Router for the next node after Run instead of calling Next.
type Router interface {
	NextFor(e Entity) Activity
}

// Base holds the attributes shared by every step and its chain links.
// The links are non-owning: setting or clearing them never releases the linked node.
type Base struct {
	name string

	Tag      string
	Count    int
	Priority int

	next Activity
	prev Activity
}

// NewBase creates the shared part of a step. Count defaults to 1.
func NewBase(name string, priority int) Base {
	return Base{
		name:     name,
		Count:    1,
		Priority: priority,
	}
}

// Name returns the display name of the step. It never changes after construction.
func (b *Base) Name() string { return b.name }

// Node returns b itself so that embedding types satisfy Activity.
func (b *Base) Node() *Base { return b }

func (b *Base) Next() Activity     { return b.next }
func (b *Base) SetNext(a Activity) { b.next = a }
func (b *Base) Prev() Activity     { return b.prev }
func (b *Base) SetPrev(a Activity) { b.prev = a }

// Remove is a no-op; steps with per-entity state override it.
func (b *Base) Remove(Entity) {}

// Copy returns a value copy of b with both links cleared.
// A copy is never pre-linked into any chain.
func (b *Base) Copy() Base {
	c := *b
	c.next = nil
	c.prev = nil
	return c
}
