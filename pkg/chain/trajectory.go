package chain

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/ports"
)

// Trajectory owns an ordered chain of activities.
// Every node belongs to exactly one Trajectory; appending a node that is already linked
// into another chain corrupts both.
type Trajectory struct {
	name  string
	nodes []domain.Activity
}

// New creates an empty trajectory.
func New(name string) *Trajectory {
	return &Trajectory{name: name}
}

// Name returns the trajectory name.
func (t *Trajectory) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Append links acts after the current tail, in order.
func (t *Trajectory) Append(acts ...domain.Activity) *Trajectory {
	for _, a := range acts {
		if a == nil {
			continue
		}
		if tail := t.Tail(); tail != nil {
			tail.SetNext(a)
			a.SetPrev(tail)
		}
		t.nodes = append(t.nodes, a)
	}
	return t
}

// Join appends clones of every node of other. other is left untouched.
func (t *Trajectory) Join(other *Trajectory) *Trajectory {
	if other == nil {
		return t
	}
	for _, n := range other.nodes {
		t.Append(n.Clone())
	}
	return t
}

// Head returns the first node, or nil.
func (t *Trajectory) Head() domain.Activity {
	if t == nil || len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[0]
}

// Tail returns the last node, or nil.
func (t *Trajectory) Tail() domain.Activity {
	if t == nil || len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[len(t.nodes)-1]
}

// Len returns the number of nodes.
func (t *Trajectory) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Nodes returns the owned nodes in append order. The slice is a copy; the nodes are not.
func (t *Trajectory) Nodes() []domain.Activity {
	if t == nil {
		return nil
	}
	out := make([]domain.Activity, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Clone returns an independent trajectory: each node is cloned unlinked, then the copies
// are relinked in the same order. A nil trajectory clones to nil.
func (t *Trajectory) Clone() *Trajectory {
	if t == nil {
		return nil
	}
	c := &Trajectory{
		name:  t.name,
		nodes: make([]domain.Activity, 0, len(t.nodes)),
	}
	for _, n := range t.nodes {
		c.Append(n.Clone())
	}
	return c
}

// CloneDefinition implements ports.Definition.
func (t *Trajectory) CloneDefinition() ports.Definition {
	if t == nil {
		return nil
	}
	return t.Clone()
}

// Print renders the trajectory header followed by every node.
func (t *Trajectory) Print(w io.Writer, indent int, verbose bool) {
	fmt.Fprintf(w, "%strajectory: %s, %d activities\n", strings.Repeat(" ", indent), t.name, t.Len())
	for _, n := range t.nodes {
		n.Print(w, indent, verbose, false)
	}
}

var _ ports.Definition = (*Trajectory)(nil)
