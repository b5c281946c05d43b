package activities

import (
	"fmt"
	"io"

	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
)

// Infinite disables the repetition limit of a Rollback.
const Infinite = -1

// Rollback sends the entity back along the chain.
//
// The destination is the nearest previous node tagged Target, or Amount nodes back when no
// target is set (stopping at the head). When Check is bound it decides each pass; otherwise
// every entity is sent back Times times before passing through. Counters are kept per
// entity and dropped when the entity passes through or is removed.
type Rollback struct {
	domain.Base
	Amount int
	Target string
	Times  int
	Check  param.Param[bool]

	pending map[domain.Entity]int
	jump    map[domain.Entity]struct{}
}

// NewRollback creates a Rollback going amount nodes back, times times.
func NewRollback(amount, times int) *Rollback {
	return &Rollback{
		Base:   domain.NewBase("Rollback", 0),
		Amount: amount,
		Times:  times,
	}
}

// NewRollbackTo creates a Rollback going back to the nearest previous node tagged target.
func NewRollbackTo(target string, times int) *Rollback {
	r := NewRollback(0, times)
	r.Target = target
	return r
}

func (r *Rollback) Run(e domain.Entity) (float64, error) {
	back, err := r.decide(e)
	if err != nil {
		return 0, err
	}
	if back {
		if r.jump == nil {
			r.jump = make(map[domain.Entity]struct{})
		}
		r.jump[e] = struct{}{}
	}
	return 0, nil
}

func (r *Rollback) decide(e domain.Entity) (bool, error) {
	if r.Check.Kind() != param.KindUnbound {
		ok, err := r.Check.Resolve(e)
		if err != nil {
			return false, fmt.Errorf("rollback check: %w", err)
		}
		return ok, nil
	}
	if r.Times < 0 {
		return true, nil
	}

	left, seen := r.pending[e]
	if !seen {
		left = r.Times
	}
	if left == 0 {
		delete(r.pending, e)
		return false, nil
	}
	if r.pending == nil {
		r.pending = make(map[domain.Entity]int)
	}
	r.pending[e] = left - 1
	return true, nil
}

// NextFor implements domain.Router.
func (r *Rollback) NextFor(e domain.Entity) domain.Activity {
	if _, ok := r.jump[e]; ok {
		delete(r.jump, e)
		if dest := r.Destination(); dest != nil {
			return dest
		}
	}
	return r.Next()
}

// Destination returns the node an entity sent back lands on, or nil when no previous
// node carries Target.
func (r *Rollback) Destination() domain.Activity {
	if r.Target != "" {
		for n := r.Prev(); n != nil; n = n.Prev() {
			if n.Node().Tag == r.Target {
				return n
			}
		}
		return nil
	}
	var n domain.Activity = r
	for i := 0; i < r.Amount && n.Prev() != nil; i++ {
		n = n.Prev()
	}
	return n
}

// Pending returns how many more times e will be sent back, if e is being tracked.
func (r *Rollback) Pending(e domain.Entity) (int, bool) {
	left, ok := r.pending[e]
	return left, ok
}

// Remove drops the counters kept for e.
func (r *Rollback) Remove(e domain.Entity) {
	delete(r.pending, e)
	delete(r.jump, e)
}

func (r *Rollback) Clone() domain.Activity {
	return &Rollback{
		Base:   r.Base.Copy(),
		Amount: r.Amount,
		Target: r.Target,
		Times:  r.Times,
		Check:  r.Check,
	}
}

func (r *Rollback) Print(w io.Writer, indent int, verbose, brief bool) {
	var target any = r.Amount
	if r.Target != "" {
		target = r.Target
	}
	var times any = r.Times
	if r.Times < 0 {
		times = "Inf"
	}
	r.Base.Print(w, indent, verbose, brief)
	if r.Check.Kind() != param.KindUnbound {
		domain.PrintArgs(w, brief, true, "target", target, "check", r.Check)
		return
	}
	domain.PrintArgs(w, brief, true, "target", target, "times", times)
}

var _ domain.Router = (*Rollback)(nil)
