package chain

import "github.com/aretw0/simchain/pkg/domain"

// Walk visits nodes from head following Next until fn returns false, the chain ends, or a
// node is reached a second time. Chains may loop back, so revisits end the walk.
func Walk(head domain.Activity, fn func(domain.Activity) bool) {
	walk(head, domain.Activity.Next, fn)
}

// WalkBack is Walk following Prev.
func WalkBack(tail domain.Activity, fn func(domain.Activity) bool) {
	walk(tail, domain.Activity.Prev, fn)
}

// Collect returns the nodes reachable from head, in visiting order.
func Collect(head domain.Activity) []domain.Activity {
	var out []domain.Activity
	Walk(head, func(a domain.Activity) bool {
		out = append(out, a)
		return true
	})
	return out
}

func walk(start domain.Activity, step func(domain.Activity) domain.Activity, fn func(domain.Activity) bool) {
	seen := make(map[domain.Activity]struct{})
	for n := start; n != nil; n = step(n) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		if !fn(n) {
			return
		}
	}
}
