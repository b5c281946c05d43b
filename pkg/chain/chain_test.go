package chain_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/dsl"
	"github.com/aretw0/simchain/pkg/param"
	"github.com/aretw0/simchain/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type step struct {
	domain.Base
	state int
}

func newStep(name string, priority int) *step {
	return &step{Base: domain.NewBase(name, priority)}
}

func (s *step) Run(domain.Entity) (float64, error) { return 0, nil }

func (s *step) Clone() domain.Activity {
	return &step{Base: s.Base.Copy(), state: s.state}
}

func names(acts []domain.Activity) []string {
	out := make([]string, 0, len(acts))
	for _, a := range acts {
		out = append(out, a.Node().Name())
	}
	return out
}

func TestAccessors_Empty(t *testing.T) {
	for name, def := range map[string]ports.Definition{
		"Nil Interface": nil,
		"Empty":         chain.New("empty"),
		"Nil Pointer":   (*chain.Trajectory)(nil),
	} {
		t.Run(name, func(t *testing.T) {
			h, ok := chain.Head(def)
			assert.False(t, ok)
			assert.Nil(t, h)

			tl, ok := chain.Tail(def)
			assert.False(t, ok)
			assert.Nil(t, tl)

			assert.Zero(t, chain.Count(def))

			var cl ports.Definition
			require.NotPanics(t, func() { cl = chain.Clone(def) })
			if name == "Empty" {
				assert.Zero(t, chain.Count(cl))
			} else {
				assert.Nil(t, cl)
			}
		})
	}
	assert.Nil(t, chain.Clone(nil))
	assert.Nil(t, chain.Clone((*chain.Trajectory)(nil)))
	assert.Nil(t, (*chain.Trajectory)(nil).Clone())
	assert.Empty(t, (*chain.Trajectory)(nil).Nodes())
	assert.Empty(t, (*chain.Trajectory)(nil).Name())
}

func TestAccessors_HeadTailCount(t *testing.T) {
	a, b, c := newStep("A", 0), newStep("B", 0), newStep("C", 0)
	traj := chain.New("abc").Append(a, b, c)

	h, ok := chain.Head(traj)
	require.True(t, ok)
	assert.Same(t, a, h)

	tl, ok := chain.Tail(traj)
	require.True(t, ok)
	assert.Same(t, c, tl)

	assert.Equal(t, 3, chain.Count(traj))
}

func TestAppend_LinksBothWays(t *testing.T) {
	a, b, c := newStep("A", 0), newStep("B", 0), newStep("C", 0)
	traj := chain.New("abc").Append(a, nil, b, c)

	assert.Equal(t, []string{"A", "B", "C"}, names(chain.Collect(traj.Head())))

	var back []string
	chain.WalkBack(traj.Tail(), func(n domain.Activity) bool {
		back = append(back, n.Node().Name())
		return true
	})
	assert.Equal(t, []string{"C", "B", "A"}, back)
	assert.Nil(t, a.Prev())
	assert.Nil(t, c.Next())
}

func TestClone_TwoNodes(t *testing.T) {
	seize := newStep("seize", 1)
	release := newStep("release", 0)
	seize.Tag = "s"
	release.Count = 2
	orig := chain.New("pair").Append(seize, release)

	cl := chain.Clone(orig)
	require.NotNil(t, cl)
	require.Equal(t, 2, chain.Count(cl))

	ch, _ := chain.Head(cl)
	ct, _ := chain.Tail(cl)

	assert.NotSame(t, seize, ch)
	assert.NotSame(t, release, ct)
	for i, pair := range [][2]domain.Activity{{seize, ch}, {release, ct}} {
		o, c := pair[0].Node(), pair[1].Node()
		assert.Equal(t, o.Name(), c.Name(), "node %d", i)
		assert.Equal(t, o.Priority, c.Priority, "node %d", i)
		assert.Equal(t, o.Tag, c.Tag, "node %d", i)
		assert.Equal(t, o.Count, c.Count, "node %d", i)
	}

	// Relinked among themselves, open at both ends.
	assert.Nil(t, ch.Prev())
	assert.Same(t, ct, ch.Next())
	assert.Same(t, ch, ct.Prev())
	assert.Nil(t, ct.Next())
}

func TestClone_Independence(t *testing.T) {
	const n = 6
	orig := chain.New("long")
	for i := 0; i < n; i++ {
		s := newStep("step", i)
		s.state = i * 10
		orig.Append(s)
	}

	cl := orig.Clone()
	on, cn := orig.Nodes(), cl.Nodes()
	require.Len(t, cn, n)

	seen := make(map[domain.Activity]struct{})
	for _, a := range on {
		seen[a] = struct{}{}
	}
	for i, c := range cn {
		_, shared := seen[c]
		assert.False(t, shared, "node %d shared between chains", i)
		assert.Equal(t, on[i].(*step).state, c.(*step).state)
		assert.Equal(t, on[i].Node().Priority, c.Node().Priority)
	}

	// Mutating the clone leaves the original alone.
	cn[0].SetNext(nil)
	cn[1].Node().Tag = "changed"
	cn[1].(*step).state = -1

	assert.Len(t, chain.Collect(orig.Head()), n)
	assert.Empty(t, on[1].Node().Tag)
	assert.Equal(t, 10, on[1].(*step).state)
	assert.Len(t, chain.Collect(cl.Head()), 1)
}

func TestJoin_ClonesOther(t *testing.T) {
	sub := dsl.New("sub").Timeout(param.Const(1.0)).Tag("sub").Build()
	main := dsl.New("main").Timeout(param.Const(2.0)).Join(sub).Tag("joined").Build()

	require.Equal(t, 2, main.Len())
	assert.NotSame(t, sub.Head(), main.Tail())
	assert.Equal(t, "joined", main.Tail().Node().Tag)
	assert.Equal(t, "sub", sub.Head().Node().Tag)
	assert.Nil(t, sub.Head().Prev())
}

func TestWalk_StopsOnCycle(t *testing.T) {
	a, b, c := newStep("A", 0), newStep("B", 0), newStep("C", 0)
	chain.New("loop").Append(a, b, c)
	c.SetNext(a)

	assert.Equal(t, []string{"A", "B", "C"}, names(chain.Collect(a)))

	var visited int
	chain.Walk(a, func(domain.Activity) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

func TestTrajectory_Print(t *testing.T) {
	traj := dsl.New("print").Timeout(param.Const(3.0)).Tag("wait").Build()

	var buf bytes.Buffer
	traj.Print(&buf, 0, false)

	out := buf.String()
	assert.Contains(t, out, "trajectory: print, 1 activities")
	assert.Contains(t, out, "{ Activity: Timeout      | [wait] delay: 3 }")
}
