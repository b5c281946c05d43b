package activities_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/simchain/internal/testutils"
	"github.com/aretw0/simchain/pkg/activities"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArrival(name string) *testutils.Entity {
	return testutils.NewEntity(name)
}

type bare struct{}

func (bare) Name() string { return "bare" }

func TestTimeout_Run(t *testing.T) {
	t.Run("Constant", func(t *testing.T) {
		step := activities.NewTimeout(param.Const(2.5))
		cost, err := step.Run(newArrival("a"))
		require.NoError(t, err)
		assert.Equal(t, 2.5, cost)
	})

	t.Run("Entity Aware", func(t *testing.T) {
		step := activities.NewTimeout(param.FromEntity(func(e domain.Entity) float64 {
			v, _ := e.(*testutils.Entity).Attribute("service")
			return v
		}))
		a := newArrival("a")
		a.Attrs["service"] = 7
		cost, err := step.Run(a)
		require.NoError(t, err)
		assert.Equal(t, 7.0, cost)
	})

	t.Run("Unbound", func(t *testing.T) {
		step := activities.NewTimeout(param.Param[float64]{})
		_, err := step.Run(newArrival("a"))
		assert.ErrorIs(t, err, param.ErrUnbound)
	})
}

func TestSetAttribute_Run(t *testing.T) {
	tests := []struct {
		name  string
		mod   rune
		start map[string]float64
		want  map[string]float64
	}{
		{name: "Replace", mod: 0, start: map[string]float64{"x": 4}, want: map[string]float64{"x": 3, "y": 5}},
		{name: "Add", mod: '+', start: map[string]float64{"x": 4}, want: map[string]float64{"x": 7, "y": 6}},
		{name: "Multiply", mod: '*', start: map[string]float64{"x": 4}, want: map[string]float64{"x": 12, "y": 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := activities.NewSetAttribute(
				param.Const([]string{"x", "y"}),
				param.Const([]float64{3, 5}),
				tt.mod,
				1,
			)
			a := newArrival("a")
			for k, v := range tt.start {
				a.Attrs[k] = v
			}

			cost, err := step.Run(a)
			require.NoError(t, err)
			assert.Zero(t, cost)
			assert.Equal(t, tt.want, a.Attrs)
		})
	}
}

func TestSetAttribute_Errors(t *testing.T) {
	t.Run("Length Mismatch", func(t *testing.T) {
		step := activities.NewSetAttribute(param.Const([]string{"x"}), param.Const([]float64{1, 2}), '+', 0)
		_, err := step.Run(newArrival("a"))
		assert.ErrorIs(t, err, activities.ErrLengthMismatch)
	})

	t.Run("Entity Without Attributes", func(t *testing.T) {
		step := activities.NewSetAttribute(param.Const([]string{"x"}), param.Const([]float64{1}), '+', 0)
		_, err := step.Run(bare{})
		assert.ErrorIs(t, err, domain.ErrNotAttributed)
	})
}

func TestLog_Run(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	step := activities.NewLog(param.Const("arrived"), slog.LevelInfo, logger)
	step.Tag = "door"

	cost, err := step.Run(newArrival("patient0"))
	require.NoError(t, err)
	assert.Zero(t, cost)
	assert.Contains(t, buf.String(), "msg=arrived")
	assert.Contains(t, buf.String(), "arrival=patient0")
	assert.Contains(t, buf.String(), "tag=door")

	// The clone keeps the logger.
	buf.Reset()
	_, err = step.Clone().Run(newArrival("patient1"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "arrival=patient1")
}

func TestLog_NilLoggerDiscards(t *testing.T) {
	step := activities.NewLog(param.Const("quiet"), slog.LevelInfo, nil)
	_, err := step.Run(newArrival("a"))
	assert.NoError(t, err)
}

func TestClone_Fidelity(t *testing.T) {
	rb := activities.NewRollbackTo("loop", 3)
	rb.Check = param.Const(true)

	steps := []domain.Activity{
		activities.NewTimeout(param.Const(4.0)),
		activities.NewSetAttribute(param.Const([]string{"k"}), param.Const([]float64{2}), '*', 1),
		activities.NewLog(param.Const("hello"), slog.LevelWarn, nil),
		rb,
	}

	for _, s := range steps {
		t.Run(s.Node().Name(), func(t *testing.T) {
			s.Node().Tag = "tagged"
			s.Node().Count = 5
			s.Node().Priority = 9
			s.SetNext(activities.NewTimeout(param.Const(1.0)))
			s.SetPrev(activities.NewTimeout(param.Const(1.0)))

			c := s.Clone()

			assert.IsType(t, s, c)
			assert.NotSame(t, s, c)
			assert.Nil(t, c.Next())
			assert.Nil(t, c.Prev())
			assert.Equal(t, s.Node().Name(), c.Node().Name())
			assert.Equal(t, "tagged", c.Node().Tag)
			assert.Equal(t, 5, c.Node().Count)
			assert.Equal(t, 9, c.Node().Priority)

			var want, got bytes.Buffer
			s.Print(&want, 0, false, true)
			c.Print(&got, 0, false, true)
			assert.Equal(t, want.String(), got.String(), "specialised state must survive the clone")
		})
	}
}

// buildLoop returns head -> body -> rollback, with head tagged "loop".
func buildLoop(rb *activities.Rollback) (*chain.Trajectory, domain.Activity, domain.Activity) {
	head := activities.NewTimeout(param.Const(1.0))
	head.Tag = "loop"
	body := activities.NewTimeout(param.Const(2.0))
	tail := activities.NewTimeout(param.Const(3.0))
	traj := chain.New("loop").Append(head, body, rb, tail)
	return traj, head, tail
}

func TestRollback_Times(t *testing.T) {
	rb := activities.NewRollback(2, 2)
	_, head, tail := buildLoop(rb)
	a := newArrival("a")

	for pass := 0; pass < 2; pass++ {
		_, err := rb.Run(a)
		require.NoError(t, err)
		assert.Same(t, head, rb.NextFor(a), "pass %d goes back", pass)
	}
	left, ok := rb.Pending(a)
	require.True(t, ok)
	assert.Zero(t, left)

	_, err := rb.Run(a)
	require.NoError(t, err)
	assert.Same(t, tail, rb.NextFor(a))

	_, ok = rb.Pending(a)
	assert.False(t, ok, "counter dropped once the entity passes through")
}

func TestRollback_PerEntity(t *testing.T) {
	rb := activities.NewRollback(2, 1)
	_, head, tail := buildLoop(rb)
	a, b := newArrival("a"), newArrival("b")

	_, _ = rb.Run(a)
	assert.Same(t, head, rb.NextFor(a))

	_, _ = rb.Run(b)
	assert.Same(t, head, rb.NextFor(b), "b has its own counter")

	_, _ = rb.Run(a)
	assert.Same(t, tail, rb.NextFor(a))
}

func TestRollback_Target(t *testing.T) {
	rb := activities.NewRollbackTo("loop", activities.Infinite)
	_, head, _ := buildLoop(rb)
	a := newArrival("a")

	for i := 0; i < 5; i++ {
		_, err := rb.Run(a)
		require.NoError(t, err)
		assert.Same(t, head, rb.NextFor(a))
	}
	_, tracked := rb.Pending(a)
	assert.False(t, tracked, "infinite rollbacks keep no counter")
}

func TestRollback_AmountStopsAtHead(t *testing.T) {
	rb := activities.NewRollback(10, 1)
	_, head, _ := buildLoop(rb)
	a := newArrival("a")

	_, _ = rb.Run(a)
	assert.Same(t, head, rb.NextFor(a))
}

func TestRollback_Check(t *testing.T) {
	rb := activities.NewRollback(1, 0)
	rb.Check = param.FromEntity(func(e domain.Entity) bool {
		v, _ := e.(*testutils.Entity).Attribute("retry")
		return v > 0
	})
	traj, _, tail := buildLoop(rb)
	body := traj.Nodes()[1]

	a := newArrival("a")
	a.Attrs["retry"] = 1
	_, _ = rb.Run(a)
	assert.Same(t, body, rb.NextFor(a))

	a.Attrs["retry"] = 0
	_, _ = rb.Run(a)
	assert.Same(t, tail, rb.NextFor(a))
}

func TestRollback_Remove(t *testing.T) {
	rb := activities.NewRollback(1, 3)
	_, _, tail := buildLoop(rb)
	a := newArrival("a")

	_, _ = rb.Run(a)
	_, ok := rb.Pending(a)
	require.True(t, ok)

	rb.Remove(a)

	_, ok = rb.Pending(a)
	assert.False(t, ok)
	assert.Same(t, tail, rb.NextFor(a), "pending jump is purged too")
}

func TestRollback_CloneDropsBookkeeping(t *testing.T) {
	rb := activities.NewRollback(1, 3)
	buildLoop(rb)
	a := newArrival("a")
	_, _ = rb.Run(a)

	c := rb.Clone().(*activities.Rollback)
	_, ok := c.Pending(a)
	assert.False(t, ok)
	assert.Equal(t, 3, c.Times)
	assert.Equal(t, 1, c.Amount)
}

func TestPrint_Steps(t *testing.T) {
	var buf bytes.Buffer
	activities.NewSetAttribute(param.Const([]string{"x"}), param.Const([]float64{1}), 0, 0).Print(&buf, 0, false, false)
	assert.Contains(t, buf.String(), "mod: N/A")

	buf.Reset()
	activities.NewRollback(2, activities.Infinite).Print(&buf, 0, false, false)
	assert.Contains(t, buf.String(), "target: 2, times: Inf }")
}
