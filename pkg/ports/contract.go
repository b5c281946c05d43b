package ports

import (
	"context"
	"testing"

	"github.com/aretw0/simchain/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMonitorStoreContract runs a suite of tests to verify that a MonitorStore implementation
// adheres to the defined interface contract. The store is reset before each case.
func RunMonitorStoreContract(t *testing.T, store MonitorStore) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		require.NoError(t, store.Reset(ctx))

		recs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("Record and List", func(t *testing.T) {
		require.NoError(t, store.Reset(ctx))

		first := domain.ArrivalRecord{Name: "patient0", StartTime: 0, EndTime: 4.5, ActivityTime: 4.5, Finished: true}
		second := domain.ArrivalRecord{Name: "patient1", StartTime: 1, EndTime: 2, ActivityTime: 0.5, Finished: false}

		require.NoError(t, store.Record(ctx, first), "Record should not return error")
		require.NoError(t, store.Record(ctx, second))

		recs, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, first, recs[0])
		assert.Equal(t, second, recs[1])
	})

	t.Run("List Is A Copy", func(t *testing.T) {
		require.NoError(t, store.Reset(ctx))
		require.NoError(t, store.Record(ctx, domain.ArrivalRecord{Name: "a", Finished: true}))

		recs, err := store.List(ctx)
		require.NoError(t, err)
		recs[0].Name = "mutated"

		again, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a", again[0].Name)
	})

	t.Run("Reset", func(t *testing.T) {
		require.NoError(t, store.Record(ctx, domain.ArrivalRecord{Name: "b"}))
		require.NoError(t, store.Reset(ctx), "Reset should not return error")

		recs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}
