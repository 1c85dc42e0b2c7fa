package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The bucket predicates are where the temporal semantics live, so pin the
// generated SQL per state.
func TestApplyState(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	build := func(t *testing.T, state State) string {
		t.Helper()
		query, err := applyState(bookingSelect(), state, now)
		require.NoError(t, err)
		sql, _, err := query.ToSql()
		require.NoError(t, err)
		return sql
	}

	t.Run("ALL adds no predicate", func(t *testing.T) {
		sql := build(t, StateAll)
		assert.NotContains(t, sql, "WHERE")
	})

	t.Run("PAST means already ended", func(t *testing.T) {
		sql := build(t, StatePast)
		assert.Contains(t, sql, "b.end_time < ")
		assert.NotContains(t, sql, "b.start_time")
	})

	t.Run("CURRENT means strictly in progress", func(t *testing.T) {
		sql := build(t, StateCurrent)
		assert.Contains(t, sql, "b.start_time < ")
		assert.Contains(t, sql, "b.end_time > ")
	})

	t.Run("FUTURE means not yet started", func(t *testing.T) {
		sql := build(t, StateFuture)
		assert.Contains(t, sql, "b.start_time > ")
		assert.NotContains(t, sql, "b.end_time")
	})

	t.Run("WAITING filters by status", func(t *testing.T) {
		sql := build(t, StateWaiting)
		assert.Contains(t, sql, "b.status = ")
	})

	t.Run("REJECTED includes canceled bookings", func(t *testing.T) {
		sql := build(t, StateRejected)
		assert.Contains(t, sql, "b.status IN ")
	})

	t.Run("unknown state fails", func(t *testing.T) {
		_, err := applyState(bookingSelect(), State("BOGUS"), now)
		assert.ErrorIs(t, err, ErrUnsupportedState)
	})
}
