package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"minis-storefront/internal/dashboard"
)

func TestMutation_CommitCycle(t *testing.T) {
	var m dashboard.Mutation[[]string]
	assert.Equal(t, dashboard.MutationIdle, m.State())

	require.NoError(t, m.Begin([]string{"a"}))
	assert.Equal(t, dashboard.MutationPending, m.State())
	assert.ErrorIs(t, m.Begin([]string{"b"}), dashboard.ErrMutationPending)

	m.Commit()
	assert.Equal(t, dashboard.MutationCommitted, m.State())

	_, ok := m.Rollback()
	assert.False(t, ok, "nothing pending after commit")
}

func TestMutation_RollbackReturnsSnapshot(t *testing.T) {
	var m dashboard.Mutation[[]string]
	require.NoError(t, m.Begin([]string{"a", "b"}))

	snapshot, ok := m.Rollback()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, snapshot)
	assert.Equal(t, dashboard.MutationRolledBack, m.State())
	assert.Equal(t, "rolled-back", m.State().String())

	require.NoError(t, m.Begin(nil), "a finished mutation can start again")
}
