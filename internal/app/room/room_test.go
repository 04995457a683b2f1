package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveUsersPreservesStoredOrder(t *testing.T) {
	rm := &Room{
		Code:     "WXYZ",
		LeaderID: "u1",
		Users: []User{
			{ID: "u1", Name: "ALICE", ConnectionID: "c1"},
			{ID: "u2", Name: "BOB"},
			{ID: "u3", Name: "CAROL", ConnectionID: "c3"},
		},
	}

	active := rm.ActiveUsers()

	require.Len(t, active, 2)
	assert.Equal(t, "u1", active[0].ID)
	assert.Equal(t, "u3", active[1].ID)
}

func TestEffectiveLeaderStoredLeaderActive(t *testing.T) {
	rm := &Room{
		Code:     "WXYZ",
		LeaderID: "u2",
		Users: []User{
			{ID: "u1", Name: "ALICE", ConnectionID: "c1"},
			{ID: "u2", Name: "BOB", ConnectionID: "c2"},
		},
	}

	leader := rm.EffectiveLeader()

	require.NotNil(t, leader)
	assert.Equal(t, "u2", leader.ID)
}

func TestEffectiveLeaderFallsBackToFirstActive(t *testing.T) {
	rm := &Room{
		Code:     "WXYZ",
		LeaderID: "u1",
		Users: []User{
			{ID: "u1", Name: "ALICE"},
			{ID: "u2", Name: "BOB", ConnectionID: "c2"},
			{ID: "u3", Name: "CAROL", ConnectionID: "c3"},
		},
	}

	leader := rm.EffectiveLeader()

	require.NotNil(t, leader)
	assert.Equal(t, "u2", leader.ID, "first remaining active member in stored order leads")
}

func TestEffectiveLeaderRevertsOnReconnect(t *testing.T) {
	rm := &Room{
		Code:     "WXYZ",
		LeaderID: "u1",
		Users: []User{
			{ID: "u1", Name: "ALICE"},
			{ID: "u2", Name: "BOB", ConnectionID: "c2"},
		},
	}

	require.Equal(t, "u2", rm.EffectiveLeader().ID)

	// original leader comes back; LeaderID was never rewritten
	rm.Users[0].ConnectionID = "c1-new"

	assert.Equal(t, "u1", rm.EffectiveLeader().ID)
}

func TestEffectiveLeaderEmptyRoster(t *testing.T) {
	rm := &Room{
		Code:     "WXYZ",
		LeaderID: "u1",
		Users: []User{
			{ID: "u1", Name: "ALICE"},
		},
	}

	assert.Nil(t, rm.EffectiveLeader())
}

func TestUserByID(t *testing.T) {
	rm := &Room{
		Users: []User{
			{ID: "u1", Name: "ALICE"},
			{ID: "u2", Name: "BOB"},
		},
	}

	assert.Equal(t, "BOB", rm.UserByID("u2").Name)
	assert.Nil(t, rm.UserByID("missing"))
}
