package lobby

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picnicbox/internal/app/room"
)

func TestNewRosterUpdateEmptyRoster(t *testing.T) {
	msg := NewRosterUpdate("WXYZ", nil, nil)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded struct {
		Type    MessageType `json:"type"`
		Payload struct {
			Users  []RosterEntry    `json:"users"`
			Leader *json.RawMessage `json:"leader"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, TypeRosterUpdate, decoded.Type)
	assert.NotNil(t, decoded.Payload.Users, "users must encode as [], not null")
	assert.Empty(t, decoded.Payload.Users)
	assert.Nil(t, decoded.Payload.Leader, "leader must encode as null when nobody is active")
}

func TestNewRosterUpdateOmitsConnectionDetails(t *testing.T) {
	active := []room.User{
		{ID: "u1", Name: "ALICE", ConnectionID: "conn-secret"},
	}
	leader := &active[0]

	msg := NewRosterUpdate("WXYZ", active, leader)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "conn-secret", "connection ids never reach clients")
	assert.Contains(t, string(raw), `"id":"u1"`)
	assert.Contains(t, string(raw), `"name":"ALICE"`)
}

func TestAnnounceEnvelopeDecoding(t *testing.T) {
	raw := []byte(`{"type":"ANNOUNCE","payload":{"userId":"u1","code":"WXYZ"}}`)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Equal(t, TypeAnnounce, envelope.Type)

	var payload AnnouncePayload
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))

	assert.Equal(t, "u1", payload.UserID)
	assert.Equal(t, "WXYZ", payload.Code)
}
