package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomJSONRoundTrip(t *testing.T) {
	payload := `{
		"id": "room-1",
		"participants": [{"id": "u1", "username": "alice"}, {"id": "u2", "username": "bob"}],
		"leader": "u1",
		"leaderUsername": "alice",
		"isActive": true,
		"createdAt": "2026-08-28T10:00:00Z",
		"playlist": {"videos": [{"video_id": "ABC12345678"}]},
		"currentVideoIndex": 3
	}`

	var room Room
	require.NoError(t, json.Unmarshal([]byte(payload), &room))

	assert.Equal(t, "room-1", room.Id)
	require.Len(t, room.Participants, 2)
	assert.Equal(t, Participant{Id: "u1", Username: "alice"}, room.Participants[0])
	assert.Equal(t, "u1", room.Leader)
	assert.Equal(t, "alice", room.LeaderUsername)
	assert.True(t, room.IsActive)
	assert.Equal(t, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC), room.CreatedAt)
	assert.Contains(t, room.Extra, "playlist")
	assert.Contains(t, room.Extra, "currentVideoIndex")

	out, err := json.Marshal(room)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "room-1", decoded["id"])
	assert.Equal(t, float64(3), decoded["currentVideoIndex"], "opaque fields must round-trip unchanged")
	assert.NotNil(t, decoded["playlist"])
}

func TestRoomMarshalEmpty(t *testing.T) {
	out, err := json.Marshal(Room{Id: "r1"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []any{}, decoded["participants"], "participants must marshal as an empty list, not null")
	assert.NotContains(t, decoded, "leader")
	assert.NotContains(t, decoded, "createdAt")
}

func TestApplyPatch(t *testing.T) {
	room := Room{
		Id:           "r1",
		Participants: []Participant{{Id: "u1", Username: "alice"}},
		Leader:       "u1",
		IsActive:     true,
		Extra:        map[string]json.RawMessage{"theme": json.RawMessage(`"dark"`)},
	}

	patch := map[string]json.RawMessage{
		"leader": json.RawMessage(`"u9"`),
		"theme":  json.RawMessage(`"light"`),
		"volume": json.RawMessage(`11`),
	}
	require.NoError(t, room.ApplyPatch(patch))

	assert.Equal(t, "u9", room.Leader, "the merge is unchecked even when the leader is not a member")
	assert.Equal(t, json.RawMessage(`"light"`), room.Extra["theme"])
	assert.Equal(t, json.RawMessage(`11`), room.Extra["volume"])
	assert.True(t, room.IsActive, "untouched fields keep their values")
}

func TestApplyPatchInvalidField(t *testing.T) {
	var room Room
	err := room.ApplyPatch(map[string]json.RawMessage{
		"participants": json.RawMessage(`"not a list"`),
	})
	require.Error(t, err)
}

func TestLeaveTransfersLeadership(t *testing.T) {
	room := Room{
		Id: "r1",
		Participants: []Participant{
			{Id: "u1", Username: "alice"},
			{Id: "u2", Username: "bob"},
			{Id: "u3", Username: "carol"},
		},
		Leader:         "u1",
		LeaderUsername: "alice",
		IsActive:       true,
	}

	room.Leave("u1")

	require.Len(t, room.Participants, 2)
	assert.Equal(t, "u2", room.Leader, "leadership must pass to the earliest-joined survivor")
	assert.Equal(t, "bob", room.LeaderUsername)
	assert.True(t, room.IsActive)
}

func TestLeaveNonLeader(t *testing.T) {
	room := Room{
		Id: "r1",
		Participants: []Participant{
			{Id: "u1", Username: "alice"},
			{Id: "u2", Username: "bob"},
		},
		Leader:         "u1",
		LeaderUsername: "alice",
		IsActive:       true,
	}

	room.Leave("u2")

	require.Len(t, room.Participants, 1)
	assert.Equal(t, "u1", room.Leader)
	assert.Equal(t, "alice", room.LeaderUsername)
}

func TestLeaveLastParticipant(t *testing.T) {
	room := Room{
		Id:             "r1",
		Participants:   []Participant{{Id: "u1", Username: "alice"}},
		Leader:         "u1",
		LeaderUsername: "alice",
		IsActive:       true,
	}

	room.Leave("u1")

	assert.Empty(t, room.Participants)
	assert.False(t, room.IsActive, "an emptied room is inactivated, not deleted")
}

func TestLeaveNonMemberIsNoOp(t *testing.T) {
	room := Room{
		Id:           "r1",
		Participants: []Participant{{Id: "u1", Username: "alice"}},
		Leader:       "u1",
		IsActive:     true,
	}

	room.Leave("stranger")

	require.Len(t, room.Participants, 1)
	assert.Equal(t, "u1", room.Leader)
	assert.True(t, room.IsActive)
}

func TestClone(t *testing.T) {
	room := Room{
		Id:           "r1",
		Participants: []Participant{{Id: "u1", Username: "alice"}},
		Extra:        map[string]json.RawMessage{"theme": json.RawMessage(`"dark"`)},
	}

	clone := room.Clone()
	clone.Participants[0].Username = "mallory"
	clone.Extra["theme"] = json.RawMessage(`"light"`)

	assert.Equal(t, "alice", room.Participants[0].Username)
	assert.Equal(t, json.RawMessage(`"dark"`), room.Extra["theme"])
}
