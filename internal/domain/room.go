package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"
)

type Participant struct {
	Id       string `json:"id"`
	Username string `json:"username"`
}

// Room is a watch-party session. The registry owns the canonical copy;
// callers only ever see clones.
//
// Beyond the typed fields, a room carries whatever else the creating client
// put in the payload (playlist, current video, settings). Those fields are
// opaque to the server and round-trip through Extra unchanged.
type Room struct {
	Id             string
	Participants   []Participant
	Leader         string
	LeaderUsername string
	IsActive       bool
	CreatedAt      time.Time
	Extra          map[string]json.RawMessage
}

// ApplyPatch shallow-merges the supplied fields over the room. Unknown keys
// land in Extra verbatim. No invariant checking happens here: a caller can
// desynchronize leader and participants through a patch, matching the
// permissive update contract.
func (r *Room) ApplyPatch(patch map[string]json.RawMessage) error {
	for key, raw := range patch {
		var err error
		switch key {
		case "id":
			err = json.Unmarshal(raw, &r.Id)
		case "participants":
			r.Participants = nil
			err = json.Unmarshal(raw, &r.Participants)
		case "leader":
			r.Leader = ""
			err = json.Unmarshal(raw, &r.Leader)
		case "leaderUsername":
			r.LeaderUsername = ""
			err = json.Unmarshal(raw, &r.LeaderUsername)
		case "isActive":
			err = json.Unmarshal(raw, &r.IsActive)
		case "createdAt":
			err = json.Unmarshal(raw, &r.CreatedAt)
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]json.RawMessage)
			}
			r.Extra[key] = raw
		}

		if err != nil {
			return fmt.Errorf("invalid field %q: %w", key, err)
		}
	}

	return nil
}

func (r *Room) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Room{}

	return r.ApplyPatch(fields)
}

func (r Room) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+6)
	for key, raw := range r.Extra {
		out[key] = raw
	}

	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = raw
		return nil
	}

	participants := r.Participants
	if participants == nil {
		participants = []Participant{}
	}

	if err := set("id", r.Id); err != nil {
		return nil, err
	}
	if err := set("participants", participants); err != nil {
		return nil, err
	}
	if err := set("isActive", r.IsActive); err != nil {
		return nil, err
	}
	if r.Leader != "" {
		if err := set("leader", r.Leader); err != nil {
			return nil, err
		}
	}
	if r.LeaderUsername != "" {
		if err := set("leaderUsername", r.LeaderUsername); err != nil {
			return nil, err
		}
	}
	if !r.CreatedAt.IsZero() {
		if err := set("createdAt", r.CreatedAt); err != nil {
			return nil, err
		}
	}

	return json.Marshal(out)
}

func (r Room) Clone() Room {
	clone := r
	clone.Participants = slices.Clone(r.Participants)
	if r.Extra != nil {
		clone.Extra = maps.Clone(r.Extra)
	}

	return clone
}

func (r Room) HasParticipant(userId string) bool {
	return slices.ContainsFunc(r.Participants, func(p Participant) bool {
		return p.Id == userId
	})
}

// Leave removes the participant with the given id. Removing a non-member is
// a no-op. When the leader is no longer a member and participants remain,
// leadership transfers to the earliest-joined survivor. An emptied room is
// marked inactive, not deleted.
func (r *Room) Leave(userId string) {
	r.Participants = slices.DeleteFunc(r.Participants, func(p Participant) bool {
		return p.Id == userId
	})

	if len(r.Participants) == 0 {
		r.IsActive = false
		return
	}

	if !r.HasParticipant(r.Leader) {
		newLeader := r.Participants[0]
		r.Leader = newLeader.Id
		r.LeaderUsername = newLeader.Username
	}
}
