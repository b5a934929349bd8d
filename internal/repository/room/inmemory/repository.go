// Package inmemory keeps the room registry in a single mutex-guarded map.
// Rooms never leave the package by reference: every operation works on or
// returns clones, so no caller observes a partially applied mutation.
package inmemory

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/playlistrooms/server/internal/domain"
	"github.com/playlistrooms/server/internal/repository/room"
)

type repo struct {
	rooms map[string]*domain.Room
	mu    sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		rooms: make(map[string]*domain.Room),
	}
}

// List returns a snapshot of every stored room, active or not.
func (r *repo) List() []domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.Room, 0, len(r.rooms))
	for _, stored := range r.rooms {
		list = append(list, stored.Clone())
	}

	return list
}

// Create stores the room verbatim. No defaults are filled in.
func (r *repo) Create(newRoom domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[newRoom.Id]; ok {
		return room.ErrAlreadyExists
	}

	stored := newRoom.Clone()
	r.rooms[newRoom.Id] = &stored

	return nil
}

func (r *repo) Get(roomId string) (domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.rooms[roomId]
	if !ok {
		return domain.Room{}, room.ErrNotFound
	}

	return stored.Clone(), nil
}

// Update shallow-merges the patch over the stored room. The map key stays
// authoritative for the id, and createdAt is immutable; both are restored
// after the merge. Everything else, leader and participants included, is
// merged unchecked.
func (r *repo) Update(roomId string, patch map[string]json.RawMessage) (domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rooms[roomId]
	if !ok {
		return domain.Room{}, room.ErrNotFound
	}

	updated := stored.Clone()
	if err := updated.ApplyPatch(patch); err != nil {
		return domain.Room{}, fmt.Errorf("%w: %v", room.ErrInvalidPayload, err)
	}

	updated.Id = roomId
	updated.CreatedAt = stored.CreatedAt
	r.rooms[roomId] = &updated

	return updated.Clone(), nil
}

func (r *repo) Delete(roomId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[roomId]; !ok {
		return room.ErrNotFound
	}

	delete(r.rooms, roomId)

	return nil
}

// Leave removes the participant and applies the leadership-transfer and
// inactivation rules in one critical section.
func (r *repo) Leave(roomId string, userId string) (domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rooms[roomId]
	if !ok {
		return domain.Room{}, room.ErrNotFound
	}

	stored.Leave(userId)

	return stored.Clone(), nil
}

// Reap deletes every room older than maxAge or without participants and
// returns the removed rooms. The pass holds the lock throughout, so a
// concurrent create cannot be swept in the same pass.
func (r *repo) Reap(maxAge time.Duration) []domain.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var reaped []domain.Room
	for roomId, stored := range r.rooms {
		if now.Sub(stored.CreatedAt) > maxAge || len(stored.Participants) == 0 {
			reaped = append(reaped, stored.Clone())
			delete(r.rooms, roomId)
		}
	}

	return reaped
}

func (r *repo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}
