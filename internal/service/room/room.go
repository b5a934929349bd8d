package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/playlistrooms/server/internal/domain"
	"github.com/playlistrooms/server/internal/metrics"
	"github.com/playlistrooms/server/internal/repository/room"
)

// ListRooms returns every active room.
func (s service) ListRooms(ctx context.Context) []domain.Room {
	rooms := s.roomRepo.List()

	active := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsActive {
			active = append(active, r)
		}
	}

	return active
}

// CreateRoom stores the caller-supplied room verbatim and returns it.
func (s service) CreateRoom(ctx context.Context, newRoom domain.Room) (domain.Room, error) {
	if err := s.roomRepo.Create(newRoom); err != nil {
		if errors.Is(err, room.ErrAlreadyExists) {
			return domain.Room{}, ErrRoomAlreadyExists
		}

		return domain.Room{}, fmt.Errorf("failed to create room: %w", err)
	}

	s.logger.InfoContext(ctx, "created room", "room_id", newRoom.Id)
	metrics.RoomsCreated.Inc()
	metrics.RoomsStored.Set(float64(s.roomRepo.Count()))

	return newRoom, nil
}

func (s service) GetRoom(ctx context.Context, roomId string) (domain.Room, error) {
	r, err := s.roomRepo.Get(roomId)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return domain.Room{}, ErrRoomNotFound
		}

		return domain.Room{}, fmt.Errorf("failed to get room: %w", err)
	}

	return r, nil
}

type UpdateRoomParams struct {
	RoomId string
	Patch  map[string]json.RawMessage
}

// UpdateRoom shallow-merges the patch over the room and returns the merged
// room. Leader/participant consistency is the caller's contract; the merge
// is not validated.
func (s service) UpdateRoom(ctx context.Context, params *UpdateRoomParams) (domain.Room, error) {
	updated, err := s.roomRepo.Update(params.RoomId, params.Patch)
	if err != nil {
		switch {
		case errors.Is(err, room.ErrNotFound):
			return domain.Room{}, ErrRoomNotFound
		case errors.Is(err, room.ErrInvalidPayload):
			return domain.Room{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}

		return domain.Room{}, fmt.Errorf("failed to update room: %w", err)
	}

	return updated, nil
}

func (s service) DeleteRoom(ctx context.Context, roomId string) error {
	if err := s.roomRepo.Delete(roomId); err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return ErrRoomNotFound
		}

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.logger.InfoContext(ctx, "deleted room", "room_id", roomId)
	metrics.RoomsStored.Set(float64(s.roomRepo.Count()))

	return nil
}

type LeaveRoomParams struct {
	RoomId string
	UserId string
}

// LeaveRoom removes the participant from the room. Leadership moves to the
// earliest-joined survivor when the leader left; an emptied room is marked
// inactive and left for the reaper.
func (s service) LeaveRoom(ctx context.Context, params *LeaveRoomParams) (domain.Room, error) {
	if params.UserId == "" {
		return domain.Room{}, ErrUserIdRequired
	}

	updated, err := s.roomRepo.Leave(params.RoomId, params.UserId)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return domain.Room{}, ErrRoomNotFound
		}

		return domain.Room{}, fmt.Errorf("failed to leave room: %w", err)
	}

	if !updated.IsActive {
		s.logger.InfoContext(ctx, "room marked for deletion", "room_id", params.RoomId)
	} else {
		s.logger.InfoContext(ctx, "participant left room",
			"room_id", params.RoomId,
			"user_id", params.UserId,
			"leader", updated.Leader,
		)
	}

	return updated, nil
}

// RoomCount reports how many rooms the registry currently holds, active or
// not.
func (s service) RoomCount(ctx context.Context) int {
	return s.roomRepo.Count()
}
