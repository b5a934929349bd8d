package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playlistrooms/server/internal/domain"
	roomservice "github.com/playlistrooms/server/internal/service/room"
	"github.com/playlistrooms/server/pkg/rest"
)

func (c controller) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms := c.roomService.ListRooms(r.Context())

	rest.WriteJSON(w, http.StatusOK, rooms)
}

type validateCreateRoom struct {
	Id string `json:"id" validate:"required"`
}

func (c controller) createRoom(w http.ResponseWriter, r *http.Request) {
	// the payload is read twice: once for validation of the known fields,
	// once as the verbatim room record
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	var req validateCreateRoom
	if err := json.Unmarshal(body, &req); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	var newRoom domain.Room
	if err := json.Unmarshal(body, &newRoom); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	created, err := c.roomService.CreateRoom(r.Context(), newRoom)
	if err != nil {
		c.writeError(r.Context(), w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"success": true,
		"room_id": created.Id,
		"room":    created,
	})
}

func (c controller) getRoom(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")

	room, err := c.roomService.GetRoom(r.Context(), roomId)
	if err != nil {
		c.writeError(r.Context(), w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, room)
}

func (c controller) updateRoom(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")

	var patch map[string]json.RawMessage
	if err := rest.ReadJSON(r, &patch); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	updated, err := c.roomService.UpdateRoom(r.Context(), &roomservice.UpdateRoomParams{
		RoomId: roomId,
		Patch:  patch,
	})
	if err != nil {
		c.writeError(r.Context(), w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"success": true,
		"room":    updated,
	})
}

func (c controller) deleteRoom(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")

	if err := c.roomService.DeleteRoom(r.Context(), roomId); err != nil {
		c.writeError(r.Context(), w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"success": true})
}

type validateLeaveRoom struct {
	UserId string `json:"userId" validate:"required"`
}

func (c controller) leaveRoom(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")

	var req validateLeaveRoom
	if err := rest.ReadJSON(r, &req); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	room, err := c.roomService.LeaveRoom(r.Context(), &roomservice.LeaveRoomParams{
		RoomId: roomId,
		UserId: req.UserId,
	})
	if err != nil {
		c.writeError(r.Context(), w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"success": true,
		"room":    room,
	})
}

func (c controller) apiHealth(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"status":      "healthy",
		"rooms_count": c.roomService.RoomCount(r.Context()),
	})
}
