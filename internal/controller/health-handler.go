package controller

import (
	"net/http"

	"github.com/playlistrooms/server/pkg/rest"
)

const version = "1.0.0"

func (c controller) health(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"status":      "healthy",
		"version":     version,
		"rooms_count": c.roomService.RoomCount(r.Context()),
	})
}
