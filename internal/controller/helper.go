package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/playlistrooms/server/internal/service/metadata"
	roomservice "github.com/playlistrooms/server/internal/service/room"
	"github.com/playlistrooms/server/pkg/rest"
)

func (c controller) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, roomservice.ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, roomservice.ErrRoomAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, roomservice.ErrUserIdRequired),
		errors.Is(err, roomservice.ErrInvalidPayload),
		errors.Is(err, metadata.ErrInvalidVideoURL),
		errors.Is(err, metadata.ErrInvalidPlaylistURL):
		status = http.StatusBadRequest
	case errors.Is(err, metadata.ErrPlaylistUnavailable):
		status = http.StatusBadGateway
	default:
		c.logger.ErrorContext(ctx, "unexpected error", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal server error"})
		return
	}

	rest.WriteJSON(w, status, rest.Envelope{"error": err.Error()})
}
