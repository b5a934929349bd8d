package controller

import (
	"net/http"

	"github.com/playlistrooms/server/internal/service/metadata"
	"github.com/playlistrooms/server/pkg/rest"
)

type validateVideoMetadata struct {
	URL string `json:"url" validate:"required"`
}

func (c controller) videoMetadata(w http.ResponseWriter, r *http.Request) {
	var req validateVideoMetadata
	if err := rest.ReadJSON(r, &req); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	resolved, err := c.metadataService.ResolveVideo(r.Context(), req.URL)
	if err != nil {
		c.writeError(r.Context(), w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, resolved)
}

type validatePlaylistMetadata struct {
	URL        string `json:"url" validate:"required_without=PlaylistId"`
	PlaylistId string `json:"playlistId"`
}

func (c controller) playlistMetadata(w http.ResponseWriter, r *http.Request) {
	var req validatePlaylistMetadata
	if err := rest.ReadJSON(r, &req); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	resolved, err := c.metadataService.ResolvePlaylist(r.Context(), &metadata.ResolvePlaylistParams{
		URL:        req.URL,
		PlaylistId: req.PlaylistId,
	})
	if err != nil {
		c.writeError(r.Context(), w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, resolved)
}
