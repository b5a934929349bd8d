package controller

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playlistrooms/server/internal/domain"
	"github.com/playlistrooms/server/internal/service/metadata"
	roomservice "github.com/playlistrooms/server/internal/service/room"
	"github.com/playlistrooms/server/pkg/ytmetadata"
)

type fakeRoomService struct {
	listRooms  func() []domain.Room
	createRoom func(domain.Room) (domain.Room, error)
	getRoom    func(string) (domain.Room, error)
	updateRoom func(*roomservice.UpdateRoomParams) (domain.Room, error)
	deleteRoom func(string) error
	leaveRoom  func(*roomservice.LeaveRoomParams) (domain.Room, error)
	roomCount  func() int
}

func (f fakeRoomService) ListRooms(ctx context.Context) []domain.Room {
	return f.listRooms()
}

func (f fakeRoomService) CreateRoom(ctx context.Context, newRoom domain.Room) (domain.Room, error) {
	return f.createRoom(newRoom)
}

func (f fakeRoomService) GetRoom(ctx context.Context, roomId string) (domain.Room, error) {
	return f.getRoom(roomId)
}

func (f fakeRoomService) UpdateRoom(ctx context.Context, params *roomservice.UpdateRoomParams) (domain.Room, error) {
	return f.updateRoom(params)
}

func (f fakeRoomService) DeleteRoom(ctx context.Context, roomId string) error {
	return f.deleteRoom(roomId)
}

func (f fakeRoomService) LeaveRoom(ctx context.Context, params *roomservice.LeaveRoomParams) (domain.Room, error) {
	return f.leaveRoom(params)
}

func (f fakeRoomService) RoomCount(ctx context.Context) int {
	return f.roomCount()
}

type fakeMetadataService struct {
	resolveVideo    func(string) (metadata.ResolveVideoResponse, error)
	resolvePlaylist func(*metadata.ResolvePlaylistParams) (*ytmetadata.PlaylistMetadata, error)
}

func (f fakeMetadataService) ResolveVideo(ctx context.Context, url string) (metadata.ResolveVideoResponse, error) {
	return f.resolveVideo(url)
}

func (f fakeMetadataService) ResolvePlaylist(ctx context.Context, params *metadata.ResolvePlaylistParams) (*ytmetadata.PlaylistMetadata, error) {
	return f.resolvePlaylist(params)
}

func testMux(t *testing.T, rooms fakeRoomService, meta fakeMetadataService, cfg *Config) http.Handler {
	t.Helper()

	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = t.TempDir()
	}

	c := NewController(rooms, meta, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return c.GetMux()
}

func doRequest(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	return w
}

func TestListRooms(t *testing.T) {
	mux := testMux(t, fakeRoomService{
		listRooms: func() []domain.Room {
			return []domain.Room{{Id: "r1", IsActive: true}}
		},
	}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodGet, "/api/rooms", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rooms []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, "r1", rooms[0]["id"])
}

func TestCreateRoom(t *testing.T) {
	var stored domain.Room
	mux := testMux(t, fakeRoomService{
		createRoom: func(newRoom domain.Room) (domain.Room, error) {
			stored = newRoom
			return newRoom, nil
		},
	}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodPost, "/api/rooms", `{"id":"r1","participants":[],"playlist":["x"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r1", stored.Id)
	assert.Contains(t, stored.Extra, "playlist")

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "r1", resp["room_id"])
}

func TestCreateRoomMissingId(t *testing.T) {
	mux := testMux(t, fakeRoomService{
		createRoom: func(newRoom domain.Room) (domain.Room, error) {
			t.Fatal("service must not be called")
			return domain.Room{}, nil
		},
	}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodPost, "/api/rooms", `{"participants":[]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "errors")
}

func TestCreateRoomConflict(t *testing.T) {
	mux := testMux(t, fakeRoomService{
		createRoom: func(newRoom domain.Room) (domain.Room, error) {
			return domain.Room{}, roomservice.ErrRoomAlreadyExists
		},
	}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodPost, "/api/rooms", `{"id":"r1"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetRoomNotFound(t *testing.T) {
	mux := testMux(t, fakeRoomService{
		getRoom: func(roomId string) (domain.Room, error) {
			return domain.Room{}, roomservice.ErrRoomNotFound
		},
	}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodGet, "/api/rooms/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRoom(t *testing.T) {
	mux := testMux(t, fakeRoomService{
		updateRoom: func(params *roomservice.UpdateRoomParams) (domain.Room, error) {
			assert.Equal(t, "r1", params.RoomId)
			assert.Contains(t, params.Patch, "leader")
			return domain.Room{Id: "r1", Leader: "u2"}, nil
		},
	}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodPut, "/api/rooms/r1", `{"leader":"u2"}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteRoom(t *testing.T) {
	mux := testMux(t, fakeRoomService{
		deleteRoom: func(roomId string) error {
			assert.Equal(t, "r1", roomId)
			return nil
		},
	}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodDelete, "/api/rooms/r1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLeaveRoom(t *testing.T) {
	mux := testMux(t, fakeRoomService{
		leaveRoom: func(params *roomservice.LeaveRoomParams) (domain.Room, error) {
			assert.Equal(t, "r1", params.RoomId)
			assert.Equal(t, "u1", params.UserId)
			return domain.Room{Id: "r1", IsActive: false}, nil
		},
	}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodPost, "/api/rooms/r1/leave", `{"userId":"u1"}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLeaveRoomMissingUserId(t *testing.T) {
	mux := testMux(t, fakeRoomService{
		leaveRoom: func(params *roomservice.LeaveRoomParams) (domain.Room, error) {
			t.Fatal("service must not be called")
			return domain.Room{}, nil
		},
	}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodPost, "/api/rooms/r1/leave", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "errors")
}

func TestVideoMetadata(t *testing.T) {
	mux := testMux(t, fakeRoomService{}, fakeMetadataService{
		resolveVideo: func(url string) (metadata.ResolveVideoResponse, error) {
			return metadata.ResolveVideoResponse{
				VideoMetadata: ytmetadata.VideoMetadata{VideoId: "ABC12345678", Title: "T"},
				URL:           url,
			}, nil
		},
	}, nil)

	w := doRequest(mux, http.MethodPost, "/api/video/metadata", `{"url":"https://youtu.be/ABC12345678"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ABC12345678", resp["video_id"])
	assert.Equal(t, "https://youtu.be/ABC12345678", resp["url"])
}

func TestVideoMetadataInvalidURL(t *testing.T) {
	mux := testMux(t, fakeRoomService{}, fakeMetadataService{
		resolveVideo: func(url string) (metadata.ResolveVideoResponse, error) {
			return metadata.ResolveVideoResponse{}, metadata.ErrInvalidVideoURL
		},
	}, nil)

	w := doRequest(mux, http.MethodPost, "/api/video/metadata", `{"url":"https://example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVideoMetadataMissingURL(t *testing.T) {
	mux := testMux(t, fakeRoomService{}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodPost, "/api/video/metadata", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaylistMetadataUnavailable(t *testing.T) {
	mux := testMux(t, fakeRoomService{}, fakeMetadataService{
		resolvePlaylist: func(params *metadata.ResolvePlaylistParams) (*ytmetadata.PlaylistMetadata, error) {
			return nil, metadata.ErrPlaylistUnavailable
		},
	}, nil)

	w := doRequest(mux, http.MethodPost, "/api/playlist/metadata", `{"url":"https://www.youtube.com/playlist?list=PL1"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestApiHealth(t *testing.T) {
	mux := testMux(t, fakeRoomService{
		roomCount: func() int { return 3 },
	}, fakeMetadataService{}, nil)

	w := doRequest(mux, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, float64(3), resp["rooms_count"])
}

func TestRateLimit(t *testing.T) {
	mux := testMux(t, fakeRoomService{
		roomCount: func() int { return 0 },
	}, fakeMetadataService{}, &Config{
		RateLimit: 1,
		RateBurst: 1,
	})

	first := doRequest(mux, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, first.Code)

	second := doRequest(mux, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
