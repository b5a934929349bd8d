package controller

import (
	"context"
	"log/slog"

	"github.com/playlistrooms/server/internal/domain"
	"github.com/playlistrooms/server/internal/service/metadata"
	roomservice "github.com/playlistrooms/server/internal/service/room"
	"github.com/playlistrooms/server/pkg/validator"
	"github.com/playlistrooms/server/pkg/ytmetadata"
)

type iRoomService interface {
	ListRooms(ctx context.Context) []domain.Room
	CreateRoom(ctx context.Context, newRoom domain.Room) (domain.Room, error)
	GetRoom(ctx context.Context, roomId string) (domain.Room, error)
	UpdateRoom(ctx context.Context, params *roomservice.UpdateRoomParams) (domain.Room, error)
	DeleteRoom(ctx context.Context, roomId string) error
	LeaveRoom(ctx context.Context, params *roomservice.LeaveRoomParams) (domain.Room, error)
	RoomCount(ctx context.Context) int
}

type iMetadataService interface {
	ResolveVideo(ctx context.Context, url string) (metadata.ResolveVideoResponse, error)
	ResolvePlaylist(ctx context.Context, params *metadata.ResolvePlaylistParams) (*ytmetadata.PlaylistMetadata, error)
}

type Config struct {
	AllowedOrigins []string
	StaticDir      string
	RateLimit      float64
	RateBurst      int
}

type controller struct {
	roomService     iRoomService
	metadataService iMetadataService
	validate        *validator.Validator
	limiter         *ipRateLimiter
	allowedOrigins  []string
	staticDir       string
	logger          *slog.Logger
}

func NewController(roomService iRoomService, metadataService iMetadataService, cfg *Config, logger *slog.Logger) *controller {
	c := controller{
		roomService:     roomService,
		metadataService: metadataService,
		validate:        validator.NewValidator(),
		allowedOrigins:  cfg.AllowedOrigins,
		staticDir:       cfg.StaticDir,
		logger:          logger,
	}

	if len(c.allowedOrigins) == 0 {
		c.allowedOrigins = []string{"*"}
	}
	if cfg.RateLimit > 0 {
		c.limiter = newIPRateLimiter(cfg.RateLimit, cfg.RateBurst)
	}

	return &c
}
