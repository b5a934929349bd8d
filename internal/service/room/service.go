package room

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/playlistrooms/server/internal/domain"
)

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room id already exists")
	ErrInvalidPayload    = errors.New("invalid room payload")
	ErrUserIdRequired    = errors.New("user id is required")
)

const (
	defaultReapInterval = time.Hour
	defaultRoomMaxAge   = 24 * time.Hour
)

type iRoomRepo interface {
	List() []domain.Room
	Create(room domain.Room) error
	Get(roomId string) (domain.Room, error)
	Update(roomId string, patch map[string]json.RawMessage) (domain.Room, error)
	Delete(roomId string) error
	Leave(roomId string, userId string) (domain.Room, error)
	Reap(maxAge time.Duration) []domain.Room
	Count() int
}

type Config struct {
	ReapInterval time.Duration
	RoomMaxAge   time.Duration
}

type service struct {
	roomRepo     iRoomRepo
	reapInterval time.Duration
	roomMaxAge   time.Duration
	logger       *slog.Logger
}

func NewService(roomRepo iRoomRepo, cfg *Config, logger *slog.Logger) *service {
	s := service{
		roomRepo:     roomRepo,
		reapInterval: cfg.ReapInterval,
		roomMaxAge:   cfg.RoomMaxAge,
		logger:       logger,
	}

	if s.reapInterval <= 0 {
		s.reapInterval = defaultReapInterval
	}
	if s.roomMaxAge <= 0 {
		s.roomMaxAge = defaultRoomMaxAge
	}

	return &s
}
