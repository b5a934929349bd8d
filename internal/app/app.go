package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/playlistrooms/server/internal/controller"
	"github.com/playlistrooms/server/internal/repository/room/inmemory"
	"github.com/playlistrooms/server/internal/service/metadata"
	"github.com/playlistrooms/server/internal/service/room"
	"github.com/playlistrooms/server/pkg/ctxlogger"
	"github.com/playlistrooms/server/pkg/ytmetadata"
)

type AppConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	LogLevel        string        `json:"log_level"`
	CorsOrigins     []string      `json:"cors_origins"`
	StaticDir       string        `json:"static_dir"`
	ReapInterval    time.Duration `json:"reap_interval"`
	RoomMaxAge      time.Duration `json:"room_max_age"`
	VideoTimeout    time.Duration `json:"video_timeout"`
	PlaylistTimeout time.Duration `json:"playlist_timeout"`
	PlaylistLimit   int           `json:"playlist_limit"`
	RateLimit       float64       `json:"rate_limit"`
	RateBurst       int           `json:"rate_burst"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if cfg.PlaylistLimit < 1 {
		return fmt.Errorf("playlist limit must be greater than 0")
	}
	if cfg.ReapInterval <= 0 {
		return fmt.Errorf("reap interval must be positive")
	}
	if cfg.RoomMaxAge <= 0 {
		return fmt.Errorf("room max age must be positive")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}),
	}

	logger := slog.New(&h)

	roomRepo := inmemory.NewRepo()
	roomService := room.NewService(roomRepo, &room.Config{
		ReapInterval: cfg.ReapInterval,
		RoomMaxAge:   cfg.RoomMaxAge,
	}, logger)

	resolver := ytmetadata.NewClient(&ytmetadata.Config{
		VideoTimeout:    cfg.VideoTimeout,
		PlaylistTimeout: cfg.PlaylistTimeout,
		PlaylistLimit:   cfg.PlaylistLimit,
	}, logger)
	metadataService := metadata.NewService(resolver, logger)

	controller := controller.NewController(roomService, metadataService, &controller.Config{
		AllowedOrigins: cfg.CorsOrigins,
		StaticDir:      cfg.StaticDir,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
	}, logger)

	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: controller.GetMux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)
	defer serverStopCtx()

	go roomService.StartReaper(serverCtx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
