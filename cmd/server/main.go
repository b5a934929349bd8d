package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/playlistrooms/server/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 5000,
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	corsOrigins = configVar[string]{
		envKey:       "CORS_ORIGINS",
		flagKey:      "cors-origins",
		defaultValue: "*",
	}
	staticDir = configVar[string]{
		envKey:       "SERVER_STATIC_DIR",
		flagKey:      "static-dir",
		defaultValue: "./static",
	}
	reapInterval = configVar[time.Duration]{
		envKey:       "SERVER_REAP_INTERVAL",
		flagKey:      "reap-interval",
		defaultValue: time.Hour,
	}
	roomMaxAge = configVar[time.Duration]{
		envKey:       "SERVER_ROOM_MAX_AGE",
		flagKey:      "room-max-age",
		defaultValue: 24 * time.Hour,
	}
	videoTimeout = configVar[time.Duration]{
		envKey:       "SERVER_VIDEO_TIMEOUT",
		flagKey:      "video-timeout",
		defaultValue: 5 * time.Second,
	}
	playlistTimeout = configVar[time.Duration]{
		envKey:       "SERVER_PLAYLIST_TIMEOUT",
		flagKey:      "playlist-timeout",
		defaultValue: 10 * time.Second,
	}
	playlistLimit = configVar[int]{
		envKey:       "SERVER_PLAYLIST_LIMIT",
		flagKey:      "playlist-limit",
		defaultValue: 50,
	}
	rateLimit = configVar[float64]{
		envKey:       "SERVER_RATE_LIMIT",
		flagKey:      "rate-limit",
		defaultValue: 0,
	}
	rateBurst = configVar[int]{
		envKey:       "SERVER_RATE_BURST",
		flagKey:      "rate-burst",
		defaultValue: 20,
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.String(corsOrigins.flagKey, corsOrigins.defaultValue, "Comma-separated list of allowed CORS origins")
	pflag.String(staticDir.flagKey, staticDir.defaultValue, "Directory with the static frontend")
	pflag.Duration(reapInterval.flagKey, reapInterval.defaultValue, "How often the room reaper runs")
	pflag.Duration(roomMaxAge.flagKey, roomMaxAge.defaultValue, "Age after which a room is reaped")
	pflag.Duration(videoTimeout.flagKey, videoTimeout.defaultValue, "Timeout for fetching a video page")
	pflag.Duration(playlistTimeout.flagKey, playlistTimeout.defaultValue, "Timeout for fetching a playlist page")
	pflag.Int(playlistLimit.flagKey, playlistLimit.defaultValue, "Maximum number of videos resolved per playlist")
	pflag.Float64(rateLimit.flagKey, rateLimit.defaultValue, "Requests per second per client, 0 disables limiting")
	pflag.Int(rateBurst.flagKey, rateBurst.defaultValue, "Rate limiter burst size")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(corsOrigins.flagKey, corsOrigins.envKey)
	viper.BindEnv(staticDir.flagKey, staticDir.envKey)
	viper.BindEnv(reapInterval.flagKey, reapInterval.envKey)
	viper.BindEnv(roomMaxAge.flagKey, roomMaxAge.envKey)
	viper.BindEnv(videoTimeout.flagKey, videoTimeout.envKey)
	viper.BindEnv(playlistTimeout.flagKey, playlistTimeout.envKey)
	viper.BindEnv(playlistLimit.flagKey, playlistLimit.envKey)
	viper.BindEnv(rateLimit.flagKey, rateLimit.envKey)
	viper.BindEnv(rateBurst.flagKey, rateBurst.envKey)

	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(corsOrigins.flagKey, corsOrigins.defaultValue)
	viper.SetDefault(staticDir.flagKey, staticDir.defaultValue)
	viper.SetDefault(reapInterval.flagKey, reapInterval.defaultValue)
	viper.SetDefault(roomMaxAge.flagKey, roomMaxAge.defaultValue)
	viper.SetDefault(videoTimeout.flagKey, videoTimeout.defaultValue)
	viper.SetDefault(playlistTimeout.flagKey, playlistTimeout.defaultValue)
	viper.SetDefault(playlistLimit.flagKey, playlistLimit.defaultValue)
	viper.SetDefault(rateLimit.flagKey, rateLimit.defaultValue)
	viper.SetDefault(rateBurst.flagKey, rateBurst.defaultValue)

	config := &app.AppConfig{
		Host:            viper.GetString(host.flagKey),
		Port:            viper.GetInt(port.flagKey),
		LogLevel:        viper.GetString(logLevel.flagKey),
		CorsOrigins:     splitOrigins(viper.GetString(corsOrigins.flagKey)),
		StaticDir:       viper.GetString(staticDir.flagKey),
		ReapInterval:    viper.GetDuration(reapInterval.flagKey),
		RoomMaxAge:      viper.GetDuration(roomMaxAge.flagKey),
		VideoTimeout:    viper.GetDuration(videoTimeout.flagKey),
		PlaylistTimeout: viper.GetDuration(playlistTimeout.flagKey),
		PlaylistLimit:   viper.GetInt(playlistLimit.flagKey),
		RateLimit:       viper.GetFloat64(rateLimit.flagKey),
		RateBurst:       viper.GetInt(rateBurst.flagKey),
	}

	return config
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
