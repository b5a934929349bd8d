package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlistrooms_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playlistrooms_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	RoomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlistrooms_rooms_created_total",
			Help: "Total rooms created",
		},
	)

	RoomsReaped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlistrooms_rooms_reaped_total",
			Help: "Total rooms removed by the reaper",
		},
	)

	RoomsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playlistrooms_rooms_stored",
			Help: "Rooms currently held in the registry",
		},
	)

	VideoResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlistrooms_video_resolutions_total",
			Help: "Total video metadata resolutions",
		},
		[]string{"outcome"}, // "resolved" or "degraded"
	)

	PlaylistResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlistrooms_playlist_resolutions_total",
			Help: "Total playlist metadata resolutions",
		},
		[]string{"outcome"}, // "resolved" or "failed"
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlistrooms_rate_limited_total",
			Help: "Total requests rejected by the rate limiter",
		},
	)
)
