package controller

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (c controller) GetMux() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(c.requestIdMw)
	r.Use(c.metricsMw)
	r.Use(c.requestLoggingMw)
	if c.limiter != nil {
		r.Use(c.rateLimitMw)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: c.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", c.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", c.apiHealth)

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", c.listRooms)
			r.Post("/", c.createRoom)
			r.Route("/{room-id}", func(r chi.Router) {
				r.Get("/", c.getRoom)
				r.Put("/", c.updateRoom)
				r.Delete("/", c.deleteRoom)
				r.Post("/leave", c.leaveRoom)
			})
		})

		r.Post("/video/metadata", c.videoMetadata)
		r.Post("/playlist/metadata", c.playlistMetadata)
	})

	// static frontend
	r.Get("/", c.serveStatic("index.html"))
	r.Get("/room.html", c.serveStatic("room.html"))
	r.Handle("/*", http.FileServer(http.Dir(c.staticDir)))

	return r
}

func (c controller) serveStatic(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(c.staticDir, name))
	}
}
