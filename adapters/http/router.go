package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rythmn1111/final-cam/ports"
	slogchi "github.com/samber/slog-chi"
)

func NewRouter(log ports.Logger) ports.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(slogchi.New(log))
	r.Use(middleware.Recoverer)
	// NOTE No global timeout middleware - the event stream is a
	// long-lived connection. Captures and publishes get their own
	// deadline at the service level.

	return r
}
