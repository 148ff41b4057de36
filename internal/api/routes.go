package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.With(s.authMiddleware).Get("/me", s.handleMe)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.handleGetProgress)
			r.Put("/", s.handleUpdateProgress)
			r.Post("/answer", s.handleAnswer)
			r.Get("/leitner", s.handleLeitner)
			r.Post("/sync", s.handleSync)
			r.Get("/stats", s.handleStats)
			r.Post("/achievement", s.handleAddAchievement)
			r.Post("/session", s.handleAddSession)
		})
	})

	return r
}
