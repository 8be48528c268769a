// Package httpapi exposes the auth workflows over HTTP with JSON bodies.
package httpapi

import (
	"net/http"

	"github.com/papper-tech/auth-service/internal/logging"
	"github.com/papper-tech/auth-service/internal/server/config"
	"github.com/papper-tech/auth-service/internal/server/services"
)

type Server struct {
	cfg     *config.Config
	users   *services.UserService
	secrets *services.SecretService
	logger  logging.Logger
	mux     *http.ServeMux
}

func NewServer(cfg *config.Config, users *services.UserService,
	secrets *services.SecretService, logger logging.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		users:   users,
		secrets: secrets,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = s.recoverMiddleware(h)
	h = requestIDMiddleware(h)
	h = s.loggingMiddleware(h)
	return h
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/personal/registration", s.handleRegistration)
	s.mux.HandleFunc("/personal/email_registration", s.handleEmailRegistration)
	s.mux.HandleFunc("/personal/token", s.handleToken)
	s.mux.HandleFunc("/personal/refresh", s.handleRefresh)
	s.mux.HandleFunc("/personal/user", s.handleUser)
	s.mux.HandleFunc("/personal/user/update", s.handleUserUpdate)
	s.mux.HandleFunc("/personal/secrets", s.handleSecrets)
	s.mux.HandleFunc("/personal/add_secret", s.handleAddSecret)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
