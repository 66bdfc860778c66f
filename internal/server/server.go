// Package server assembles the job board API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/store"
)

// Server holds the dependencies of every route.
type Server struct {
	Config *config.Config
	Store  store.Store

	Auth         *services.AuthService
	Jobs         *services.JobService
	Applications *services.ApplicationService
	Contact      *services.ContactService
}

// New wires the services over st and makes sure the admin account exists.
func New(ctx context.Context, cfg *config.Config, st store.Store) (*Server, error) {
	auth := services.NewAuthService(st, cfg.JWTSecret)
	if err := auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, err
	}
	return &Server{
		Config:       cfg,
		Store:        st,
		Auth:         auth,
		Jobs:         services.NewJobService(st),
		Applications: services.NewApplicationService(st, cfg.UploadDir),
		Contact:      services.NewContactService(st),
	}, nil
}

// HTTPServer returns the listening server for s.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.Config.Addr(),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
