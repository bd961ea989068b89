package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Shirel25/NutriSnap-HAI/internal/profile"
	apiv1 "github.com/Shirel25/NutriSnap-HAI/server/router/api/v1"
	"github.com/Shirel25/NutriSnap-HAI/store"
)

// Server hosts the study API.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
	}

	// Prepare the log sink before accepting any event; a session must never
	// start against a sink that cannot take its records.
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}

	apiV1Service := apiv1.NewAPIV1Service(profile, store)
	apiV1Service.Register(e)

	return s, nil
}

func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", slog.String("address", address), slog.String("log_driver", s.Profile.LogDriver))
	return s.echoServer.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.String("error", err.Error()))
	}
	slog.Info("server stopped")
}
