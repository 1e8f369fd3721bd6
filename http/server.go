// Package http serves the JSON API and the browser UI with echo, and provides
// a client for the API.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/fwojciec/hermes"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// DefaultAddr matches the address the browser UI has always talked to.
const DefaultAddr = "127.0.0.1:8000"

// Server exposes hermes services over HTTP.
type Server struct {
	echo *echo.Echo

	Settings hermes.SettingsService
	Files    hermes.FileService
	Chunks   hermes.ChunkService
	Search   hermes.SearchService

	// Asker is optional; /api/ask answers 501 without it.
	Asker hermes.Asker

	// OnDirChange is called after the directory is changed.
	OnDirChange func()

	// AllowOrigins lists the cross-origin callers allowed besides the UI
	// served by this server, e.g. "http://localhost:3000".
	AllowOrigins []string

	Logger *slog.Logger
}

// NewServer creates a Server with routes and middleware installed.
// Services must be assigned before the server handles requests.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{echo: echo.New(), Logger: logger}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleHTTPError

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				s.Logger.Info("request",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"duration", v.Latency,
				)
			} else {
				s.Logger.Error("request",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"duration", v.Latency,
					"err", v.Error,
				)
			}
			return nil
		},
	}))
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: s.allowOrigin,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:          86400,
	}))
	s.echo.Use(s.rejectCrossOrigin)

	s.registerAPIRoutes(s.echo.Group("/api"))
	s.registerUIRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) allowOrigin(origin string) (bool, error) {
	return slices.Contains(s.AllowOrigins, origin), nil
}

// rejectCrossOrigin refuses state-changing requests whose Origin, or Referer
// when Origin is absent, names another host that is not allowed. Requests
// carrying neither header, like those of the CLI client, pass.
func (s *Server) rejectCrossOrigin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		switch req.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return next(c)
		}

		origin := req.Header.Get(echo.HeaderOrigin)
		if origin == "" {
			origin = req.Referer()
		}
		if origin == "" {
			return next(c)
		}

		u, err := url.Parse(origin)
		if err == nil && u.Host != "" {
			if u.Host == req.Host || slices.Contains(s.AllowOrigins, u.Scheme+"://"+u.Host) {
				return next(c)
			}
		}
		return hermes.Errorf(hermes.EFORBIDDEN, "cross-origin request rejected")
	}
}

func (s *Server) dirChanged() {
	if s.OnDirChange != nil {
		s.OnDirChange()
	}
}
