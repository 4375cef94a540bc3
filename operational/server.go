// Package operational serves the out-of-band HTTP surface every service
// needs: liveness, readiness, Prometheus exposition and service identity.
// The server is started and stopped explicitly by the host process and runs
// beside the service's own listeners.
package operational

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fyrsmithlabs/o11y/internal/envutil"
	"github.com/fyrsmithlabs/o11y/logging"
	"github.com/fyrsmithlabs/o11y/metrics"
)

// Config holds operational server configuration.
type Config struct {
	Host string
	Port int // 0 picks a random free port
}

// NewDefaultConfig binds to localhost:9090.
func NewDefaultConfig() Config {
	return Config{Host: "localhost", Port: 9090}
}

// FromEnv creates configuration from OPERATIONAL_HOST and OPERATIONAL_PORT.
func FromEnv() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("OPERATIONAL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "OPERATIONAL_"))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	cfg := NewDefaultConfig()
	if v := k.String("host"); v != "" {
		cfg.Host = v
	}
	if raw := k.String("port"); raw != "" {
		port, err := envutil.ParseInt("OPERATIONAL_PORT", raw)
		if err != nil {
			return Config{}, err
		}
		if port < 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid OPERATIONAL_PORT: %d", port)
		}
		cfg.Port = port
	}
	return cfg, nil
}

// Server exposes /health, /ready, /metrics and /info.
type Server struct {
	echo     *echo.Echo
	config   Config
	info     map[string]string
	status   *Status
	registry *metrics.Collector
	logger   *logging.Logger

	listener net.Listener
}

// ServerOption configures NewServer.
type ServerOption func(*Server)

// WithLogger overrides the request logger.
func WithLogger(l *logging.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// NewServer creates the operational server.
//
// info is the service descriptor projection served by /info (typically
// metadata.ServiceInfo.Map()); collector's registry backs /metrics.
func NewServer(cfg Config, info map[string]string, status *Status, collector *metrics.Collector, opts ...ServerOption) (*Server, error) {
	if status == nil {
		return nil, fmt.Errorf("status cannot be nil")
	}
	if collector == nil {
		return nil, fmt.Errorf("metrics collector cannot be nil")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	s := &Server{
		echo:     e,
		config:   cfg,
		info:     info,
		status:   status,
		registry: collector,
		logger:   logging.GetLogger("operational"),
	}
	for _, opt := range opts {
		opt(s)
	}

	e.Use(s.requestLogMiddleware)
	s.registerRoutes()
	return s, nil
}

func (s *Server) requestLogMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		s.logger.Debug(c.Request().Context(), "operational request",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"status", c.Response().Status,
			"duration", time.Since(start).String(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		return err
	}
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/ready", s.handleReady)
	s.echo.GET("/info", s.handleInfo)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
		s.registry.Registry(),
		promhttp.HandlerOpts{},
	)))
}

type statusResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	if !s.status.IsAlive() {
		return c.JSON(http.StatusServiceUnavailable, statusResponse{Status: "unhealthy"})
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleReady(c echo.Context) error {
	if !s.status.IsReady() {
		return c.JSON(http.StatusServiceUnavailable, statusResponse{Status: "not ready"})
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "ready"})
}

func (s *Server) handleInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, s.info)
}

// Start binds the listener and begins serving in the background. It returns
// once the address is bound, so URL is valid immediately after.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", addr, err)
	}
	s.listener = ln
	s.echo.Listener = ln

	go func() {
		if err := s.echo.Start(""); err != nil && err != http.ErrServerClosed {
			s.logger.Error(context.Background(), "operational server stopped", "error", err.Error())
		}
	}()
	return nil
}

// URL returns the base URL of the bound listener. Only valid after Start.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
