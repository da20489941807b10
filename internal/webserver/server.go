// Package webserver owns the echo HTTP server. Handler packages register
// routes through the Api* helpers; everything lands under /api.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/shopmind/shopmind/config"
)

type WebServer struct {
	root      *echo.Echo
	api       *echo.Group
	appConfig *config.AppConfig
}

var server *WebServer

// Init builds the echo instance with recovery, CORS and zap request
// logging. Must run before any route registration.
func Init(appConfig *config.AppConfig) *WebServer {
	root := echo.New()
	root.HideBanner = true
	root.HidePort = true
	root.Use(middleware.Recover())
	root.Use(middleware.CORS())
	root.Use(zapLogger())

	server = &WebServer{
		root:      root,
		api:       root.Group("/api"),
		appConfig: appConfig,
	}
	return server
}

func zapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			zap.L().Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}

// Start runs the HTTP listener until the server is shut down.
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.appConfig.Web.Host, s.appConfig.Web.Port)
	zap.S().Infof("Starting web server %s", addr)
	err := s.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the listener down gracefully.
func (s *WebServer) Stop(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// Echo exposes the underlying echo instance (used in handler tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}
