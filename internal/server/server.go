package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"cuisine/internal/crud"
	"cuisine/internal/handlers"
	applog "cuisine/internal/log"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr           string
	RequestTimeout time.Duration
	Session        SessionConfig
	RateLimit      RateLimitConfig
	CORSOrigins    []string
	Database       *gorm.DB
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// RateLimitConfig throttles mutating requests per client. A zero RPS
// disables the limiter.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Server wraps an http.Server serving the cookbook.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()
	applog.Debug(ctx, "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
	)

	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		sessionCfg.Lifetime = 12 * time.Hour
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		sessionCfg.CookieName = "cuisine_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	handlers.Configure(sessionManager, cfg.Database)

	var table *crud.Table
	if cfg.Database != nil {
		var err error
		table, err = handlers.Routes()
		if err != nil {
			return nil, fmt.Errorf("bind resource routes: %w", err)
		}
	}

	limiter := newRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	var handler http.Handler = newRouter(table)
	handler = limiter.Limit(handler)
	handler = handlers.Navigation(handler)
	handler = sessionManager.LoadAndSave(handler)
	handler = withTimeout(cfg.RequestTimeout, handler)
	handler = withCORS(cfg.CORSOrigins, handler)
	handler = securityHeaders(handler)
	handler = accessLog(handler)
	handler = requestID(handler)

	applog.Debug(ctx, "http handler chain prepared", "resources", table != nil, "rateLimited", cfg.RateLimit.RPS > 0)

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Info(context.Background(), "server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
