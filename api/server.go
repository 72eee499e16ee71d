package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	cfg                *config.Config
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once
	closing            chan struct{}
	closingOnce        sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server listening on the configured address
func NewServer(cfg *config.Config) *Server {
	engine := gin.New()

	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}
	// The hero stream is long-lived, so only bound writes when asked to
	writeTimeout := cfg.Server.WriteTimeout
	maxHeader := cfg.Server.MaxHeaderBytes
	if maxHeader <= 0 {
		maxHeader = 1 << 20
	}

	s := &Server{
		engine:       engine,
		cfg:          cfg,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		closing:      make(chan struct{}),
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:        engine,
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: maxHeader,
		},
	}
	// Shutdown waits for active connections, so open streams must end first
	s.httpServer.RegisterOnShutdown(s.closeStreams)
	return s
}

func (s *Server) closeStreams() {
	s.closingOnce.Do(func() { close(s.closing) })
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	if s.dependencies == nil {
		s.dependencies = &types.Dependencies{}
	}
	if s.dependencies.Config == nil {
		s.dependencies.Config = s.cfg
	}
	if s.dependencies.Closing == nil {
		s.dependencies.Closing = s.closing
	}

	s.setupMiddleware()
	return RegisterRoutes(s.engine, s.dependencies, s.rateLimiters, s.cleanupStop, &s.cleanupInitialized)
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(RequestID())
	s.engine.Use(Logger())

	if s.cfg.Security.EnableCORS {
		s.engine.Use(CORS(s.cfg.Security))
	}
	s.engine.Use(RequestSizeLimitWithSize(s.cfg.Security.MaxBodySize))

	s.engine.Use(ClientSession(s.cfg.Search.SessionCookie, 0))
	if s.dependencies.Resolver != nil {
		s.engine.Use(Locale(s.dependencies.Resolver, s.cfg.I18n.CookieName))
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the rate limiter cleanup goroutine
	s.stopOnce.Do(func() { close(s.cleanupStop) })
	s.closeStreams()

	return s.httpServer.Shutdown(ctx)
}
