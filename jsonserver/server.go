package jsonserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kbukum/dataprovider/logger"
)

// Server exposes a Store over HTTP.
type Server struct {
	store      *Store
	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	log        *logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a server for store with routes and middleware registered.
func New(store *Store, opts ...Option) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{store: store, log: logger.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("jsonserver")

	s.engine = gin.New()
	s.engine.Use(recovery(s.log), requestID(), requestLogger(s.log))
	s.routes()
	return s
}

// Handler returns the HTTP handler, for httptest or custom servers.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store returns the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Start binds addr and serves in the background. It returns once the
// listener is bound.
func (s *Server) Start(_ context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("jsonserver: bind %s: %w", addr, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("server error", map[string]interface{}{"error": err.Error()})
		}
	}()

	s.log.Info("json server started", map[string]interface{}{
		"addr":      listener.Addr().String(),
		"resources": s.store.Resources(),
	})
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("jsonserver: shutdown: %w", err)
	}
	s.log.Info("json server stopped")
	return nil
}
